// Package dataset loads road networks into a roadmap.Graph and writes them
// back out.
//
// # CSV Datasets
//
// A dataset is a pair of CSV files. The locations file lists one vertex per
// row:
//
//	Location,Id,Code,Parking
//	Porto Centro,1,PC,1
//
// and the distances file lists one two-way road per row, referencing
// locations by code:
//
//	Location1,Location2,Driving,Walking
//	PC,BO,5,25
//
// A weight of "X", an empty weight or any other unparsable token means the
// road cannot be used in that mode. Such roads are loaded with
// [roadmap.Inf], never with a zero weight.
//
// # JSON Graphs
//
// [WriteJSON] and [ReadJSON] exchange a graph as a JSON document with
// "vertices" and "edges" arrays, where a null weight stands for
// [roadmap.Inf]. [Fingerprint] hashes that document to identify a graph in
// cache keys.
package dataset
