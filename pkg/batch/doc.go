// Package batch reads route requests from and writes reports to the plain
// text batch format.
//
// A request is a block of Key:value lines:
//
//	Mode:driving
//	Source:5
//	Destination:4
//	AvoidNodes:2,3
//	AvoidSegments:(1,2),(3,4)
//	IncludeNode:6
//	MaxWalkTime:18
//
// Only Mode, Source and Destination are required. An empty value means the
// constraint is absent. Blank lines separate requests, so one file may hold
// several.
//
// Reports use the same Key:value shape. Paths are written as comma
// separated ids followed by the cost in parentheses, and "none" marks a
// path that does not exist:
//
//	Source:5
//	Destination:4
//	BestDrivingRoute:5,3,2,4(19)
//	AlternativeDrivingRoute:none
package batch
