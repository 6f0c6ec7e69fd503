// Package render draws road networks with Graphviz.
//
// [ToDOT] converts a [roadmap.Graph] into DOT text. Two-way roads with the
// same weights in both directions are drawn as one undirected edge, and each
// edge is labelled with its driving and walking times ("-" when the road
// cannot be used in that mode). Parking locations are drawn as boxes.
//
// A route can be highlighted through [Options]: driving legs are drawn as
// thick solid edges, walking legs as thick dashed edges, and the endpoints
// are filled.
//
//	dot := render.ToDOT(g, render.Options{Driving: best.DrivingPath, Walking: best.WalkingPath})
//	svg, err := render.RenderSVG(dot)
//
// [RenderPDF] and [RenderPNG] convert the SVG with the external rsvg-convert
// tool (from librsvg).
package render
