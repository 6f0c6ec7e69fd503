package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

// Output formats accepted by Render.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// Options configures network rendering.
type Options struct {
	// Driving and Walking are vertex sequences to highlight. A plain driving
	// route goes in Driving; a park-and-walk route splits across both.
	Driving []int
	Walking []int

	// Labels shows location names and codes instead of bare ids.
	Labels bool
}

const (
	drivingColor = "#1f77b4"
	walkingColor = "#2ca02c"
)

type pair struct{ a, b int }

// ToDOT converts g to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(g *roadmap.Graph[int], opts Options) string {
	drive := legSegments(opts.Driving)
	walk := legSegments(opts.Walking)
	ends := routeEnds(opts)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10, color=grey50];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		attrs := fmtAttrs(*v, fmtLabel(*v, opts.Labels), ends[v.ID])
		fmt.Fprintf(&buf, "  %d [%s];\n", v.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		twoWay := hasTwin(g, e)
		if twoWay && e.From > e.To {
			continue
		}
		attrs := []string{fmt.Sprintf("label=%q", edgeLabel(e))}
		if twoWay {
			attrs = append(attrs, "dir=none")
		}
		switch {
		case drive[pair{e.From, e.To}] || (twoWay && drive[pair{e.To, e.From}]):
			attrs = append(attrs, "penwidth=3", fmt.Sprintf("color=%q", drivingColor))
		case walk[pair{e.From, e.To}] || (twoWay && walk[pair{e.To, e.From}]):
			attrs = append(attrs, "penwidth=3", "style=dashed", fmt.Sprintf("color=%q", walkingColor))
		}
		fmt.Fprintf(&buf, "  %d -> %d [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// hasTwin reports whether the opposite edge of e exists with equal weights.
func hasTwin(g *roadmap.Graph[int], e roadmap.Edge[int]) bool {
	if e.From == e.To {
		return false
	}
	for _, r := range g.Outgoing(e.To) {
		if r.To == e.From && r.Driving == e.Driving && r.Walking == e.Walking {
			return true
		}
	}
	return false
}

func legSegments(path []int) map[pair]bool {
	out := make(map[pair]bool, len(path))
	for i := 0; i+1 < len(path); i++ {
		out[pair{path[i], path[i+1]}] = true
	}
	return out
}

// routeEnds returns the fill colour of the highlighted route's source,
// destination and parking vertex.
func routeEnds(opts Options) map[int]string {
	out := make(map[int]string)
	if n := len(opts.Driving); n > 0 {
		out[opts.Driving[0]] = drivingColor
		out[opts.Driving[n-1]] = drivingColor
	}
	if n := len(opts.Walking); n > 0 {
		if len(opts.Driving) == 0 {
			out[opts.Walking[0]] = walkingColor
		}
		out[opts.Walking[n-1]] = walkingColor
	}
	return out
}

func fmtLabel(v roadmap.Vertex[int], detailed bool) string {
	if !detailed || (v.Name == "" && v.Code == "") {
		return strconv.Itoa(v.ID)
	}
	label := strconv.Itoa(v.ID)
	if v.Code != "" {
		label += " " + v.Code
	}
	if v.Name != "" {
		label += "\n" + v.Name
	}
	return label
}

func fmtAttrs(v roadmap.Vertex[int], label, fill string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if v.Parking {
		attrs = append(attrs, "shape=box")
	}
	if fill != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill), "fontcolor=white")
	}
	return attrs
}

func edgeLabel(e roadmap.Edge[int]) string {
	return "d " + weightLabel(e.Driving) + " / w " + weightLabel(e.Walking)
}

func weightLabel(w int64) string {
	if w == roadmap.Inf {
		return "-"
	}
	return strconv.FormatInt(w, 10)
}

// Render converts a DOT graph to the given format.
func Render(dot, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(dot)
	case FormatPDF:
		return RenderPDF(dot)
	case FormatPNG:
		return RenderPNG(dot, 2.0)
	default:
		return nil, fmt.Errorf("unsupported format %q (want dot, svg, pdf or png)", format)
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion. A scale of 2.0
// produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}
