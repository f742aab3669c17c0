package adjacency

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/roomtile/pkg/render/styles"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

// Options configures adjacency diagram rendering.
type Options struct {
	// Palette colors nodes by tile size. Nil uses the default palette.
	Palette *styles.Palette

	// Detailed adds the tile's anchor cell to node labels.
	Detailed bool
}

// ToDOT converts a tiling to an undirected Graphviz graph. Node IDs are
// "t<index>" in placement order.
func ToDOT(r *tiling.Result, opts Options) string {
	pal := opts.Palette
	if pal == nil {
		pal = styles.Default()
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fontsize=14, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	for i, t := range r.Tiles {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, fontcolor=%q];\n",
			nodeID(i), nodeLabel(t, opts.Detailed), pal.Hex(t.Size), pal.TextHex(t.Size))
	}

	buf.WriteString("\n")
	for _, e := range Edges(r) {
		fmt.Fprintf(&buf, "  %q -- %q;\n", nodeID(e.From), nodeID(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string {
	return "t" + strconv.Itoa(i)
}

func nodeLabel(t tiling.Tile, detailed bool) string {
	if !detailed {
		return styles.Label(t.Size)
	}
	return styles.Label(t.Size) + "\n" + tiling.Cell{Row: t.Row, Col: t.Col}.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// unitless one so the SVG scales like the other figures.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
