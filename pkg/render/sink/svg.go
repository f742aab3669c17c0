package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/roomtile/pkg/render/styles"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

const (
	svgPad     = 12
	svgTitleH  = 28
	svgLegendH = 28
	svgSwatch  = 14
)

// RenderSVG renders the tiling as an SVG document. Tiles are drawn in
// placement order, so identical results give identical bytes.
func RenderSVG(r *tiling.Result, opts ...Option) []byte {
	o := newOptions(opts...)
	cs := o.cellSize

	gridW := r.Width * cs
	gridH := r.Height * cs
	width := gridW + 2*svgPad
	height := svgTitleH + gridH + svgLegendH + 2*svgPad
	originX, originY := svgPad, svgPad+svgTitleH

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill="#ffffff"/>`+"\n", width, height)
	fmt.Fprintf(&buf, `  <text x="%d" y="%d" font-family="sans-serif" font-size="16" text-anchor="middle">%s</text>`+"\n",
		width/2, svgPad+svgTitleH/2+5, Title(r.Width, r.Height))

	renderGrid(&buf, r, cs, originX, originY)

	buf.WriteString(`  <g id="tiles">` + "\n")
	for i, t := range r.Tiles {
		renderTile(&buf, i, t, o.palette, cs, originX, originY)
	}
	buf.WriteString("  </g>\n")

	renderLegend(&buf, o.palette, originX, originY+gridH+svgPad)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderGrid(buf *bytes.Buffer, r *tiling.Result, cs, x0, y0 int) {
	buf.WriteString(`  <g id="grid" stroke="#cccccc" stroke-width="0.5">` + "\n")
	for c := 0; c <= r.Width; c++ {
		x := x0 + c*cs
		fmt.Fprintf(buf, `    <line x1="%d" y1="%d" x2="%d" y2="%d"/>`+"\n", x, y0, x, y0+r.Height*cs)
	}
	for row := 0; row <= r.Height; row++ {
		y := y0 + row*cs
		fmt.Fprintf(buf, `    <line x1="%d" y1="%d" x2="%d" y2="%d"/>`+"\n", x0, y, x0+r.Width*cs, y)
	}
	buf.WriteString("  </g>\n")
}

func renderTile(buf *bytes.Buffer, i int, t tiling.Tile, pal *styles.Palette, cs, x0, y0 int) {
	x := x0 + t.Col*cs
	y := y0 + t.Row*cs
	side := t.Size * cs
	fmt.Fprintf(buf, `    <rect id="tile-%d" class="tile" data-size="%d" x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#000000" stroke-width="0.6"/>`+"\n",
		i, t.Size, x, y, side, side, pal.Hex(t.Size))

	fontSize := min(side/3, 16)
	if fontSize < 6 {
		return
	}
	fmt.Fprintf(buf, `    <text x="%d" y="%d" font-family="sans-serif" font-size="%d" text-anchor="middle" dominant-baseline="central" fill="%s">%s</text>`+"\n",
		x+side/2, y+side/2, fontSize, pal.TextHex(t.Size), styles.Label(t.Size))
}

func renderLegend(buf *bytes.Buffer, pal *styles.Palette, x, y int) {
	buf.WriteString(`  <g id="legend" font-family="sans-serif" font-size="12">` + "\n")
	for _, size := range pal.Sizes() {
		fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#000000" stroke-width="0.6"/>`+"\n",
			x, y, svgSwatch, svgSwatch, pal.Hex(size))
		fmt.Fprintf(buf, `    <text x="%d" y="%d" dominant-baseline="central">%s</text>`+"\n",
			x+svgSwatch+4, y+svgSwatch/2, styles.Label(size))
		x += svgSwatch + 4 + 8*len(styles.Label(size)) + 12
	}
	buf.WriteString("  </g>\n")
}
