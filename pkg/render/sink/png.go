package sink

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/matzehuels/roomtile/pkg/tiling"
)

// RenderPNG renders the tiling figure as PNG at the configured DPI.
func RenderPNG(r *tiling.Result, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	p, err := newPlot(r, o.palette)
	if err != nil {
		return nil, err
	}

	w, h := FigureSize(r.Width, r.Height)
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(o.dpi))
	p.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
