package sink

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/matzehuels/roomtile/pkg/tiling"
)

// RenderPDF renders the tiling figure as a single-page PDF.
func RenderPDF(r *tiling.Result, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	p, err := newPlot(r, o.palette)
	if err != nil {
		return nil, err
	}

	w, h := FigureSize(r.Width, r.Height)
	c := vgpdf.New(w, h)
	p.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}
