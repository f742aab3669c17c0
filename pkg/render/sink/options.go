package sink

import (
	"fmt"

	"github.com/matzehuels/roomtile/pkg/render/styles"
)

// Defaults applied when an option is not given.
const (
	DefaultCellSize = 40
	DefaultDPI      = 200
)

// Option configures a renderer.
type Option func(*options)

type options struct {
	palette  *styles.Palette
	cellSize int
	dpi      int
}

// WithPalette sets the size colors.
func WithPalette(p *styles.Palette) Option { return func(o *options) { o.palette = p } }

// WithCellSize sets the SVG edge length of one grid cell in pixels.
func WithCellSize(px int) Option { return func(o *options) { o.cellSize = px } }

// WithDPI sets the raster resolution of PNG output.
func WithDPI(dpi int) Option { return func(o *options) { o.dpi = dpi } }

func newOptions(opts ...Option) options {
	o := options{cellSize: DefaultCellSize, dpi: DefaultDPI}
	for _, opt := range opts {
		opt(&o)
	}
	if o.palette == nil {
		o.palette = styles.Default()
	}
	if o.cellSize <= 0 {
		o.cellSize = DefaultCellSize
	}
	if o.dpi <= 0 {
		o.dpi = DefaultDPI
	}
	return o
}

// Title returns the figure title for a room of the given width and height.
func Title(width, height int) string {
	return fmt.Sprintf("Room %d×%d tiled (spiral greedy)", width, height)
}
