package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/roomtile/pkg/render"
	"github.com/matzehuels/roomtile/pkg/render/adjacency"
	"github.com/matzehuels/roomtile/pkg/render/sink"
	"github.com/matzehuels/roomtile/pkg/render/styles"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

// Render generates output artifacts in the requested formats.
// Options must already carry defaults (see [Options.SetDefaults]).
func Render(ctx context.Context, r *tiling.Result, opts Options) (map[string][]byte, error) {
	pal, err := styles.NewPalette(opts.Colors)
	if err != nil {
		return nil, err
	}
	sinkOpts := []sink.Option{
		sink.WithPalette(pal),
		sink.WithCellSize(opts.CellSize),
		sink.WithDPI(opts.DPI),
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(ctx, r, format, pal, sinkOpts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, r *tiling.Result, format string, pal *styles.Palette, opts []sink.Option) ([]byte, error) {
	switch format {
	case render.FormatSVG:
		return sink.RenderSVG(r, opts...), nil
	case render.FormatPNG:
		return sink.RenderPNG(r, opts...)
	case render.FormatPDF:
		return sink.RenderPDF(r, opts...)
	case render.FormatJSON:
		return sink.RenderJSON(r)
	case render.FormatDOT:
		return []byte(adjacency.ToDOT(r, adjacency.Options{Palette: pal})), nil
	case render.FormatGraph:
		return adjacency.RenderSVG(ctx, adjacency.ToDOT(r, adjacency.Options{Palette: pal}))
	default:
		return nil, ValidateFormat(format)
	}
}
