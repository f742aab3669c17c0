// Package sink writes tiling results to output formats.
//
// # Formats
//
// [RenderSVG] produces a standalone SVG document with one rectangle and one
// "NxN" label per tile, a title and a size legend. [RenderPNG] and
// [RenderPDF] draw the same figure through gonum/plot: filled squares with
// thin black edges over an integer grid, rows growing downward, a legend of
// every colored size, and a figure of max(6, W/2) by max(4, H/2) inches.
// [RenderJSON] serializes the result with [io.WriteJSON].
//
// # Options
//
// All writers accept the same functional options:
//
//	png, err := sink.RenderPNG(result, sink.WithPalette(p), sink.WithDPI(200))
//	svg := sink.RenderSVG(result, sink.WithCellSize(24))
//
// [io.WriteJSON]: github.com/matzehuels/roomtile/pkg/io.WriteJSON
package sink
