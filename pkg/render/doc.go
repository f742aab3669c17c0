// Package render provides visualization rendering for room tilings.
//
// # Overview
//
// This package contains the rendering layer that turns a tiling result into
// visual outputs. It provides:
//
//   - The catalogue of supported output formats ([Formats])
//   - Size-keyed color palettes (in [styles] subpackage)
//   - Figure and document writers (in [sink] subpackage)
//   - Tile adjacency diagrams (in [adjacency] subpackage)
//
// # Figures
//
// The [sink] subpackage draws one filled square per tile, colored by tile
// size, over an integer grid with the origin at the top left:
//
//	svg := sink.RenderSVG(result, sink.WithPalette(p))
//	png, err := sink.RenderPNG(result, sink.WithPalette(p), sink.WithDPI(200))
//
// # Adjacency Diagrams
//
// The [adjacency] subpackage describes which tiles share an edge as a
// Graphviz graph:
//
//	dot := adjacency.ToDOT(result, adjacency.Options{})
//	svg, err := adjacency.RenderSVG(ctx, dot)
//
// [styles]: github.com/matzehuels/roomtile/pkg/render/styles
// [sink]: github.com/matzehuels/roomtile/pkg/render/sink
// [adjacency]: github.com/matzehuels/roomtile/pkg/render/adjacency
package render
