// Package styles maps tile sizes to colors.
//
// A [Palette] is built from hex strings keyed by tile size. Sizes without an
// entry are drawn in [FallbackHex]. The same palette feeds the SVG writer, the
// plotted PNG/PDF figures, the adjacency diagram and the terminal preview, so
// a size has one color everywhere.
package styles
