// Package adjacency describes a tiling as a graph of touching tiles.
//
// Two tiles are adjacent when they share a boundary segment of positive
// length; corner contact does not count. [Edges] computes the adjacency
// list, [ToDOT] emits it as an undirected Graphviz graph with nodes filled in
// their size color, and [RenderSVG] lays the graph out with Graphviz.
//
//	dot := adjacency.ToDOT(result, adjacency.Options{Palette: p})
//	svg, err := adjacency.RenderSVG(ctx, dot)
package adjacency
