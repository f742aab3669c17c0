// Package tiling covers a rectangular room with square tiles.
//
// # Overview
//
// A run takes a grid of H rows and W columns and a palette of square tile
// sizes. For every size, in the order given, it walks the grid in a
// center-outward spiral and tries to center a tile of that size on each
// visited cell. Cells the greedy pass leaves uncovered are filled with 1×1
// tiles in row-major order, so every run ends with the grid fully and
// non-overlappingly covered:
//
//	res, err := tiling.Run(5, 3, tiling.DefaultPalette)
//	if err != nil {
//	    return err
//	}
//	for _, t := range res.Tiles {
//	    fmt.Println(t.Size, t.Row, t.Col)
//	}
//
// # Spiral Order
//
// [Spiral] enumerates every cell exactly once starting at
// ((H-1)/2, (W-1)/2). The cursor moves right and down by n steps, the arm
// length grows to n+1, the cursor moves left and up, and the arm grows again.
// Steps that leave the grid still advance the cursor but emit nothing. The
// enumeration is finite and restartable: two spirals over the same
// dimensions yield identical sequences.
//
// # Anchors and Tie-Breaks
//
// An anchor is a spiral-visited cell used as the centering reference for a
// tile. For size s the candidate top-left rows are r-s/2 and r-(s-1)/2 (the
// same for columns). Odd sizes have one candidate per axis; even sizes have
// two. [Candidates] returns the cross product sorted by row then column and
// the first free candidate wins. An anchor yields at most one tile per size.
//
// # Palette
//
// The palette is processed exactly as supplied. [DefaultPalette] is the
// canonical descending palette; an ascending palette is legal and simply
// fills the room with the smallest size first.
//
// # Determinism
//
// A run is a pure function of (H, W, palette). No randomness, I/O or shared
// state is involved, which makes results safe to cache by their inputs.
//
// # Complexity
//
// Each palette size visits all H·W anchors with up to four O(s²) block
// checks, so a run costs O(|palette|·H·W·max(s)²) plus O(H·W) for the fill.
package tiling
