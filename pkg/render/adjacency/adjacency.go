package adjacency

import (
	"cmp"
	"slices"

	"github.com/matzehuels/roomtile/pkg/tiling"
)

// Edge joins two tiles by their index in the result, with From < To.
type Edge struct {
	From, To int
}

// Edges returns every pair of tiles sharing a boundary, sorted by From
// then To.
func Edges(r *tiling.Result) []Edge {
	owner := owners(r)
	seen := make(map[Edge]struct{})
	add := func(a, b int) {
		if a == b || a < 0 || b < 0 {
			return
		}
		if a > b {
			a, b = b, a
		}
		seen[Edge{From: a, To: b}] = struct{}{}
	}

	for row := 0; row < r.Height; row++ {
		for col := 0; col < r.Width; col++ {
			here := owner[row*r.Width+col]
			if col+1 < r.Width {
				add(here, owner[row*r.Width+col+1])
			}
			if row+1 < r.Height {
				add(here, owner[(row+1)*r.Width+col])
			}
		}
	}

	edges := make([]Edge, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
	return edges
}

// Degrees returns the number of neighbors of each tile.
func Degrees(r *tiling.Result) []int {
	deg := make([]int, len(r.Tiles))
	for _, e := range Edges(r) {
		deg[e.From]++
		deg[e.To]++
	}
	return deg
}

// owners maps each cell to the index of the tile covering it, or -1.
func owners(r *tiling.Result) []int {
	owner := make([]int, r.Height*r.Width)
	for i := range owner {
		owner[i] = -1
	}
	for i, t := range r.Tiles {
		for row := t.Row; row < t.Row+t.Size && row < r.Height; row++ {
			for col := t.Col; col < t.Col+t.Size && col < r.Width; col++ {
				owner[row*r.Width+col] = i
			}
		}
	}
	return owner
}
