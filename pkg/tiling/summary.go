package tiling

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SizeCount is the number of tiles of one size.
type SizeCount struct {
	Size  int `json:"size"`
	Count int `json:"count"`
}

// Summary lists tile counts per size, largest size first.
type Summary []SizeCount

// Summarize counts tiles per size.
func Summarize(tiles []Tile) Summary {
	counts := make(map[int]int)
	for _, t := range tiles {
		counts[t.Size]++
	}
	out := make(Summary, 0, len(counts))
	for size, n := range counts {
		out = append(out, SizeCount{Size: size, Count: n})
	}
	slices.SortFunc(out, func(a, b SizeCount) int { return cmp.Compare(b.Size, a.Size) })
	return out
}

// Total returns the number of tiles.
func (s Summary) Total() int {
	n := 0
	for _, sc := range s {
		n += sc.Count
	}
	return n
}

// Count returns the number of tiles of the given size.
func (s Summary) Count(size int) int {
	for _, sc := range s {
		if sc.Size == size {
			return sc.Count
		}
	}
	return 0
}

// String formats the summary as {4: 2, 3: 1, 1: 6}.
func (s Summary) String() string {
	parts := make([]string, len(s))
	for i, sc := range s {
		parts[i] = fmt.Sprintf("%d: %d", sc.Size, sc.Count)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
