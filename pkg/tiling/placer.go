package tiling

import (
	"cmp"
	"slices"
)

// Candidates returns the top-left positions at which a tile of the given
// size may be centered on anchor, sorted by row then column. Odd sizes yield
// a single candidate; even sizes yield four. Candidates are not bounds
// checked.
func Candidates(anchor Cell, size int) []Cell {
	rows := offsets(anchor.Row, size)
	cols := offsets(anchor.Col, size)

	out := make([]Cell, 0, len(rows)*len(cols))
	for _, r := range rows {
		for _, c := range cols {
			out = append(out, Cell{Row: r, Col: c})
		}
	}
	slices.SortFunc(out, func(a, b Cell) int {
		if n := cmp.Compare(a.Row, b.Row); n != 0 {
			return n
		}
		return cmp.Compare(a.Col, b.Col)
	})
	return out
}

// offsets returns the deduplicated, ascending top-left coordinates along one
// axis for centering a tile of the given size on v.
func offsets(v, size int) []int {
	lo, hi := v-size/2, v-(size-1)/2
	if lo == hi {
		return []int{lo}
	}
	return []int{lo, hi}
}

// placer runs the greedy spiral pass and the fallback fill over one grid.
type placer struct {
	grid  *Grid
	tiles []Tile
}

// place runs one spiral pass for size. A size larger than either room
// dimension can never fit, so its pass is skipped.
func (p *placer) place(size int) {
	if size > p.grid.rows || size > p.grid.cols {
		return
	}
	s := NewSpiral(p.grid.rows, p.grid.cols)
	for anchor, ok := s.Next(); ok; anchor, ok = s.Next() {
		p.placeAt(anchor, size)
	}
}

func (p *placer) placeAt(anchor Cell, size int) bool {
	for _, c := range Candidates(anchor, size) {
		if p.grid.IsFree(c.Row, c.Col, size) {
			p.commit(Tile{Size: size, Row: c.Row, Col: c.Col})
			return true
		}
	}
	return false
}

// fillRemaining covers every free cell with a unit tile in row-major order.
func (p *placer) fillRemaining() int {
	free := p.grid.FreeCells()
	for _, c := range free {
		p.commit(Tile{Size: 1, Row: c.Row, Col: c.Col})
	}
	return len(free)
}

func (p *placer) commit(t Tile) {
	p.grid.occupy(t.Row, t.Col, t.Size)
	p.tiles = append(p.tiles, t)
}
