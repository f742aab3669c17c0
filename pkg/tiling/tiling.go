package tiling

import (
	"slices"

	errs "github.com/matzehuels/roomtile/pkg/errors"
)

// DefaultPalette is the canonical palette: largest tiles first.
var DefaultPalette = []int{4, 3, 2, 1}

// Result is the outcome of a run.
type Result struct {
	Height  int
	Width   int
	Palette []int

	// Tiles lists placements in creation order: spiral pass by palette
	// size, then the row-major fallback fill.
	Tiles []Tile

	// Filled is the number of unit tiles added by the fallback fill. Those
	// tiles are the last Filled entries of Tiles.
	Filled int

	// Grid is the fully covered occupancy grid.
	Grid *Grid
}

// Validate checks run inputs without allocating a grid.
func Validate(height, width int, palette []int) error {
	if err := errs.ValidateDimensions(height, width); err != nil {
		return err
	}
	return errs.ValidatePalette(palette)
}

// Run tiles a height×width room with the palette, processed in the given
// order. The palette is not sorted. Run returns an error only for invalid
// inputs; for valid inputs the room is always fully covered.
func Run(height, width int, palette []int) (*Result, error) {
	if err := Validate(height, width, palette); err != nil {
		return nil, err
	}

	p := &placer{grid: newGrid(height, width)}
	for _, size := range palette {
		p.place(size)
	}
	filled := p.fillRemaining()

	return &Result{
		Height:  height,
		Width:   width,
		Palette: slices.Clone(palette),
		Tiles:   p.tiles,
		Filled:  filled,
		Grid:    p.grid,
	}, nil
}

// FromTiles rebuilds a Result from a tile list, for example one decoded from
// JSON. The tiles must form a partition of the room.
func FromTiles(height, width int, palette []int, tiles []Tile) (*Result, error) {
	if err := Validate(height, width, palette); err != nil {
		return nil, err
	}

	g := newGrid(height, width)
	for i, t := range tiles {
		if !g.IsFree(t.Row, t.Col, t.Size) {
			return nil, errs.New(errs.ErrCodeInvalidTiling, "tile %d (%s) is out of bounds or overlaps another tile", i, t)
		}
		g.occupy(t.Row, t.Col, t.Size)
	}
	if free := g.FreeCells(); len(free) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidTiling, "%d cells left uncovered, first at %s", len(free), free[0])
	}

	return &Result{
		Height:  height,
		Width:   width,
		Palette: slices.Clone(palette),
		Tiles:   slices.Clone(tiles),
		Filled:  trailingFill(tiles, palette),
		Grid:    g,
	}, nil
}

// trailingFill counts the unit tiles at the end of tiles that the fallback
// fill must have produced. When 1 is in the palette the spiral pass covers
// every cell and the fill never runs.
func trailingFill(tiles []Tile, palette []int) int {
	if slices.Contains(palette, 1) {
		return 0
	}
	n := 0
	for i := len(tiles) - 1; i >= 0 && tiles[i].Size == 1; i-- {
		n++
	}
	return n
}

// Verify independently checks that the result's tiles partition the room and
// agree with its grid.
func Verify(r *Result) error {
	if r == nil || r.Grid == nil {
		return errs.New(errs.ErrCodeInvalidTiling, "result has no grid")
	}
	if r.Grid.Rows() != r.Height || r.Grid.Cols() != r.Width {
		return errs.New(errs.ErrCodeInvalidTiling, "grid is %dx%d, want %dx%d",
			r.Grid.Rows(), r.Grid.Cols(), r.Height, r.Width)
	}

	area := 0
	owner := make([]int, r.Height*r.Width)
	for i, t := range r.Tiles {
		if t.Size <= 0 || t.Row < 0 || t.Col < 0 || t.Row+t.Size > r.Height || t.Col+t.Size > r.Width {
			return errs.New(errs.ErrCodeInvalidTiling, "tile %d (%s) is out of bounds", i, t)
		}
		for row := t.Row; row < t.Row+t.Size; row++ {
			for col := t.Col; col < t.Col+t.Size; col++ {
				idx := row*r.Width + col
				if owner[idx] != 0 {
					return errs.New(errs.ErrCodeInvalidTiling, "tile %d (%s) overlaps tile %d at (%d,%d)", i, t, owner[idx]-1, row, col)
				}
				owner[idx] = i + 1
				if v := r.Grid.At(row, col); v != t.Size {
					return errs.New(errs.ErrCodeInvalidTiling, "grid holds %d at (%d,%d), tile %d has size %d", v, row, col, i, t.Size)
				}
			}
		}
		area += t.Area()
	}
	if area != r.Height*r.Width {
		return errs.New(errs.ErrCodeInvalidTiling, "tiles cover %d cells, room has %d", area, r.Height*r.Width)
	}
	return nil
}
