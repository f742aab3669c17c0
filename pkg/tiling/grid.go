package tiling

// Grid is the occupancy state of an H×W room. A zero cell is free; any other
// value is the size of the tile covering it.
//
// Only the run that creates a Grid mutates it. Once returned in a [Result]
// the grid is read-only: callers get copies through [Grid.Snapshot].
type Grid struct {
	rows, cols int
	cells      []int
}

func newGrid(rows, cols int) *Grid {
	return &Grid{rows: rows, cols: cols, cells: make([]int, rows*cols)}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// At returns the occupancy value of a cell, or -1 when out of bounds.
func (g *Grid) At(row, col int) int {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return -1
	}
	return g.cells[row*g.cols+col]
}

// IsFree reports whether the size×size block with top-left (row, col) lies
// inside the grid and every cell in it is free.
func (g *Grid) IsFree(row, col, size int) bool {
	if size <= 0 || row < 0 || col < 0 || row+size > g.rows || col+size > g.cols {
		return false
	}
	for r := row; r < row+size; r++ {
		base := r * g.cols
		for c := col; c < col+size; c++ {
			if g.cells[base+c] != 0 {
				return false
			}
		}
	}
	return true
}

// occupy marks the block as covered by a tile of the given size.
// The caller must have checked IsFree for the same block.
func (g *Grid) occupy(row, col, size int) {
	for r := row; r < row+size; r++ {
		base := r * g.cols
		for c := col; c < col+size; c++ {
			g.cells[base+c] = size
		}
	}
}

// FreeCells returns the remaining free cells in row-major order.
func (g *Grid) FreeCells() []Cell {
	var free []Cell
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r*g.cols+c] == 0 {
				free = append(free, Cell{Row: r, Col: c})
			}
		}
	}
	return free
}

// Snapshot returns a copy of the grid as a row-major matrix.
func (g *Grid) Snapshot() [][]int {
	out := make([][]int, g.rows)
	for r := range out {
		out[r] = make([]int, g.cols)
		copy(out[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return out
}
