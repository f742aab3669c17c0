package tiling

import "fmt"

// Cell is a single unit square addressed by row and column.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Tile is a placed square covering [Row, Row+Size) × [Col, Col+Size).
type Tile struct {
	Size int `json:"size"`
	Row  int `json:"row"`
	Col  int `json:"col"`
}

// Area returns the number of cells the tile covers.
func (t Tile) Area() int { return t.Size * t.Size }

// Contains reports whether the cell lies inside the tile.
func (t Tile) Contains(c Cell) bool {
	return c.Row >= t.Row && c.Row < t.Row+t.Size &&
		c.Col >= t.Col && c.Col < t.Col+t.Size
}

func (t Tile) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", t.Size, t.Size, t.Row, t.Col)
}
