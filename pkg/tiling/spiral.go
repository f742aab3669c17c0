package tiling

// Spiral enumerates the cells of an H×W grid in center-outward spiral order.
// A Spiral is single-use; call NewSpiral again to restart.
type Spiral struct {
	h, w    int
	cur     Cell
	step    int
	arm     int // 0 right, 1 down, 2 left, 3 up
	moved   int // moves taken on the current arm
	emitted int
	started bool
}

// NewSpiral returns a spiral over h rows and w columns.
// Non-positive dimensions produce an empty enumeration.
func NewSpiral(h, w int) *Spiral {
	return &Spiral{
		h:    h,
		w:    w,
		cur:  Cell{Row: (h - 1) / 2, Col: (w - 1) / 2},
		step: 1,
	}
}

// Len returns the total number of cells the spiral emits.
func (s *Spiral) Len() int {
	if s.h <= 0 || s.w <= 0 {
		return 0
	}
	return s.h * s.w
}

// HasNext reports whether Next will return another cell.
func (s *Spiral) HasNext() bool {
	return s.emitted < s.Len()
}

// Next returns the next in-bounds cell. The second result is false once
// every cell has been emitted.
func (s *Spiral) Next() (Cell, bool) {
	if !s.HasNext() {
		return Cell{}, false
	}
	if !s.started {
		s.started = true
		s.emitted++
		return s.cur, true
	}
	for {
		s.advance()
		if s.inBounds(s.cur) {
			s.emitted++
			return s.cur, true
		}
	}
}

// advance moves the cursor one step along the current arm. Arm lengths grow
// after the down arm and after the up arm, so right/down share length n and
// left/up share length n+1.
func (s *Spiral) advance() {
	switch s.arm {
	case 0:
		s.cur.Col++
	case 1:
		s.cur.Row++
	case 2:
		s.cur.Col--
	case 3:
		s.cur.Row--
	}
	s.moved++
	if s.moved < s.step {
		return
	}
	s.moved = 0
	if s.arm == 1 || s.arm == 3 {
		s.step++
	}
	s.arm = (s.arm + 1) % 4
}

func (s *Spiral) inBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < s.h && c.Col >= 0 && c.Col < s.w
}

// SpiralOrder materializes the full spiral for an h×w grid.
func SpiralOrder(h, w int) []Cell {
	s := NewSpiral(h, w)
	cells := make([]Cell, 0, s.Len())
	for c, ok := s.Next(); ok; c, ok = s.Next() {
		cells = append(cells, c)
	}
	return cells
}
