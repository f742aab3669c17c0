package tiling

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCandidates(t *testing.T) {
	tests := []struct {
		name   string
		anchor Cell
		size   int
		want   []Cell
	}{
		{"unit", Cell{3, 4}, 1, []Cell{{3, 4}}},
		{"odd collapses", Cell{2, 1}, 3, []Cell{{1, 0}}},
		{"odd five", Cell{5, 5}, 5, []Cell{{3, 3}}},
		{"even two", Cell{1, 1}, 2, []Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
		{"even four", Cell{1, 1}, 4, []Cell{{-1, -1}, {-1, 0}, {0, -1}, {0, 0}}},
		{"even at origin", Cell{0, 0}, 2, []Cell{{-1, -1}, {-1, 0}, {0, -1}, {0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Candidates(tt.anchor, tt.size)); diff != "" {
				t.Errorf("Candidates(%v, %d) mismatch (-want +got):\n%s", tt.anchor, tt.size, diff)
			}
		})
	}
}

func TestPlaceAtFirstFreeCandidateWins(t *testing.T) {
	p := &placer{grid: newGrid(3, 3)}
	p.grid.occupy(0, 0, 1)

	// (0,0) is taken, so the next sorted candidate (0,1) wins.
	if !p.placeAt(Cell{1, 1}, 2) {
		t.Fatal("placeAt() = false, want true")
	}
	want := []Tile{{Size: 2, Row: 0, Col: 1}}
	if diff := cmp.Diff(want, p.tiles); diff != "" {
		t.Errorf("tiles mismatch (-want +got):\n%s", diff)
	}

	// Nothing of size 2 fits around (1,1) anymore.
	if p.placeAt(Cell{1, 1}, 2) {
		t.Error("second placeAt() = true, want false")
	}
	if len(p.tiles) != 1 {
		t.Errorf("tiles = %v, want one tile", p.tiles)
	}
}

func TestFillRemainingRowMajor(t *testing.T) {
	p := &placer{grid: newGrid(2, 3)}
	p.commit(Tile{Size: 2, Row: 0, Col: 1})

	if n := p.fillRemaining(); n != 2 {
		t.Fatalf("fillRemaining() = %d, want 2", n)
	}
	want := []Tile{{2, 0, 1}, {1, 0, 0}, {1, 1, 0}}
	if diff := cmp.Diff(want, p.tiles); diff != "" {
		t.Errorf("tiles mismatch (-want +got):\n%s", diff)
	}
	if free := p.grid.FreeCells(); len(free) != 0 {
		t.Errorf("free cells remain: %v", free)
	}
}

func TestPlaceSkipsSizesThatCannotFit(t *testing.T) {
	p := &placer{grid: newGrid(3, 5)}
	p.place(4)
	if len(p.tiles) != 0 {
		t.Fatalf("place(4) on 3x5 placed %v, want nothing", p.tiles)
	}

	// Oversized sizes anywhere in the palette leave the tiling unchanged.
	want, err := Run(3, 5, []int{3, 2, 1})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Run(3, 5, []int{9, 3, 6, 2, 40, 1})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want.Tiles, got.Tiles); diff != "" {
		t.Errorf("tiles mismatch (-want +got):\n%s", diff)
	}
}
