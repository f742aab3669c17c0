package tiling

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummarize(t *testing.T) {
	tiles := []Tile{{3, 1, 0}, {1, 4, 2}, {1, 4, 1}, {2, 0, 0}, {1, 0, 0}}
	got := Summarize(tiles)

	want := Summary{{Size: 3, Count: 1}, {Size: 2, Count: 1}, {Size: 1, Count: 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
	if got.Total() != 5 {
		t.Errorf("Total() = %d, want 5", got.Total())
	}
	if got.Count(1) != 3 || got.Count(4) != 0 {
		t.Errorf("Count() returned unexpected values: %v", got)
	}
}

func TestSummaryString(t *testing.T) {
	tests := []struct {
		summary Summary
		want    string
	}{
		{nil, "{}"},
		{Summary{{Size: 4, Count: 1}}, "{4: 1}"},
		{Summary{{Size: 3, Count: 1}, {Size: 1, Count: 6}}, "{3: 1, 1: 6}"},
	}
	for _, tt := range tests {
		if got := tt.summary.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
