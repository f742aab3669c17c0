package sink

import (
	"github.com/matzehuels/roomtile/pkg/io"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

// RenderJSON serializes the tiling result. Options are accepted for symmetry
// with the other writers and have no effect.
func RenderJSON(r *tiling.Result, _ ...Option) ([]byte, error) {
	return io.MarshalJSON(r)
}
