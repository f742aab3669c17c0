package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ArtifactKeyOpts holds the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format   string         `json:"format"`
	CellSize int            `json:"cell_size,omitempty"`
	DPI      int            `json:"dpi,omitempty"`
	Colors   map[int]string `json:"colors,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// TilingKey identifies a run by its inputs. The palette order matters.
	TilingKey(height, width int, palette []int) string
	// ArtifactKey identifies a rendered artifact of a tiling.
	ArtifactKey(tilingHash string, opts ArtifactKeyOpts) string
	// RecordKey identifies a stored tiling record by ID.
	RecordKey(id string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer without prefixes.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TilingKey hashes dimensions and palette.
func (DefaultKeyer) TilingKey(height, width int, palette []int) string {
	if palette == nil {
		palette = []int{}
	}
	return hashKey("tiling", height, width, palette)
}

// ArtifactKey hashes the tiling hash with render options.
func (DefaultKeyer) ArtifactKey(tilingHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", tilingHash, opts)
}

// RecordKey returns record:<id>.
func (DefaultKeyer) RecordKey(id string) string {
	return "record:" + id
}
