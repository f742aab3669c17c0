package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/roomtile/pkg/tiling"
)

type document struct {
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Palette []int         `json:"palette"`
	Tiles   []tiling.Tile `json:"tiles"`
}

// WriteJSON encodes a result as indented JSON and writes it to w.
// This format can be re-imported with [ReadJSON].
func WriteJSON(r *tiling.Result, w io.Writer) error {
	palette := r.Palette
	if palette == nil {
		palette = []int{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{
		Width:   r.Width,
		Height:  r.Height,
		Palette: palette,
		Tiles:   r.Tiles,
	}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the JSON encoding of a result.
func MarshalJSON(r *tiling.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(r, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes a result to a JSON file at path.
func ExportJSON(r *tiling.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(r, f)
}
