package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/roomtile/pkg/errors"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

// ReadJSON decodes a JSON tiling from r and rebuilds its occupancy grid.
//
// ReadJSON returns an error if the JSON is malformed, if the dimensions or
// palette are invalid, or if the tiles do not partition the room. ReadJSON
// does not close r.
func ReadJSON(r io.Reader) (*tiling.Result, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode tiling")
	}
	return tiling.FromTiles(doc.Height, doc.Width, doc.Palette, doc.Tiles)
}

// UnmarshalJSON decodes a tiling from data.
func UnmarshalJSON(data []byte) (*tiling.Result, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ImportJSON reads a JSON file at path and returns the decoded result.
func ImportJSON(path string) (*tiling.Result, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
