// Package io provides JSON import and export for tiling results.
//
// # Overview
//
// This package serializes a [tiling.Result] to a small JSON document and
// reads it back. The format is designed for:
//
//   - Re-rendering a tiling without recomputing it
//   - Caching results keyed by their inputs
//   - Integration with external tools that draw or analyze tilings
//
// # JSON Format
//
//	{
//	  "width": 3,
//	  "height": 5,
//	  "palette": [4, 3, 2, 1],
//	  "tiles": [
//	    {"size": 3, "row": 1, "col": 0},
//	    {"size": 1, "row": 4, "col": 2}
//	  ]
//	}
//
// Tiles are listed in placement order. Each tile covers
// [row, row+size) × [col, col+size).
//
// # Validation
//
// [ReadJSON] rebuilds the occupancy grid from the tiles and rejects documents
// whose tiles overlap, leave the room or leave cells uncovered. The error
// carries the INVALID_TILING code from the errors package.
//
// [tiling.Result]: github.com/matzehuels/roomtile/pkg/tiling.Result
package io
