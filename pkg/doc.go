// Package pkg provides the libraries behind roomtile, a deterministic square
// tiling engine for rectangular rooms.
//
// # Overview
//
// A run covers an H×W room with square tiles. Tile sizes are taken from a
// palette in the given order; for each size the room is walked in a spiral
// from its center and a tile is placed wherever one fits around the current
// cell. Cells that no palette tile could cover are filled with 1×1 tiles in
// row-major order, so every valid run covers the room exactly.
//
// The pkg directory is organized as follows:
//
//  1. [tiling] - The engine: spiral enumeration, placement and verification
//  2. [io] - JSON import and export of tilings
//  3. [render] - Output formats (SVG, PNG, PDF, JSON, DOT, adjacency graph)
//  4. [pipeline] - Orchestration (tile → render) with caching
//  5. [cache], [config], [errors], [observability] - Infrastructure
//  6. [server] - HTTP API over the pipeline
//
// # Architecture
//
//	height, width, palette
//	         ↓
//	    [tiling] package (spiral greedy placement + fallback fill)
//	         ↓
//	    [render] packages (sink, adjacency)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/roomtile/pkg/render/sink"
//	    "github.com/matzehuels/roomtile/pkg/tiling"
//	)
//
//	r, err := tiling.Run(3, 5, tiling.DefaultPalette)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(tiling.Summarize(r.Tiles)) // {3: 1, 1: 6}
//	svg := sink.RenderSVG(r)
//
// For cached, multi-format runs use [pipeline.Runner].
package pkg
