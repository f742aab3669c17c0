// Package pipeline provides the tile → render pipeline shared by the CLI and
// the HTTP server.
//
// By centralizing this logic, both entry points cache, log and report runs
// the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Tile: Run the spiral greedy tiler for the room and palette
//  2. Render: Generate output in the requested formats (SVG, PNG, PDF, JSON, DOT, graph)
//
// Tiling is deterministic, so the result of stage 1 is cached under a key
// derived from height, width and palette alone. Artifacts are cached per
// format under a key derived from the serialized tiling and render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Width:   12,
//	    Height:  8,
//	    Formats: []string{"png", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Run individual stages:
//
//	t, err := runner.Tile(ctx, opts)
//	artifacts, err := runner.Render(ctx, t, opts)
package pipeline

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomtile/pkg/cache"
	errs "github.com/matzehuels/roomtile/pkg/errors"
	"github.com/matzehuels/roomtile/pkg/render"
	"github.com/matzehuels/roomtile/pkg/render/sink"
	"github.com/matzehuels/roomtile/pkg/render/styles"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCellSize is the SVG edge length of one grid cell in pixels.
	DefaultCellSize = sink.DefaultCellSize

	// DefaultDPI is the raster resolution of PNG output.
	DefaultDPI = sink.DefaultDPI

	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = render.FormatPNG
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Tiling options
	Width   int   `json:"width"`
	Height  int   `json:"height"`
	Palette []int `json:"palette"` // nil means tiling.DefaultPalette; empty means fallback fill only
	Refresh bool  `json:"refresh,omitempty"`

	// Render options
	Formats  []string       `json:"formats,omitempty"`
	CellSize int            `json:"cell_size,omitempty"`
	DPI      int            `json:"dpi,omitempty"`
	Colors   map[int]string `json:"colors,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tiling is the computed tiling.
	Tiling *tiling.Result

	// TilingHash is the content hash of the serialized tiling.
	TilingHash string

	// Summary counts tiles by size, largest first.
	Summary tiling.Summary

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TileCount  int
	Filled     int
	TileTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TileHit   bool // Whether the tiling came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !render.IsFormat(format) {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot, graph)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields. Palette is copied so later changes by the
// caller do not leak into a run.
func (o *Options) SetDefaults() {
	if o.Palette == nil {
		o.Palette = slices.Clone(tiling.DefaultPalette)
	} else {
		o.Palette = slices.Clone(o.Palette)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.CellSize <= 0 {
		o.CellSize = DefaultCellSize
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.Colors == nil {
		o.Colors = styles.DefaultColors()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForTile checks dimensions and palette.
func (o *Options) ValidateForTile() error {
	return tiling.Validate(o.Height, o.Width, o.Palette)
}

// ValidateForRender checks formats and colors.
func (o *Options) ValidateForRender() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	_, err := styles.NewPalette(o.Colors)
	return err
}

// Validate applies defaults and checks the options for a full run.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := o.ValidateForTile(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case render.FormatSVG:
		k.CellSize = o.CellSize
		k.Colors = maps.Clone(o.Colors)
	case render.FormatPNG:
		k.DPI = o.DPI
		k.Colors = maps.Clone(o.Colors)
	case render.FormatPDF, render.FormatDOT, render.FormatGraph:
		k.Colors = maps.Clone(o.Colors)
	}
	return k
}

// =============================================================================
// Naming and Reporting
// =============================================================================

// OutputName returns the file name for a rendered artifact, e.g.
// "tiling_12x8.png".
func OutputName(width, height int, format string) string {
	return fmt.Sprintf("tiling_%dx%d.%s", width, height, render.Extension(format))
}

// SummaryLine formats the one-line tile count report, e.g.
// "Tiling summary for 5x3: {3: 1, 1: 6}".
func SummaryLine(width, height int, s tiling.Summary) string {
	return fmt.Sprintf("Tiling summary for %dx%d: %s", width, height, s)
}

// ParsePalette parses a comma-separated list of tile sizes such as
// "4,3,2,1". Order is preserved. An empty string yields an empty palette.
func ParsePalette(s string) ([]int, error) {
	palette := []int{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, errs.New(errs.ErrCodeInvalidPalette, "palette entry %q is not an integer", part)
		}
		palette = append(palette, n)
	}
	if err := errs.ValidatePalette(palette); err != nil {
		return nil, err
	}
	return palette, nil
}
