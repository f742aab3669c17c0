package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/roomtile/pkg/cache"
	"github.com/matzehuels/roomtile/pkg/io"
	"github.com/matzehuels/roomtile/pkg/observability"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

// Cache key types reported to observability hooks.
const (
	keyTypeTiling   = "tiling"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options; concurrent runs for the same room and
// palette share one computation.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TilingTTL and ArtifactTTL override the cache package defaults when set.
	TilingTTL   time.Duration
	ArtifactTTL time.Duration

	flight singleflight.Group
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		TilingTTL:   cache.TTLTiling,
		ArtifactTTL: cache.TTLArtifact,
	}
}

// Execute runs the complete tile → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Tile
	tileStart := time.Now()
	t, tileHit, err := r.TileWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("tile: %w", err)
	}
	result.Tiling = t
	result.Summary = tiling.Summarize(t.Tiles)
	result.Stats.TileTime = time.Since(tileStart)
	result.Stats.TileCount = len(t.Tiles)
	result.Stats.Filled = t.Filled
	result.CacheInfo.TileHit = tileHit

	if data, err := io.MarshalJSON(t); err == nil {
		result.TilingHash = cache.Hash(data)
	}

	r.Logger.Info("tiled room",
		"width", opts.Width,
		"height", opts.Height,
		"tiles", len(t.Tiles),
		"filled", t.Filled,
		"cached", tileHit,
		"duration", result.Stats.TileTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, t, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// TileWithCacheInfo runs the tiler with caching and returns cache hit info.
// A run is a pure function of height, width and palette, so the cached
// result is reused until it expires unless opts.Refresh is set.
func (r *Runner) TileWithCacheInfo(ctx context.Context, opts Options) (*tiling.Result, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.ValidateForTile(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.TilingKey(opts.Height, opts.Width, opts.Palette)

	if !opts.Refresh {
		if t, ok := r.cachedTiling(ctx, cacheKey); ok {
			return t, true, nil
		}
	}

	v, err, _ := r.flight.Do(flightKey(opts), func() (any, error) {
		return r.runTiling(ctx, cacheKey, opts)
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*tiling.Result), false, nil
}

// Tile is a convenience wrapper that calls TileWithCacheInfo and discards the cache hit info.
func (r *Runner) Tile(ctx context.Context, opts Options) (*tiling.Result, error) {
	t, _, err := r.TileWithCacheInfo(ctx, opts)
	return t, err
}

func (r *Runner) cachedTiling(ctx context.Context, key string) (*tiling.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeTiling)
		return nil, false
	}
	t, err := io.UnmarshalJSON(data)
	if err != nil {
		// A corrupt entry is recomputed and overwritten.
		r.Logger.Debug("discarding cached tiling", "key", key, "error", err)
		observability.Cache().OnCacheMiss(ctx, keyTypeTiling)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeTiling)
	return t, true
}

func (r *Runner) runTiling(ctx context.Context, key string, opts Options) (*tiling.Result, error) {
	start := time.Now()
	observability.Pipeline().OnTileStart(ctx, opts.Height, opts.Width, opts.Palette)

	t, err := tiling.Run(opts.Height, opts.Width, opts.Palette)

	count := 0
	if t != nil {
		count = len(t.Tiles)
	}
	observability.Pipeline().OnTileComplete(ctx, opts.Height, opts.Width, count, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("computed tiling", "height", opts.Height, "width", opts.Width,
		"palette", opts.Palette, "tiles", count, "duration", time.Since(start))

	if data, err := io.MarshalJSON(t); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TilingTTL); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeTiling, len(data))
		}
	}
	return t, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, t *tiling.Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	tilingData, err := io.MarshalJSON(t)
	if err != nil {
		return nil, false, fmt.Errorf("serialize tiling for cache key: %w", err)
	}
	tilingHash := cache.Hash(tilingData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(tilingHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil // All artifacts from cache
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, missing)
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, t, renderOpts)
	observability.Pipeline().OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		artifacts[format] = data
		cacheKey := r.Keyer.ArtifactKey(tilingHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, t *tiling.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, t, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func flightKey(opts Options) string {
	parts := make([]string, len(opts.Palette))
	for i, p := range opts.Palette {
		parts[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("%dx%d:%s", opts.Height, opts.Width, strings.Join(parts, ","))
}
