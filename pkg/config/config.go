// Package config loads roomtile settings from a TOML file.
//
// A missing file is not an error: [Load] returns [Default] in that case.
// Keys present in the file override the defaults; unknown keys are
// rejected so typos surface early.
//
//	[tiling]
//	palette = [4, 3, 2, 1]
//
//	[render]
//	formats = ["png"]
//	cell_size = 40
//	dpi = 200
//
//	[render.colors]
//	1 = "#ff4d4d"
//
//	[cache]
//	backend = "file"
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//	record_ttl = "24h"
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/roomtile/pkg/cache"
	errs "github.com/matzehuels/roomtile/pkg/errors"
	"github.com/matzehuels/roomtile/pkg/render"
	"github.com/matzehuels/roomtile/pkg/render/styles"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

const appName = "roomtile"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

var backends = []string{BackendFile, BackendRedis, BackendMongo, BackendNone}

// Config is the full set of settings.
type Config struct {
	Tiling TilingConfig `toml:"tiling"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// TilingConfig holds tiling defaults.
type TilingConfig struct {
	Palette []int `toml:"palette"`
}

// RenderConfig holds output defaults. Color keys are tile sizes.
type RenderConfig struct {
	Formats  []string          `toml:"formats"`
	CellSize int               `toml:"cell_size"`
	DPI      int               `toml:"dpi"`
	Colors   map[string]string `toml:"colors"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir,omitempty"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password,omitempty"`
	RedisDB       int      `toml:"redis_db"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr      string   `toml:"addr"`
	RecordTTL Duration `toml:"record_ttl"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() *Config {
	colors := make(map[string]string)
	for size, hex := range styles.DefaultColors() {
		colors[strconv.Itoa(size)] = hex
	}
	return &Config{
		Tiling: TilingConfig{Palette: slices.Clone(tiling.DefaultPalette)},
		Render: RenderConfig{
			Formats:  []string{render.FormatPNG},
			CellSize: 40,
			DPI:      200,
			Colors:   colors,
		},
		Cache: CacheConfig{
			Backend:       BackendFile,
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
			TTL:           Duration{cache.TTLTiling},
		},
		Server: ServerConfig{
			Addr:      ":8080",
			RecordTTL: Duration{cache.TTLRecord},
		},
	}
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := errs.ValidatePalette(c.Tiling.Palette); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "tiling.palette")
	}
	for _, f := range c.Render.Formats {
		if !render.IsFormat(f) {
			return errs.New(errs.ErrCodeInvalidConfig, "render.formats: unknown format %q", f)
		}
	}
	if c.Render.CellSize <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "render.cell_size must be positive, got %d", c.Render.CellSize)
	}
	if c.Render.DPI <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "render.dpi must be positive, got %d", c.Render.DPI)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.backend must be one of %s, got %q",
			strings.Join(backends, ", "), c.Cache.Backend)
	}
	if c.Cache.TTL.Duration <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.ttl must be positive")
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "server.addr is required")
	}
	if c.Server.RecordTTL.Duration <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.record_ttl must be positive")
	}
	return nil
}

// Colors returns the render colors keyed by tile size.
func (c *Config) Colors() (map[int]string, error) {
	return styles.ParseColorKeys(c.Render.Colors)
}

// Palette returns the parsed color palette.
func (c *Config) Palette() (*styles.Palette, error) {
	colors, err := c.Colors()
	if err != nil {
		return nil, err
	}
	return styles.NewPalette(colors)
}

// Encode writes the config as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DefaultPath returns $XDG_CONFIG_HOME/roomtile/config.toml, falling back to
// ~/.config/roomtile/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
