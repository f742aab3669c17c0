// Package cli implements the roomtile command-line interface.
//
// This package provides commands for tiling rooms with square tiles,
// rendering saved results, previewing them in the terminal, serving the HTTP
// API and managing the local cache and config file. The CLI is built using
// cobra and logs via charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - tile: Tile a room and write the requested formats
//   - render: Re-render a saved tiling_WxH.json result
//   - inspect: Verify a saved result and print its summary
//   - view: Interactive terminal preview of a tiling
//   - serve: Run the HTTP API
//   - cache, config: Manage the local cache and config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomtile/pkg/buildinfo"
	"github.com/matzehuels/roomtile/pkg/cache"
	"github.com/matzehuels/roomtile/pkg/config"
	"github.com/matzehuels/roomtile/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "roomtile"

	// redisPrefix namespaces every key the CLI writes to a shared Redis.
	redisPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Roomtile covers rectangular rooms with square tiles",
		Long: `Roomtile covers an H×W room with square tiles using a deterministic spiral
greedy strategy: for each tile size, largest first, it walks the room in a
spiral from the center and places a tile wherever one fits. Remaining cells
are filled with 1×1 tiles.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/roomtile/config.toml)")

	// Register all subcommands
	root.AddCommand(c.tileCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// resolveConfigPath returns the --config flag or the default location.
func (c *CLI) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}

// loadConfig reads the config file once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	path, err := c.resolveConfigPath()
	if err != nil {
		return nil, fmt.Errorf("locate config: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", path, "backend", cfg.Cache.Backend)
	c.config = cfg
	return cfg, nil
}

// renderDefaults returns pipeline options carrying the configured render
// settings.
func renderDefaults(cfg *config.Config) (pipeline.Options, error) {
	colors, err := cfg.Colors()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Formats:  cfg.Render.Formats,
		CellSize: cfg.Render.CellSize,
		DPI:      cfg.Render.DPI,
		Colors:   colors,
	}, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.TilingTTL = cfg.Cache.TTL.Duration
	runner.ArtifactTTL = cfg.Cache.TTL.Duration
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			Prefix:   redisPrefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case config.BackendMongo:
		mc, err := cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      cfg.Cache.MongoURI,
			Database: cfg.Cache.MongoDatabase,
		})
		if err != nil {
			return nil, err
		}
		return mc, nil
	default:
		dir, err := fileCacheDir(cfg)
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/roomtile/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// fileCacheDir returns the configured cache directory, or the XDG default.
func fileCacheDir(cfg *config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cacheDir()
}
