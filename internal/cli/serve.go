package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomtile/pkg/cache"
	"github.com/matzehuels/roomtile/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API until the
// process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, namespace string
	var maxCells, maxPalette int
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tiling HTTP API",
		Example: `  roomtile serve --addr :8080
  curl -X POST localhost:8080/api/v1/tilings -d '{"width":12,"height":10}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			defaults, err := renderDefaults(cfg)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			if namespace != "" {
				runner.Keyer = cache.NewScopedKeyer(runner.Keyer, namespace)
			}

			srv := server.New(runner, logger,
				server.WithRecordTTL(cfg.Server.RecordTTL.Duration),
				server.WithMaxCells(maxCells),
				server.WithMaxPaletteLen(maxPalette),
				server.WithRenderDefaults(defaults),
			)
			printInfo("Listening on %s", StyleValue.Render(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config: :8080)")
	cmd.Flags().IntVar(&maxCells, "max-cells", server.DefaultMaxCells, "largest room area a request may ask for")
	cmd.Flags().IntVar(&maxPalette, "max-palette", server.DefaultMaxPaletteLen, "largest palette a request may ask for")
	cmd.Flags().StringVar(&namespace, "namespace", "", "prefix for cache keys, for servers sharing one cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching (stored tilings are then unavailable)")

	return cmd
}
