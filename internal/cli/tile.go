package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/roomtile/pkg/errors"
	"github.com/matzehuels/roomtile/pkg/pipeline"
	"github.com/matzehuels/roomtile/pkg/render"
	"github.com/matzehuels/roomtile/pkg/render/styles"
)

// tileOpts holds the command-line flags for the tile command.
type tileOpts struct {
	width   int
	height  int
	palette string
	formats string
	output  string
	noCache bool
	refresh bool
}

// tileCommand creates the tile command.
func (c *CLI) tileCommand() *cobra.Command {
	var opts tileOpts

	cmd := &cobra.Command{
		Use:   "tile",
		Short: "Tile a room and write the rendered outputs",
		Long: `Tile a W×H room with square tiles and write tiling_WxH.<format> files.

Tile sizes are placed in palette order, each in a spiral walk from the room
center. Cells no tile could reach are filled with 1×1 tiles.`,
		Example: `  roomtile tile --width 12 --height 10
  roomtile tile --width 5 --height 3 --palette 3,2 -f svg,json -o out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTile(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 0, "room width in cells")
	cmd.Flags().IntVar(&opts.height, "height", 0, "room height in cells")
	cmd.Flags().StringVar(&opts.palette, "palette", "", "tile sizes in placement order (default from config: 4,3,2,1)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output formats: "+formatList(render.Formats))
	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached tiling exists")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

func (c *CLI) runTile(cmd *cobra.Command, opts tileOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	popts, err := renderDefaults(cfg)
	if err != nil {
		return err
	}
	popts.Width = opts.width
	popts.Height = opts.height
	popts.Refresh = opts.refresh
	popts.Logger = logger
	popts.Palette = cfg.Tiling.Palette
	if cmd.Flags().Changed("palette") {
		if popts.Palette, err = pipeline.ParsePalette(opts.palette); err != nil {
			return err
		}
	}
	if opts.formats != "" {
		if popts.Formats, err = render.ParseFormats(opts.formats); err != nil {
			return err
		}
	}
	if err := popts.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Tiling %d×%d room...", opts.width, opts.height))
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	pal, err := styles.NewPalette(popts.Colors)
	if err != nil {
		return err
	}
	printSummary(result.Tiling, pal)
	printStats(result.Stats, result.CacheInfo.TileHit)

	paths, err := writeArtifacts(opts.output, opts.width, opts.height, popts.Formats, result.Artifacts)
	if err != nil {
		return err
	}
	printSuccess("Wrote %d file(s)", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes each rendered format to dir as tiling_WxH.<ext>, in
// the order formats were requested.
func writeArtifacts(dir string, width, height int, formats []string, artifacts map[string][]byte) ([]string, error) {
	if err := errs.ValidatePath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := filepath.Join(dir, pipeline.OutputName(width, height, f))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
