package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomtile/pkg/io"
	"github.com/matzehuels/roomtile/pkg/render"
)

// renderCommand creates the render command for saved tilings.
func (c *CLI) renderCommand() *cobra.Command {
	var formats, output string
	var noCache bool

	cmd := &cobra.Command{
		Use:     "render [result.json]",
		Short:   "Render a saved tiling to other formats",
		Example: `  roomtile render tiling_12x10.json -f svg,pdf,graph`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if formats != "" {
				if popts.Formats, err = render.ParseFormats(formats); err != nil {
					return err
				}
			}
			popts.Logger = logger

			prog := newProgress(logger)
			t, err := io.ImportJSON(args[0])
			if err != nil {
				return err
			}
			popts.Width, popts.Height, popts.Palette = t.Width, t.Height, t.Palette
			if err := popts.Validate(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			artifacts, cached, err := runner.RenderWithCacheInfo(ctx, t, popts)
			if err != nil {
				return err
			}
			prog.done("Rendered " + formatList(popts.Formats))

			paths, err := writeArtifacts(output, t.Width, t.Height, popts.Formats, artifacts)
			if err != nil {
				return err
			}
			if cached {
				printSuccess("Wrote %d file(s) %s", len(paths), styleCached.Render(iconCached))
			} else {
				printSuccess("Wrote %d file(s)", len(paths))
			}
			for _, p := range paths {
				printFile(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", "", "output formats: "+formatList(render.Formats))
	cmd.Flags().StringVarP(&output, "output", "o", ".", "output directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
