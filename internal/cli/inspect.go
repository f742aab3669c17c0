package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomtile/pkg/io"
	"github.com/matzehuels/roomtile/pkg/render/adjacency"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

// inspectCommand creates the inspect command, which verifies a saved tiling
// and prints its summary.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [result.json]",
		Short: "Verify a saved tiling and print its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			pal, err := cfg.Palette()
			if err != nil {
				return err
			}

			t, err := io.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if err := tiling.Verify(t); err != nil {
				printError("Invalid tiling: %v", err)
				return err
			}

			printSuccess("Valid tiling: %s", StyleValue.Render(args[0]))
			printKeyValue("Room", fmt.Sprintf("%d×%d", t.Width, t.Height))
			printKeyValue("Palette", paletteString(t.Palette))
			printKeyValue("Tiles", strconv.Itoa(len(t.Tiles)))
			printKeyValue("Filled", strconv.Itoa(t.Filled))
			printKeyValue("Adjacent", strconv.Itoa(len(adjacency.Edges(t))))
			printSummary(t, pal)
			printNextStep("Render it", "roomtile render "+args[0]+" -f svg")
			return nil
		},
	}
}

// paletteString formats a palette as "4,3,2,1".
func paletteString(p []int) string {
	if len(p) == 0 {
		return "(empty)"
	}
	s := ""
	for i, v := range p {
		if i > 0 {
			s += ","
		}
		s += strconv.Itoa(v)
	}
	return s
}
