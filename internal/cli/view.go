package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomtile/pkg/io"
	"github.com/matzehuels/roomtile/pkg/pipeline"
	"github.com/matzehuels/roomtile/pkg/render/styles"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

// cellWidth is the number of terminal columns used per grid cell.
const cellWidth = 2

var viewHelpStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// TilingModel - Interactive tiling preview
// =============================================================================

// TilingModel is the bubbletea model for the tiling preview. Rooms larger
// than the terminal scroll.
type TilingModel struct {
	Result  *tiling.Result
	Palette *styles.Palette

	Row, Col    int // top-left visible cell
	Rows, Cols  int // visible cells
	ShowSummary bool
}

// NewTilingModel creates a preview model for r.
func NewTilingModel(r *tiling.Result, pal *styles.Palette) TilingModel {
	return TilingModel{
		Result:      r,
		Palette:     pal,
		Rows:        20,
		Cols:        30,
		ShowSummary: true,
	}
}

func (m TilingModel) Init() tea.Cmd {
	return nil
}

func (m TilingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Row--
		case "down", "j":
			m.Row++
		case "left", "h":
			m.Col--
		case "right", "l":
			m.Col++
		case "pgup":
			m.Row -= m.Rows
		case "pgdown":
			m.Row += m.Rows
		case "g", "home":
			m.Row, m.Col = 0, 0
		case "s":
			m.ShowSummary = !m.ShowSummary
		}
	case tea.WindowSizeMsg:
		m.Rows = max(msg.Height-6, 1)
		m.Cols = max(msg.Width/cellWidth, 1)
	}
	m.clamp()
	return m, nil
}

// clamp keeps the viewport inside the room.
func (m *TilingModel) clamp() {
	m.Row = min(max(m.Row, 0), max(m.Result.Height-m.Rows, 0))
	m.Col = min(max(m.Col, 0), max(m.Result.Width-m.Cols, 0))
}

func (m TilingModel) View() string {
	r := m.Result
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Room %d×%d", r.Width, r.Height)))
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("←↑↓→ scroll  s summary  g top  q quit"))
	b.WriteString("\n\n")

	anchors := tileAnchors(r)
	endRow := min(m.Row+m.Rows, r.Height)
	endCol := min(m.Col+m.Cols, r.Width)
	for row := m.Row; row < endRow; row++ {
		for col := m.Col; col < endCol; col++ {
			size := r.Grid.At(row, col)
			text := strings.Repeat(" ", cellWidth)
			if anchors[row*r.Width+col] {
				text = fmt.Sprintf("%-*d", cellWidth, size)
			}
			b.WriteString(lipgloss.NewStyle().
				Background(lipgloss.Color(m.Palette.Hex(size))).
				Foreground(lipgloss.Color(m.Palette.TextHex(size))).
				Render(text))
		}
		b.WriteString("\n")
	}

	b.WriteString(viewHelpStyle.Render(fmt.Sprintf("rows %d-%d of %d  cols %d-%d of %d",
		m.Row+1, endRow, r.Height, m.Col+1, endCol, r.Width)))
	if m.ShowSummary {
		b.WriteString("\n")
		b.WriteString(summaryTable(tiling.Summarize(r.Tiles), r.Width*r.Height, m.Palette))
	}
	return b.String()
}

// tileAnchors marks the top-left cell of every tile.
func tileAnchors(r *tiling.Result) []bool {
	anchors := make([]bool, r.Width*r.Height)
	for _, t := range r.Tiles {
		anchors[t.Row*r.Width+t.Col] = true
	}
	return anchors
}

// =============================================================================
// view command
// =============================================================================

// viewCommand creates the interactive preview command.
func (c *CLI) viewCommand() *cobra.Command {
	var width, height int
	var palette, input string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Preview a tiling in the terminal",
		Example: `  roomtile view --width 40 --height 25
  roomtile view --input tiling_12x10.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			pal, err := cfg.Palette()
			if err != nil {
				return err
			}

			var t *tiling.Result
			if input != "" {
				if t, err = io.ImportJSON(input); err != nil {
					return err
				}
			} else {
				opts := pipeline.Options{
					Width:   width,
					Height:  height,
					Palette: cfg.Tiling.Palette,
					Logger:  loggerFromContext(ctx),
				}
				if cmd.Flags().Changed("palette") {
					if opts.Palette, err = pipeline.ParsePalette(palette); err != nil {
						return err
					}
				}
				runner, err := c.newRunner(ctx, false)
				if err != nil {
					return err
				}
				defer runner.Close()
				if t, err = runner.Tile(ctx, opts); err != nil {
					return err
				}
			}

			p := tea.NewProgram(NewTilingModel(t, pal), tea.WithContext(ctx), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "room width in cells")
	cmd.Flags().IntVar(&height, "height", 0, "room height in cells")
	cmd.Flags().StringVar(&palette, "palette", "", "tile sizes in placement order")
	cmd.Flags().StringVarP(&input, "input", "i", "", "preview a saved tiling JSON instead")
	cmd.MarkFlagsMutuallyExclusive("input", "width")
	cmd.MarkFlagsMutuallyExclusive("input", "height")

	return cmd
}
