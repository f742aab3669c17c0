package sink

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/roomtile/pkg/render/styles"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

// FigureSize returns the figure dimensions for a room: max(6, W/2) inches
// wide and max(4, H/2) inches tall.
func FigureSize(width, height int) (vg.Length, vg.Length) {
	w := max(6, float64(width)/2)
	h := max(4, float64(height)/2)
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

// newPlot builds the figure. Plot coordinates have y growing upward, so each
// row r is drawn at y = H - r to keep row 0 at the top.
func newPlot(r *tiling.Result, pal *styles.Palette) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title(r.Width, r.Height)

	p.X.Min, p.X.Max = 0, float64(r.Width)
	p.Y.Min, p.Y.Max = 0, float64(r.Height)
	p.X.Tick.Marker = plot.ConstantTicks(columnTicks(r.Width))
	p.Y.Tick.Marker = plot.ConstantTicks(rowTicks(r.Height))

	for _, t := range r.Tiles {
		poly, err := plotter.NewPolygon(tileCorners(t, r.Height))
		if err != nil {
			return nil, fmt.Errorf("tile %s: %w", t, err)
		}
		poly.Color = pal.Color(t.Size)
		poly.LineStyle.Color = color.Black
		poly.LineStyle.Width = vg.Points(0.6)
		p.Add(poly)
	}

	grid := plotter.NewGrid()
	grid.Vertical.Width = vg.Points(0.5)
	grid.Horizontal.Width = vg.Points(0.5)
	p.Add(grid)

	p.Legend.Top = true
	for _, size := range pal.Sizes() {
		p.Legend.Add(styles.Label(size), swatch{fill: pal.Color(size)})
	}
	return p, nil
}

func tileCorners(t tiling.Tile, height int) plotter.XYs {
	x0, x1 := float64(t.Col), float64(t.Col+t.Size)
	y0, y1 := float64(height-t.Row-t.Size), float64(height-t.Row)
	return plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func columnTicks(width int) []plot.Tick {
	ticks := make([]plot.Tick, 0, width+1)
	for c := 0; c <= width; c++ {
		ticks = append(ticks, plot.Tick{Value: float64(c), Label: strconv.Itoa(c)})
	}
	return ticks
}

func rowTicks(height int) []plot.Tick {
	ticks := make([]plot.Tick, 0, height+1)
	for r := 0; r <= height; r++ {
		ticks = append(ticks, plot.Tick{Value: float64(height - r), Label: strconv.Itoa(r)})
	}
	return ticks
}

// swatch is a legend thumbnail: a filled square with a black edge.
type swatch struct {
	fill color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Min.X, Y: c.Max.Y},
	}
	c.FillPolygon(s.fill, pts)
	c.StrokeLines(draw.LineStyle{Color: color.Black, Width: vg.Points(0.6)}, append(pts, pts[0]))
}
