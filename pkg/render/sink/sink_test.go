package sink

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/roomtile/pkg/io"
	"github.com/matzehuels/roomtile/pkg/render/styles"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

func mustRun(t *testing.T, h, w int, palette []int) *tiling.Result {
	t.Helper()
	r, err := tiling.Run(h, w, palette)
	if err != nil {
		t.Fatalf("Run(%d, %d, %v): %v", h, w, palette, err)
	}
	return r
}

func TestTitle(t *testing.T) {
	if got, want := Title(5, 3), "Room 5×3 tiled (spiral greedy)"; got != want {
		t.Errorf("Title(5, 3) = %q, want %q", got, want)
	}
}

func TestFigureSize(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH float64
	}{
		{5, 3, 6, 4},
		{12, 8, 6, 4},
		{20, 10, 10, 5},
		{13, 9, 6.5, 4.5},
	}
	for _, tt := range tests {
		w, h := FigureSize(tt.w, tt.h)
		if float64(w/72) != tt.wantW || float64(h/72) != tt.wantH {
			t.Errorf("FigureSize(%d, %d) = %vin x %vin, want %vin x %vin",
				tt.w, tt.h, float64(w/72), float64(h/72), tt.wantW, tt.wantH)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	r := mustRun(t, 3, 5, tiling.DefaultPalette)
	svg := string(RenderSVG(r))

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("not an SVG document:\n%s", svg)
	}
	if got := strings.Count(svg, `class="tile"`); got != len(r.Tiles) {
		t.Errorf("tile rects = %d, want %d", got, len(r.Tiles))
	}
	if !strings.Contains(svg, Title(5, 3)) {
		t.Error("missing title")
	}
	if !strings.Contains(svg, `data-size="3"`) || !strings.Contains(svg, `fill="#ffd54f"`) {
		t.Error("3x3 tile not drawn with its color")
	}
	for _, label := range []string{">1x1<", ">2x2<", ">3x3<", ">4x4<"} {
		if !strings.Contains(svg, label) {
			t.Errorf("legend missing %s", label)
		}
	}
}

func TestRenderSVGCellSize(t *testing.T) {
	r := mustRun(t, 2, 2, []int{2})
	svg := string(RenderSVG(r, WithCellSize(10)))

	// 2 cells of 10px plus padding on both sides.
	if !strings.Contains(svg, `width="44"`) {
		t.Errorf("unexpected document width:\n%s", svg)
	}
	if !strings.Contains(svg, `width="20" height="20" fill="#2f78ff"`) {
		t.Errorf("2x2 tile should span 20px:\n%s", svg)
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(mustRun(t, 9, 11, tiling.DefaultPalette))
	b := RenderSVG(mustRun(t, 9, 11, tiling.DefaultPalette))
	if !bytes.Equal(a, b) {
		t.Error("identical inputs produced different SVG output")
	}
}

func TestRenderSVGCustomPalette(t *testing.T) {
	pal, err := styles.NewPalette(map[int]string{1: "#123456"})
	if err != nil {
		t.Fatal(err)
	}
	r := mustRun(t, 4, 4, []int{2, 1})
	svg := string(RenderSVG(r, WithPalette(pal)))

	if !strings.Contains(svg, `fill="#123456"`) && tiling.Summarize(r.Tiles).Count(1) > 0 {
		t.Error("custom color for size 1 not used")
	}
	if !strings.Contains(svg, `fill="`+styles.FallbackHex+`"`) {
		t.Error("uncolored size 2 should use the fallback color")
	}
}

func TestRenderPNG(t *testing.T) {
	r := mustRun(t, 3, 5, tiling.DefaultPalette)
	data, err := RenderPNG(r, WithDPI(50))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 6in x 4in at 50 dpi.
	b := img.Bounds()
	if abs(b.Dx()-300) > 1 || abs(b.Dy()-200) > 1 {
		t.Errorf("image size = %dx%d, want 300x200", b.Dx(), b.Dy())
	}
}

func TestRenderPDF(t *testing.T) {
	r := mustRun(t, 3, 5, tiling.DefaultPalette)
	data, err := RenderPDF(r)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", data[:min(len(data), 16)])
	}
}

func TestRenderJSON(t *testing.T) {
	r := mustRun(t, 3, 5, tiling.DefaultPalette)
	data, err := RenderJSON(r)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	back, err := io.UnmarshalJSON(data)
	if err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if len(back.Tiles) != len(r.Tiles) {
		t.Errorf("tiles = %d, want %d", len(back.Tiles), len(r.Tiles))
	}
}

func TestRowTicksRunTopDown(t *testing.T) {
	ticks := rowTicks(3)
	if len(ticks) != 4 {
		t.Fatalf("len = %d, want 4", len(ticks))
	}
	if ticks[0].Label != "0" || ticks[0].Value != 3 {
		t.Errorf("first tick = %+v, want row 0 at y=3", ticks[0])
	}
	if ticks[3].Label != "3" || ticks[3].Value != 0 {
		t.Errorf("last tick = %+v, want row 3 at y=0", ticks[3])
	}
}

func TestTileCornersFlipRows(t *testing.T) {
	xys := tileCorners(tiling.Tile{Size: 2, Row: 0, Col: 1}, 5)
	if xys[0].X != 1 || xys[0].Y != 3 || xys[2].X != 3 || xys[2].Y != 5 {
		t.Errorf("corners = %v", xys)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
