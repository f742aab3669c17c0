package styles

import (
	"fmt"
	"image/color"
	"maps"
	"slices"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	errs "github.com/matzehuels/roomtile/pkg/errors"
)

// FallbackHex is the color of tile sizes missing from a palette.
const FallbackHex = "#808080"

var defaultColors = map[int]string{
	1: "#ff4d4d",
	2: "#2f78ff",
	3: "#ffd54f",
	4: "#9be7a0",
}

// DefaultColors returns a copy of the built-in size colors.
func DefaultColors() map[int]string {
	return maps.Clone(defaultColors)
}

// Palette holds parsed colors keyed by tile size.
type Palette struct {
	hex      map[int]string
	colors   map[int]colorful.Color
	fallback colorful.Color
}

// NewPalette parses hex colors keyed by tile size. A nil or empty map yields
// a palette in which every size uses the fallback color.
func NewPalette(hexes map[int]string) (*Palette, error) {
	fb, _ := colorful.Hex(FallbackHex)
	p := &Palette{
		hex:      make(map[int]string, len(hexes)),
		colors:   make(map[int]colorful.Color, len(hexes)),
		fallback: fb,
	}
	for size, h := range hexes {
		if size <= 0 {
			return nil, errs.New(errs.ErrCodeInvalidConfig, "color key must be a positive tile size, got %d", size)
		}
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "invalid color %q for size %d", h, size)
		}
		p.hex[size] = c.Hex()
		p.colors[size] = c
	}
	return p, nil
}

// Default returns the built-in palette.
func Default() *Palette {
	p, err := NewPalette(defaultColors)
	if err != nil {
		panic(fmt.Sprintf("styles: default palette: %v", err))
	}
	return p
}

// Color returns the color for a tile size.
func (p *Palette) Color(size int) color.Color {
	if c, ok := p.colors[size]; ok {
		return c
	}
	return p.fallback
}

// Hex returns the color for a tile size as #rrggbb.
func (p *Palette) Hex(size int) string {
	if h, ok := p.hex[size]; ok {
		return h
	}
	return FallbackHex
}

// Has reports whether size has its own color.
func (p *Palette) Has(size int) bool {
	_, ok := p.colors[size]
	return ok
}

// Sizes returns the sizes with their own color, ascending.
func (p *Palette) Sizes() []int {
	return slices.Sorted(maps.Keys(p.colors))
}

// TextHex returns black or white, whichever reads better on the size's color.
func (p *Palette) TextHex(size int) string {
	c, ok := p.colors[size]
	if !ok {
		c = p.fallback
	}
	_, _, l := c.Hcl()
	if l < 0.55 {
		return "#ffffff"
	}
	return "#000000"
}

// Label returns the legend label of a tile size, e.g. "3x3".
func Label(size int) string {
	s := strconv.Itoa(size)
	return s + "x" + s
}

// ParseColorKeys converts string-keyed colors, as found in config files, into
// size-keyed colors.
func ParseColorKeys(in map[string]string) (map[int]string, error) {
	out := make(map[int]string, len(in))
	for k, v := range in {
		size, err := strconv.Atoi(k)
		if err != nil || size <= 0 {
			return nil, errs.New(errs.ErrCodeInvalidConfig, "color key %q is not a positive tile size", k)
		}
		out[size] = v
	}
	return out, nil
}
