package styles

import (
	"testing"

	errs "github.com/matzehuels/roomtile/pkg/errors"
)

func TestDefaultPalette(t *testing.T) {
	p := Default()

	tests := []struct {
		size int
		hex  string
	}{
		{1, "#ff4d4d"},
		{2, "#2f78ff"},
		{3, "#ffd54f"},
		{4, "#9be7a0"},
		{5, FallbackHex},
		{12, FallbackHex},
	}
	for _, tt := range tests {
		if got := p.Hex(tt.size); got != tt.hex {
			t.Errorf("Hex(%d) = %q, want %q", tt.size, got, tt.hex)
		}
	}

	if got := p.Sizes(); len(got) != 4 || got[0] != 1 || got[3] != 4 {
		t.Errorf("Sizes() = %v, want [1 2 3 4]", got)
	}
	if p.Has(5) {
		t.Error("Has(5) = true, want false")
	}
}

func TestDefaultColorsIsCopy(t *testing.T) {
	c := DefaultColors()
	c[1] = "#000000"
	if DefaultColors()[1] != "#ff4d4d" {
		t.Error("DefaultColors() shares state with callers")
	}
}

func TestNewPaletteNormalizesHex(t *testing.T) {
	p, err := NewPalette(map[int]string{2: "#ABCDEF"})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	if got := p.Hex(2); got != "#abcdef" {
		t.Errorf("Hex(2) = %q, want #abcdef", got)
	}
	r, g, b, _ := p.Color(2).RGBA()
	if r>>8 != 0xab || g>>8 != 0xcd || b>>8 != 0xef {
		t.Errorf("Color(2) = %x %x %x", r>>8, g>>8, b>>8)
	}
}

func TestNewPaletteErrors(t *testing.T) {
	tests := []struct {
		name   string
		colors map[int]string
	}{
		{"bad hex", map[int]string{1: "red"}},
		{"short hex", map[int]string{1: "#ff"}},
		{"zero size", map[int]string{0: "#ffffff"}},
		{"negative size", map[int]string{-2: "#ffffff"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPalette(tt.colors)
			if !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("NewPalette() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestEmptyPaletteUsesFallback(t *testing.T) {
	p, err := NewPalette(nil)
	if err != nil {
		t.Fatalf("NewPalette(nil): %v", err)
	}
	if got := p.Hex(1); got != FallbackHex {
		t.Errorf("Hex(1) = %q, want %q", got, FallbackHex)
	}
	if len(p.Sizes()) != 0 {
		t.Errorf("Sizes() = %v, want empty", p.Sizes())
	}
}

func TestTextHex(t *testing.T) {
	p, err := NewPalette(map[int]string{1: "#000000", 2: "#ffffff"})
	if err != nil {
		t.Fatal(err)
	}
	if got := p.TextHex(1); got != "#ffffff" {
		t.Errorf("TextHex on black = %q, want white", got)
	}
	if got := p.TextHex(2); got != "#000000" {
		t.Errorf("TextHex on white = %q, want black", got)
	}
}

func TestLabel(t *testing.T) {
	if got := Label(3); got != "3x3" {
		t.Errorf("Label(3) = %q", got)
	}
	if got := Label(12); got != "12x12" {
		t.Errorf("Label(12) = %q", got)
	}
}

func TestParseColorKeys(t *testing.T) {
	got, err := ParseColorKeys(map[string]string{"1": "#ff0000", "10": "#00ff00"})
	if err != nil {
		t.Fatalf("ParseColorKeys: %v", err)
	}
	if got[1] != "#ff0000" || got[10] != "#00ff00" {
		t.Errorf("ParseColorKeys = %v", got)
	}

	for _, bad := range []string{"x", "0", "-1", ""} {
		if _, err := ParseColorKeys(map[string]string{bad: "#ffffff"}); err == nil {
			t.Errorf("ParseColorKeys(%q) expected error", bad)
		}
	}
}
