package render

import (
	"slices"
	"strings"

	errs "github.com/matzehuels/roomtile/pkg/errors"
)

// Output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatGraph = "graph"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatGraph}

// IsFormat reports whether f names a supported output format.
func IsFormat(f string) bool {
	return slices.Contains(Formats, f)
}

// Extension returns the file extension written for format f.
// The adjacency graph is an SVG document, so it gets a distinct suffix.
func Extension(f string) string {
	if f == FormatGraph {
		return "graph.svg"
	}
	return f
}

// ContentType returns the MIME type of format f.
func ContentType(f string) string {
	switch f {
	case FormatSVG, FormatGraph:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates. Unknown names yield an INVALID_FORMAT error.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if !IsFormat(f) {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown format %q (valid: %s)", f, strings.Join(Formats, ", "))
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}
