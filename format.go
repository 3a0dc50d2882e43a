package regtab

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Backend names an output dialect.
type Backend string

const (
	Text     Backend = "text"
	Markdown Backend = "markdown"
	HTML     Backend = "html"
	LaTeX    Backend = "latex"
	CSV      Backend = "csv"
)

var backends = []Backend{Text, Markdown, HTML, LaTeX, CSV}

// String returns the backend name.
func (b Backend) String() string { return string(b) }

// Backends returns all supported backend names.
func Backends() []Backend {
	out := make([]Backend, len(backends))
	copy(out, backends)
	return out
}

// ParseBackend parses a backend name.
func ParseBackend(s string) (Backend, error) {
	for _, b := range backends {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedBackend, s)
}

// backendForPath picks the backend from a file extension.
func backendForPath(path string) (Backend, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tex":
		return LaTeX, nil
	case ".html", ".htm":
		return HTML, nil
	case ".md":
		return Markdown, nil
	case ".csv":
		return CSV, nil
	case ".txt", "":
		return Text, nil
	default:
		return "", fmt.Errorf("%w: no backend for %q", ErrUnsupportedBackend, filepath.Ext(path))
	}
}

// BorderStyle controls text-backend border characters.
type BorderStyle int

const (
	BorderPlain   BorderStyle = iota // no boxes, full-width dashed rules
	BorderASCII                      // +-+|
	BorderRounded                    // ╭─╮╰╯│
	BorderHeavy                      // ┏━┓┗┛┃
	BorderDouble                     // ╔═╗╚╝║
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	leftTee, rightTee                          string
}

var borderSets = map[BorderStyle]borderChars{
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		leftTee: "+", rightTee: "+",
	},
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		leftTee: "├", rightTee: "┤",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		leftTee: "┣", rightTee: "┫",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		leftTee: "╠", rightTee: "╣",
	},
}

// Style is the per-backend rendering knobs a theme resolves into. Fields
// irrelevant to a backend are ignored by its renderer.
type Style struct {
	// Border selects the text-backend frame.
	Border BorderStyle
	// Booktabs switches the LaTeX backend between \toprule/\midrule/
	// \bottomrule and plain \hline.
	Booktabs bool
	// ColumnSep is the gap between text-backend columns; zero means 3.
	ColumnSep int
}

func defaultStyle(b Backend) Style {
	switch b {
	case LaTeX:
		return Style{Booktabs: true}
	default:
		return Style{Border: BorderPlain}
	}
}

// themeAliases maps theme names to complete per-backend style maps.
var themeAliases = map[string]map[Backend]Style{
	"default":  nil, // per-backend defaults
	"plain":    {Text: {Border: BorderPlain}, LaTeX: {Booktabs: true}},
	"ascii":    {Text: {Border: BorderASCII}, LaTeX: {Booktabs: true}},
	"rounded":  {Text: {Border: BorderRounded}, LaTeX: {Booktabs: true}},
	"heavy":    {Text: {Border: BorderHeavy}, LaTeX: {Booktabs: true}},
	"double":   {Text: {Border: BorderDouble}, LaTeX: {Booktabs: true}},
	"booktabs": {Text: {Border: BorderPlain}, LaTeX: {Booktabs: true}},
	"grid":     {Text: {Border: BorderASCII}, LaTeX: {Booktabs: false}},
}

// resolveStyles normalizes user theme input into a complete per-backend
// style map. Accepted inputs: nil (defaults), an alias string, a [Style]
// applied to every backend, or a partial map[Backend]Style completed with
// defaults.
func resolveStyles(theme any) (map[Backend]Style, error) {
	out := make(map[Backend]Style, len(backends))
	for _, b := range backends {
		out[b] = defaultStyle(b)
	}
	switch t := theme.(type) {
	case nil:
		return out, nil
	case string:
		alias, ok := themeAliases[t]
		if !ok {
			return nil, fmt.Errorf("%w: theme %q", ErrUnknownTheme, t)
		}
		for b, s := range alias {
			out[b] = s
		}
		return out, nil
	case Style:
		for _, b := range backends {
			out[b] = t
		}
		return out, nil
	case map[Backend]Style:
		for b, s := range t {
			out[b] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownTheme, theme)
	}
}
