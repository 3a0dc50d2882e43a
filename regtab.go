package regtab

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Sentinel errors for programmatic error handling.
var (
	ErrSelectorRange      = errors.New("selector out of range")
	ErrAmbiguousSpec      = errors.New("unrecognized vcov spec")
	ErrDimensionMismatch  = errors.New("vcov dimension mismatch")
	ErrUnsupportedBackend = errors.New("unsupported backend")
	ErrUnknownTheme       = errors.New("unknown theme")
	ErrNoModels           = errors.New("no models")
)

// Build assembles a summary table from one or more fitted models: the
// coefficient namespaces are unioned into one axis, keep/drop/order applied,
// coefficients and statistics aligned sparsely, and the configured sections
// emitted in order. Selector and covariance errors surface here, never at
// render time. The returned table is handed to [Write] as-is; only its rule
// positions and styles may be changed afterwards.
func Build(cfg Config, models ...Model) (*Table, error) {
	if len(models) == 0 {
		return nil, ErrNoModels
	}
	cfg = cfg.normalized()
	for _, m := range models {
		if v, ok := m.(*VcovModel); ok {
			if _, err := v.Vcov(); err != nil {
				return nil, err
			}
		}
	}
	axis, err := buildAxis(models, &cfg)
	if err != nil {
		return nil, err
	}
	coefs := alignCoefs(models, axis, &cfg)
	tab := assemble(&cfg, models, axis, coefs)
	styles, err := resolveStyles(cfg.Theme)
	if err != nil {
		return nil, err
	}
	tab.styles = styles
	return tab, nil
}

// Write renders a built table to w in the given backend.
func Write(w io.Writer, b Backend, t *Table) error {
	style := t.Style(b)
	switch b {
	case Text:
		return renderText(w, t, style)
	case Markdown:
		return renderMarkdown(w, t, style)
	case HTML:
		return renderHTML(w, t, style)
	case LaTeX:
		return renderLaTeX(w, t, style)
	case CSV:
		return renderCSV(w, t, style)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedBackend, b)
	}
}

// Marshal renders a built table and returns the bytes.
func Marshal(b Backend, t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, b, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders to a file, picking the backend from the extension
// (.txt/.md/.html/.tex/.csv).
func WriteFile(path string, t *Table) error {
	b, err := backendForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, b, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Render is Build followed by Write.
func Render(w io.Writer, b Backend, cfg Config, models ...Model) error {
	t, err := Build(cfg, models...)
	if err != nil {
		return err
	}
	return Write(w, b, t)
}
