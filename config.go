package regtab

import (
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// BelowStat selects the secondary statistic displayed with each
// coefficient.
type BelowStat int

const (
	BelowStdErr BelowStat = iota // standard error, parenthesized
	BelowTStat                   // t statistic, parenthesized
	BelowConfInt                 // "lo - hi" confidence interval
	BelowNone
)

// Config collects every option of one table build. It is read once by
// [Build] and never mutated; the zero value renders a sensible default
// table. Section toggles are negative (Omit*) so the zero value shows the
// conventional sections.
type Config struct {
	// Row selection on the unified coefficient axis, applied in order:
	// keep, drop, order.
	Keep  []Selector
	Drop  []Selector
	Order []Selector

	// Transform rewrites every coefficient name before relabeling and
	// union, e.g. to strip a prefix a model family adds.
	Transform func(CoefName) CoefName

	// Labels maps identity strings (coefficient identities, statistic
	// tags) to display text. UseRelabeled makes labels the unification
	// key: coefficients from different models mapping to one label share
	// a row.
	Labels       map[string]string
	UseRelabeled bool
	// InterceptLabel replaces the "(Intercept)" rendering.
	InterceptLabel string

	// Below selects the secondary per-coefficient statistic and
	// BelowSameLine puts it on the coefficient's own line instead of the
	// next one. ExtraSpacing inserts a blank row between coefficient
	// blocks.
	Below         BelowStat
	BelowSameLine bool
	ExtraSpacing  bool

	// Stars is the significance ladder; nil means [DefaultStars], an
	// empty non-nil slice disables stars.
	Stars []StarRule

	// Digits for coefficients and below-statistics, StatDigits for footer
	// statistics. Zero means 3.
	Digits     int
	StatDigits int

	// Stats lists the footer statistics; nil falls back to the union of
	// per-model family defaults.
	Stats []Statistic

	// Section toggles. A section with no data is skipped regardless.
	OmitDepvar     bool
	OmitNumbers    bool
	OmitFE         bool
	OmitClusters   bool
	OmitFirstStage bool
	OmitRandEff    bool
	OmitRegtype    bool
	OmitStats      bool

	// Controls marks per-model "controls included" indicators; the row is
	// emitted only when non-nil.
	Controls []bool

	// Groups are extra header rows of (usually merged) cells spanning
	// model columns, e.g. outcome families. Each inner slice is one row;
	// the label column is prepended automatically.
	Groups [][]Cell

	// ExtraLines are literal rows appended through the extralines
	// section, bypassing the section vocabulary.
	ExtraLines []Row

	// SectionOrder overrides [DefaultSectionOrder].
	SectionOrder []Section

	// Theme selects the per-backend style: nil, an alias string, a
	// [Style], or a map[Backend]Style (completed with defaults).
	Theme any

	// Markers for boolean sections.
	FEMarker     string // default "Yes"
	ControlsYes  string // default "Yes"
	ControlsNo   string // default ""
	EstimatorOLS string // regtype shown for models without Regtyper; default "OLS"

	// Logger receives non-fatal warnings (non-symmetric vcov, selector
	// misses, failed statistics). Defaults to slog.Default().
	Logger *slog.Logger
}

// normalized returns a copy with defaults filled in.
func (c Config) normalized() Config {
	if c.Digits == 0 {
		c.Digits = 3
	}
	if c.StatDigits == 0 {
		c.StatDigits = 3
	}
	if c.Stars == nil {
		c.Stars = DefaultStars()
	}
	if c.FEMarker == "" {
		c.FEMarker = "Yes"
	}
	if c.ControlsYes == "" {
		c.ControlsYes = "Yes"
	}
	if c.EstimatorOLS == "" {
		c.EstimatorOLS = "OLS"
	}
	if c.SectionOrder == nil {
		c.SectionOrder = DefaultSectionOrder()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// configFile is the YAML-decodable subset of Config.
type configFile struct {
	Labels         map[string]string `yaml:"labels"`
	UseRelabeled   bool              `yaml:"use_relabeled"`
	InterceptLabel string            `yaml:"intercept_label"`
	Digits         int               `yaml:"digits"`
	StatDigits     int               `yaml:"stat_digits"`
	NoStars        bool              `yaml:"no_stars"`
	Theme          string            `yaml:"theme"`
	Keep           []string          `yaml:"keep"`
	Drop           []string          `yaml:"drop"`
	Order          []string          `yaml:"order"`
	Stats          []string          `yaml:"stats"`
}

// LoadConfig decodes the YAML subset of the options (labels, digits, stars,
// theme, name-based keep/drop/order, footer statistics) into a Config.
// Everything else keeps its zero value and can be set on the result.
func LoadConfig(r io.Reader) (Config, error) {
	var f configFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg := Config{
		Labels:         f.Labels,
		UseRelabeled:   f.UseRelabeled,
		InterceptLabel: f.InterceptLabel,
		Digits:         f.Digits,
		StatDigits:     f.StatDigits,
	}
	if f.NoStars {
		cfg.Stars = []StarRule{}
	}
	if f.Theme != "" {
		cfg.Theme = f.Theme
	}
	for _, k := range f.Keep {
		cfg.Keep = append(cfg.Keep, ByName(k))
	}
	for _, d := range f.Drop {
		cfg.Drop = append(cfg.Drop, ByName(d))
	}
	for _, o := range f.Order {
		cfg.Order = append(cfg.Order, ByName(o))
	}
	for _, s := range f.Stats {
		cfg.Stats = append(cfg.Stats, Statistic(s))
	}
	return cfg, nil
}
