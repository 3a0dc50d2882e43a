package regtab

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Statistic selects one footer statistic. Values beyond the predeclared set
// are legal: a model family can answer any tag through [Statser], and its
// label defaults to the tag text.
type Statistic string

const (
	StatNobs     Statistic = "nobs"
	StatR2       Statistic = "r2"
	StatAdjR2    Statistic = "adjr2"
	StatWithinR2 Statistic = "r2_within"
	StatPseudoR2 Statistic = "pseudo_r2"
	StatFStat    Statistic = "f"
	StatFPValue  Statistic = "f_pvalue"
	StatDOF      Statistic = "dof"
	StatAIC      Statistic = "aic"
	StatBIC      Statistic = "bic"
)

var statLabels = map[Statistic]string{
	StatNobs:     "N",
	StatR2:       "R2",
	StatAdjR2:    "Adjusted R2",
	StatWithinR2: "Within-R2",
	StatPseudoR2: "Pseudo R2",
	StatFStat:    "F",
	StatFPValue:  "F-test p value",
	StatDOF:      "Degrees of Freedom",
	StatAIC:      "AIC",
	StatBIC:      "BIC",
}

// label returns the display name, preferring a label-map entry keyed on the
// statistic tag.
func (s Statistic) label(labels map[string]string) string {
	if lbl, ok := labels[string(s)]; ok {
		return lbl
	}
	if lbl, ok := statLabels[s]; ok {
		return lbl
	}
	return string(s)
}

// integral reports whether the statistic renders without decimals.
func (s Statistic) integral() bool {
	return s == StatNobs || s == StatDOF
}

// statValue fetches one statistic from a model. StatNobs goes through
// [Nobser] so plain observation counts work without a Statser.
func statValue(m Model, s Statistic) (float64, bool) {
	if s == StatNobs {
		if n, ok := capability[Nobser](m); ok && n.Nobs() > 0 {
			return float64(n.Nobs()), true
		}
	}
	if st, ok := capability[Statser](m); ok {
		return st.Stat(s)
	}
	return 0, false
}

// defaultStats returns the footer statistics for a table: the configured
// list when present, otherwise the first-seen union of every model's
// family defaults.
func defaultStats(models []Model) []Statistic {
	var out []Statistic
	seen := make(map[Statistic]bool)
	add := func(ss []Statistic) {
		for _, s := range ss {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	for _, m := range models {
		if d, ok := capability[DefaultStatser](m); ok {
			add(d.DefaultStats())
		} else {
			add([]Statistic{StatNobs, StatR2})
		}
	}
	return out
}

// StarRule maps a p-value threshold to a star count. Rules are evaluated
// tightest-first; the first threshold the p-value beats wins.
type StarRule struct {
	Threshold float64
	Stars     int
}

// DefaultStars is the conventional 5% / 1% / 0.1% ladder.
func DefaultStars() []StarRule {
	return []StarRule{{0.001, 3}, {0.01, 2}, {0.05, 1}}
}

func starString(p float64, rules []StarRule) string {
	if math.IsNaN(p) {
		return ""
	}
	best := 0
	for _, r := range rules {
		if p < r.Threshold && r.Stars > best {
			best = r.Stars
		}
	}
	stars := ""
	for i := 0; i < best; i++ {
		stars += "*"
	}
	return stars
}

var groupedPrinter = message.NewPrinter(language.English)

// formatFloat renders a value with fixed decimals; NaN and Inf render blank
// (a degenerate statistic must not print as a number).
func formatFloat(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

// formatCount renders an integral value with thousands grouping.
func formatCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return groupedPrinter.Sprintf("%d", int64(math.Round(v)))
}

func formatStat(s Statistic, v float64, digits int) string {
	if s.integral() {
		return formatCount(v)
	}
	return formatFloat(v, digits)
}
