package regtab

// Model is the contract a fitted statistical model must satisfy to appear in
// a table. The three methods are required; everything else is an optional
// capability interface checked per model, so model families expose exactly
// what they support:
//
//   - [PValuer] — per-coefficient p-values (unlocks significance stars)
//   - [ConfInter] — per-coefficient confidence intervals
//   - [Depvarer] / [FormulaProvider] — dependent-variable name
//   - [Nobser] — observation count
//   - [Statser] — footer statistics by selector
//   - [OtherStatser] — fixed effects, clusters, first-stage diagnostics
//   - [DefaultStatser] — family-appropriate footer defaults
//   - [Regtyper] — estimator-type label
//
// All three required slices are parallel: index i describes one coefficient.
type Model interface {
	CoefNames() []CoefName
	Coefs() []float64
	StdErrors() []float64
}

// PValuer supplies per-coefficient p-values. Without it, stars are omitted
// for that model; this module never derives p-values from a distribution.
type PValuer interface {
	PValues() []float64
}

// ConfInter supplies per-coefficient confidence intervals as [lo, hi].
type ConfInter interface {
	ConfInts() [][2]float64
}

// Depvarer names the dependent variable.
type Depvarer interface {
	Depvar() CoefName
}

// Formula is the structured left- and right-hand side of a model, used to
// derive names when a model family has no direct accessors.
type Formula struct {
	LHS CoefName
	RHS []CoefName
}

// FormulaProvider exposes the model formula. Falls behind [Depvarer] when
// both are implemented.
type FormulaProvider interface {
	Formula() Formula
}

// Nobser reports the number of observations.
type Nobser interface {
	Nobs() int
}

// Statser answers footer-statistic lookups. ok reports whether the model
// family supports the statistic at all; a supported statistic that failed to
// compute should also return ok=false (the row cell stays blank).
type Statser interface {
	Stat(s Statistic) (float64, bool)
}

// StatKind tags a family of per-model "other statistics".
type StatKind int

const (
	StatFixedEffects StatKind = iota
	StatClusters
	StatFirstStage
	StatRandomEffects
)

// NamedStat is one (name, value) pair inside an other-statistic section.
// For fixed effects the value is ignored (presence is the datum); for
// clusters it is the group count; for first-stage it is the F statistic.
type NamedStat struct {
	Name  CoefName
	Value float64
}

// OtherStatser exposes other-statistic sections. ok=false means the model
// family has no such section, which is different from an empty slice: an
// unsupported kind contributes nothing to that section's name axis, whereas
// a supported-but-empty kind still participates with blanks.
type OtherStatser interface {
	OtherStats(kind StatKind) ([]NamedStat, bool)
}

// DefaultStatser supplies the footer statistics appropriate for the model
// family, used when the configuration lists none.
type DefaultStatser interface {
	DefaultStats() []Statistic
}

// Regtyper labels the estimator (e.g. "OLS", "IV", "Probit").
type Regtyper interface {
	EstimatorType() string
}

// capability asserts an optional interface on a model, looking through a
// [VcovModel] wrapper so that wrapping never hides what the inner model
// supports.
func capability[T any](m Model) (T, bool) {
	if t, ok := any(m).(T); ok {
		return t, true
	}
	if v, ok := m.(*VcovModel); ok {
		if t, ok := any(v.Model).(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// depvarOf resolves the dependent-variable name through Depvarer, then
// Formula. ok=false when the model exposes neither.
func depvarOf(m Model) (CoefName, bool) {
	if d, ok := capability[Depvarer](m); ok {
		return d.Depvar(), true
	}
	if f, ok := capability[FormulaProvider](m); ok {
		return f.Formula().LHS, true
	}
	return CoefName{}, false
}

// Fitted is a value-backed Model for callers without a model family of
// their own (and for tests). Zero-value fields simply leave the matching
// capability unanswered.
type Fitted struct {
	Names     []CoefName
	Values    []float64
	SE        []float64
	P         []float64
	CI        [][2]float64
	N         int
	DependVar CoefName
	Estimator string
	Stats     map[Statistic]float64
	Defaults  []Statistic
	Other     map[StatKind][]NamedStat
}

func (f Fitted) CoefNames() []CoefName { return f.Names }
func (f Fitted) Coefs() []float64      { return f.Values }
func (f Fitted) StdErrors() []float64  { return f.SE }
func (f Fitted) PValues() []float64    { return f.P }
func (f Fitted) ConfInts() [][2]float64 {
	return f.CI
}

func (f Fitted) Depvar() CoefName { return f.DependVar }

func (f Fitted) Nobs() int { return f.N }

func (f Fitted) Stat(s Statistic) (float64, bool) {
	v, ok := f.Stats[s]
	return v, ok
}

func (f Fitted) DefaultStats() []Statistic {
	if f.Defaults != nil {
		return f.Defaults
	}
	return []Statistic{StatNobs, StatR2}
}

func (f Fitted) OtherStats(kind StatKind) ([]NamedStat, bool) {
	v, ok := f.Other[kind]
	return v, ok
}

func (f Fitted) EstimatorType() string { return f.Estimator }

// pvaluesOf returns per-coefficient p-values when the model provides a
// parallel slice, else nil.
func pvaluesOf(m Model, ncoef int) []float64 {
	p, ok := capability[PValuer](m)
	if !ok {
		return nil
	}
	pv := p.PValues()
	if len(pv) != ncoef {
		return nil
	}
	return pv
}

func confintsOf(m Model, ncoef int) [][2]float64 {
	c, ok := capability[ConfInter](m)
	if !ok {
		return nil
	}
	ci := c.ConfInts()
	if len(ci) != ncoef {
		return nil
	}
	return ci
}

// otherStatsOf fetches one other-statistic section, looking through vcov
// wrappers.
func otherStatsOf(m Model, kind StatKind) ([]NamedStat, bool) {
	o, ok := capability[OtherStatser](m)
	if !ok {
		return nil, false
	}
	return o.OtherStats(kind)
}
