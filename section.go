package regtab

import "fmt"

// Section names one independently toggleable structural block of the
// assembled table.
type Section int

const (
	SectionGroups Section = iota
	SectionDepvar
	SectionNumbers
	SectionCoefs
	SectionFE
	SectionClusters
	SectionFirstStage
	SectionRandEff
	SectionRegtype
	SectionControls
	SectionStats
	SectionExtraLines
	SectionBreak
)

// DefaultSectionOrder is the conventional layout: header blocks, a rule,
// the coefficient block, a rule, the categorical/diagnostic blocks, a rule,
// then footer statistics and extra lines.
func DefaultSectionOrder() []Section {
	return []Section{
		SectionGroups, SectionDepvar, SectionNumbers,
		SectionBreak,
		SectionCoefs,
		SectionBreak,
		SectionFE, SectionRandEff, SectionClusters, SectionFirstStage,
		SectionRegtype, SectionControls,
		SectionBreak,
		SectionStats, SectionExtraLines,
	}
}

// assembler walks the configured section order and accumulates physical
// rows plus rule positions. The header→body transition happens exactly once,
// when the coefficient section is processed, and is irreversible within one
// run.
type assembler struct {
	cfg    *Config
	models []Model
	axis   []axisEntry
	coefs  coefMatrices

	rows       []Row
	breaks     []int
	headerRows int
	inBody     bool
}

// assemble runs the section state machine and packages the result.
//
// Trailing-rule policy: a rule position equal to the final row count
// survives only when the user's section order literally ends with
// [SectionBreak]; a break that merely became trailing because later
// sections emitted nothing is dropped.
func assemble(cfg *Config, models []Model, axis []axisEntry, coefs coefMatrices) *Table {
	a := &assembler{cfg: cfg, models: models, axis: axis, coefs: coefs}
	order := cfg.SectionOrder
	for _, sec := range order {
		a.emit(sec)
	}
	if len(order) == 0 || order[len(order)-1] != SectionBreak {
		if n := len(a.breaks); n > 0 && a.breaks[n-1] == len(a.rows) {
			a.breaks = a.breaks[:n-1]
		}
	}
	if !a.inBody {
		a.headerRows = 0
	}
	ncols := 1 + len(models)
	aligns := make([]Alignment, ncols)
	for i := 1; i < ncols; i++ {
		aligns[i] = AlignRight
	}
	return &Table{
		Rows:       a.rows,
		Breaks:     a.breaks,
		HeaderRows: a.headerRows,
		NCols:      ncols,
		NModels:    len(models),
		Aligns:     aligns,
	}
}

func (a *assembler) emit(sec Section) {
	switch sec {
	case SectionBreak:
		a.recordBreak()
	case SectionGroups:
		a.emitGroups()
	case SectionDepvar:
		if !a.cfg.OmitDepvar {
			a.emitDepvar()
		}
	case SectionNumbers:
		if !a.cfg.OmitNumbers {
			a.emitNumbers()
		}
	case SectionCoefs:
		if !a.inBody {
			a.inBody = true
			a.headerRows = len(a.rows)
		}
		a.emitCoefs()
	case SectionFE:
		if !a.cfg.OmitFE {
			a.emitMarkers(StatFixedEffects)
		}
	case SectionClusters:
		if !a.cfg.OmitClusters {
			a.emitCounts(StatClusters, " Clusters")
		}
	case SectionFirstStage:
		if !a.cfg.OmitFirstStage {
			a.emitNumeric(StatFirstStage)
		}
	case SectionRandEff:
		if !a.cfg.OmitRandEff {
			a.emitNumeric(StatRandomEffects)
		}
	case SectionRegtype:
		if !a.cfg.OmitRegtype {
			a.emitRegtype()
		}
	case SectionControls:
		a.emitControls()
	case SectionStats:
		if !a.cfg.OmitStats {
			a.emitStats()
		}
	case SectionExtraLines:
		a.rows = append(a.rows, a.cfg.ExtraLines...)
	}
}

// recordBreak notes a rule below the current last row. A break before any
// rows, or directly after another break, is elided.
func (a *assembler) recordBreak() {
	n := len(a.rows)
	if n == 0 {
		return
	}
	if k := len(a.breaks); k > 0 && a.breaks[k-1] == n {
		return
	}
	a.breaks = append(a.breaks, n)
}

func (a *assembler) emitGroups() {
	for _, group := range a.cfg.Groups {
		row := Row{Cells: make([]Cell, 0, len(group)+1)}
		if widthOf(group) < 1+len(a.models) {
			row.Cells = append(row.Cells, TextCell(""))
		}
		for _, c := range group {
			if c.span() > 1 && c.Text != "" {
				c.Underline = true
			}
			row.Cells = append(row.Cells, c)
		}
		a.rows = append(a.rows, row)
	}
}

func widthOf(cells []Cell) int {
	n := 0
	for _, c := range cells {
		n += c.span()
	}
	return n
}

// emitDepvar writes the dependent-variable header row, merging adjacent
// models that share an outcome into one underlined span.
func (a *assembler) emitDepvar() {
	names := make([]string, len(a.models))
	found := false
	for j, m := range a.models {
		if dv, ok := depvarOf(m); ok {
			names[j] = dv.Display(a.cfg.Labels, a.cfg.InterceptLabel)
			if names[j] != "" {
				found = true
			}
		}
	}
	if !found {
		return
	}
	row := Row{Cells: []Cell{TextCell("")}}
	for j := 0; j < len(names); {
		k := j + 1
		for k < len(names) && names[k] == names[j] {
			k++
		}
		cell := SpanCell(names[j], k-j)
		if cell.span() > 1 {
			cell.Underline = true
		}
		row.Cells = append(row.Cells, cell)
		j = k
	}
	a.rows = append(a.rows, row)
}

func (a *assembler) emitNumbers() {
	if len(a.models) == 0 {
		return
	}
	texts := make([]string, 1+len(a.models))
	for j := range a.models {
		texts[j+1] = fmt.Sprintf("(%d)", j+1)
	}
	a.rows = append(a.rows, rowOf(texts...))
}

func (a *assembler) emitCoefs() {
	cfg := a.cfg
	for i, row := range a.axis {
		main := make([]string, 1+len(a.models))
		main[0] = row.display
		var below []string
		withBelow := cfg.Below != BelowNone
		if withBelow && !cfg.BelowSameLine {
			below = make([]string, 1+len(a.models))
		}
		for j := range a.models {
			v := a.coefs.values[i][j]
			if !v.ok {
				continue
			}
			text := formatFloat(v.val, cfg.Digits)
			if p := a.coefs.pvals[i][j]; p.ok && len(cfg.Stars) > 0 {
				text += starString(p.val, cfg.Stars)
			}
			sub := a.belowText(i, j)
			if withBelow && cfg.BelowSameLine && sub != "" {
				text += " " + sub
			}
			main[j+1] = text
			if below != nil {
				below[j+1] = sub
			}
		}
		a.rows = append(a.rows, rowOf(main...))
		if below != nil {
			a.rows = append(a.rows, rowOf(below...))
		}
		if cfg.ExtraSpacing && i < len(a.axis)-1 {
			a.rows = append(a.rows, rowOf(make([]string, 1+len(a.models))...))
		}
	}
}

func (a *assembler) belowText(i, j int) string {
	cfg := a.cfg
	switch cfg.Below {
	case BelowStdErr:
		if e := a.coefs.se[i][j]; e.ok {
			return "(" + formatFloat(e.val, cfg.Digits) + ")"
		}
	case BelowTStat:
		if e := a.coefs.tstat[i][j]; e.ok {
			return "(" + formatFloat(e.val, cfg.Digits) + ")"
		}
	case BelowConfInt:
		lo, hi := a.coefs.cilo[i][j], a.coefs.cihi[i][j]
		if lo.ok && hi.ok {
			return formatFloat(lo.val, cfg.Digits) + " - " + formatFloat(hi.val, cfg.Digits)
		}
	}
	return ""
}

// emitMarkers writes a boolean other-statistic section: presence of a name
// in a model's list is the datum, rendered with the configured marker.
func (a *assembler) emitMarkers(kind StatKind) {
	aligned := alignOtherStats(a.models, kind)
	if aligned.empty() {
		return
	}
	for i, n := range aligned.names {
		texts := make([]string, 1+len(a.models))
		texts[0] = a.sectionLabel(n, " Fixed Effects")
		for j := range a.models {
			if aligned.cells[i][j].ok {
				texts[j+1] = a.cfg.FEMarker
			}
		}
		a.rows = append(a.rows, rowOf(texts...))
	}
}

// emitCounts writes a count-valued section (cluster group counts); a
// missing cell means the model is not clustered on that name.
func (a *assembler) emitCounts(kind StatKind, suffix string) {
	aligned := alignOtherStats(a.models, kind)
	if aligned.empty() {
		return
	}
	for i, n := range aligned.names {
		texts := make([]string, 1+len(a.models))
		texts[0] = a.sectionLabel(n, suffix)
		for j := range a.models {
			if c := aligned.cells[i][j]; c.ok {
				texts[j+1] = formatCount(c.val)
			}
		}
		a.rows = append(a.rows, rowOf(texts...))
	}
}

// emitNumeric writes a numeric section (first-stage F, random-effect
// variances); a missing cell renders blank.
func (a *assembler) emitNumeric(kind StatKind) {
	aligned := alignOtherStats(a.models, kind)
	if aligned.empty() {
		return
	}
	for i, n := range aligned.names {
		texts := make([]string, 1+len(a.models))
		texts[0] = a.sectionLabel(n, "")
		for j := range a.models {
			if c := aligned.cells[i][j]; c.ok {
				texts[j+1] = formatFloat(c.val, a.cfg.StatDigits)
			}
		}
		a.rows = append(a.rows, rowOf(texts...))
	}
}

// sectionLabel renders an other-statistic row label. An explicit label-map
// entry on the identity wins; otherwise the display name gets the section
// suffix.
func (a *assembler) sectionLabel(n CoefName, suffix string) string {
	if lbl, ok := a.cfg.Labels[n.Identity()]; ok {
		return lbl
	}
	return n.Display(a.cfg.Labels, a.cfg.InterceptLabel) + suffix
}

// emitRegtype writes the estimator row when at least one model declares an
// estimator type; the rest default to the plain-OLS label.
func (a *assembler) emitRegtype() {
	declared := false
	texts := make([]string, 1+len(a.models))
	texts[0] = "Estimator"
	if lbl, ok := a.cfg.Labels["regtype"]; ok {
		texts[0] = lbl
	}
	for j, m := range a.models {
		if r, ok := capability[Regtyper](m); ok && r.EstimatorType() != "" {
			texts[j+1] = r.EstimatorType()
			declared = true
		} else {
			texts[j+1] = a.cfg.EstimatorOLS
		}
	}
	if !declared {
		return
	}
	a.rows = append(a.rows, rowOf(texts...))
}

func (a *assembler) emitControls() {
	if a.cfg.Controls == nil {
		return
	}
	texts := make([]string, 1+len(a.models))
	texts[0] = "Controls"
	if lbl, ok := a.cfg.Labels["controls"]; ok {
		texts[0] = lbl
	}
	for j := range a.models {
		marker := a.cfg.ControlsNo
		if j < len(a.cfg.Controls) && a.cfg.Controls[j] {
			marker = a.cfg.ControlsYes
		}
		texts[j+1] = marker
	}
	a.rows = append(a.rows, rowOf(texts...))
}

// emitStats writes the footer-statistic block. A statistic no model can
// answer is skipped entirely, so a requested-but-empty block emits nothing.
func (a *assembler) emitStats() {
	stats := a.cfg.Stats
	if stats == nil {
		stats = defaultStats(a.models)
	}
	for _, s := range stats {
		texts := make([]string, 1+len(a.models))
		texts[0] = s.label(a.cfg.Labels)
		found := false
		for j, m := range a.models {
			if v, ok := statValue(m, s); ok {
				texts[j+1] = formatStat(s, v, a.cfg.StatDigits)
				found = true
			}
		}
		if found {
			a.rows = append(a.rows, rowOf(texts...))
		}
	}
}
