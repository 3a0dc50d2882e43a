package regtab

// entry is one cell of a sparse aligned matrix. ok=false is a missing
// coefficient and renders blank, never as zero.
type entry struct {
	val float64
	ok  bool
}

// coefMatrices holds the per-row, per-model aligned coefficient data.
type coefMatrices struct {
	values [][]entry // [row][model] point estimate
	se     [][]entry // [row][model] standard error
	tstat  [][]entry // [row][model] value / se
	pvals  [][]entry // [row][model] p-value when the model provides one
	cilo   [][]entry
	cihi   [][]entry
}

// alignCoefs builds the coefficient matrices for the canonical axis. Each
// model's own coefficient positions are found by identity match against the
// row's identity set; absent coefficients stay missing.
func alignCoefs(models []Model, axis []axisEntry, cfg *Config) coefMatrices {
	nr, nm := len(axis), len(models)
	mat := coefMatrices{
		values: makeEntries(nr, nm),
		se:     makeEntries(nr, nm),
		tstat:  makeEntries(nr, nm),
		pvals:  makeEntries(nr, nm),
		cilo:   makeEntries(nr, nm),
		cihi:   makeEntries(nr, nm),
	}
	for j, m := range models {
		keys := modelKeys(m, cfg)
		pos := make(map[string]int, len(keys))
		for i, k := range keys {
			if _, ok := pos[k]; !ok {
				pos[k] = i
			}
		}
		values := m.Coefs()
		ses := m.StdErrors()
		pvs := pvaluesOf(m, len(values))
		cis := confintsOf(m, len(values))
		for i, row := range axis {
			p := -1
			for _, id := range row.idents {
				if q, ok := pos[id]; ok {
					p = q
					break
				}
			}
			if p < 0 {
				continue
			}
			if p < len(values) {
				mat.values[i][j] = entry{values[p], true}
			}
			if p < len(ses) {
				mat.se[i][j] = entry{ses[p], true}
				if ses[p] != 0 && p < len(values) {
					mat.tstat[i][j] = entry{values[p] / ses[p], true}
				}
			}
			if pvs != nil {
				mat.pvals[i][j] = entry{pvs[p], true}
			}
			if cis != nil {
				mat.cilo[i][j] = entry{cis[p][0], true}
				mat.cihi[i][j] = entry{cis[p][1], true}
			}
		}
	}
	return mat
}

func makeEntries(rows, cols int) [][]entry {
	out := make([][]entry, rows)
	for i := range out {
		out[i] = make([]entry, cols)
	}
	return out
}

// otherStatRows is the aligned form of one other-statistic section: a row
// per unioned name, a cell per model.
type otherStatRows struct {
	names []CoefName
	cells [][]entry // [row][model]
}

// alignOtherStats unions the names appearing in one section across models.
// A model that does not support the kind contributes nothing to the name
// axis, so a section no model supports stays empty and is skipped; a
// supported model that merely lacks a given name gets a missing cell.
func alignOtherStats(models []Model, kind StatKind) otherStatRows {
	var out otherStatRows
	index := make(map[string]int)
	perModel := make([]map[string]float64, len(models))
	for j, m := range models {
		stats, ok := otherStatsOf(m, kind)
		if !ok {
			continue
		}
		perModel[j] = make(map[string]float64, len(stats))
		for _, s := range stats {
			id := s.Name.Identity()
			if _, seen := index[id]; !seen {
				index[id] = len(out.names)
				out.names = append(out.names, s.Name)
			}
			perModel[j][id] = s.Value
		}
	}
	out.cells = makeEntries(len(out.names), len(models))
	for j, vals := range perModel {
		if vals == nil {
			continue
		}
		for i, n := range out.names {
			if v, ok := vals[n.Identity()]; ok {
				out.cells[i][j] = entry{v, true}
			}
		}
	}
	return out
}

// empty reports whether the section has no data across all models.
func (o otherStatRows) empty() bool { return len(o.names) == 0 }
