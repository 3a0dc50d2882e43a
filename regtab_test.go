package regtab_test

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/regtab/regtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fixtures ---

func modelA() regtab.Fitted {
	return regtab.Fitted{
		Names:     regtab.Names("const", "x"),
		Values:    []float64{1.0, 2.0},
		SE:        []float64{0.5, 0.25},
		N:         100,
		DependVar: regtab.Plain("y"),
		Stats:     map[regtab.Statistic]float64{regtab.StatR2: 0.5},
	}
}

func modelB() regtab.Fitted {
	return regtab.Fitted{
		Names:     regtab.Names("const", "z"),
		Values:    []float64{1.5, 3.0},
		SE:        []float64{0.4, 0.3},
		N:         200,
		DependVar: regtab.Plain("y"),
		Stats:     map[regtab.Statistic]float64{regtab.StatR2: 0.25},
	}
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func coefLabels(t *regtab.Table) []string {
	t0 := t.HeaderRows
	var out []string
	for _, row := range t.Rows[t0:] {
		if len(row.Cells) > 0 {
			out = append(out, row.Cells[0].Text)
		}
	}
	return out
}

// --- Axis and alignment ---

func TestBuildUnionFirstSeenOrder(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, modelA(), modelB())
	require.NoError(t, err)

	// axis is const, x, z; coefficient rows alternate with stderr rows.
	assert.Equal(t, "const", tab.Rows[tab.HeaderRows].Cells[0].Text)
	assert.Equal(t, "x", tab.Rows[tab.HeaderRows+2].Cells[0].Text)
	assert.Equal(t, "z", tab.Rows[tab.HeaderRows+4].Cells[0].Text)
}

func TestBuildScenarioSparseCells(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, modelA(), modelB())
	require.NoError(t, err)

	xRow := tab.Rows[tab.HeaderRows+2]
	require.Len(t, xRow.Cells, 3)
	assert.Equal(t, "2.000", xRow.Cells[1].Text)
	assert.Equal(t, "", xRow.Cells[2].Text, "missing coefficient renders blank, not zero")

	zRow := tab.Rows[tab.HeaderRows+4]
	assert.Equal(t, "", zRow.Cells[1].Text)
	assert.Equal(t, "3.000", zRow.Cells[2].Text)
}

func TestBuildMissingInvariantDisjointModels(t *testing.T) {
	t.Parallel()
	m1 := regtab.Fitted{Names: regtab.Names("a", "b"), Values: []float64{1, 2}, SE: []float64{1, 1}}
	m2 := regtab.Fitted{Names: regtab.Names("c", "d"), Values: []float64{3, 4}, SE: []float64{1, 1}}
	tab, err := regtab.Build(regtab.Config{Below: regtab.BelowNone, Logger: quiet()}, m1, m2)
	require.NoError(t, err)

	nonMissing := 0
	for _, row := range tab.Rows[tab.HeaderRows:] {
		if len(row.Cells) != 3 || row.Cells[0].Text == "" {
			continue
		}
		for _, c := range row.Cells[1:] {
			if c.Text != "" {
				nonMissing++
			}
		}
	}
	assert.Equal(t, 4, nonMissing, "2+2 non-missing entries out of 4x2 cells")
}

func TestBuildRoundTripSingleModel(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Below: regtab.BelowNone, Logger: quiet()}, modelA())
	require.NoError(t, err)
	labels := coefLabels(tab)
	assert.Equal(t, "const", labels[0])
	assert.Equal(t, "x", labels[1])
}

func TestBuildNoModels(t *testing.T) {
	t.Parallel()
	_, err := regtab.Build(regtab.Config{})
	assert.ErrorIs(t, err, regtab.ErrNoModels)
}

// --- Selection ---

func TestBuildKeepReorders(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{
		Keep:   []regtab.Selector{regtab.ByName("x"), regtab.ByName("const")},
		Below:  regtab.BelowNone,
		Logger: quiet(),
	}
	tab, err := regtab.Build(cfg, modelA(), modelB())
	require.NoError(t, err)
	labels := coefLabels(tab)
	assert.Equal(t, []string{"x", "const"}, labels[:2])
}

func TestBuildEmptyKeepLeavesUnionIntact(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{Keep: []regtab.Selector{}, Below: regtab.BelowNone, Logger: quiet()}
	tab, err := regtab.Build(cfg, modelA(), modelB())
	require.NoError(t, err)
	assert.Equal(t, []string{"const", "x", "z"}, coefLabels(tab)[:3])
}

func TestBuildDrop(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{
		Drop:   []regtab.Selector{regtab.ByName("const")},
		Below:  regtab.BelowNone,
		Logger: quiet(),
	}
	tab, err := regtab.Build(cfg, modelA(), modelB())
	require.NoError(t, err)
	labels := coefLabels(tab)
	assert.NotContains(t, labels, "const")
	assert.Equal(t, []string{"x", "z"}, labels[:2])
}

func TestBuildOrderMovesToFront(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{
		Order:  []regtab.Selector{regtab.ByName("z")},
		Below:  regtab.BelowNone,
		Logger: quiet(),
	}
	tab, err := regtab.Build(cfg, modelA(), modelB())
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "const", "x"}, coefLabels(tab)[:3])
}

func TestBuildSelectorRangeErrorSurfacesAtBuild(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{Keep: []regtab.Selector{regtab.ByIndex(99)}, Logger: quiet()}
	_, err := regtab.Build(cfg, modelA())
	assert.ErrorIs(t, err, regtab.ErrSelectorRange)
}

// --- Relabeling ---

func TestBuildRelabelDisplayOnly(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{
		Labels: map[string]string{"x": "Treatment"},
		Keep:   []regtab.Selector{regtab.ByName("x")}, // identity still "x"
		Below:  regtab.BelowNone,
		Logger: quiet(),
	}
	tab, err := regtab.Build(cfg, modelA())
	require.NoError(t, err)
	assert.Equal(t, "Treatment", tab.Rows[tab.HeaderRows].Cells[0].Text)
}

func TestBuildUseRelabeledMergesRows(t *testing.T) {
	t.Parallel()
	m1 := regtab.Fitted{Names: regtab.Names("x1"), Values: []float64{2.0}, SE: []float64{1}}
	m2 := regtab.Fitted{Names: regtab.Names("x2"), Values: []float64{3.0}, SE: []float64{1}}
	cfg := regtab.Config{
		Labels:       map[string]string{"x1": "Effect", "x2": "Effect"},
		UseRelabeled: true,
		Below:        regtab.BelowNone,
		Logger:       quiet(),
	}
	tab, err := regtab.Build(cfg, m1, m2)
	require.NoError(t, err)

	row := tab.Rows[tab.HeaderRows]
	assert.Equal(t, "Effect", row.Cells[0].Text)
	assert.Equal(t, "2.000", row.Cells[1].Text)
	assert.Equal(t, "3.000", row.Cells[2].Text)
}

func TestBuildPostRelabelCollisionCollapses(t *testing.T) {
	t.Parallel()
	m1 := regtab.Fitted{Names: regtab.Names("x1"), Values: []float64{2.0}, SE: []float64{1}}
	m2 := regtab.Fitted{Names: regtab.Names("x2"), Values: []float64{3.0}, SE: []float64{1}}
	cfg := regtab.Config{
		Labels: map[string]string{"x1": "Effect", "x2": "Effect"},
		Below:  regtab.BelowNone,
		Logger: quiet(),
	}
	tab, err := regtab.Build(cfg, m1, m2)
	require.NoError(t, err)

	row := tab.Rows[tab.HeaderRows]
	assert.Equal(t, "Effect", row.Cells[0].Text)
	assert.Equal(t, "2.000", row.Cells[1].Text)
	assert.Equal(t, "3.000", row.Cells[2].Text)
}

func TestBuildTransformUnifiesNames(t *testing.T) {
	t.Parallel()
	m1 := regtab.Fitted{Names: regtab.Names("x"), Values: []float64{2.0}, SE: []float64{1}}
	m2 := regtab.Fitted{Names: regtab.Names("lag.x"), Values: []float64{3.0}, SE: []float64{1}}
	cfg := regtab.Config{
		Transform: func(n regtab.CoefName) regtab.CoefName {
			return regtab.Plain(strings.TrimPrefix(n.Identity(), "lag."))
		},
		Below:  regtab.BelowNone,
		Logger: quiet(),
	}
	tab, err := regtab.Build(cfg, m1, m2)
	require.NoError(t, err)

	row := tab.Rows[tab.HeaderRows]
	assert.Equal(t, "x", row.Cells[0].Text)
	assert.Equal(t, "2.000", row.Cells[1].Text)
	assert.Equal(t, "3.000", row.Cells[2].Text)
}

// --- Sections and breaks ---

func TestBuildBreaksNeverZeroNeverConsecutive(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, modelA(), modelB())
	require.NoError(t, err)
	prev := 0
	for _, b := range tab.Breaks {
		assert.Greater(t, b, prev)
		prev = b
	}
}

func TestBuildHeaderRows(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, modelA(), modelB())
	require.NoError(t, err)

	assert.Equal(t, 2, tab.HeaderRows) // depvar + numbering
	depvar := tab.Rows[0]
	require.Len(t, depvar.Cells, 2)
	assert.Equal(t, "y", depvar.Cells[1].Text)
	assert.Equal(t, 2, depvar.Cells[1].Span, "shared outcome merges into one span")
	assert.True(t, depvar.Cells[1].Underline)
	assert.Equal(t, "(1)", tab.Rows[1].Cells[1].Text)
	assert.Equal(t, "(2)", tab.Rows[1].Cells[2].Text)
}

func TestBuildOmitHeaderSections(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{OmitDepvar: true, OmitNumbers: true, Below: regtab.BelowNone, Logger: quiet()}
	tab, err := regtab.Build(cfg, modelA())
	require.NoError(t, err)
	assert.Equal(t, 0, tab.HeaderRows)
	assert.Equal(t, "const", tab.Rows[0].Cells[0].Text)
	// no rows before the coefficient block, so no leading break either
	if len(tab.Breaks) > 0 {
		assert.NotEqual(t, 0, tab.Breaks[0])
	}
}

func TestBuildEmptyStatSectionSkipped(t *testing.T) {
	t.Parallel()
	m := regtab.Fitted{Names: regtab.Names("x"), Values: []float64{1}, SE: []float64{1}}
	cfg := regtab.Config{Stats: []regtab.Statistic{regtab.StatAIC}, Below: regtab.BelowNone, Logger: quiet()}
	tab, err := regtab.Build(cfg, m)
	require.NoError(t, err)
	for _, row := range tab.Rows {
		assert.NotEqual(t, "AIC", row.Cells[0].Text)
	}
	// the break after the empty footer collapses; nothing trails the body
	if n := len(tab.Breaks); n > 0 {
		assert.Less(t, tab.Breaks[n-1], len(tab.Rows)+1)
	}
}

func TestBuildTrailingBreakKeptWhenOrderEndsWithBreak(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{
		SectionOrder: []regtab.Section{regtab.SectionCoefs, regtab.SectionBreak},
		Below:        regtab.BelowNone,
		Logger:       quiet(),
	}
	tab, err := regtab.Build(cfg, modelA())
	require.NoError(t, err)
	require.NotEmpty(t, tab.Breaks)
	assert.Equal(t, len(tab.Rows), tab.Breaks[len(tab.Breaks)-1])
}

func TestBuildExtraSpacing(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{ExtraSpacing: true, Below: regtab.BelowNone, Logger: quiet()}
	tab, err := regtab.Build(cfg, modelA())
	require.NoError(t, err)
	// const, blank spacer, x
	assert.Equal(t, "const", tab.Rows[tab.HeaderRows].Cells[0].Text)
	assert.Equal(t, "", tab.Rows[tab.HeaderRows+1].Cells[0].Text)
	assert.Equal(t, "x", tab.Rows[tab.HeaderRows+2].Cells[0].Text)
}

func TestBuildBelowSameLine(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{BelowSameLine: true, Below: regtab.BelowStdErr, Logger: quiet()}
	tab, err := regtab.Build(cfg, modelA())
	require.NoError(t, err)
	row := tab.Rows[tab.HeaderRows]
	assert.Equal(t, "1.000 (0.500)", row.Cells[1].Text)
	// next row is the second coefficient, not a stderr line
	assert.Equal(t, "x", tab.Rows[tab.HeaderRows+1].Cells[0].Text)
}

func TestBuildBelowTStat(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{Below: regtab.BelowTStat, Logger: quiet()}
	tab, err := regtab.Build(cfg, modelA())
	require.NoError(t, err)
	assert.Equal(t, "(2.000)", tab.Rows[tab.HeaderRows+1].Cells[1].Text) // 1.0 / 0.5
}

func TestBuildBelowConfInt(t *testing.T) {
	t.Parallel()
	m := modelA()
	m.CI = [][2]float64{{0.0, 2.0}, {1.5, 2.5}}
	cfg := regtab.Config{Below: regtab.BelowConfInt, Logger: quiet()}
	tab, err := regtab.Build(cfg, m)
	require.NoError(t, err)
	assert.Equal(t, "0.000 - 2.000", tab.Rows[tab.HeaderRows+1].Cells[1].Text)
}

func TestBuildStars(t *testing.T) {
	t.Parallel()
	m := modelA()
	m.P = []float64{0.0004, 0.03}
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, m)
	require.NoError(t, err)
	assert.Equal(t, "1.000***", tab.Rows[tab.HeaderRows].Cells[1].Text)
	assert.Equal(t, "2.000*", tab.Rows[tab.HeaderRows+2].Cells[1].Text)
}

func TestBuildStarsDisabled(t *testing.T) {
	t.Parallel()
	m := modelA()
	m.P = []float64{0.0004, 0.03}
	cfg := regtab.Config{Stars: []regtab.StarRule{}, Logger: quiet()}
	tab, err := regtab.Build(cfg, m)
	require.NoError(t, err)
	assert.Equal(t, "1.000", tab.Rows[tab.HeaderRows].Cells[1].Text)
}

func TestBuildFixedEffectsSection(t *testing.T) {
	t.Parallel()
	mA := modelA()
	mA.Other = map[regtab.StatKind][]regtab.NamedStat{
		regtab.StatFixedEffects: {{Name: regtab.FixedEffect(regtab.Plain("year"))}},
	}
	tab, err := regtab.Build(regtab.Config{Below: regtab.BelowNone, Logger: quiet()}, mA, modelB())
	require.NoError(t, err)

	var feRow *regtab.Row
	for i := range tab.Rows {
		if tab.Rows[i].Cells[0].Text == "year Fixed Effects" {
			feRow = &tab.Rows[i]
		}
	}
	require.NotNil(t, feRow, "fixed-effect row present")
	assert.Equal(t, "Yes", feRow.Cells[1].Text)
	assert.Equal(t, "", feRow.Cells[2].Text, "unsupported model stays blank")
}

func TestBuildClustersSection(t *testing.T) {
	t.Parallel()
	mA := modelA()
	mA.Other = map[regtab.StatKind][]regtab.NamedStat{
		regtab.StatClusters: {{Name: regtab.Clustered(regtab.Plain("firm")), Value: 1234}},
	}
	tab, err := regtab.Build(regtab.Config{Below: regtab.BelowNone, Logger: quiet()}, mA, modelB())
	require.NoError(t, err)

	found := false
	for _, row := range tab.Rows {
		if row.Cells[0].Text == "firm Clusters" {
			found = true
			assert.Equal(t, "1,234", row.Cells[1].Text)
			assert.Equal(t, "", row.Cells[2].Text)
		}
	}
	assert.True(t, found)
}

func TestBuildFirstStageSection(t *testing.T) {
	t.Parallel()
	mA := modelA()
	mA.Other = map[regtab.StatKind][]regtab.NamedStat{
		regtab.StatFirstStage: {{Name: regtab.FirstStage("First-stage F"), Value: 12.345}},
	}
	tab, err := regtab.Build(regtab.Config{Below: regtab.BelowNone, Logger: quiet()}, mA)
	require.NoError(t, err)

	found := false
	for _, row := range tab.Rows {
		if row.Cells[0].Text == "First-stage F" {
			found = true
			assert.Equal(t, "12.345", row.Cells[1].Text)
		}
	}
	assert.True(t, found)
}

func TestBuildRegtypeAndControls(t *testing.T) {
	t.Parallel()
	mA := modelA()
	mA.Estimator = "IV"
	cfg := regtab.Config{Controls: []bool{true, false}, Below: regtab.BelowNone, Logger: quiet()}
	tab, err := regtab.Build(cfg, mA, modelB())
	require.NoError(t, err)

	var est, ctl *regtab.Row
	for i := range tab.Rows {
		switch tab.Rows[i].Cells[0].Text {
		case "Estimator":
			est = &tab.Rows[i]
		case "Controls":
			ctl = &tab.Rows[i]
		}
	}
	require.NotNil(t, est)
	assert.Equal(t, "IV", est.Cells[1].Text)
	assert.Equal(t, "OLS", est.Cells[2].Text)
	require.NotNil(t, ctl)
	assert.Equal(t, "Yes", ctl.Cells[1].Text)
	assert.Equal(t, "", ctl.Cells[2].Text)
}

func TestBuildGroupsAndExtraLines(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{
		Groups:     [][]regtab.Cell{{regtab.SpanCell("Wages", 2)}},
		ExtraLines: []regtab.Row{{Cells: []regtab.Cell{regtab.TextCell("Sample"), regtab.TextCell("Full"), regtab.TextCell("Full")}}},
		Below:      regtab.BelowNone,
		Logger:     quiet(),
	}
	tab, err := regtab.Build(cfg, modelA(), modelB())
	require.NoError(t, err)

	group := tab.Rows[0]
	assert.Equal(t, "", group.Cells[0].Text)
	assert.Equal(t, "Wages", group.Cells[1].Text)
	assert.True(t, group.Cells[1].Underline)
	last := tab.Rows[len(tab.Rows)-1]
	assert.Equal(t, "Sample", last.Cells[0].Text)
}

func TestBuildFooterStats(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Below: regtab.BelowNone, Logger: quiet()}, modelA(), modelB())
	require.NoError(t, err)

	var nRow, r2Row *regtab.Row
	for i := range tab.Rows {
		switch tab.Rows[i].Cells[0].Text {
		case "N":
			nRow = &tab.Rows[i]
		case "R2":
			r2Row = &tab.Rows[i]
		}
	}
	require.NotNil(t, nRow)
	assert.Equal(t, "100", nRow.Cells[1].Text)
	assert.Equal(t, "200", nRow.Cells[2].Text)
	require.NotNil(t, r2Row)
	assert.Equal(t, "0.500", r2Row.Cells[1].Text)
	assert.Equal(t, "0.250", r2Row.Cells[2].Text)
}

// --- Post-hoc customization ---

func TestAddRemoveRule(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, modelA())
	require.NoError(t, err)

	n := len(tab.Breaks)
	tab.AddRule(1)
	assert.Len(t, tab.Breaks, n+1)
	tab.AddRule(1) // duplicate ignored
	assert.Len(t, tab.Breaks, n+1)
	tab.AddRule(0) // never 0
	assert.Len(t, tab.Breaks, n+1)
	tab.AddRule(len(tab.Rows) + 1) // out of range
	assert.Len(t, tab.Breaks, n+1)
	tab.RemoveRule(1)
	assert.Len(t, tab.Breaks, n)
}

// --- Rendering ---

func TestWriteCSVGolden(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, modelA(), modelB())
	require.NoError(t, err)

	out, err := regtab.Marshal(regtab.CSV, tab)
	require.NoError(t, err)
	want := strings.Join([]string{
		",y,",
		",(1),(2)",
		"const,1.000,1.500",
		",(0.500),(0.400)",
		"x,2.000,",
		",(0.250),",
		"z,,3.000",
		",,(0.300)",
		"N,100,200",
		"R2,0.500,0.250",
	}, "\n") + "\n"
	assert.Equal(t, want, string(out))
}

func TestWriteLaTeX(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, modelA(), modelB())
	require.NoError(t, err)

	out, err := regtab.Marshal(regtab.LaTeX, tab)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `\begin{tabular}{lrr}`)
	assert.Contains(t, s, `\toprule`)
	assert.Contains(t, s, `\multicolumn{2}{c}{y}`)
	assert.Contains(t, s, `\cmidrule(lr){2-3}`)
	assert.Contains(t, s, `const & 1.000 & 1.500 \\`)
	assert.Contains(t, s, `\midrule`)
	assert.Contains(t, s, `\bottomrule`)
	assert.Contains(t, s, `\end{tabular}`)
}

func TestWriteLaTeXEscapes(t *testing.T) {
	t.Parallel()
	m := regtab.Fitted{Names: regtab.Names("log_wage"), Values: []float64{1}, SE: []float64{1}}
	tab, err := regtab.Build(regtab.Config{Below: regtab.BelowNone, Logger: quiet()}, m)
	require.NoError(t, err)
	out, err := regtab.Marshal(regtab.LaTeX, tab)
	require.NoError(t, err)
	assert.Contains(t, string(out), `log\_wage`)
}

func TestEscapeLaTeX(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `50\% \& up`, regtab.EscapeLaTeX(`50% & up`))
	assert.Equal(t, `a\_b\#c\$d`, regtab.EscapeLaTeX(`a_b#c$d`))
}

func TestWriteText(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, modelA(), modelB())
	require.NoError(t, err)

	out, err := regtab.Marshal(regtab.Text, tab)
	require.NoError(t, err)
	s := string(out)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")

	// top rule + 10 rows + depvar underline + 2 mid rules + bottom rule
	assert.Len(t, lines, 15)
	assert.True(t, strings.HasPrefix(lines[0], "---"))
	assert.Contains(t, s, "const")
	assert.Contains(t, s, "(1)")
	assert.Contains(t, s, "(0.500)")
	// every line fits the rule width
	for _, l := range lines {
		assert.LessOrEqual(t, len([]rune(l)), len([]rune(lines[0])))
	}
}

func TestWriteTextBoxed(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{Theme: "rounded", Logger: quiet()}
	tab, err := regtab.Build(cfg, modelA())
	require.NoError(t, err)
	out, err := regtab.Marshal(regtab.Text, tab)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "╭")
	assert.Contains(t, s, "╰")
	assert.Contains(t, s, "│ ")
}

func TestWriteTextBoxedUniformWidth(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{Theme: "ascii", Logger: quiet()}
	tab, err := regtab.Build(cfg, modelA(), modelB())
	require.NoError(t, err)
	out, err := regtab.Marshal(regtab.Text, tab)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.NotEmpty(t, lines)
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), "ragged frame line: %q", l)
	}
	// every line closes the frame: content rows with |, rules with +
	for _, l := range lines {
		assert.Contains(t, []string{"|", "+"}, l[:1])
		assert.Contains(t, []string{"|", "+"}, l[len(l)-1:])
	}
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, modelA(), modelB())
	require.NoError(t, err)
	out, err := regtab.Marshal(regtab.Markdown, tab)
	require.NoError(t, err)
	s := string(out)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	// header, separator, 8 body rows
	assert.Len(t, lines, 10)
	assert.Contains(t, lines[0], "y (1)")
	assert.Contains(t, lines[1], "--")
	assert.Contains(t, s, "| const")
}

func TestWriteMarkdownNoHeaderSections(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{OmitDepvar: true, OmitNumbers: true, Below: regtab.BelowNone, Logger: quiet()}
	tab, err := regtab.Build(cfg, modelA())
	require.NoError(t, err)
	out, err := regtab.Marshal(regtab.Markdown, tab)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	// first body row stands in for the required header
	assert.Contains(t, lines[0], "const")
	assert.Contains(t, lines[1], "--")
	assert.Contains(t, lines[2], "x")
}

func TestWriteHTML(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, modelA(), modelB())
	require.NoError(t, err)
	out, err := regtab.Marshal(regtab.HTML, tab)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "<thead>")
	assert.Contains(t, s, `colspan="2"`)
	assert.Contains(t, s, "<td>const</td>")
	assert.Contains(t, s, "</table>")
}

func TestWriteUnsupportedBackend(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, modelA())
	require.NoError(t, err)
	var buf bytes.Buffer
	err = regtab.Write(&buf, regtab.Backend("docx"), tab)
	assert.ErrorIs(t, err, regtab.ErrUnsupportedBackend)
}

// --- Backend and theme resolution ---

func TestParseBackend(t *testing.T) {
	t.Parallel()
	for _, b := range regtab.Backends() {
		got, err := regtab.ParseBackend(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
	_, err := regtab.ParseBackend("pdf")
	assert.ErrorIs(t, err, regtab.ErrUnsupportedBackend)
}

func TestBuildThemeGrid(t *testing.T) {
	t.Parallel()
	cfg := regtab.Config{Theme: "grid", Logger: quiet()}
	tab, err := regtab.Build(cfg, modelA())
	require.NoError(t, err)
	assert.False(t, tab.Style(regtab.LaTeX).Booktabs)

	out, err := regtab.Marshal(regtab.LaTeX, tab)
	require.NoError(t, err)
	assert.Contains(t, string(out), `\hline`)
	assert.NotContains(t, string(out), `\toprule`)
}

func TestBuildUnknownTheme(t *testing.T) {
	t.Parallel()
	_, err := regtab.Build(regtab.Config{Theme: "neon", Logger: quiet()}, modelA())
	assert.ErrorIs(t, err, regtab.ErrUnknownTheme)

	_, err = regtab.Build(regtab.Config{Theme: 42, Logger: quiet()}, modelA())
	assert.ErrorIs(t, err, regtab.ErrUnknownTheme)
}

func TestSetStyleOverride(t *testing.T) {
	t.Parallel()
	tab, err := regtab.Build(regtab.Config{Logger: quiet()}, modelA())
	require.NoError(t, err)
	tab.SetStyle(regtab.LaTeX, regtab.Style{Booktabs: false})
	assert.False(t, tab.Style(regtab.LaTeX).Booktabs)
}

// --- Config file ---

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	src := `
labels:
  x: Treatment
digits: 2
no_stars: true
theme: grid
keep: [x, const]
stats: [nobs]
`
	cfg, err := regtab.LoadConfig(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "Treatment", cfg.Labels["x"])
	assert.Equal(t, 2, cfg.Digits)
	assert.NotNil(t, cfg.Stars)
	assert.Empty(t, cfg.Stars)
	assert.Equal(t, "grid", cfg.Theme)
	require.Len(t, cfg.Keep, 2)
	assert.Equal(t, []regtab.Statistic{regtab.StatNobs}, cfg.Stats)

	cfg.Logger = quiet()
	tab, err := regtab.Build(cfg, modelA())
	require.NoError(t, err)
	assert.Equal(t, "Treatment", tab.Rows[tab.HeaderRows].Cells[0].Text)
	assert.Equal(t, "2.00", tab.Rows[tab.HeaderRows].Cells[1].Text)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Parallel()
	_, err := regtab.LoadConfig(strings.NewReader("digits: [not-an-int"))
	assert.Error(t, err)
}
