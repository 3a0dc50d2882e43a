// Package regtab assembles side-by-side summary tables from independently
// fitted statistical models and renders them as text, Markdown, HTML,
// LaTeX, or CSV.
//
// Each model exposes a sparse, model-specific set of named coefficients.
// [Build] unions those names into one canonical row axis, applies
// keep/drop/order selectors, aligns coefficient values and secondary
// statistics into sparse matrices (missing entries render blank, never
// zero), and walks a configurable section order to produce an immutable
// [Table]: a grid of cells with merge spans plus the row positions where
// horizontal rules belong. [Write] hands that grid to a backend renderer.
//
// # Models
//
// The package uses a layered interface design. [Model] is the minimal
// contract (coefficient names, values, standard errors); optional
// capability interfaces unlock more of the table:
//
//   - [PValuer] — significance stars
//   - [Depvarer] / [FormulaProvider] — dependent-variable header
//   - [Nobser], [Statser], [DefaultStatser] — footer statistics
//   - [OtherStatser] — fixed effects, clusters, first-stage diagnostics
//   - [Regtyper] — estimator row
//
// [Fitted] is a ready-made value-backed implementation.
//
// # Selectors
//
// Rows are selected with [ByName], [ByIndex], [ByRange], [Regex], and the
// relative selectors [Last] and [End]. Out-of-bounds indexes fail with
// [ErrSelectorRange] at build time; a name that matches nothing is not an
// error, but logs a nearest-name hint.
//
// # Covariance overrides
//
// [WithVcov] decorates a model with a substitute covariance matrix — given
// directly, computed by a function, or produced by a registered
// [Estimator] — without mutating the model. The matrix is materialized
// lazily, validated, cached once, and standard errors are taken from its
// diagonal; all other queries delegate to the wrapped model.
//
//	robust, err := regtab.WithVcov(m, regtab.Estimator("HC1"))
//
// # Rendering
//
//	tab, err := regtab.Build(cfg, m1, m2)
//	err = regtab.Write(os.Stdout, regtab.Text, tab)
//	err = regtab.WriteFile("table.tex", tab)
//
// Themes resolve into complete per-backend [Style] maps at build time; see
// [Config].Theme. Use [ParseBackend] to convert a CLI flag string into a
// [Backend].
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrSelectorRange] — index/range selector outside the axis
//   - [ErrAmbiguousSpec] — covariance spec with no materialization rule
//   - [ErrDimensionMismatch] — covariance matrix vs coefficient count
//   - [ErrUnsupportedBackend] — unknown backend name or file extension
//   - [ErrUnknownTheme] — unresolvable theme input
//
// Structural errors surface at [Build]; a failing per-model statistic only
// blanks its cell and logs a warning, so one bad statistic does not abort
// the table.
package regtab
