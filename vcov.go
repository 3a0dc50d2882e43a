package regtab

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
)

// Matrix is a dense row-major covariance matrix.
type Matrix [][]float64

// Dims returns rows and the widest column count.
func (m Matrix) Dims() (rows, cols int) {
	rows = len(m)
	for _, r := range m {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return rows, cols
}

// square reports whether m is n×n.
func (m Matrix) square(n int) bool {
	if len(m) != n {
		return false
	}
	for _, r := range m {
		if len(r) != n {
			return false
		}
	}
	return true
}

const symTolerance = 1e-8

// symmetric reports whether m is numerically symmetric within tolerance.
func (m Matrix) symmetric() bool {
	for i := range m {
		for j := i + 1; j < len(m); j++ {
			d := m[i][j] - m[j][i]
			scale := math.Max(math.Abs(m[i][j]), math.Abs(m[j][i]))
			if math.Abs(d) > symTolerance*math.Max(1, scale) {
				return false
			}
		}
	}
	return true
}

// diagSqrt returns the elementwise square root of the diagonal.
func (m Matrix) diagSqrt() []float64 {
	out := make([]float64, len(m))
	for i := range m {
		out[i] = math.Sqrt(m[i][i])
	}
	return out
}

// Estimator is an opaque tag for an externally-registered covariance
// estimator. Plugins register a materializer with [RegisterEstimator] and
// users pass the tag to [WithVcov].
type Estimator string

var (
	estimatorsMu sync.RWMutex
	estimators   = make(map[Estimator]func(Model) (Matrix, error))
)

// RegisterEstimator installs the materializer for an estimator tag.
// Registering the same tag twice replaces the earlier materializer.
func RegisterEstimator(tag Estimator, fn func(Model) (Matrix, error)) {
	estimatorsMu.Lock()
	defer estimatorsMu.Unlock()
	estimators[tag] = fn
}

func lookupEstimator(tag Estimator) (func(Model) (Matrix, error), bool) {
	estimatorsMu.RLock()
	defer estimatorsMu.RUnlock()
	fn, ok := estimators[tag]
	return fn, ok
}

// VcovModel decorates a model with a substitute covariance matrix. Standard
// errors come from the substitute; every other query delegates to the
// wrapped model. The matrix is materialized lazily on first use and cached
// for the wrapper's lifetime.
type VcovModel struct {
	Model
	spec   any
	logger *slog.Logger

	once  sync.Once
	cache Matrix
	err   error
}

// WithVcov wraps a model with a covariance spec: a [Matrix] (used verbatim),
// a func() Matrix or func(Model) Matrix (invoked lazily), or a registered
// [Estimator] tag. An unrecognized spec type, an unregistered tag, or a raw
// matrix of the wrong dimension fails immediately. Wrapping an already
// wrapped model replaces the previous spec; wrappers never nest.
func WithVcov(m Model, spec any) (*VcovModel, error) {
	return WithVcovLogger(m, spec, slog.Default())
}

// WithVcovLogger is [WithVcov] with an explicit logger for the symmetry
// warning.
func WithVcovLogger(m Model, spec any, logger *slog.Logger) (*VcovModel, error) {
	if prev, ok := m.(*VcovModel); ok {
		m = prev.Model
	}
	switch s := spec.(type) {
	case Matrix:
		if n := len(m.Coefs()); !s.square(n) {
			r, c := s.Dims()
			return nil, fmt.Errorf("%w: %dx%d matrix for %d coefficients", ErrDimensionMismatch, r, c, n)
		}
	case [][]float64:
		return WithVcovLogger(m, Matrix(s), logger)
	case func() Matrix, func(Model) Matrix:
		// materialized on first use
	case Estimator:
		if _, ok := lookupEstimator(s); !ok {
			return nil, fmt.Errorf("%w: estimator %q not registered", ErrAmbiguousSpec, string(s))
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrAmbiguousSpec, spec)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &VcovModel{Model: m, spec: spec, logger: logger}, nil
}

// Vcov materializes (once) and returns the substitute covariance matrix.
// The result is validated square with dimension len(Coefs()) before it is
// cached; a non-symmetric matrix logs a warning and is used as given.
func (v *VcovModel) Vcov() (Matrix, error) {
	v.once.Do(func() {
		mat, err := v.materialize()
		if err != nil {
			v.err = err
			return
		}
		n := len(v.Model.Coefs())
		if !mat.square(n) {
			r, c := mat.Dims()
			v.err = fmt.Errorf("%w: %dx%d matrix for %d coefficients", ErrDimensionMismatch, r, c, n)
			return
		}
		if !mat.symmetric() {
			v.logger.Warn("covariance matrix is not symmetric within tolerance; using as given")
		}
		v.cache = mat
	})
	return v.cache, v.err
}

func (v *VcovModel) materialize() (Matrix, error) {
	switch s := v.spec.(type) {
	case Matrix:
		return s, nil
	case func() Matrix:
		return s(), nil
	case func(Model) Matrix:
		return s(v.Model), nil
	case Estimator:
		fn, ok := lookupEstimator(s)
		if !ok {
			return nil, fmt.Errorf("%w: estimator %q not registered", ErrAmbiguousSpec, string(s))
		}
		return fn(v.Model)
	default:
		return nil, fmt.Errorf("%w: %T", ErrAmbiguousSpec, v.spec)
	}
}

// StdErrors returns the square roots of the substitute matrix diagonal.
// When materialization fails the error is logged and nil returned; [Build]
// materializes wrappers up front so table construction surfaces the error
// instead.
func (v *VcovModel) StdErrors() []float64 {
	mat, err := v.Vcov()
	if err != nil {
		v.logger.Warn("vcov materialization failed", "err", err)
		return nil
	}
	return mat.diagSqrt()
}
