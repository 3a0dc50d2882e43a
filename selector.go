package regtab

import (
	"fmt"
	"regexp"

	"github.com/agnivade/levenshtein"
)

// Selector picks positions on a name axis. Implementations are ByName,
// ByIndex, ByRange, ByRegex, and the relative selectors returned by [Last]
// and [End]. Selectors are pure: they never mutate the axis.
type Selector interface {
	// resolve returns 0-based positions in axis order (or selector order for
	// relative selectors), each within [0, len(axis)).
	resolve(axis []string) ([]int, error)
}

// ByName selects the single axis entry whose identity string matches
// exactly. A miss resolves to no positions rather than an error; callers
// decide whether that is fatal.
type ByName string

func (s ByName) resolve(axis []string) ([]int, error) {
	for i, name := range axis {
		if name == string(s) {
			return []int{i}, nil
		}
	}
	return nil, nil
}

// ByIndex selects one 0-based axis position.
type ByIndex int

func (s ByIndex) resolve(axis []string) ([]int, error) {
	i := int(s)
	if i < 0 || i >= len(axis) {
		return nil, fmt.Errorf("%w: index %d on axis of %d", ErrSelectorRange, i, len(axis))
	}
	return []int{i}, nil
}

// ByRange selects the inclusive 0-based position range [From, To].
type ByRange struct {
	From, To int
}

func (s ByRange) resolve(axis []string) ([]int, error) {
	if s.From < 0 || s.From >= len(axis) || s.To < 0 || s.To >= len(axis) || s.From > s.To {
		return nil, fmt.Errorf("%w: range %d..%d on axis of %d", ErrSelectorRange, s.From, s.To, len(axis))
	}
	out := make([]int, 0, s.To-s.From+1)
	for i := s.From; i <= s.To; i++ {
		out = append(out, i)
	}
	return out, nil
}

// ByRegex selects every axis entry whose identity string matches the
// pattern. Results follow axis order, not match order.
type ByRegex struct {
	re *regexp.Regexp
}

// Regex compiles a pattern selector. Panics on an invalid pattern, matching
// the regexp.MustCompile convention for selector literals; use
// [regexp.Compile] plus [RegexSelector] when the pattern is user input.
func Regex(pattern string) ByRegex {
	return ByRegex{re: regexp.MustCompile(pattern)}
}

// RegexSelector wraps an already-compiled pattern.
func RegexSelector(re *regexp.Regexp) ByRegex { return ByRegex{re: re} }

func (s ByRegex) resolve(axis []string) ([]int, error) {
	var out []int
	for i, name := range axis {
		if s.re.MatchString(name) {
			out = append(out, i)
		}
	}
	return out, nil
}

type relativeKind int

const (
	relLast relativeKind = iota
	relEnd
)

type byRelative struct {
	kind relativeKind
	n    int
}

// Last selects the final n axis positions.
func Last(n int) Selector { return byRelative{kind: relLast, n: n} }

// End selects the single position n back from the end; End(0) is the very
// last entry.
func End(n int) Selector { return byRelative{kind: relEnd, n: n} }

func (s byRelative) resolve(axis []string) ([]int, error) {
	switch s.kind {
	case relLast:
		if s.n < 0 || s.n > len(axis) {
			return nil, fmt.Errorf("%w: last %d on axis of %d", ErrSelectorRange, s.n, len(axis))
		}
		out := make([]int, 0, s.n)
		for i := len(axis) - s.n; i < len(axis); i++ {
			out = append(out, i)
		}
		return out, nil
	default:
		i := len(axis) - s.n - 1
		if i < 0 || i >= len(axis) {
			return nil, fmt.Errorf("%w: end offset %d on axis of %d", ErrSelectorRange, s.n, len(axis))
		}
		return []int{i}, nil
	}
}

// Resolve applies one selector to an axis of coefficient names.
func Resolve(axis []CoefName, sel Selector) ([]int, error) {
	return sel.resolve(identities(axis))
}

// resolveAll accumulates positions from selectors left to right, keeping the
// first occurrence of each position. missed receives the text of ByName
// selectors that matched nothing.
func resolveAll(axis []string, sels []Selector, missed func(name string)) ([]int, error) {
	var out []int
	seen := make(map[int]bool)
	for _, sel := range sels {
		pos, err := sel.resolve(axis)
		if err != nil {
			return nil, err
		}
		if name, ok := sel.(ByName); ok && len(pos) == 0 && missed != nil {
			missed(string(name))
		}
		for _, p := range pos {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// nearestName returns the axis entry closest to want by edit distance, for
// "did you mean" hints when a name selector misses. Empty when nothing is
// plausibly close.
func nearestName(axis []string, want string) string {
	best := ""
	bestDist := len(want)/2 + 1 // beyond this the suggestion is noise
	for _, name := range axis {
		if d := levenshtein.ComputeDistance(name, want); d < bestDist {
			bestDist = d
			best = name
		}
	}
	return best
}
