package regtab

import "strings"

// CoefKind tags a CoefName variant.
type CoefKind int

const (
	KindPlain CoefKind = iota
	KindIntercept
	KindInteracted
	KindCategorical
	KindFixedEffect
	KindCluster
	KindRandomEffect
	KindFirstStage
)

// CoefName identifies one coefficient. Matching across models uses
// [CoefName.Identity], a deterministic rendering of the kind and payload,
// so that relabeling a coefficient for display never changes which rows it
// matches.
type CoefName struct {
	Kind  CoefKind
	Name  string     // KindPlain and KindFirstStage payload
	Base  string     // KindCategorical base variable
	Level string     // KindCategorical level
	Parts []CoefName // KindInteracted terms; inner name(s) for FixedEffect, Cluster, RandomEffect
}

// Plain names an ordinary coefficient.
func Plain(name string) CoefName { return CoefName{Kind: KindPlain, Name: name} }

// Intercept names the model intercept.
func Intercept() CoefName { return CoefName{Kind: KindIntercept} }

// Interacted names an interaction term between two or more coefficients.
// Order is significant: x & z and z & x are distinct identities.
func Interacted(parts ...CoefName) CoefName {
	return CoefName{Kind: KindInteracted, Parts: parts}
}

// Categorical names one level of a categorical variable.
func Categorical(base, level string) CoefName {
	return CoefName{Kind: KindCategorical, Base: base, Level: level}
}

// FixedEffect marks a name as a fixed-effect grouping.
func FixedEffect(inner CoefName) CoefName {
	return CoefName{Kind: KindFixedEffect, Parts: []CoefName{inner}}
}

// Clustered marks a name as a cluster grouping.
func Clustered(inner CoefName) CoefName {
	return CoefName{Kind: KindCluster, Parts: []CoefName{inner}}
}

// RandomEffect names a random slope/grouping pair.
func RandomEffect(lhs, rhs CoefName) CoefName {
	return CoefName{Kind: KindRandomEffect, Parts: []CoefName{lhs, rhs}}
}

// FirstStage names a first-stage diagnostic for an instrumented variable.
func FirstStage(label string) CoefName {
	return CoefName{Kind: KindFirstStage, Name: label}
}

const interceptIdentity = "(Intercept)"

// Identity returns the deterministic rendering used for cross-model
// matching and for keys in label maps. Two CoefNames denote the same axis
// row exactly when their identities are equal.
func (c CoefName) Identity() string {
	switch c.Kind {
	case KindIntercept:
		return interceptIdentity
	case KindInteracted:
		parts := make([]string, len(c.Parts))
		for i, p := range c.Parts {
			parts[i] = p.Identity()
		}
		return strings.Join(parts, " & ")
	case KindCategorical:
		return c.Base + ": " + c.Level
	case KindFixedEffect:
		return "fe(" + c.Parts[0].Identity() + ")"
	case KindCluster:
		return "cluster(" + c.Parts[0].Identity() + ")"
	case KindRandomEffect:
		return c.Parts[0].Identity() + " | " + c.Parts[1].Identity()
	case KindFirstStage:
		return "first(" + c.Name + ")"
	default:
		return c.Name
	}
}

// Display returns the rendering shown in the table. A label map entry keyed
// on the identity wins outright; otherwise structural names render from their
// (individually relabeled) parts. interceptLabel replaces the default
// intercept rendering when non-empty.
func (c CoefName) Display(labels map[string]string, interceptLabel string) string {
	if lbl, ok := labels[c.Identity()]; ok {
		return lbl
	}
	switch c.Kind {
	case KindIntercept:
		if interceptLabel != "" {
			return interceptLabel
		}
		return interceptIdentity
	case KindInteracted:
		parts := make([]string, len(c.Parts))
		for i, p := range c.Parts {
			parts[i] = p.Display(labels, interceptLabel)
		}
		return strings.Join(parts, " & ")
	case KindCategorical:
		base := c.Base
		if lbl, ok := labels[base]; ok {
			base = lbl
		}
		return base + ": " + c.Level
	case KindFixedEffect, KindCluster:
		return c.Parts[0].Display(labels, interceptLabel)
	case KindRandomEffect:
		return c.Parts[0].Display(labels, interceptLabel) + " | " + c.Parts[1].Display(labels, interceptLabel)
	case KindFirstStage:
		if lbl, ok := labels[c.Name]; ok {
			return lbl
		}
		return c.Name
	default:
		return c.Name
	}
}

// String returns the identity rendering.
func (c CoefName) String() string { return c.Identity() }

// Names converts plain strings into CoefNames. Convenience for callers whose
// model families only produce string names.
func Names(ss ...string) []CoefName {
	out := make([]CoefName, len(ss))
	for i, s := range ss {
		out[i] = Plain(s)
	}
	return out
}

func identities(names []CoefName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.Identity()
	}
	return out
}
