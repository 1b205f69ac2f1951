package axiom

import (
	"fmt"
	"strings"
)

// ============================================================
// Limit — the (variable, domain-spec) unit of binding
// ============================================================

// Limit pairs a bound variable with its domain specification, normalized
// to exactly one of three forms:
//
//	(x,)        unconstrained: the variable ranges over its own domain
//	(x, lo, hi) integer interval, hi inclusive
//	(x, set)    any other domain
//
// Normalization happens in the constructors and is the basis of equality
// for bound expressions.
type Limit struct {
	Var    *Symbol
	Lo, Hi Expr // interval form when both non-nil
	Dom    Set  // set form when non-nil
}

// Free returns the unconstrained limit (x,).
func Free(x *Symbol) Limit { return Limit{Var: x} }

// Range returns the limit of x over [lo, hi]. For integer variables it
// normalizes to the three-tuple form; otherwise to the set form.
func Range(x *Symbol, lo, hi Expr) Limit {
	if x.IsSetValued() {
		panic("axiom: interval limit over a set-valued variable " + x.name)
	}
	if !x.assume.Type.Includes(elemTypeOf(lo)) && !IsInfinite(lo) {
		panic(fmt.Sprintf("axiom: lower bound %s has element type %s, variable %s expects %s",
			lo.String(), elemTypeOf(lo), x.name, x.assume.Type))
	}
	if !x.assume.Type.Includes(elemTypeOf(hi)) && !IsInfinite(hi) {
		panic(fmt.Sprintf("axiom: upper bound %s has element type %s, variable %s expects %s",
			hi.String(), elemTypeOf(hi), x.name, x.assume.Type))
	}
	if x.IsInteger() {
		return Limit{Var: x, Lo: lo.Simplify(), Hi: hi.Simplify()}
	}
	return Over(x, NewInterval(lo, hi, false, false))
}

// Over returns the limit of x over an explicit set, normalizing an
// integer interval into the three-tuple form and the variable's own
// unbounded domain into the one-tuple form.
func Over(x *Symbol, dom Set) Limit {
	if !x.assume.Type.Includes(dom.ElementType()) {
		panic(fmt.Sprintf("axiom: domain %s has element type %s, variable %s expects %s",
			dom.String(), dom.ElementType(), x.name, x.assume.Type))
	}
	if iv, ok := dom.(*Interval); ok && iv.integer && x.IsInteger() {
		return Limit{Var: x, Lo: iv.lo, Hi: iv.hi}
	}
	if _, ok := dom.(*UniversalSet); ok {
		return Limit{Var: x}
	}
	if x.DomainAssumed() == nil && setsEqual(dom, x.Domain()) {
		return Limit{Var: x}
	}
	return Limit{Var: x, Dom: dom}
}

// IsFree reports the one-tuple form.
func (l Limit) IsFree() bool { return l.Lo == nil && l.Dom == nil }

// IsRange reports the three-tuple form.
func (l Limit) IsRange() bool { return l.Lo != nil }

// boundExprs returns the expressions appearing in the domain spec, for
// free-variable traversal.
func (l Limit) boundExprs() []Expr {
	if l.IsRange() {
		return []Expr{l.Lo, l.Hi}
	}
	if l.Dom != nil {
		return []Expr{l.Dom}
	}
	return nil
}

// DomainSet resolves the limit's domain: the explicit one, or the
// variable's own assumed domain for the one-tuple form.
func (l Limit) DomainSet() Set {
	switch {
	case l.IsRange():
		return NewIntInterval(l.Lo, l.Hi)
	case l.Dom != nil:
		return l.Dom
	default:
		return l.Var.Domain()
	}
}

// WithVar renames the bound variable, keeping the domain spec.
func (l Limit) WithVar(x *Symbol) Limit {
	return Limit{Var: x, Lo: l.Lo, Hi: l.Hi, Dom: l.Dom}
}

// SubsBounds substitutes into the domain spec only, never the variable.
func (l Limit) SubsBounds(old, new Expr) Limit {
	switch {
	case l.IsRange():
		return Limit{Var: l.Var, Lo: l.Lo.Subs(old, new).Simplify(), Hi: l.Hi.Subs(old, new).Simplify()}
	case l.Dom != nil:
		dom, ok := l.Dom.Subs(old, new).Simplify().(Set)
		if !ok {
			panic("axiom: domain substitution produced a non-set")
		}
		return Over(l.Var, dom)
	default:
		return l
	}
}

// Degenerate reports a single-point interval (lo == hi), which must
// collapse to a direct substitution.
func (l Limit) Degenerate() bool {
	if !l.IsRange() {
		return false
	}
	cmp, ok := compareExprs(l.Lo, l.Hi)
	return ok && cmp == 0
}

// Vacuous reports a decidably empty range (hi == lo - 1 or below for the
// integer form, or an empty explicit domain).
func (l Limit) Vacuous() bool {
	if l.IsRange() {
		cmp, ok := compareExprs(l.Hi, l.Lo)
		return ok && cmp < 0
	}
	if l.Dom != nil {
		return l.Dom.IsEmptySet() == TTrue
	}
	return false
}

// Enumerate lists the limit's points when its extent is a concrete
// finite count.
func (l Limit) Enumerate() ([]Expr, bool) {
	return l.DomainSet().Enumerate()
}

func (l Limit) Equal(o Limit) bool {
	if !l.Var.Equal(o.Var) {
		return false
	}
	switch {
	case l.IsRange() && o.IsRange():
		return l.Lo.Equal(o.Lo) && l.Hi.Equal(o.Hi)
	case l.Dom != nil && o.Dom != nil:
		return l.Dom.Equal(o.Dom)
	default:
		return l.IsFree() && o.IsFree()
	}
}

func (l Limit) String() string {
	switch {
	case l.IsRange():
		return "(" + l.Var.String() + ", " + l.Lo.String() + ", " + l.Hi.String() + ")"
	case l.Dom != nil:
		return "(" + l.Var.String() + ", " + l.Dom.String() + ")"
	default:
		return "(" + l.Var.String() + ",)"
	}
}

// latexScript renders the limit as a sub/superscript pair for binder
// rendering.
func (l Limit) latexScript() (sub, sup string) {
	switch {
	case l.IsRange():
		return l.Var.LaTeX() + "=" + l.Lo.LaTeX(), l.Hi.LaTeX()
	case l.Dom != nil:
		return l.Var.LaTeX() + " \\in " + l.Dom.LaTeX(), ""
	default:
		return l.Var.LaTeX(), ""
	}
}

func (l Limit) toJSON() map[string]interface{} {
	m := map[string]interface{}{"var": l.Var.toJSON()}
	switch {
	case l.IsRange():
		m["lo"] = l.Lo.toJSON()
		m["hi"] = l.Hi.toJSON()
	case l.Dom != nil:
		m["dom"] = l.Dom.toJSON()
	}
	return m
}

func limitFromJSON(data map[string]interface{}) (Limit, error) {
	ve, err := jsonExpr(data, "var")
	if err != nil {
		return Limit{}, err
	}
	x, ok := ve.(*Symbol)
	if !ok {
		return Limit{}, fmt.Errorf("limit variable must be a symbol")
	}
	if _, hasLo := data["lo"]; hasLo {
		lo, err := jsonExpr(data, "lo")
		if err != nil {
			return Limit{}, err
		}
		hi, err := jsonExpr(data, "hi")
		if err != nil {
			return Limit{}, err
		}
		return Range(x, lo, hi), nil
	}
	if _, hasDom := data["dom"]; hasDom {
		de, err := jsonExpr(data, "dom")
		if err != nil {
			return Limit{}, err
		}
		dom, ok := de.(Set)
		if !ok {
			return Limit{}, fmt.Errorf("limit domain must be a set")
		}
		return Over(x, dom), nil
	}
	return Free(x), nil
}

func limitsString(limits []Limit) string {
	parts := make([]string, len(limits))
	for i, l := range limits {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}

// limitsIntersect merges two limit sequences over the same variables by
// intersecting their domains; ok is false when some pair of domains has
// no computable intersection.
func limitsIntersect(a, b []Limit) ([]Limit, bool) {
	if len(a) != len(b) {
		return nil, false
	}
	out := make([]Limit, len(a))
	for i := range a {
		if !a[i].Var.Equal(b[i].Var) {
			return nil, false
		}
		if a[i].Equal(b[i]) {
			out[i] = a[i]
			continue
		}
		dom, ok := a[i].DomainSet().Intersect(b[i].DomainSet())
		if !ok {
			return nil, false
		}
		out[i] = Over(a[i].Var, dom)
	}
	return out, true
}

// limitsUnion is the dual merge, unioning the domains.
func limitsUnion(a, b []Limit) ([]Limit, bool) {
	if len(a) != len(b) {
		return nil, false
	}
	out := make([]Limit, len(a))
	for i := range a {
		if !a[i].Var.Equal(b[i].Var) {
			return nil, false
		}
		if a[i].Equal(b[i]) {
			out[i] = a[i]
			continue
		}
		dom, ok := a[i].DomainSet().UnionSet(b[i].DomainSet())
		if !ok {
			return nil, false
		}
		out[i] = Over(a[i].Var, dom)
	}
	return out, true
}
