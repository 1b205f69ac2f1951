package axiom

import (
	"fmt"
	"sort"
	"strings"
)

// ============================================================
// Ternary — three-valued answers for undecidable set queries
// ============================================================

type Ternary int8

const (
	TUnknown Ternary = iota
	TTrue
	TFalse
)

func (t Ternary) String() string {
	switch t {
	case TTrue:
		return "true"
	case TFalse:
		return "false"
	}
	return "unknown"
}

func ternaryOf(b bool) Ternary {
	if b {
		return TTrue
	}
	return TFalse
}

// ============================================================
// Set — the domain-spec interface
// ============================================================

// Set is implemented by expressions that denote a set of values: Interval,
// FiniteSet, Universe, and the Union/Intersection comprehension binders.
// Queries that a fixed rule set cannot decide answer TUnknown; the
// algebraic operations report ok=false rather than guess.
type Set interface {
	Expr
	SetContains(e Expr) Ternary
	Intersect(other Set) (Set, bool)
	UnionSet(other Set) (Set, bool)
	IsEmptySet() Ternary
	IsFiniteSet() Ternary
	Enumerate() ([]Expr, bool)
	ElementType() ElemType
}

// EmptySet is the canonical empty set.
var EmptySet = &FiniteSet{}

// ============================================================
// Interval
// ============================================================

type Interval struct {
	lo, hi       Expr
	lopen, ropen bool
	integer      bool
}

// NewInterval constructs a real interval, collapsing to EmptySet when the
// bounds are known to be out of order and to a singleton when they touch.
func NewInterval(lo, hi Expr, lopen, ropen bool) Set {
	return newInterval(lo, hi, lopen, ropen, false)
}

// NewIntInterval constructs a closed integer interval [lo, hi].
func NewIntInterval(lo, hi Expr) Set {
	return newInterval(lo, hi, false, false, true)
}

func newInterval(lo, hi Expr, lopen, ropen, integer bool) Set {
	lo = lo.Simplify()
	hi = hi.Simplify()
	if li, ok := lo.(*Infinity); ok && !li.negative {
		return EmptySet
	}
	if hi2, ok := hi.(*Infinity); ok && hi2.negative {
		return EmptySet
	}
	if integer {
		// Open integer endpoints normalize to closed ones. An infinite
		// endpoint is left alone: -oo + 1 is not a bound.
		if lopen {
			if !IsInfinite(lo) {
				lo = AddOf(lo, N(1))
			}
			lopen = false
		}
		if ropen {
			if !IsInfinite(hi) {
				hi = SubOf(hi, N(1))
			}
			ropen = false
		}
	}
	if cmp, ok := compareExprs(lo, hi); ok {
		if cmp > 0 {
			return EmptySet
		}
		if cmp == 0 {
			if lopen || ropen {
				return EmptySet
			}
			return FiniteSetOf(lo)
		}
	}
	return &Interval{lo: lo, hi: hi, lopen: lopen, ropen: ropen, integer: integer}
}

func (iv *Interval) Lo() Expr         { return iv.lo }
func (iv *Interval) Hi() Expr         { return iv.hi }
func (iv *Interval) IsIntegral() bool { return iv.integer }
func (iv *Interval) LeftOpen() bool   { return iv.lopen }
func (iv *Interval) RightOpen() bool  { return iv.ropen }

func (iv *Interval) ElementType() ElemType {
	if iv.integer {
		return IntegerType
	}
	return RealType
}

func (iv *Interval) Simplify() Expr {
	return newInterval(iv.lo, iv.hi, iv.lopen, iv.ropen, iv.integer).(Expr)
}

func (iv *Interval) String() string {
	l, r := "[", "]"
	if iv.lopen {
		l = "("
	}
	if iv.ropen {
		r = ")"
	}
	tag := ""
	if iv.integer {
		tag = "Z "
	}
	return tag + l + iv.lo.String() + ", " + iv.hi.String() + r
}

func (iv *Interval) LaTeX() string {
	l, r := "\\left[", "\\right]"
	if iv.lopen {
		l = "\\left("
	}
	if iv.ropen {
		r = "\\right)"
	}
	s := l + iv.lo.LaTeX() + ", " + iv.hi.LaTeX() + r
	if iv.integer {
		s += " \\cap \\mathbb{Z}"
	}
	return s
}

func (iv *Interval) Subs(old, new Expr) Expr {
	if iv.Equal(old) {
		return new
	}
	return newInterval(iv.lo.Subs(old, new), iv.hi.Subs(old, new), iv.lopen, iv.ropen, iv.integer).(Expr)
}

func (iv *Interval) Eval() (*Num, bool) { return nil, false }

func (iv *Interval) Equal(other Expr) bool {
	o, ok := other.(*Interval)
	return ok && iv.integer == o.integer && iv.lopen == o.lopen && iv.ropen == o.ropen &&
		iv.lo.Equal(o.lo) && iv.hi.Equal(o.hi)
}

func (iv *Interval) exprType() string { return "interval" }
func (iv *Interval) children() []Expr { return []Expr{iv.lo, iv.hi} }

func (iv *Interval) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type": "interval", "lo": iv.lo.toJSON(), "hi": iv.hi.toJSON(),
		"lopen": iv.lopen, "ropen": iv.ropen, "integer": iv.integer,
	}
}

func intervalFromJSON(data map[string]interface{}) (Expr, error) {
	lo, err := jsonExpr(data, "lo")
	if err != nil {
		return nil, fmt.Errorf("interval: %w", err)
	}
	hi, err := jsonExpr(data, "hi")
	if err != nil {
		return nil, fmt.Errorf("interval: %w", err)
	}
	lopen, _ := data["lopen"].(bool)
	ropen, _ := data["ropen"].(bool)
	integer, _ := data["integer"].(bool)
	return newInterval(lo, hi, lopen, ropen, integer).(Expr), nil
}

func (iv *Interval) SetContains(e Expr) Ternary {
	if iv.integer && elemTypeOf(e) > IntegerType {
		if n, ok := e.(*Num); ok && !n.IsInteger() {
			return TFalse
		}
		return TUnknown
	}
	cmpLo, okLo := compareExprs(e, iv.lo)
	cmpHi, okHi := compareExprs(e, iv.hi)
	if okLo && (cmpLo < 0 || (cmpLo == 0 && iv.lopen)) {
		return TFalse
	}
	if okHi && (cmpHi > 0 || (cmpHi == 0 && iv.ropen)) {
		return TFalse
	}
	if okLo && okHi {
		return TTrue
	}
	return TUnknown
}

func (iv *Interval) IsEmptySet() Ternary {
	// Construction already collapsed decidably empty intervals.
	if _, ok := compareExprs(iv.lo, iv.hi); ok {
		return TFalse
	}
	return TUnknown
}

func (iv *Interval) IsFiniteSet() Ternary {
	if IsInfinite(iv.lo) || IsInfinite(iv.hi) {
		return TFalse
	}
	if iv.integer {
		return TTrue
	}
	return TFalse
}

func (iv *Interval) Enumerate() ([]Expr, bool) {
	if !iv.integer {
		return nil, false
	}
	lon, lok := iv.lo.Eval()
	hin, hok := iv.hi.Eval()
	if !lok || !hok || !lon.IsInteger() || !hin.IsInteger() {
		return nil, false
	}
	lo, hi := lon.Int64(), hin.Int64()
	if hi-lo > 10000 {
		return nil, false
	}
	out := make([]Expr, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		out = append(out, N(k))
	}
	return out, true
}

func (iv *Interval) Intersect(other Set) (Set, bool) {
	switch o := other.(type) {
	case *UniversalSet:
		return iv, true
	case *FiniteSet:
		return o.Intersect(iv)
	case *Interval:
		lo, lopen := iv.lo, iv.lopen
		if cmp, ok := compareExprs(o.lo, lo); ok {
			if cmp > 0 {
				lo, lopen = o.lo, o.lopen
			} else if cmp == 0 {
				lopen = lopen || o.lopen
			}
		} else {
			return nil, false
		}
		hi, ropen := iv.hi, iv.ropen
		if cmp, ok := compareExprs(o.hi, hi); ok {
			if cmp < 0 {
				hi, ropen = o.hi, o.ropen
			} else if cmp == 0 {
				ropen = ropen || o.ropen
			}
		} else {
			return nil, false
		}
		return newInterval(lo, hi, lopen, ropen, iv.integer || o.integer), true
	}
	return nil, false
}

func (iv *Interval) UnionSet(other Set) (Set, bool) {
	switch o := other.(type) {
	case *UniversalSet:
		return Universe, true
	case *FiniteSet:
		if o.IsEmptySet() == TTrue {
			return iv, true
		}
		all := true
		for _, e := range o.elems {
			if iv.SetContains(e) != TTrue {
				all = false
				break
			}
		}
		if all {
			return iv, true
		}
		return nil, false
	case *Interval:
		if iv.integer != o.integer {
			return nil, false
		}
		// Overlapping or adjacent comparable intervals merge.
		loCmp, ok1 := compareExprs(iv.lo, o.lo)
		hiCmp, ok2 := compareExprs(iv.hi, o.hi)
		if !ok1 || !ok2 {
			return nil, false
		}
		a, b := iv, o
		if loCmp > 0 {
			a, b = o, iv
		}
		gap, ok := compareExprs(b.lo, a.hi)
		if !ok {
			return nil, false
		}
		adjacent := false
		if a.integer && gap > 0 {
			if succ, sok := compareExprs(b.lo, AddOf(a.hi, N(1)).Simplify()); sok && succ == 0 {
				adjacent = true
			}
		}
		if gap < 0 || (gap == 0 && !(a.ropen && b.lopen)) || adjacent {
			lo, lopen := a.lo, a.lopen
			hi, ropen := a.hi, a.ropen
			if cmp, _ := compareExprs(b.hi, hi); cmp > 0 || hiCmp == 0 {
				if cmp > 0 {
					hi, ropen = b.hi, b.ropen
				}
			}
			return newInterval(lo, hi, lopen, ropen, a.integer), true
		}
		return nil, false
	}
	return nil, false
}

// ============================================================
// FiniteSet
// ============================================================

type FiniteSet struct{ elems []Expr }

// FiniteSetOf builds an explicit set, deduplicating and ordering the
// elements deterministically.
func FiniteSetOf(elems ...Expr) *FiniteSet {
	seen := map[string]bool{}
	out := make([]Expr, 0, len(elems))
	for _, e := range elems {
		s := e.Simplify()
		key := s.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return &FiniteSet{elems: out}
}

func (fs *FiniteSet) Elems() []Expr { return fs.elems }

func (fs *FiniteSet) ElementType() ElemType {
	t := IntegerType
	for _, e := range fs.elems {
		et := elemTypeOf(e)
		if et > t {
			t = et
		}
	}
	return t
}

func (fs *FiniteSet) Simplify() Expr { return fs }

func (fs *FiniteSet) String() string {
	if len(fs.elems) == 0 {
		return "EmptySet"
	}
	parts := make([]string, len(fs.elems))
	for i, e := range fs.elems {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (fs *FiniteSet) LaTeX() string {
	if len(fs.elems) == 0 {
		return "\\emptyset"
	}
	parts := make([]string, len(fs.elems))
	for i, e := range fs.elems {
		parts[i] = e.LaTeX()
	}
	return "\\left\\{" + strings.Join(parts, ", ") + "\\right\\}"
}

func (fs *FiniteSet) Subs(old, new Expr) Expr {
	if fs.Equal(old) {
		return new
	}
	elems := make([]Expr, len(fs.elems))
	for i, e := range fs.elems {
		elems[i] = e.Subs(old, new)
	}
	return FiniteSetOf(elems...)
}

func (fs *FiniteSet) Eval() (*Num, bool) { return nil, false }

func (fs *FiniteSet) Equal(other Expr) bool {
	o, ok := other.(*FiniteSet)
	if !ok || len(fs.elems) != len(o.elems) {
		return false
	}
	for i := range fs.elems {
		if !fs.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

func (fs *FiniteSet) exprType() string { return "finiteset" }
func (fs *FiniteSet) children() []Expr { return fs.elems }

func (fs *FiniteSet) toJSON() map[string]interface{} {
	es := make([]map[string]interface{}, len(fs.elems))
	for i, e := range fs.elems {
		es[i] = e.toJSON()
	}
	return map[string]interface{}{"type": "finiteset", "args": es}
}

func finiteSetFromJSON(data map[string]interface{}) (Expr, error) {
	elems, err := jsonExprList(data, "args")
	if err != nil {
		return nil, fmt.Errorf("finiteset: %w", err)
	}
	return FiniteSetOf(elems...), nil
}

func (fs *FiniteSet) SetContains(e Expr) Ternary {
	unknown := false
	for _, el := range fs.elems {
		if el.Equal(e) {
			return TTrue
		}
		if _, ok := compareExprs(el, e); !ok {
			unknown = true
		}
	}
	if unknown {
		return TUnknown
	}
	return TFalse
}

func (fs *FiniteSet) IsEmptySet() Ternary  { return ternaryOf(len(fs.elems) == 0) }
func (fs *FiniteSet) IsFiniteSet() Ternary { return TTrue }

func (fs *FiniteSet) Enumerate() ([]Expr, bool) {
	out := make([]Expr, len(fs.elems))
	copy(out, fs.elems)
	return out, true
}

func (fs *FiniteSet) Intersect(other Set) (Set, bool) {
	if _, ok := other.(*UniversalSet); ok {
		return fs, true
	}
	kept := []Expr{}
	for _, e := range fs.elems {
		switch other.SetContains(e) {
		case TTrue:
			kept = append(kept, e)
		case TUnknown:
			return nil, false
		}
	}
	return FiniteSetOf(kept...), true
}

func (fs *FiniteSet) UnionSet(other Set) (Set, bool) {
	switch o := other.(type) {
	case *UniversalSet:
		return Universe, true
	case *FiniteSet:
		return FiniteSetOf(append(append([]Expr{}, fs.elems...), o.elems...)...), true
	default:
		if len(fs.elems) == 0 {
			return other, true
		}
		return other.UnionSet(fs)
	}
}

// ============================================================
// UniversalSet
// ============================================================

type UniversalSet struct{}

var Universe = &UniversalSet{}

func (u *UniversalSet) Simplify() Expr         { return u }
func (u *UniversalSet) String() string         { return "UniversalSet" }
func (u *UniversalSet) LaTeX() string          { return "\\mathbb{U}" }
func (u *UniversalSet) Subs(_, _ Expr) Expr    { return u }
func (u *UniversalSet) Eval() (*Num, bool)     { return nil, false }
func (u *UniversalSet) exprType() string       { return "universe" }
func (u *UniversalSet) children() []Expr       { return nil }
func (u *UniversalSet) ElementType() ElemType  { return RealType }
func (u *UniversalSet) SetContains(Expr) Ternary { return TTrue }
func (u *UniversalSet) IsEmptySet() Ternary    { return TFalse }
func (u *UniversalSet) IsFiniteSet() Ternary   { return TFalse }
func (u *UniversalSet) Enumerate() ([]Expr, bool) { return nil, false }

func (u *UniversalSet) Equal(other Expr) bool {
	_, ok := other.(*UniversalSet)
	return ok
}

func (u *UniversalSet) Intersect(other Set) (Set, bool) { return other, true }
func (u *UniversalSet) UnionSet(Set) (Set, bool)        { return Universe, true }

func (u *UniversalSet) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "universe"}
}

func universeFromJSON(map[string]interface{}) (Expr, error) { return Universe, nil }

// setsEqual reports decidable equality of two domain sets.
func setsEqual(a, b Set) bool { return a.Equal(b) }
