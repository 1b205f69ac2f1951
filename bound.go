package axiom

import (
	"fmt"
	"strings"
)

// ============================================================
// Variant — the binder family
// ============================================================

type Variant int

const (
	Sum Variant = iota
	Product
	Integral
	Minimize
	Maximize
	ArgMin
	ArgMax
	Mapping
	UnionComp
	InterComp
	ForAll
	Exists
)

// variantSpec fully specifies a variant: its n-ary reduction operator,
// identity element, sign-flip partner, and rendering. A nil identity
// means the variant is undefined on an empty domain (ArgMin/ArgMax).
type variantSpec struct {
	name     string
	latexOp  string
	reduce   func(args []Expr) (Expr, bool)
	identity Expr
	reversed Variant
	boolean  bool
	isSet    bool
	// idempotent reduction: a limit the body never mentions can be dropped
	idempotent bool
}

func reduceVia(f func(...Expr) Expr) func([]Expr) (Expr, bool) {
	return func(args []Expr) (Expr, bool) { return f(args...), true }
}

func reduceSets(union bool) func([]Expr) (Expr, bool) {
	return func(args []Expr) (Expr, bool) {
		if len(args) == 0 {
			if union {
				return EmptySet, true
			}
			return Universe, true
		}
		acc, ok := args[0].(Set)
		if !ok {
			return nil, false
		}
		for _, a := range args[1:] {
			s, ok := a.(Set)
			if !ok {
				return nil, false
			}
			var merged Set
			var mok bool
			if union {
				merged, mok = acc.UnionSet(s)
			} else {
				merged, mok = acc.Intersect(s)
			}
			if !mok {
				return nil, false
			}
			acc = merged
		}
		return acc, true
	}
}

var variantTable map[Variant]variantSpec

// Populated in init: the connective reducers call back into spec(), which
// a package-level composite literal would turn into an initialization
// cycle.
func init() {
	variantTable = map[Variant]variantSpec{
		Sum:      {name: "Sum", latexOp: "\\sum", reduce: reduceVia(AddOf), identity: N(0), reversed: Sum},
		Product:  {name: "Product", latexOp: "\\prod", reduce: reduceVia(MulOf), identity: N(1), reversed: Product},
		Integral: {name: "Integral", latexOp: "\\int", reduce: reduceVia(AddOf), identity: N(0), reversed: Integral},
		Minimize: {name: "Minimize", latexOp: "\\min", reduce: reduceVia(MinOf), identity: Inf, reversed: Maximize, idempotent: true},
		Maximize: {name: "Maximize", latexOp: "\\max", reduce: reduceVia(MaxOf), identity: NegInf, reversed: Minimize, idempotent: true},
		ArgMin:   {name: "ArgMin", latexOp: "\\operatorname{argmin}", reversed: ArgMax},
		ArgMax:   {name: "ArgMax", latexOp: "\\operatorname{argmax}", reversed: ArgMin},
		Mapping:  {name: "Map", latexOp: "\\operatorname{map}", reduce: reduceVia(ArrayOf), identity: &Array{}, reversed: Mapping},
		UnionComp: {
			name: "Union", latexOp: "\\bigcup", reduce: reduceSets(true),
			identity: EmptySet, reversed: UnionComp, isSet: true, idempotent: true,
		},
		InterComp: {
			name: "Intersection", latexOp: "\\bigcap", reduce: reduceSets(false),
			identity: Universe, reversed: InterComp, isSet: true, idempotent: true,
		},
		ForAll: {name: "ForAll", latexOp: "\\forall", reduce: reduceVia(AndOf), identity: True, reversed: Exists, boolean: true, idempotent: true},
		Exists: {name: "Exists", latexOp: "\\exists", reduce: reduceVia(OrOf), identity: False, reversed: ForAll, boolean: true, idempotent: true},
	}
}

func (v Variant) spec() variantSpec {
	s, ok := variantTable[v]
	if !ok {
		panic(fmt.Sprintf("axiom: unknown variant %d", int(v)))
	}
	return s
}

func (v Variant) String() string { return v.spec().name }

// IsBooleanVariant reports the quantifier variants.
func (v Variant) IsBooleanVariant() bool { return v.spec().boolean }

// Identity returns the variant's identity element, with ok=false for
// variants undefined on an empty domain.
func (v Variant) Identity() (Expr, bool) {
	id := v.spec().identity
	return id, id != nil
}

// ============================================================
// Provenance — how a quantified boolean was derived
// ============================================================

type Provenance int

const (
	ProvGiven Provenance = iota
	ProvEquivalent
	ProvImplied
	ProvSubstituted
)

func (p Provenance) String() string {
	switch p {
	case ProvGiven:
		return "given"
	case ProvEquivalent:
		return "equivalent"
	case ProvImplied:
		return "implied"
	case ProvSubstituted:
		return "substituted"
	}
	return fmt.Sprintf("Provenance(%d)", int(p))
}

// ============================================================
// BoundExpr — function + ordered limits + variant tag
// ============================================================

// BoundExpr is the generalized bound-variable expression. Limits are
// ordered outermost first; a limit's bounds may reference only variables
// bound by earlier limits. The value is immutable.
type BoundExpr struct {
	variant Variant
	fn      Expr
	limits  []Limit
	prov    Provenance
}

func (b *BoundExpr) Variant() Variant       { return b.variant }
func (b *BoundExpr) Fn() Expr               { return b.fn }
func (b *BoundExpr) Limits() []Limit        { return append([]Limit{}, b.limits...) }
func (b *BoundExpr) Provenance() Provenance { return b.prov }

// WithProvenance returns a copy tagged with the given provenance.
func (b *BoundExpr) WithProvenance(p Provenance) *BoundExpr {
	return &BoundExpr{variant: b.variant, fn: b.fn, limits: b.limits, prov: p}
}

// Variables returns the bound variables, outermost first.
func (b *BoundExpr) Variables() []*Symbol {
	out := make([]*Symbol, len(b.limits))
	for i, l := range b.limits {
		out[i] = l.Var
	}
	return out
}

func (b *BoundExpr) variablesSet() *SymbolSet {
	s := newSymbolSet()
	for _, l := range b.limits {
		s.Insert(l.Var)
	}
	return s
}

// Bind constructs a bound expression, eagerly collapsing degenerate and
// vacuous forms:
//
//   - no limits: the function itself
//   - a single-point limit (lo == hi): direct substitution
//   - a decidably empty limit: the variant's identity (Karr negation for
//     reversed Sum/Integral bounds, reciprocal for Product)
//   - a same-variant function: denested into one limit sequence
//
// Malformed limits (duplicate variables, forward references in bounds)
// are caller programming errors and panic.
func Bind(variant Variant, fn Expr, limits ...Limit) Expr {
	spec := variant.spec()
	validateLimits(limits)

	if spec.boolean {
		if _, isAtom := fn.(*BoolAtom); isAtom {
			return fn
		}
		if !IsBoolean(fn) {
			panic("axiom: " + spec.name + " needs a boolean body, got " + fn.String())
		}
	}

	work := append([]Limit{}, limits...)
	for i := len(work) - 1; i >= 0; i-- {
		lim := work[i]
		switch {
		case lim.Degenerate():
			if variant == ArgMin || variant == ArgMax {
				// The optimum over a single point is the point, not the
				// objective's value there.
				if len(work) == 1 {
					return lim.Lo
				}
				continue
			}
			// Collapse (x, a, a) to fn[x := a], rewriting inner bounds.
			fn = fn.Subs(lim.Var, lim.Lo).Simplify()
			for j := i + 1; j < len(work); j++ {
				work[j] = work[j].SubsBounds(lim.Var, lim.Lo)
			}
			work = append(work[:i], work[i+1:]...)
		case lim.Vacuous():
			return vacuousCollapse(variant, fn, work, i)
		}
	}

	// Denest a same-variant body into one limit sequence.
	for {
		inner, ok := fn.(*BoundExpr)
		if !ok || inner.variant != variant {
			break
		}
		merged := append(append([]Limit{}, work...), inner.limits...)
		validateLimits(merged)
		work = merged
		fn = inner.fn
	}

	if len(work) == 0 {
		return fn
	}
	return &BoundExpr{variant: variant, fn: fn, limits: work, prov: ProvGiven}
}

func validateLimits(limits []Limit) {
	seen := newSymbolSet()
	for i, lim := range limits {
		if seen.Contains(lim.Var) {
			panic("axiom: duplicate bound variable " + lim.Var.name)
		}
		for _, bd := range lim.boundExprs() {
			for j := i; j < len(limits); j++ {
				if Has(bd, limits[j].Var) {
					panic(fmt.Sprintf("axiom: bounds of limit %s reference later-bound variable %s",
						lim.String(), limits[j].Var.name))
				}
			}
		}
		seen.Insert(lim.Var)
	}
}

// vacuousCollapse resolves a binder whose i-th limit is decidably empty.
// Sum and Integral follow the Karr convention: a reversed range negates
// the forward-range binder; Product reciprocates it. Variants without an
// identity stay unevaluated.
func vacuousCollapse(variant Variant, fn Expr, limits []Limit, i int) Expr {
	spec := variant.spec()
	lim := limits[i]
	if lim.IsRange() {
		// hi == lo-1 is genuinely empty; below that the range is reversed.
		if cmp, ok := compareExprs(lim.Hi, SubOf(lim.Lo, N(1)).Simplify()); ok && cmp < 0 {
			forward := Range(lim.Var, AddOf(lim.Hi, N(1)).Simplify(), SubOf(lim.Lo, N(1)).Simplify())
			rest := append(append([]Limit{}, limits[:i]...), forward)
			rest = append(rest, limits[i+1:]...)
			inner := Bind(variant, fn, rest...)
			switch variant {
			case Sum, Integral:
				return NegOf(inner).Simplify()
			case Product:
				return PowOf(inner, N(-1))
			}
		}
	}
	if spec.identity == nil {
		// ArgMin/ArgMax over an empty domain have no value; the binder
		// survives and Resolve reports it undefined.
		return &BoundExpr{variant: variant, fn: fn, limits: limits, prov: ProvGiven}
	}
	return spec.identity
}

// ============================================================
// Convenience constructors
// ============================================================

func SumOf(fn Expr, limits ...Limit) Expr      { return Bind(Sum, fn, limits...) }
func ProductOf(fn Expr, limits ...Limit) Expr  { return Bind(Product, fn, limits...) }
func IntegralOf(fn Expr, limits ...Limit) Expr { return Bind(Integral, fn, limits...) }
func MinimizeOf(fn Expr, limits ...Limit) Expr { return Bind(Minimize, fn, limits...) }
func MaximizeOf(fn Expr, limits ...Limit) Expr { return Bind(Maximize, fn, limits...) }
func ArgMinOf(fn Expr, limits ...Limit) Expr   { return Bind(ArgMin, fn, limits...) }
func ArgMaxOf(fn Expr, limits ...Limit) Expr   { return Bind(ArgMax, fn, limits...) }
func MapOf(fn Expr, limits ...Limit) Expr      { return Bind(Mapping, fn, limits...) }
func UnionOf(fn Expr, limits ...Limit) Expr    { return Bind(UnionComp, fn, limits...) }
func InterOf(fn Expr, limits ...Limit) Expr    { return Bind(InterComp, fn, limits...) }
func ForAllOf(fn Expr, limits ...Limit) Expr   { return Bind(ForAll, fn, limits...) }
func ExistsOf(fn Expr, limits ...Limit) Expr   { return Bind(Exists, fn, limits...) }

// ============================================================
// Expr implementation
// ============================================================

func (b *BoundExpr) String() string {
	return b.variant.String() + "(" + b.fn.String() + ", " + limitsString(b.limits) + ")"
}

func (b *BoundExpr) LaTeX() string {
	spec := b.variant.spec()
	var sb strings.Builder
	for _, lim := range b.limits {
		sub, sup := lim.latexScript()
		sb.WriteString(spec.latexOp)
		sb.WriteString("_{" + sub + "}")
		if sup != "" {
			sb.WriteString("^{" + sup + "}")
		}
		sb.WriteString(" ")
	}
	body := b.fn.LaTeX()
	if _, isAdd := b.fn.(*Add); isAdd {
		body = "\\left(" + body + "\\right)"
	}
	sb.WriteString(body)
	return sb.String()
}

func (b *BoundExpr) Eval() (*Num, bool) { return nil, false }

func (b *BoundExpr) Equal(other Expr) bool {
	o, ok := other.(*BoundExpr)
	if !ok || b.variant != o.variant || len(b.limits) != len(o.limits) {
		return false
	}
	for i := range b.limits {
		if !b.limits[i].Equal(o.limits[i]) {
			return false
		}
	}
	return b.fn.Equal(o.fn)
}

func (b *BoundExpr) exprType() string { return "bound" }

func (b *BoundExpr) children() []Expr {
	out := []Expr{b.fn}
	for _, l := range b.limits {
		out = append(out, l.boundExprs()...)
	}
	return out
}

func (b *BoundExpr) toJSON() map[string]interface{} {
	ls := make([]map[string]interface{}, len(b.limits))
	for i, l := range b.limits {
		ls[i] = l.toJSON()
	}
	m := map[string]interface{}{
		"type":    "bound",
		"variant": b.variant.String(),
		"fn":      b.fn.toJSON(),
		"limits":  ls,
	}
	if b.variant.IsBooleanVariant() {
		m["provenance"] = b.prov.String()
	}
	return m
}

func boundFromJSON(data map[string]interface{}) (Expr, error) {
	vname, ok := data["variant"].(string)
	if !ok {
		return nil, fmt.Errorf("bound: 'variant' must be a string")
	}
	var variant Variant
	found := false
	for v, spec := range variantTable {
		if spec.name == vname {
			variant = v
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("bound: unknown variant %q", vname)
	}
	fn, err := jsonExpr(data, "fn")
	if err != nil {
		return nil, fmt.Errorf("bound: %w", err)
	}
	raw, ok := data["limits"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("bound: 'limits' must be an array")
	}
	limits := make([]Limit, len(raw))
	for i, it := range raw {
		m, ok := it.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("bound: limits[%d] must be an object", i)
		}
		lim, err := limitFromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("bound: limits[%d]: %w", i, err)
		}
		limits[i] = lim
	}
	out := Bind(variant, fn, limits...)
	if pname, ok := data["provenance"].(string); ok {
		if ob, ok := out.(*BoundExpr); ok {
			for _, p := range []Provenance{ProvGiven, ProvEquivalent, ProvImplied, ProvSubstituted} {
				if p.String() == pname {
					out = ob.WithProvenance(p)
					break
				}
			}
		}
	}
	return out, nil
}

// ============================================================
// Indexing / specialization
// ============================================================

// Index replaces the innermost bound variable of a binder with a concrete
// value. A literal index inside a known range unrolls that dimension; a
// symbolic index yields the specialized body. Non-binder expressions fall
// back to an Indexed node.
func Index(e Expr, i Expr) Expr {
	if b, ok := e.(*BoundExpr); ok {
		if out, changed := b.indexInnermost(i); changed {
			return out
		}
	}
	if arr, ok := e.(*Array); ok {
		if n, ok2 := i.Eval(); ok2 && n.IsInteger() {
			k := n.Int64()
			if k < 0 || k >= int64(len(arr.elems)) {
				panic(fmt.Sprintf("axiom: index %d out of range for array of length %d", k, len(arr.elems)))
			}
			return arr.elems[k]
		}
	}
	return IndexedOf(e, i)
}

func (b *BoundExpr) indexInnermost(i Expr) (Expr, bool) {
	if len(b.limits) == 0 {
		return nil, false
	}
	inner := b.limits[len(b.limits)-1]
	if n, ok := i.Eval(); ok {
		if inner.DomainSet().SetContains(n) == TFalse {
			panic(fmt.Sprintf("axiom: index %s outside the domain %s of %s",
				n.String(), inner.DomainSet().String(), inner.Var.name))
		}
	}
	fn := b.fn.Subs(inner.Var, i).Simplify()
	if len(b.limits) == 1 {
		return fn, true
	}
	return Bind(b.variant, fn, b.limits[:len(b.limits)-1]...), true
}

// Resolve reports the value of an ArgMin/ArgMax binder over a finite
// domain; ok is false when the domain is empty (the result is undefined)
// or not concretely enumerable.
func (b *BoundExpr) Resolve() (Expr, bool) {
	if b.variant != ArgMin && b.variant != ArgMax {
		return b, true
	}
	if len(b.limits) != 1 {
		return nil, false
	}
	points, ok := b.limits[0].Enumerate()
	if !ok || len(points) == 0 {
		return nil, false
	}
	best := points[0]
	bestVal, ok := b.fn.Subs(b.limits[0].Var, best).Simplify().Eval()
	if !ok {
		return nil, false
	}
	for _, p := range points[1:] {
		v, ok := b.fn.Subs(b.limits[0].Var, p).Simplify().Eval()
		if !ok {
			return nil, false
		}
		cmp := numCmp(v, bestVal)
		if (b.variant == ArgMin && cmp < 0) || (b.variant == ArgMax && cmp > 0) {
			best, bestVal = p, v
		}
	}
	return best, true
}

// Shape returns the array shape of a Mapping binder: the limit extents
// prepended to the body's own shape. Symbolic extents stay symbolic.
func (b *BoundExpr) Shape() []Expr {
	if b.variant != Mapping {
		return nil
	}
	shape := make([]Expr, 0, len(b.limits))
	for _, lim := range b.limits {
		if lim.IsRange() {
			shape = append(shape, AddOf(SubOf(lim.Hi, lim.Lo), N(1)).Simplify())
		} else if elems, ok := lim.Enumerate(); ok {
			shape = append(shape, N(int64(len(elems))))
		} else {
			shape = append(shape, IndexedOf(lim.DomainSet(), S("card")))
		}
	}
	if sym, ok := b.fn.(*Symbol); ok {
		shape = append(shape, sym.Shape()...)
	}
	return shape
}

// ============================================================
// Set behavior of the comprehension variants
// ============================================================

func (b *BoundExpr) ElementType() ElemType {
	if b.variant.isSetVariant() {
		if s, ok := b.fn.(Set); ok {
			return s.ElementType()
		}
	}
	return elemTypeOf(b.fn)
}

func (v Variant) isSetVariant() bool { return v.spec().isSet }

// SetContains answers membership in a Union/Intersection comprehension by
// routing through the same enumeration machinery the simplifier uses:
// e ∈ ⋃_{x∈D} f(x) iff some point of D admits it.
func (b *BoundExpr) SetContains(e Expr) Ternary {
	if !b.variant.isSetVariant() || len(b.limits) != 1 {
		return TUnknown
	}
	points, ok := b.limits[0].Enumerate()
	if !ok {
		return TUnknown
	}
	want, fold := TTrue, TFalse
	if b.variant == InterComp {
		want, fold = TFalse, TTrue
	}
	sawUnknown := false
	for _, p := range points {
		member, ok := b.fn.Subs(b.limits[0].Var, p).Simplify().(Set)
		if !ok {
			return TUnknown
		}
		switch member.SetContains(e) {
		case want:
			return want
		case TUnknown:
			sawUnknown = true
		}
	}
	if sawUnknown {
		return TUnknown
	}
	return fold
}

func (b *BoundExpr) IsEmptySet() Ternary {
	if b.variant != UnionComp {
		return TUnknown
	}
	for _, lim := range b.limits {
		if lim.Vacuous() {
			return TTrue
		}
	}
	return TUnknown
}

// IsFiniteSet is deliberately conservative: finiteness of an intersection
// comprehension is not decidable in general, so it stays unknown.
func (b *BoundExpr) IsFiniteSet() Ternary {
	if b.variant != UnionComp {
		return TUnknown
	}
	if len(b.limits) != 1 {
		return TUnknown
	}
	points, ok := b.limits[0].Enumerate()
	if !ok {
		return TUnknown
	}
	for _, p := range points {
		member, ok := b.fn.Subs(b.limits[0].Var, p).Simplify().(Set)
		if !ok || member.IsFiniteSet() != TTrue {
			return TUnknown
		}
	}
	return TTrue
}

func (b *BoundExpr) Enumerate() ([]Expr, bool) {
	if b.variant != UnionComp || len(b.limits) != 1 {
		return nil, false
	}
	points, ok := b.limits[0].Enumerate()
	if !ok {
		return nil, false
	}
	out := []Expr{}
	for _, p := range points {
		member, ok := b.fn.Subs(b.limits[0].Var, p).Simplify().(Set)
		if !ok {
			return nil, false
		}
		elems, ok := member.Enumerate()
		if !ok {
			return nil, false
		}
		out = append(out, elems...)
	}
	return FiniteSetOf(out...).elems, true
}

func (b *BoundExpr) Intersect(other Set) (Set, bool) {
	if _, ok := other.(*UniversalSet); ok && b.variant.isSetVariant() {
		return b, true
	}
	if elems, ok := b.Enumerate(); ok {
		return FiniteSetOf(elems...).Intersect(other)
	}
	return nil, false
}

func (b *BoundExpr) UnionSet(other Set) (Set, bool) {
	if b.variant.isSetVariant() && other.IsEmptySet() == TTrue {
		return b, true
	}
	if elems, ok := b.Enumerate(); ok {
		return FiniteSetOf(elems...).UnionSet(other)
	}
	return nil, false
}

// ============================================================
// Array — the value produced by unrolling a Mapping
// ============================================================

type Array struct{ elems []Expr }

func ArrayOf(elems ...Expr) Expr {
	out := make([]Expr, len(elems))
	for i, e := range elems {
		out[i] = e.Simplify()
	}
	return &Array{elems: out}
}

func (a *Array) Elems() []Expr  { return a.elems }
func (a *Array) Simplify() Expr { return a }

func (a *Array) String() string {
	parts := make([]string, len(a.elems))
	for i, e := range a.elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (a *Array) LaTeX() string {
	parts := make([]string, len(a.elems))
	for i, e := range a.elems {
		parts[i] = e.LaTeX()
	}
	return "\\left[" + strings.Join(parts, ", ") + "\\right]"
}

func (a *Array) Subs(old, new Expr) Expr {
	if a.Equal(old) {
		return new
	}
	elems := make([]Expr, len(a.elems))
	for i, e := range a.elems {
		elems[i] = e.Subs(old, new)
	}
	return ArrayOf(elems...)
}

func (a *Array) Eval() (*Num, bool) { return nil, false }

func (a *Array) Equal(other Expr) bool {
	o, ok := other.(*Array)
	if !ok || len(a.elems) != len(o.elems) {
		return false
	}
	for i := range a.elems {
		if !a.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

func (a *Array) exprType() string { return "array" }
func (a *Array) children() []Expr { return a.elems }

func (a *Array) toJSON() map[string]interface{} {
	es := make([]map[string]interface{}, len(a.elems))
	for i, e := range a.elems {
		es[i] = e.toJSON()
	}
	return map[string]interface{}{"type": "array", "args": es}
}

// ============================================================
// Extremum — n-ary min/max over explicit operands
// ============================================================

type Extremum struct {
	max  bool
	args []Expr
}

func MinOf(args ...Expr) Expr { return extremumOf(false, args) }
func MaxOf(args ...Expr) Expr { return extremumOf(true, args) }

func extremumOf(max bool, args []Expr) Expr {
	if len(args) == 0 {
		if max {
			return NegInf
		}
		return Inf
	}
	flat := []Expr{}
	for _, a := range args {
		s := a.Simplify()
		if e, ok := s.(*Extremum); ok && e.max == max {
			flat = append(flat, e.args...)
			continue
		}
		flat = append(flat, s)
	}
	// Fold the decidably ordered operands into one representative.
	kept := []Expr{}
	var best Expr
	for _, a := range flat {
		if inf, ok := a.(*Infinity); ok {
			if inf.negative == max {
				continue // identity operand
			}
			return inf // absorbing operand
		}
		if best == nil {
			best = a
			continue
		}
		if cmp, ok := compareExprs(a, best); ok {
			if (max && cmp > 0) || (!max && cmp < 0) {
				best = a
			}
			continue
		}
		kept = append(kept, a)
	}
	if best != nil {
		kept = append([]Expr{best}, kept...)
	}
	if len(kept) == 0 {
		if max {
			return NegInf
		}
		return Inf
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return &Extremum{max: max, args: kept}
}

func (e *Extremum) Simplify() Expr { return extremumOf(e.max, e.args) }
func (e *Extremum) IsMax() bool    { return e.max }
func (e *Extremum) Args() []Expr   { return e.args }

func (e *Extremum) name() string {
	if e.max {
		return "Max"
	}
	return "Min"
}

func (e *Extremum) String() string {
	parts := make([]string, len(e.args))
	for i, a := range e.args {
		parts[i] = a.String()
	}
	return e.name() + "(" + strings.Join(parts, ", ") + ")"
}

func (e *Extremum) LaTeX() string {
	parts := make([]string, len(e.args))
	for i, a := range e.args {
		parts[i] = a.LaTeX()
	}
	op := "\\min"
	if e.max {
		op = "\\max"
	}
	return op + "\\left(" + strings.Join(parts, ", ") + "\\right)"
}

func (e *Extremum) Subs(old, new Expr) Expr {
	if e.Equal(old) {
		return new
	}
	args := make([]Expr, len(e.args))
	for i, a := range e.args {
		args[i] = a.Subs(old, new)
	}
	return extremumOf(e.max, args)
}

func (e *Extremum) Eval() (*Num, bool) {
	var best *Num
	for _, a := range e.args {
		v, ok := a.Eval()
		if !ok {
			return nil, false
		}
		if best == nil {
			best = v
			continue
		}
		cmp := numCmp(v, best)
		if (e.max && cmp > 0) || (!e.max && cmp < 0) {
			best = v
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

func (e *Extremum) Equal(other Expr) bool {
	o, ok := other.(*Extremum)
	if !ok || e.max != o.max || len(e.args) != len(o.args) {
		return false
	}
	for i := range e.args {
		if !e.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (e *Extremum) exprType() string { return "extremum" }
func (e *Extremum) children() []Expr { return e.args }

func (e *Extremum) toJSON() map[string]interface{} {
	as := make([]map[string]interface{}, len(e.args))
	for i, a := range e.args {
		as[i] = a.toJSON()
	}
	return map[string]interface{}{"type": "extremum", "max": e.max, "args": as}
}
