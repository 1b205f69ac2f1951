package axiom

// Unrolling bound: above this extent a finite domain stays symbolic.
const maxUnroll = 128

// Simplify applies the binder rewrite rules in a fixed order and returns
// the result of the first rule that fires, or the receiver unchanged.
// The order matters: cheap structural collapses run before the rules that
// rebuild the body.
//
//  1. dead-limit elimination (idempotent variants)
//  2. singleton domain collapse
//  3. finite-domain aggregation
//  4. linearity/independence factoring
//  5. piecewise distribution and domain splitting
//  6. domain narrowing against the body's support
//
// Denesting and the degenerate/vacuous collapses live in Bind, which the
// pipeline re-enters on every rebuild.
func (b *BoundExpr) Simplify() Expr {
	rebound := Bind(b.variant, b.fn.Simplify(), b.limits...)
	cur, ok := rebound.(*BoundExpr)
	if !ok {
		return rebound
	}
	cur = cur.WithProvenance(b.prov)

	rules := []func(*BoundExpr) (Expr, bool){
		deadLimit,
		singletonCollapse,
		finiteAggregate,
		factorIndependent,
		distributePiecewise,
		narrowDomain,
	}
	for _, rule := range rules {
		if out, fired := rule(cur); fired {
			return out
		}
	}
	if cur.variant.IsBooleanVariant() {
		if out, fired := quantifierCollapse(cur); fired {
			return out
		}
	}
	return cur
}

func (b *BoundExpr) dependsOnBound(e Expr) bool {
	for _, lim := range b.limits {
		if Has(e, lim.Var) {
			return true
		}
	}
	return false
}

func dropLimit(limits []Limit, i int) []Limit {
	out := make([]Limit, 0, len(limits)-1)
	out = append(out, limits[:i]...)
	return append(out, limits[i+1:]...)
}

// deadLimit drops a limit whose variable the body never mentions. Only
// sound for idempotent reductions; for Sum and Product a dead limit
// contributes a multiplicity factor, handled by factorIndependent.
func deadLimit(b *BoundExpr) (Expr, bool) {
	if !b.variant.spec().idempotent {
		return nil, false
	}
	for i := len(b.limits) - 1; i >= 0; i-- {
		lim := b.limits[i]
		if Has(b.fn, lim.Var) {
			continue
		}
		referenced := false
		for j := i + 1; j < len(b.limits) && !referenced; j++ {
			for _, bd := range b.limits[j].boundExprs() {
				if Has(bd, lim.Var) {
					referenced = true
					break
				}
			}
		}
		if referenced {
			continue
		}
		// An empty domain means the identity, not the body.
		if lim.DomainSet().IsEmptySet() != TFalse {
			continue
		}
		return Bind(b.variant, b.fn, dropLimit(b.limits, i)...), true
	}
	return nil, false
}

// singletonCollapse substitutes the sole point of a one-element domain.
// ArgMin/ArgMax over a single point answer with the point itself.
func singletonCollapse(b *BoundExpr) (Expr, bool) {
	for i, lim := range b.limits {
		pts, ok := lim.Enumerate()
		if !ok || len(pts) != 1 {
			continue
		}
		if (b.variant == ArgMin || b.variant == ArgMax) && len(b.limits) == 1 {
			return pts[0], true
		}
		fn := b.fn.Subs(lim.Var, pts[0]).Simplify()
		rest := make([]Limit, 0, len(b.limits)-1)
		rest = append(rest, b.limits[:i]...)
		for _, l := range b.limits[i+1:] {
			rest = append(rest, l.SubsBounds(lim.Var, pts[0]))
		}
		return Bind(b.variant, fn, rest...), true
	}
	return nil, false
}

// finiteAggregate unrolls a concretely enumerable limit into the n-ary
// application of the variant's reduction operator, innermost first.
func finiteAggregate(b *BoundExpr) (Expr, bool) {
	if b.variant == ArgMin || b.variant == ArgMax {
		if v, ok := b.Resolve(); ok {
			return v, true
		}
		return nil, false
	}
	reduce := b.variant.spec().reduce
	if reduce == nil {
		return nil, false
	}
	for i := len(b.limits) - 1; i >= 0; i-- {
		lim := b.limits[i]
		pts, ok := lim.Enumerate()
		if !ok || len(pts) > maxUnroll {
			continue
		}
		terms := make([]Expr, 0, len(pts))
		for _, p := range pts {
			fn := b.fn.Subs(lim.Var, p).Simplify()
			inner := make([]Limit, 0, len(b.limits)-i-1)
			for _, l := range b.limits[i+1:] {
				inner = append(inner, l.SubsBounds(lim.Var, p))
			}
			terms = append(terms, Bind(b.variant, fn, inner...))
		}
		combined, ok := reduce(terms)
		if !ok {
			continue
		}
		return Bind(b.variant, combined, b.limits[:i]...), true
	}
	return nil, false
}

// limitCount is the number of points of a limit, possibly symbolic for
// the integer-interval form.
func limitCount(lim Limit) (Expr, bool) {
	if lim.IsRange() {
		return AddOf(SubOf(lim.Hi, lim.Lo), N(1)).Simplify(), true
	}
	if pts, ok := lim.Enumerate(); ok {
		return N(int64(len(pts))), true
	}
	return nil, false
}

// multiplicity is the total point count across all limits. A count that
// mentions one of the binder's own variables, as in (x, 0, n), (z, 0, x),
// cannot move outside the binder.
func (b *BoundExpr) multiplicity() (Expr, bool) {
	total := Expr(N(1))
	for _, lim := range b.limits {
		c, ok := limitCount(lim)
		if !ok || b.dependsOnBound(c) {
			return nil, false
		}
		total = MulOf(total, c)
	}
	return total.Simplify(), true
}

// measure is the total interval length across all limits, for Integral.
func (b *BoundExpr) measure() (Expr, bool) {
	total := Expr(N(1))
	for _, lim := range b.limits {
		iv, ok := lim.DomainSet().(*Interval)
		if !ok || IsInfinite(iv.lo) || IsInfinite(iv.hi) {
			return nil, false
		}
		if b.dependsOnBound(iv.lo) || b.dependsOnBound(iv.hi) {
			return nil, false
		}
		total = MulOf(total, SubOf(iv.hi, iv.lo))
	}
	return total.Simplify(), true
}

// positiveKnown reports expressions decidably positive: positive numbers,
// positive-assumed symbols, and products/powers thereof.
func positiveKnown(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.IsPositive()
	case *Symbol:
		return v.assume.Positive
	case *Mul:
		for _, f := range v.factors {
			if !positiveKnown(f) {
				return false
			}
		}
		return true
	case *Pow:
		return positiveKnown(v.base)
	}
	return false
}

// factorIndependent pulls the part of the body that no bound variable
// reaches outside the binder. A negative factor under Minimize/Maximize
// flips to the reversed partner.
func factorIndependent(b *BoundExpr) (Expr, bool) {
	switch fn := b.fn.(type) {
	case *Add:
		return b.factorAdditive(fn.terms)
	case *Mul:
		return b.factorMultiplicative(fn.factors)
	case *And:
		return b.factorConnective(fn.args, true)
	case *Or:
		return b.factorConnective(fn.args, false)
	}
	// A body the bound variables never reach is a constant term.
	if !b.dependsOnBound(b.fn) {
		switch b.variant {
		case Sum:
			if mult, ok := b.multiplicity(); ok {
				return MulOf(mult, b.fn), true
			}
		case Product:
			if mult, ok := b.multiplicity(); ok {
				return PowOf(b.fn, mult), true
			}
		case Integral:
			if m, ok := b.measure(); ok {
				return MulOf(m, b.fn), true
			}
		}
	}
	return nil, false
}

func (b *BoundExpr) splitByDependence(parts []Expr) (dep, indep []Expr) {
	for _, p := range parts {
		if b.dependsOnBound(p) {
			dep = append(dep, p)
		} else {
			indep = append(indep, p)
		}
	}
	return dep, indep
}

func (b *BoundExpr) factorAdditive(terms []Expr) (Expr, bool) {
	dep, indep := b.splitByDependence(terms)
	if len(indep) == 0 {
		return nil, false
	}
	shift := AddOf(indep...)
	switch b.variant {
	case Sum:
		mult, ok := b.multiplicity()
		if !ok {
			return nil, false
		}
		if len(dep) == 0 {
			return MulOf(mult, shift), true
		}
		return AddOf(MulOf(mult, shift), Bind(Sum, AddOf(dep...), b.limits...)), true
	case Integral:
		m, ok := b.measure()
		if !ok {
			return nil, false
		}
		if len(dep) == 0 {
			return MulOf(m, shift), true
		}
		return AddOf(MulOf(m, shift), Bind(Integral, AddOf(dep...), b.limits...)), true
	case Minimize, Maximize:
		if len(dep) == 0 {
			return nil, false // deadLimit territory
		}
		return AddOf(shift, Bind(b.variant, AddOf(dep...), b.limits...)), true
	case ArgMin, ArgMax:
		// A translation of the objective never moves the optimum.
		if len(dep) == 0 {
			return nil, false
		}
		return Bind(b.variant, AddOf(dep...), b.limits...), true
	}
	return nil, false
}

func (b *BoundExpr) factorMultiplicative(factors []Expr) (Expr, bool) {
	dep, indep := b.splitByDependence(factors)
	if len(indep) == 0 {
		return nil, false
	}
	scale := MulOf(indep...)
	switch b.variant {
	case Sum, Integral:
		if len(dep) == 0 {
			return b.factorAdditive([]Expr{b.fn})
		}
		return MulOf(scale, Bind(b.variant, MulOf(dep...), b.limits...)), true
	case Product:
		mult, ok := b.multiplicity()
		if !ok {
			return nil, false
		}
		if len(dep) == 0 {
			return PowOf(scale, mult), true
		}
		return MulOf(PowOf(scale, mult), Bind(Product, MulOf(dep...), b.limits...)), true
	case Minimize, Maximize, ArgMin, ArgMax:
		if len(dep) == 0 {
			return nil, false
		}
		coeff, core := extractCoefficient(scale)
		if n, ok := scale.(*Num); ok {
			coeff, core = n, N(1)
		}
		if !core.Equal(N(1)) && !positiveKnown(core) {
			return nil, false
		}
		if coeff.IsZero() {
			return nil, false
		}
		variant := b.variant
		if coeff.IsNegative() {
			variant = variant.spec().reversed
		}
		inner := Bind(variant, MulOf(dep...), b.limits...)
		if b.variant == ArgMin || b.variant == ArgMax {
			// Scaling the objective only matters through its sign.
			return inner, true
		}
		return MulOf(scale, inner), true
	}
	return nil, false
}

// factorConnective pulls quantifier-independent conjuncts/disjuncts out.
// Pulling out of the connective matching the reduction operator (And
// under ForAll, Or under Exists) is only valid over a nonempty domain.
func (b *BoundExpr) factorConnective(args []Expr, conj bool) (Expr, bool) {
	if !b.variant.IsBooleanVariant() {
		return nil, false
	}
	dep, indep := b.splitByDependence(args)
	if len(indep) == 0 || len(dep) == 0 {
		return nil, false
	}
	matching := (b.variant == ForAll) == conj
	if matching {
		for _, lim := range b.limits {
			if lim.DomainSet().IsEmptySet() != TFalse {
				return nil, false
			}
		}
	}
	combine := AndOf
	if !conj {
		combine = OrOf
	}
	inner := Bind(b.variant, combine(dep...), b.limits...)
	return combine(append(indep, inner)...), true
}

// distributePiecewise pushes the binder into a case-split body. When the
// branch conditions mention the bound variable the limit's domain is
// split along them instead, first match first.
func distributePiecewise(b *BoundExpr) (Expr, bool) {
	pw, ok := b.fn.(*Piecewise)
	if !ok {
		return nil, false
	}
	condDepends := false
	for _, br := range pw.branches {
		if b.dependsOnBound(br.Cond) {
			condDepends = true
			break
		}
	}
	if !condDepends {
		brs := make([]Branch, len(pw.branches))
		for i, br := range pw.branches {
			brs[i] = Branch{Val: Bind(b.variant, br.Val, b.limits...), Cond: br.Cond}
		}
		return PiecewiseOf(brs...), true
	}

	if len(b.limits) != 1 {
		return nil, false
	}
	reduce := b.variant.spec().reduce
	if reduce == nil {
		return nil, false
	}
	x := b.limits[0].Var
	remaining := b.limits[0].DomainSet()
	pieces := []Expr{}
	for _, br := range pw.branches {
		cd, ok := domainConditioned(br.Cond, x)
		if !ok {
			return nil, false
		}
		piece, ok := cd.Intersect(remaining)
		if !ok {
			return nil, false
		}
		ncd, ok := domainConditioned(NotOf(br.Cond).Simplify(), x)
		if !ok {
			return nil, false
		}
		rest, ok := remaining.Intersect(ncd)
		if !ok {
			return nil, false
		}
		remaining = rest
		if piece.IsEmptySet() == TTrue {
			continue
		}
		pieces = append(pieces, Bind(b.variant, br.Val, Over(x, piece)))
	}
	combined, ok := reduce(pieces)
	if !ok {
		return nil, false
	}
	return combined, true
}

// narrowDomain intersects the declared domain with the support of the
// body (where it is provably nonzero); an empty intersection collapses
// to the identity.
func narrowDomain(b *BoundExpr) (Expr, bool) {
	if len(b.limits) != 1 {
		return nil, false
	}
	switch b.variant {
	case Sum, Integral:
	default:
		return nil, false
	}
	x := b.limits[0].Var
	support, ok := domainNonzero(b.fn, x)
	if !ok {
		return nil, false
	}
	declared := b.limits[0].DomainSet()
	dom, ok := support.Intersect(declared)
	if !ok {
		return nil, false
	}
	if dom.IsEmptySet() == TTrue {
		id, _ := b.variant.Identity()
		return id, true
	}
	if setsEqual(dom, declared) {
		return nil, false
	}
	return Bind(b.variant, b.fn, Over(x, dom)), true
}

// domainNonzero over-approximates the set of x where fn can be nonzero.
// ok is false when nothing useful is known; the returned set is always a
// superset of the true support, which is what soundness of narrowing
// requires.
func domainNonzero(fn Expr, x *Symbol) (Set, bool) {
	switch v := fn.(type) {
	case *KroneckerDelta:
		diff := SubOf(v.a, v.b)
		if !Has(diff, x) {
			return nil, false
		}
		sol, ok := SolveAffine(diff, x)
		if !ok {
			return nil, false
		}
		return FiniteSetOf(sol), true
	case *Mul:
		// A product is nonzero only where every factor is.
		out := Set(Universe)
		found := false
		for _, f := range v.factors {
			nz, ok := domainNonzero(f, x)
			if !ok {
				continue
			}
			merged, ok := out.Intersect(nz)
			if !ok {
				return nil, false
			}
			out = merged
			found = true
		}
		if !found {
			return nil, false
		}
		return out, true
	case *Piecewise:
		out := Set(EmptySet)
		for _, br := range v.branches {
			if n, ok := br.Val.Eval(); ok && n.IsZero() {
				continue
			}
			cd, ok := domainConditioned(br.Cond, x)
			if !ok {
				return nil, false
			}
			merged, ok := out.UnionSet(cd)
			if !ok {
				return nil, false
			}
			out = merged
		}
		return out, true
	}
	return nil, false
}
