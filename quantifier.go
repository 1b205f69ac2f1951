package axiom

// ============================================================
// Quantifier combinator
// ============================================================

func tagProv(e Expr, p Provenance) Expr {
	if b, ok := e.(*BoundExpr); ok {
		return b.WithProvenance(p)
	}
	return e
}

// CombineClauses conjoins or disjoins quantified statements, merging
// compatible quantifiers along the way.
func CombineClauses(conj bool, stmts ...Expr) Expr {
	if conj {
		return AndOf(stmts...)
	}
	return OrOf(stmts...)
}

// mergeQuantified is the connective hook: within a flattened And/Or
// argument list, pairs of same-variant quantifiers are merged when a
// single quantifier expresses their combination.
func mergeQuantified(args []Expr, conj bool) []Expr {
	for i := 0; i < len(args); i++ {
		bi, ok := args[i].(*BoundExpr)
		if !ok || !bi.variant.IsBooleanVariant() {
			continue
		}
		for j := i + 1; j < len(args); j++ {
			bj, ok := args[j].(*BoundExpr)
			if !ok || bj.variant != bi.variant {
				continue
			}
			merged, ok := combineQuantified(bi, bj, conj)
			if !ok {
				continue
			}
			args[i] = merged
			args = append(args[:j], args[j+1:]...)
			j--
			if bi, ok = args[i].(*BoundExpr); !ok {
				break
			}
		}
	}
	return args
}

// combineQuantified merges two same-variant quantifiers under a
// connective. Equal limits combine bodies and stay equivalent; equal
// bodies union their domains and stay equivalent; when both differ the
// merge holds only as a hypothesis and is tagged accordingly (ForAll
// under conjunction intersects the domains, Exists under disjunction
// unions them).
func combineQuantified(a, b *BoundExpr, conj bool) (Expr, bool) {
	if (a.variant == ForAll) != conj {
		return nil, false
	}
	if len(a.limits) != len(b.limits) {
		return nil, false
	}
	for i := range a.limits {
		if !a.limits[i].Var.Equal(b.limits[i].Var) {
			return nil, false
		}
	}
	combine := AndOf
	if !conj {
		combine = OrOf
	}

	sameLimits := true
	for i := range a.limits {
		if !a.limits[i].Equal(b.limits[i]) {
			sameLimits = false
			break
		}
	}
	if sameLimits {
		return tagProv(Bind(a.variant, combine(a.fn, b.fn), a.limits...), ProvEquivalent), true
	}
	if a.fn.Equal(b.fn) {
		limits, ok := limitsUnion(a.limits, b.limits)
		if !ok {
			return nil, false
		}
		return tagProv(Bind(a.variant, a.fn, limits...), ProvEquivalent), true
	}
	if a.variant == ForAll {
		limits, ok := limitsIntersect(a.limits, b.limits)
		if !ok {
			return nil, false
		}
		return tagProv(Bind(ForAll, AndOf(a.fn, b.fn), limits...), ProvGiven), true
	}
	limits, ok := limitsUnion(a.limits, b.limits)
	if !ok {
		return nil, false
	}
	return tagProv(Bind(Exists, OrOf(a.fn, b.fn), limits...), ProvGiven), true
}

// SwapNesting derives the ForAll-outside form of a nested quantifier:
// Exists x ForAll y P entails ForAll y Exists x P. The converse does not
// hold, so the result is tagged as an implication, never an equivalence.
func SwapNesting(b *BoundExpr) (Expr, bool) {
	if b.variant != Exists {
		return nil, false
	}
	inner, ok := b.fn.(*BoundExpr)
	if !ok || inner.variant != ForAll {
		return nil, false
	}
	// the inner domain must not depend on the outer witness
	for _, il := range inner.limits {
		for _, bd := range il.boundExprs() {
			for _, ol := range b.limits {
				if Has(bd, ol.Var) {
					return nil, false
				}
			}
		}
	}
	out := Bind(ForAll, Bind(Exists, inner.fn, b.limits...), inner.limits...)
	return tagProv(out, ProvImplied), true
}

// subsDerive is the bound-variable substitution of a quantifier: a value
// v put in for a ForAll variable yields NotContains(v, D) | P(v), the
// statement being vacuous outside the domain; for Exists the dual
// Contains(v, D) & P(v), the value being offered as a witness.
func (b *BoundExpr) subsDerive(i int, v Expr) Expr {
	lim := b.limits[i]
	dom := lim.DomainSet()
	rest := make([]Limit, 0, len(b.limits)-1)
	rest = append(rest, b.limits[:i]...)
	for _, l := range b.limits[i+1:] {
		rest = append(rest, l.SubsBounds(lim.Var, v))
	}
	body := tagProv(Bind(b.variant, b.fn.Subs(lim.Var, v), rest...), ProvSubstituted)
	if b.variant == ForAll {
		return OrOf(NotContainsOf(v, dom), body)
	}
	return AndOf(ContainsOf(v, dom), body)
}

// quantifierCollapse resolves a quantifier whose body pins its own bound
// variable with an equality: Exists x in D (x == v) is membership of v,
// ForAll x in D (x == v) says D has no other point.
func quantifierCollapse(b *BoundExpr) (Expr, bool) {
	if len(b.limits) != 1 {
		return nil, false
	}
	x := b.limits[0].Var
	rel, ok := b.fn.(*Relational)
	if !ok || rel.op != EqOp {
		return nil, false
	}
	var v Expr
	switch {
	case rel.lhs.Equal(x) && !Has(rel.rhs, x):
		v = rel.rhs
	case rel.rhs.Equal(x) && !Has(rel.lhs, x):
		v = rel.lhs
	default:
		return nil, false
	}
	dom := b.limits[0].DomainSet()
	if b.variant == Exists {
		return ContainsOf(v, dom), true
	}
	return SubsetOf(dom, FiniteSetOf(v)), true
}

// CollapseEquality rewrites a client statement through a universally
// quantified defining equality: given ForAll x in D (x == v) with v free
// of x, a statement mentioning x becomes the statement at v, tagged as
// derived by substitution.
func CollapseEquality(fa *BoundExpr, stmt Expr) (Expr, bool) {
	if fa.variant != ForAll || len(fa.limits) != 1 {
		return nil, false
	}
	x := fa.limits[0].Var
	rel, ok := fa.fn.(*Relational)
	if !ok || rel.op != EqOp {
		return nil, false
	}
	var v Expr
	switch {
	case rel.lhs.Equal(x) && !Has(rel.rhs, x):
		v = rel.rhs
	case rel.rhs.Equal(x) && !Has(rel.lhs, x):
		v = rel.lhs
	default:
		return nil, false
	}
	if !Has(stmt, x) {
		return nil, false
	}
	return tagProv(stmt.Subs(x, v).Simplify(), ProvSubstituted), true
}
