package axiom

// ============================================================
// Substitution over binders
// ============================================================

// binds reports whether x is a bound variable of this binder.
func (b *BoundExpr) binds(x *Symbol) bool {
	for _, lim := range b.limits {
		if lim.Var.Equal(x) {
			return true
		}
	}
	return false
}

// Subs performs free-variable substitution. Occurrences of a variable
// bound by this binder are out of reach: substituting for one of our own
// bound variables is a no-op here (see LimitsSubs for the reindexing
// form). Bound variables whose names collide with new's free variables
// are alpha-converted to fresh dummies first, and converted back when the
// original name is no longer at risk of capture.
func (b *BoundExpr) Subs(old, new Expr) Expr {
	if b.Equal(old) {
		return new
	}
	if sym, ok := old.(*Symbol); ok && b.binds(sym) {
		return b
	}
	for _, lim := range b.limits {
		if Has(old, lim.Var) {
			return b
		}
	}

	cur := b
	newFree := FreeSymbols(new)
	renamed := [][2]*Symbol{}
	for _, lim := range b.limits {
		if newFree.Contains(lim.Var) {
			d := lim.Var.FreshDummy()
			cur = cur.renameVar(lim.Var, d)
			renamed = append(renamed, [2]*Symbol{lim.Var, d})
		}
	}

	fn := cur.fn.Subs(old, new)
	limits := make([]Limit, len(cur.limits))
	for i, lim := range cur.limits {
		limits[i] = lim.SubsBounds(old, new)
	}
	out := Bind(cur.variant, fn, limits...)

	// Restore original names where the collision is gone.
	for _, pair := range renamed {
		x, d := pair[0], pair[1]
		ob, ok := out.(*BoundExpr)
		if !ok || !ob.binds(d) {
			continue
		}
		if FreeSymbols(out).Contains(x) {
			continue
		}
		out = ob.renameVar(d, x)
	}
	return out
}

// renameVar rewrites the binder with bound variable x renamed to d,
// including occurrences in the bounds of inner limits.
func (b *BoundExpr) renameVar(x, d *Symbol) *BoundExpr {
	fn := b.fn.Subs(x, d)
	limits := make([]Limit, len(b.limits))
	for i, lim := range b.limits {
		nl := lim.SubsBounds(x, d)
		if nl.Var.Equal(x) {
			nl = nl.WithVar(d)
		}
		limits[i] = nl
	}
	return &BoundExpr{variant: b.variant, fn: fn, limits: limits, prov: b.prov}
}

// LimitsSubs substitutes new for the bound variable x of this binder.
// Three behaviors, tried in order:
//
//   - x free in new and affine (new = c*x + k, numeric c != 0): change of
//     index. The body is rewritten with the inverse map and the interval
//     bounds follow the same transform, swapping orientation when c < 0.
//   - x absent from new and the limit unconstrained: the limit is
//     eliminated and x replaced throughout the body.
//   - anything else: the receiver is returned unchanged. An inapplicable
//     substitution is not an error.
//
// Substituting a concrete value into a quantifier instead derives the
// weakened membership statement (see subsDerive).
func (b *BoundExpr) LimitsSubs(x *Symbol, new Expr) Expr {
	idx := -1
	for i, lim := range b.limits {
		if lim.Var.Equal(x) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return b.Subs(x, new)
	}
	lim := b.limits[idx]

	if !Has(new, x) {
		if b.variant.IsBooleanVariant() {
			return b.subsDerive(idx, new)
		}
		if lim.IsFree() {
			fn := b.fn.Subs(x, new)
			rest := make([]Limit, 0, len(b.limits)-1)
			rest = append(rest, b.limits[:idx]...)
			for _, l := range b.limits[idx+1:] {
				rest = append(rest, l.SubsBounds(x, new))
			}
			return Bind(b.variant, fn, rest...)
		}
		return b
	}

	form := AsAffine(new, x)
	if !form.Success {
		return b
	}
	c, ok := form.Coeff.Simplify().Eval()
	if !ok || c.IsZero() {
		return b
	}
	// Inverse map, reusing x as the running variable: x = (x - k)/c.
	inv, ok := InvertAffine(new, x, x)
	if !ok {
		return b
	}

	rebuild := func(newLim Limit) Expr {
		fn := b.fn.Subs(x, inv)
		limits := make([]Limit, len(b.limits))
		copy(limits, b.limits[:idx])
		limits[idx] = newLim
		for j := idx + 1; j < len(b.limits); j++ {
			limits[j] = b.limits[j].SubsBounds(x, inv)
		}
		return Bind(b.variant, fn, limits...)
	}

	switch {
	case lim.IsRange():
		if k, ok := IsUnitShift(new, x); ok {
			return rebuild(Range(x, AddOf(lim.Lo, k).Simplify(), AddOf(lim.Hi, k).Simplify()))
		}
		// Larger strides leave gaps in an integer range; besides the shift,
		// only the reflections keep the reindexed domain contiguous.
		if !c.IsNegOne() {
			return b
		}
		lo := AddOf(MulOf(c, lim.Hi), form.Offset).Simplify()
		hi := AddOf(MulOf(c, lim.Lo), form.Offset).Simplify()
		return rebuild(Range(x, lo, hi))
	case lim.IsFree():
		// An affine bijection maps an unbounded domain onto itself, except
		// that non-unit strides are not onto the integers.
		if x.IsInteger() && !c.IsOne() && !c.IsNegOne() {
			return b
		}
		return rebuild(Free(x))
	}
	return b
}
