package axiom

// ============================================================
// Affine-degree extraction
// ============================================================

// AffineForm is the result of decomposing an expression as
// Coeff*x + Offset with Coeff and Offset free of x. Success is false when
// the expression is not of that shape; this mirrors the "report not
// affine, never fail" contract of the substitution engine.
type AffineForm struct {
	Coeff   Expr
	Offset  Expr
	Success bool
}

// AsAffine decomposes e as an affine form in x.
func AsAffine(e Expr, x *Symbol) AffineForm {
	if !Has(e, x) {
		return AffineForm{Coeff: N(0), Offset: e, Success: true}
	}
	switch v := e.(type) {
	case *Symbol:
		if v.Equal(x) {
			return AffineForm{Coeff: N(1), Offset: N(0), Success: true}
		}
		return AffineForm{Coeff: N(0), Offset: v, Success: true}
	case *Add:
		coeff := Expr(N(0))
		offset := Expr(N(0))
		for _, t := range v.terms {
			f := AsAffine(t, x)
			if !f.Success {
				return AffineForm{}
			}
			coeff = AddOf(coeff, f.Coeff)
			offset = AddOf(offset, f.Offset)
		}
		return AffineForm{Coeff: coeff, Offset: offset, Success: true}
	case *Mul:
		free := []Expr{}
		var dependent Expr
		for _, f := range v.factors {
			if Has(f, x) {
				if dependent != nil {
					return AffineForm{}
				}
				dependent = f
			} else {
				free = append(free, f)
			}
		}
		inner := AsAffine(dependent, x)
		if !inner.Success {
			return AffineForm{}
		}
		scale := MulOf(free...)
		return AffineForm{
			Coeff:   MulOf(scale, inner.Coeff),
			Offset:  MulOf(scale, inner.Offset),
			Success: true,
		}
	}
	return AffineForm{}
}

// IsUnitShift reports whether new = x + k for a constant shift k,
// returning k. The common case of change-of-index substitution.
func IsUnitShift(new Expr, x *Symbol) (Expr, bool) {
	f := AsAffine(new, x)
	if !f.Success || !isNumEqual(f.Coeff.Simplify(), 1) {
		return nil, false
	}
	return f.Offset.Simplify(), true
}

// SolveAffine solves e == 0 for x when e is affine in x with a nonzero
// coefficient, returning the unique solution.
func SolveAffine(e Expr, x *Symbol) (Expr, bool) {
	f := AsAffine(e, x)
	if !f.Success {
		return nil, false
	}
	coeff := f.Coeff.Simplify()
	if cn, ok := coeff.Eval(); ok {
		if cn.IsZero() {
			return nil, false
		}
		return MulOf(numRecip(cn), NegOf(f.Offset)).Simplify(), true
	}
	if !Has(coeff, x) && !coeff.Equal(N(0)) {
		return MulOf(NegOf(f.Offset), PowOf(coeff, N(-1))).Simplify(), true
	}
	return nil, false
}

// InvertAffine solves target == e for x, where e is affine in x; the
// returned expression is x in terms of the free symbols of target.
// Used to invert the map of a bound-variable substitution.
func InvertAffine(e Expr, x *Symbol, target Expr) (Expr, bool) {
	// e = a*x + b, target = e  =>  x = (target - b)/a
	f := AsAffine(e, x)
	if !f.Success {
		return nil, false
	}
	coeff := f.Coeff.Simplify()
	cn, ok := coeff.Eval()
	if !ok || cn.IsZero() {
		return nil, false
	}
	return MulOf(numRecip(cn), SubOf(target, f.Offset)).Simplify(), true
}
