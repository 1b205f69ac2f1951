package axiom

import "fmt"

// ============================================================
// Contains — the membership atom
// ============================================================

// Contains asserts (or, negated, denies) membership of an element in a
// set expression. The set side is an Expr rather than a Set so that
// comprehension binders and set-valued symbols can stand there.
type Contains struct {
	elem    Expr
	set     Expr
	negated bool
}

// ContainsOf builds elem ∈ set, deciding it eagerly when the set can.
func ContainsOf(elem, set Expr) Expr {
	return containsOf(elem, set, false)
}

// NotContainsOf builds elem ∉ set.
func NotContainsOf(elem, set Expr) Expr {
	return containsOf(elem, set, true)
}

func containsOf(elem, set Expr, negated bool) Expr {
	if s, ok := set.(Set); ok {
		switch s.SetContains(elem) {
		case TTrue:
			if negated {
				return False
			}
			return True
		case TFalse:
			if negated {
				return True
			}
			return False
		}
	}
	// Membership in a definitionally known symbol unfolds to the
	// definition.
	if sym, ok := set.(*Symbol); ok {
		if def := sym.Definition(); def != nil {
			return containsOf(elem, def, negated)
		}
	}
	return &Contains{elem: elem, set: set, negated: negated}
}

func (c *Contains) Elem() Expr    { return c.elem }
func (c *Contains) SetExpr() Expr { return c.set }
func (c *Contains) Negated() bool { return c.negated }

// Simplify re-decides membership and splits the atom over set algebra:
// membership in a union is a disjunction over its parts, in an
// intersection a conjunction; negation flips both by De Morgan.
func (c *Contains) Simplify() Expr {
	elem := c.elem.Simplify()
	set := c.set.Simplify()
	if b, ok := set.(*BoundExpr); ok && b.variant.isSetVariant() && len(b.limits) == 1 {
		if pts, ok := b.limits[0].Enumerate(); ok && len(pts) <= maxUnroll {
			parts := make([]Expr, len(pts))
			for i, p := range pts {
				parts[i] = containsOf(elem, b.fn.Subs(b.limits[0].Var, p).Simplify(), c.negated)
			}
			if (b.variant == UnionComp) != c.negated {
				return OrOf(parts...)
			}
			return AndOf(parts...)
		}
	}
	return containsOf(elem, set, c.negated)
}

func (c *Contains) String() string {
	op := " in "
	if c.negated {
		op = " notin "
	}
	return c.elem.String() + op + c.set.String()
}

func (c *Contains) LaTeX() string {
	op := " \\in "
	if c.negated {
		op = " \\notin "
	}
	return c.elem.LaTeX() + op + c.set.LaTeX()
}

func (c *Contains) Subs(old, new Expr) Expr {
	if c.Equal(old) {
		return new
	}
	return containsOf(c.elem.Subs(old, new), c.set.Subs(old, new), c.negated)
}

func (c *Contains) Eval() (*Num, bool) { return nil, false }

func (c *Contains) Equal(other Expr) bool {
	o, ok := other.(*Contains)
	return ok && c.negated == o.negated && c.elem.Equal(o.elem) && c.set.Equal(o.set)
}

func (c *Contains) exprType() string { return "contains" }
func (c *Contains) children() []Expr { return []Expr{c.elem, c.set} }

func (c *Contains) toJSON() map[string]interface{} {
	m := map[string]interface{}{
		"type": "contains",
		"elem": c.elem.toJSON(),
		"set":  c.set.toJSON(),
	}
	if c.negated {
		m["negated"] = true
	}
	return m
}

func containsFromJSON(data map[string]interface{}) (Expr, error) {
	elem, err := jsonExpr(data, "elem")
	if err != nil {
		return nil, fmt.Errorf("contains: %w", err)
	}
	set, err := jsonExpr(data, "set")
	if err != nil {
		return nil, fmt.Errorf("contains: %w", err)
	}
	negated, _ := data["negated"].(bool)
	return containsOf(elem, set, negated), nil
}

// AsKroneckerDelta renders a decidable-or-symbolic integer membership
// test as arithmetic: x ∈ {a} becomes δ(x, a), usable inside Sum bodies.
func (c *Contains) AsKroneckerDelta() (Expr, bool) {
	fs, ok := c.set.(*FiniteSet)
	if !ok || len(fs.elems) != 1 {
		return nil, false
	}
	d := DeltaOf(c.elem, fs.elems[0])
	if c.negated {
		return SubOf(N(1), d), true
	}
	return d, true
}

// ============================================================
// Subset
// ============================================================

type Subset struct {
	lhs, rhs Expr
}

// SubsetOf builds lhs ⊆ rhs, deciding what it can: enumerated members are
// tested one by one, intervals compare bounds through the intersection.
func SubsetOf(lhs, rhs Expr) Expr {
	ls, lok := lhs.(Set)
	rs, rok := rhs.(Set)
	if lok && rok {
		switch subsetOf(ls, rs) {
		case TTrue:
			return True
		case TFalse:
			return False
		}
	}
	return &Subset{lhs: lhs, rhs: rhs}
}

func subsetOf(lhs, rhs Set) Ternary {
	if lhs.IsEmptySet() == TTrue {
		return TTrue
	}
	if _, ok := rhs.(*UniversalSet); ok {
		return TTrue
	}
	if elems, ok := lhs.Enumerate(); ok {
		out := TTrue
		for _, e := range elems {
			switch rhs.SetContains(e) {
			case TFalse:
				return TFalse
			case TUnknown:
				out = TUnknown
			}
		}
		return out
	}
	if inter, ok := lhs.Intersect(rhs); ok {
		if setsEqual(inter, lhs) {
			return TTrue
		}
	}
	return TUnknown
}

func (s *Subset) Lhs() Expr { return s.lhs }
func (s *Subset) Rhs() Expr { return s.rhs }

func (s *Subset) Simplify() Expr {
	return SubsetOf(s.lhs.Simplify(), s.rhs.Simplify())
}

func (s *Subset) String() string {
	return s.lhs.String() + " subset " + s.rhs.String()
}

func (s *Subset) LaTeX() string {
	return s.lhs.LaTeX() + " \\subseteq " + s.rhs.LaTeX()
}

func (s *Subset) Subs(old, new Expr) Expr {
	if s.Equal(old) {
		return new
	}
	return SubsetOf(s.lhs.Subs(old, new), s.rhs.Subs(old, new))
}

func (s *Subset) Eval() (*Num, bool) { return nil, false }

func (s *Subset) Equal(other Expr) bool {
	o, ok := other.(*Subset)
	return ok && s.lhs.Equal(o.lhs) && s.rhs.Equal(o.rhs)
}

func (s *Subset) exprType() string { return "subset" }
func (s *Subset) children() []Expr { return []Expr{s.lhs, s.rhs} }

func (s *Subset) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type": "subset",
		"lhs":  s.lhs.toJSON(),
		"rhs":  s.rhs.toJSON(),
	}
}

func subsetFromJSON(data map[string]interface{}) (Expr, error) {
	lhs, err := jsonExpr(data, "lhs")
	if err != nil {
		return nil, fmt.Errorf("subset: %w", err)
	}
	rhs, err := jsonExpr(data, "rhs")
	if err != nil {
		return nil, fmt.Errorf("subset: %w", err)
	}
	return SubsetOf(lhs, rhs), nil
}

// ============================================================
// Condition-to-domain conversion
// ============================================================

// domainConditioned converts a boolean condition on x into the set of x
// it admits. Affine relations become intervals or points; membership
// atoms yield their set; connectives intersect and union. ok is false
// when the condition does not translate.
func domainConditioned(cond Expr, x *Symbol) (Set, bool) {
	switch v := cond.(type) {
	case *BoolAtom:
		if v.val {
			return Universe, true
		}
		return EmptySet, true
	case *Contains:
		if !v.elem.Equal(x) || v.negated {
			return nil, false
		}
		s, ok := v.set.(Set)
		if !ok {
			return nil, false
		}
		return s, true
	case *And:
		out := Set(Universe)
		for _, a := range v.args {
			d, ok := domainConditioned(a, x)
			if !ok {
				return nil, false
			}
			merged, ok := out.Intersect(d)
			if !ok {
				return nil, false
			}
			out = merged
		}
		return out, true
	case *Or:
		out := Set(EmptySet)
		for _, a := range v.args {
			d, ok := domainConditioned(a, x)
			if !ok {
				return nil, false
			}
			merged, ok := out.UnionSet(d)
			if !ok {
				return nil, false
			}
			out = merged
		}
		return out, true
	case *Not:
		pushed := NotOf(v.arg)
		if inner, ok := pushed.(*Not); ok && inner.arg.Equal(v.arg) {
			return nil, false
		}
		return domainConditioned(pushed, x)
	case *Relational:
		return relationDomain(v, x)
	}
	return nil, false
}

// relationDomain solves an affine relation for x and renders the solution
// set. A negative coefficient flips the comparison.
func relationDomain(rel *Relational, x *Symbol) (Set, bool) {
	diff := SubOf(rel.lhs, rel.rhs).Simplify()
	form := AsAffine(diff, x)
	if !form.Success {
		return nil, false
	}
	c, ok := form.Coeff.Simplify().Eval()
	if !ok || c.IsZero() {
		return nil, false
	}
	// c*x + k  op  0   =>   x  op'  -k/c
	bound := MulOf(numNeg(numRecip(c)), form.Offset).Simplify()
	op := rel.op
	if c.IsNegative() {
		switch op {
		case LtOp:
			op = GtOp
		case LeOp:
			op = GeOp
		case GtOp:
			op = LtOp
		case GeOp:
			op = LeOp
		}
	}
	integer := x.IsInteger()
	switch op {
	case EqOp:
		return FiniteSetOf(bound), true
	case LtOp:
		return newInterval(NegInf, bound, true, true, integer), true
	case LeOp:
		return newInterval(NegInf, bound, true, false, integer), true
	case GtOp:
		return newInterval(bound, Inf, true, true, integer), true
	case GeOp:
		return newInterval(bound, Inf, false, true, integer), true
	}
	return nil, false
}
