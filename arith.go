package axiom

import (
	"fmt"
	"sort"
	"strings"
)

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// NegOf returns -e.
func NegOf(e Expr) Expr { return MulOf(N(-1), e) }

// SubOf returns a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, NegOf(b)) }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}
	numAccum := N(0)
	coeffs := map[string]*Num{}
	cores := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, v)
			continue
		}
		coeff, core := extractCoefficient(t)
		key := core.String()
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			coeffs[key] = N(0)
			cores[key] = core
		}
		coeffs[key] = numAdd(coeffs[key], coeff)
	}
	sort.Strings(order)
	result := []Expr{}
	for _, key := range order {
		coeff := coeffs[key]
		if coeff.IsZero() {
			continue
		}
		if coeff.IsOne() {
			result = append(result, cores[key])
		} else {
			result = append(result, MulOf(coeff, cores[key]))
		}
	}
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

// extractCoefficient splits e into a rational coefficient and a core.
func extractCoefficient(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if coeff, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: rest}
		}
	}
	return N(1), e
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) LaTeX() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.LaTeX()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Subs(old, new Expr) Expr {
	if a.Equal(old) {
		return new
	}
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Subs(old, new)
	}
	return AddOf(newTerms...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) exprType() string { return "add" }
func (a *Add) children() []Expr { return a.terms }
func (a *Add) Terms() []Expr    { return a.terms }

func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "args": ts}
}

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	coeff := N(1)
	others := []Expr{}
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
		} else {
			others = append(others, f)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(others) == 0 {
		return coeff
	}

	// Precompute sort keys to avoid repeated String() calls in comparator.
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	sorted := make([]Expr, len(ks))
	for i := range ks {
		sorted[i] = ks[i].e
	}
	others = sorted

	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) LaTeX() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "\\left(" + f.LaTeX() + "\\right)"
		} else {
			parts[i] = f.LaTeX()
		}
	}
	return strings.Join(parts, " ")
}

func (m *Mul) Subs(old, new Expr) Expr {
	if m.Equal(old) {
		return new
	}
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Subs(old, new)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) exprType() string { return "mul" }
func (m *Mul) children() []Expr { return m.factors }
func (m *Mul) Factors() []Expr  { return m.factors }

func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "args": fs}
}

// ============================================================
// Pow — base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok && en.IsZero() {
		return N(1)
	}
	if en, ok := exp.(*Num); ok && en.IsOne() {
		return base
	}

	// Handle 0^exp carefully.
	if bn, ok := base.(*Num); ok && bn.IsZero() {
		if en, ok2 := exp.(*Num); ok2 {
			// 0^0 is indeterminate; 0^negative is division by zero.
			if en.IsZero() || en.IsNegative() {
				return &Pow{base: base, exp: exp}
			}
		}
		return N(0)
	}

	if bn, ok := base.(*Num); ok && bn.IsOne() {
		return N(1)
	}
	if bn, ok := base.(*Num); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			e := en.val.Num().Int64()
			if e >= 0 && e <= 20 {
				result := N(1)
				for i := int64(0); i < e; i++ {
					result = numMul(result, bn)
				}
				return result
			}
			if e < 0 && e >= -20 {
				result := N(1)
				for i := int64(0); i < -e; i++ {
					result = numMul(result, bn)
				}
				return numRecip(result)
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp).Simplify())
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul:
		baseStr = "(" + baseStr + ")"
	}
	return baseStr + "^" + p.exp.String()
}

func (p *Pow) LaTeX() string {
	baseStr := p.base.LaTeX()
	switch p.base.(type) {
	case *Add, *Mul:
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Subs(old, new Expr) Expr {
	if p.Equal(old) {
		return new
	}
	return PowOf(p.base.Subs(old, new), p.exp.Subs(old, new))
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 || !e.IsInteger() {
		return nil, false
	}
	n := e.val.Num().Int64()
	if n < -20 || n > 20 {
		return nil, false
	}
	result := N(1)
	neg := n < 0
	if neg {
		n = -n
	}
	for i := int64(0); i < n; i++ {
		result = numMul(result, b)
	}
	if neg {
		if result.IsZero() {
			return nil, false
		}
		result = numRecip(result)
	}
	return result, true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) exprType() string { return "pow" }
func (p *Pow) children() []Expr { return []Expr{p.base, p.exp} }
func (p *Pow) Base() Expr       { return p.base }
func (p *Pow) Exp() Expr        { return p.exp }

func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}

// ============================================================
// KroneckerDelta — arithmetic membership indicator
// ============================================================

type KroneckerDelta struct{ a, b Expr }

func DeltaOf(a, b Expr) Expr { return (&KroneckerDelta{a: a, b: b}).Simplify() }

func (k *KroneckerDelta) Simplify() Expr {
	a := k.a.Simplify()
	b := k.b.Simplify()
	if a.Equal(b) {
		return N(1)
	}
	an, aok := a.Eval()
	bn, bok := b.Eval()
	if aok && bok && numCmp(an, bn) != 0 {
		return N(0)
	}
	// Canonical argument order keeps delta(x,y) == delta(y,x).
	if a.String() > b.String() {
		a, b = b, a
	}
	return &KroneckerDelta{a: a, b: b}
}

func (k *KroneckerDelta) String() string {
	return "delta(" + k.a.String() + ", " + k.b.String() + ")"
}

func (k *KroneckerDelta) LaTeX() string {
	return "\\delta_{" + k.a.LaTeX() + " " + k.b.LaTeX() + "}"
}

func (k *KroneckerDelta) Subs(old, new Expr) Expr {
	if k.Equal(old) {
		return new
	}
	return DeltaOf(k.a.Subs(old, new), k.b.Subs(old, new))
}

func (k *KroneckerDelta) Eval() (*Num, bool) {
	an, aok := k.a.Eval()
	bn, bok := k.b.Eval()
	if !aok || !bok {
		return nil, false
	}
	if numCmp(an, bn) == 0 {
		return N(1), true
	}
	return N(0), true
}

func (k *KroneckerDelta) Equal(other Expr) bool {
	o, ok := other.(*KroneckerDelta)
	return ok && k.a.Equal(o.a) && k.b.Equal(o.b)
}

func (k *KroneckerDelta) exprType() string { return "delta" }
func (k *KroneckerDelta) children() []Expr { return []Expr{k.a, k.b} }

func (k *KroneckerDelta) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "delta", "a": k.a.toJSON(), "b": k.b.toJSON()}
}

// ============================================================
// Piecewise — ordered case split
// ============================================================

// Branch pairs a value with the condition under which it applies.
// Branches are tried in order; the last branch of a total Piecewise has
// condition True.
type Branch struct {
	Val  Expr
	Cond Expr
}

type Piecewise struct{ branches []Branch }

func PiecewiseOf(branches ...Branch) Expr {
	if len(branches) == 0 {
		panic("axiom: Piecewise needs at least one branch")
	}
	return (&Piecewise{branches: branches}).Simplify()
}

func (p *Piecewise) Branches() []Branch { return p.branches }

func (p *Piecewise) Simplify() Expr {
	kept := make([]Branch, 0, len(p.branches))
	for _, br := range p.branches {
		cond := br.Cond.Simplify()
		if cond.Equal(False) {
			continue
		}
		kept = append(kept, Branch{Val: br.Val.Simplify(), Cond: cond})
		if cond.Equal(True) {
			break
		}
	}
	if len(kept) == 0 {
		return &Piecewise{branches: []Branch{{Val: N(0), Cond: True}}}
	}
	if len(kept) == 1 && kept[0].Cond.Equal(True) {
		return kept[0].Val
	}
	return &Piecewise{branches: kept}
}

func (p *Piecewise) String() string {
	parts := make([]string, len(p.branches))
	for i, br := range p.branches {
		parts[i] = "(" + br.Val.String() + ", " + br.Cond.String() + ")"
	}
	return "Piecewise(" + strings.Join(parts, ", ") + ")"
}

func (p *Piecewise) LaTeX() string {
	var sb strings.Builder
	sb.WriteString("\\begin{cases}")
	for i, br := range p.branches {
		if i > 0 {
			sb.WriteString(" \\\\ ")
		}
		sb.WriteString(br.Val.LaTeX())
		if br.Cond.Equal(True) {
			sb.WriteString(" & \\text{otherwise}")
		} else {
			sb.WriteString(" & " + br.Cond.LaTeX())
		}
	}
	sb.WriteString("\\end{cases}")
	return sb.String()
}

func (p *Piecewise) Subs(old, new Expr) Expr {
	if p.Equal(old) {
		return new
	}
	branches := make([]Branch, len(p.branches))
	for i, br := range p.branches {
		branches[i] = Branch{Val: br.Val.Subs(old, new), Cond: br.Cond.Subs(old, new)}
	}
	return PiecewiseOf(branches...)
}

func (p *Piecewise) Eval() (*Num, bool) { return nil, false }

func (p *Piecewise) Equal(other Expr) bool {
	o, ok := other.(*Piecewise)
	if !ok || len(p.branches) != len(o.branches) {
		return false
	}
	for i := range p.branches {
		if !p.branches[i].Val.Equal(o.branches[i].Val) ||
			!p.branches[i].Cond.Equal(o.branches[i].Cond) {
			return false
		}
	}
	return true
}

func (p *Piecewise) exprType() string { return "piecewise" }

func (p *Piecewise) children() []Expr {
	out := make([]Expr, 0, 2*len(p.branches))
	for _, br := range p.branches {
		out = append(out, br.Val, br.Cond)
	}
	return out
}

func (p *Piecewise) toJSON() map[string]interface{} {
	brs := make([]map[string]interface{}, len(p.branches))
	for i, br := range p.branches {
		brs[i] = map[string]interface{}{"val": br.Val.toJSON(), "cond": br.Cond.toJSON()}
	}
	return map[string]interface{}{"type": "piecewise", "branches": brs}
}

func piecewiseFromJSON(data map[string]interface{}) (Expr, error) {
	raw, ok := data["branches"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("piecewise: 'branches' must be an array")
	}
	branches := make([]Branch, len(raw))
	for i, it := range raw {
		m, ok := it.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("piecewise: branches[%d] must be an object", i)
		}
		val, err := jsonExpr(m, "val")
		if err != nil {
			return nil, fmt.Errorf("piecewise: branches[%d]: %w", i, err)
		}
		cond, err := jsonExpr(m, "cond")
		if err != nil {
			return nil, fmt.Errorf("piecewise: branches[%d]: %w", i, err)
		}
		branches[i] = Branch{Val: val, Cond: cond}
	}
	return PiecewiseOf(branches...), nil
}

// ============================================================
// Indexed — array element access
// ============================================================

type Indexed struct {
	base Expr
	idx  Expr
}

func IndexedOf(base, idx Expr) Expr { return (&Indexed{base: base, idx: idx}).Simplify() }

func (ix *Indexed) Base() Expr  { return ix.base }
func (ix *Indexed) Index() Expr { return ix.idx }

func (ix *Indexed) Simplify() Expr {
	base := ix.base.Simplify()
	idx := ix.idx.Simplify()
	if b, ok := base.(*BoundExpr); ok && b.variant == Mapping {
		if out, changed := b.indexInnermost(idx); changed {
			return out
		}
	}
	if arr, ok := base.(*Array); ok {
		if n, ok2 := idx.Eval(); ok2 && n.IsInteger() {
			if k := n.Int64(); k >= 0 && k < int64(len(arr.elems)) {
				return arr.elems[k]
			}
		}
	}
	return &Indexed{base: base, idx: idx}
}

func (ix *Indexed) String() string { return ix.base.String() + "[" + ix.idx.String() + "]" }
func (ix *Indexed) LaTeX() string  { return ix.base.LaTeX() + "_{" + ix.idx.LaTeX() + "}" }

func (ix *Indexed) Subs(old, new Expr) Expr {
	if ix.Equal(old) {
		return new
	}
	return IndexedOf(ix.base.Subs(old, new), ix.idx.Subs(old, new))
}

func (ix *Indexed) Eval() (*Num, bool) { return nil, false }

func (ix *Indexed) Equal(other Expr) bool {
	o, ok := other.(*Indexed)
	return ok && ix.base.Equal(o.base) && ix.idx.Equal(o.idx)
}

func (ix *Indexed) exprType() string { return "indexed" }
func (ix *Indexed) children() []Expr { return []Expr{ix.base, ix.idx} }

func (ix *Indexed) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "indexed", "base": ix.base.toJSON(), "index": ix.idx.toJSON()}
}

func indexedFromJSON(data map[string]interface{}) (Expr, error) {
	base, err := jsonExpr(data, "base")
	if err != nil {
		return nil, fmt.Errorf("indexed: %w", err)
	}
	idx, err := jsonExpr(data, "index")
	if err != nil {
		return nil, fmt.Errorf("indexed: %w", err)
	}
	return IndexedOf(base, idx), nil
}
