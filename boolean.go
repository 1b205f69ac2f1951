package axiom

import (
	"fmt"
	"sort"
	"strings"
)

// ============================================================
// BoolAtom — logical constants
// ============================================================

type BoolAtom struct{ val bool }

var (
	True  = &BoolAtom{val: true}
	False = &BoolAtom{val: false}
)

func (b *BoolAtom) Simplify() Expr      { return b }
func (b *BoolAtom) Subs(_, _ Expr) Expr { return b }
func (b *BoolAtom) Eval() (*Num, bool)  { return nil, false }
func (b *BoolAtom) Value() bool         { return b.val }

func (b *BoolAtom) Equal(other Expr) bool {
	o, ok := other.(*BoolAtom)
	return ok && b.val == o.val
}

func (b *BoolAtom) String() string {
	if b.val {
		return "True"
	}
	return "False"
}

func (b *BoolAtom) LaTeX() string {
	if b.val {
		return "\\text{True}"
	}
	return "\\text{False}"
}

func (b *BoolAtom) exprType() string { return "bool" }
func (b *BoolAtom) children() []Expr { return nil }

func (b *BoolAtom) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "bool", "value": b.val}
}

func boolFromJSON(data map[string]interface{}) (Expr, error) {
	v, ok := data["value"].(bool)
	if !ok {
		return nil, fmt.Errorf("bool: 'value' must be a boolean")
	}
	if v {
		return True, nil
	}
	return False, nil
}

// IsBoolean reports whether e is a proposition: a logical constant,
// connective, relational atom, membership atom, or quantified boolean.
func IsBoolean(e Expr) bool {
	switch v := e.(type) {
	case *BoolAtom, *And, *Or, *Not, *Relational, *Contains, *Subset:
		return true
	case *BoundExpr:
		return v.variant == ForAll || v.variant == Exists
	}
	return false
}

// ============================================================
// And / Or — n-ary connectives
// ============================================================

type And struct{ args []Expr }

// AndOf conjoins propositions: flattens nested conjunctions, drops True,
// short-circuits on False, and merges quantified operands through the
// quantifier combinator.
func AndOf(args ...Expr) Expr {
	flat := flattenConnective(args, true)
	if len(flat) == 0 {
		return True
	}
	for _, a := range flat {
		if a.Equal(False) {
			return False
		}
	}
	flat = mergeQuantified(flat, true)
	flat = dedupeProps(flat)
	if len(flat) == 0 {
		return True
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &And{args: flat}
}

func flattenConnective(args []Expr, conj bool) []Expr {
	flat := make([]Expr, 0, len(args))
	for _, a := range args {
		s := a.Simplify()
		if conj {
			if inner, ok := s.(*And); ok {
				flat = append(flat, inner.args...)
				continue
			}
			if s.Equal(True) {
				continue
			}
		} else {
			if inner, ok := s.(*Or); ok {
				flat = append(flat, inner.args...)
				continue
			}
			if s.Equal(False) {
				continue
			}
		}
		flat = append(flat, s)
	}
	return flat
}

func dedupeProps(args []Expr) []Expr {
	seen := map[string]bool{}
	out := make([]Expr, 0, len(args))
	for _, a := range args {
		key := a.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (a *And) Simplify() Expr { return AndOf(a.args...) }
func (a *And) Args() []Expr   { return a.args }

func (a *And) String() string {
	parts := make([]string, len(a.args))
	for i, t := range a.args {
		parts[i] = propParen(t)
	}
	return strings.Join(parts, " & ")
}

func (a *And) LaTeX() string {
	parts := make([]string, len(a.args))
	for i, t := range a.args {
		parts[i] = t.LaTeX()
	}
	return strings.Join(parts, " \\wedge ")
}

func propParen(e Expr) string {
	switch e.(type) {
	case *And, *Or:
		return "(" + e.String() + ")"
	}
	return e.String()
}

func (a *And) Subs(old, new Expr) Expr {
	if a.Equal(old) {
		return new
	}
	args := make([]Expr, len(a.args))
	for i, t := range a.args {
		args[i] = t.Subs(old, new)
	}
	return AndOf(args...)
}

func (a *And) Eval() (*Num, bool) { return nil, false }

func (a *And) Equal(other Expr) bool {
	o, ok := other.(*And)
	if !ok || len(a.args) != len(o.args) {
		return false
	}
	for i := range a.args {
		if !a.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (a *And) exprType() string { return "and" }
func (a *And) children() []Expr { return a.args }

func (a *And) toJSON() map[string]interface{} {
	return connectiveJSON("and", a.args)
}

type Or struct{ args []Expr }

// OrOf disjoins propositions, dual to AndOf.
func OrOf(args ...Expr) Expr {
	flat := flattenConnective(args, false)
	if len(flat) == 0 {
		return False
	}
	for _, a := range flat {
		if a.Equal(True) {
			return True
		}
	}
	flat = mergeQuantified(flat, false)
	flat = dedupeProps(flat)
	if len(flat) == 0 {
		return False
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Or{args: flat}
}

func (o *Or) Simplify() Expr { return OrOf(o.args...) }
func (o *Or) Args() []Expr   { return o.args }

func (o *Or) String() string {
	parts := make([]string, len(o.args))
	for i, t := range o.args {
		parts[i] = propParen(t)
	}
	return strings.Join(parts, " | ")
}

func (o *Or) LaTeX() string {
	parts := make([]string, len(o.args))
	for i, t := range o.args {
		parts[i] = t.LaTeX()
	}
	return strings.Join(parts, " \\vee ")
}

func (o *Or) Subs(old, new Expr) Expr {
	if o.Equal(old) {
		return new
	}
	args := make([]Expr, len(o.args))
	for i, t := range o.args {
		args[i] = t.Subs(old, new)
	}
	return OrOf(args...)
}

func (o *Or) Eval() (*Num, bool) { return nil, false }

func (o *Or) Equal(other Expr) bool {
	oo, ok := other.(*Or)
	if !ok || len(o.args) != len(oo.args) {
		return false
	}
	for i := range o.args {
		if !o.args[i].Equal(oo.args[i]) {
			return false
		}
	}
	return true
}

func (o *Or) exprType() string { return "or" }
func (o *Or) children() []Expr { return o.args }

func (o *Or) toJSON() map[string]interface{} {
	return connectiveJSON("or", o.args)
}

func connectiveJSON(typ string, args []Expr) map[string]interface{} {
	as := make([]map[string]interface{}, len(args))
	for i, a := range args {
		as[i] = a.toJSON()
	}
	return map[string]interface{}{"type": typ, "args": as}
}

func connectiveFromJSON(typ string, data map[string]interface{}) (Expr, error) {
	if typ == "not" {
		arg, err := jsonExpr(data, "arg")
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		return NotOf(arg), nil
	}
	args, err := jsonExprList(data, "args")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", typ, err)
	}
	if typ == "and" {
		return AndOf(args...), nil
	}
	return OrOf(args...), nil
}

// ============================================================
// Not — negation
// ============================================================

type Not struct{ arg Expr }

// NotOf negates a proposition, pushing the negation through constants,
// double negation, relational atoms, De Morgan, and membership atoms.
func NotOf(arg Expr) Expr {
	s := arg.Simplify()
	switch v := s.(type) {
	case *BoolAtom:
		if v.val {
			return False
		}
		return True
	case *Not:
		return v.arg
	case *Relational:
		return &Relational{op: v.op.negated(), lhs: v.lhs, rhs: v.rhs}
	case *And:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = NotOf(a)
		}
		return OrOf(args...)
	case *Or:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = NotOf(a)
		}
		return AndOf(args...)
	case *Contains:
		return &Contains{elem: v.elem, set: v.set, negated: !v.negated}
	}
	return &Not{arg: s}
}

func (n *Not) Simplify() Expr { return NotOf(n.arg) }
func (n *Not) Arg() Expr      { return n.arg }
func (n *Not) String() string { return "~" + propParen(n.arg) }
func (n *Not) LaTeX() string  { return "\\neg " + n.arg.LaTeX() }

func (n *Not) Subs(old, new Expr) Expr {
	if n.Equal(old) {
		return new
	}
	return NotOf(n.arg.Subs(old, new))
}

func (n *Not) Eval() (*Num, bool) { return nil, false }

func (n *Not) Equal(other Expr) bool {
	o, ok := other.(*Not)
	return ok && n.arg.Equal(o.arg)
}

func (n *Not) exprType() string { return "not" }
func (n *Not) children() []Expr { return []Expr{n.arg} }

func (n *Not) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "not", "arg": n.arg.toJSON()}
}

// ============================================================
// Relational — equality and order atoms
// ============================================================

type RelOp int

const (
	EqOp RelOp = iota
	NeOp
	LtOp
	LeOp
	GtOp
	GeOp
)

func (op RelOp) String() string {
	switch op {
	case EqOp:
		return "=="
	case NeOp:
		return "!="
	case LtOp:
		return "<"
	case LeOp:
		return "<="
	case GtOp:
		return ">"
	case GeOp:
		return ">="
	}
	return "?"
}

func (op RelOp) latex() string {
	switch op {
	case EqOp:
		return "="
	case NeOp:
		return "\\neq"
	case LtOp:
		return "<"
	case LeOp:
		return "\\leq"
	case GtOp:
		return ">"
	case GeOp:
		return "\\geq"
	}
	return "?"
}

func (op RelOp) negated() RelOp {
	switch op {
	case EqOp:
		return NeOp
	case NeOp:
		return EqOp
	case LtOp:
		return GeOp
	case LeOp:
		return GtOp
	case GtOp:
		return LeOp
	case GeOp:
		return LtOp
	}
	return op
}

// holds evaluates the relation between two ordered values.
func (op RelOp) holds(cmp int) bool {
	switch op {
	case EqOp:
		return cmp == 0
	case NeOp:
		return cmp != 0
	case LtOp:
		return cmp < 0
	case LeOp:
		return cmp <= 0
	case GtOp:
		return cmp > 0
	case GeOp:
		return cmp >= 0
	}
	return false
}

type Relational struct {
	op       RelOp
	lhs, rhs Expr
}

func RelOf(op RelOp, lhs, rhs Expr) Expr {
	return (&Relational{op: op, lhs: lhs, rhs: rhs}).Simplify()
}

func EqOf(lhs, rhs Expr) Expr { return RelOf(EqOp, lhs, rhs) }
func NeOf(lhs, rhs Expr) Expr { return RelOf(NeOp, lhs, rhs) }
func LtOf(lhs, rhs Expr) Expr { return RelOf(LtOp, lhs, rhs) }
func LeOf(lhs, rhs Expr) Expr { return RelOf(LeOp, lhs, rhs) }
func GtOf(lhs, rhs Expr) Expr { return RelOf(GtOp, lhs, rhs) }
func GeOf(lhs, rhs Expr) Expr { return RelOf(GeOp, lhs, rhs) }

func (r *Relational) Op() RelOp { return r.op }
func (r *Relational) Lhs() Expr { return r.lhs }
func (r *Relational) Rhs() Expr { return r.rhs }

func (r *Relational) Simplify() Expr {
	lhs := r.lhs.Simplify()
	rhs := r.rhs.Simplify()
	if cmp, ok := compareExprs(lhs, rhs); ok {
		if r.op.holds(cmp) {
			return True
		}
		return False
	}
	if lhs.Equal(rhs) {
		// Order is unknown but identity is not.
		switch r.op {
		case EqOp, LeOp, GeOp:
			return True
		case NeOp, LtOp, GtOp:
			return False
		}
	}
	return &Relational{op: r.op, lhs: lhs, rhs: rhs}
}

func (r *Relational) String() string {
	return r.lhs.String() + " " + r.op.String() + " " + r.rhs.String()
}

func (r *Relational) LaTeX() string {
	return r.lhs.LaTeX() + " " + r.op.latex() + " " + r.rhs.LaTeX()
}

func (r *Relational) Subs(old, new Expr) Expr {
	if r.Equal(old) {
		return new
	}
	return RelOf(r.op, r.lhs.Subs(old, new), r.rhs.Subs(old, new))
}

func (r *Relational) Eval() (*Num, bool) { return nil, false }

func (r *Relational) Equal(other Expr) bool {
	o, ok := other.(*Relational)
	return ok && r.op == o.op && r.lhs.Equal(o.lhs) && r.rhs.Equal(o.rhs)
}

func (r *Relational) exprType() string { return "rel" }
func (r *Relational) children() []Expr { return []Expr{r.lhs, r.rhs} }

func (r *Relational) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type": "rel",
		"op":   r.op.String(),
		"lhs":  r.lhs.toJSON(),
		"rhs":  r.rhs.toJSON(),
	}
}

func relationalFromJSON(data map[string]interface{}) (Expr, error) {
	opStr, ok := data["op"].(string)
	if !ok {
		return nil, fmt.Errorf("rel: 'op' must be a string")
	}
	var op RelOp
	switch opStr {
	case "==":
		op = EqOp
	case "!=":
		op = NeOp
	case "<":
		op = LtOp
	case "<=":
		op = LeOp
	case ">":
		op = GtOp
	case ">=":
		op = GeOp
	default:
		return nil, fmt.Errorf("rel: unknown op %q", opStr)
	}
	lhs, err := jsonExpr(data, "lhs")
	if err != nil {
		return nil, fmt.Errorf("rel: %w", err)
	}
	rhs, err := jsonExpr(data, "rhs")
	if err != nil {
		return nil, fmt.Errorf("rel: %w", err)
	}
	return RelOf(op, lhs, rhs), nil
}
