// Package axiom provides a symbolic computer-algebra core whose central
// abstraction is the bound-variable expression: one construct unifying
// summation, product, integration, set comprehension, quantification,
// array comprehension and min/max optimization as variants of a single
// binder type.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat)
//   - Immutable expression trees; every transformation returns a new value
//   - Capture-avoiding substitution and domain-sound simplification
//   - Best-effort rewriting: a rule that does not apply returns its input
//   - Deterministic simplification and stable output
package axiom

import (
	"encoding/json"
	"fmt"

	set "github.com/hashicorp/go-set/v3"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is the interface implemented by every node of an expression tree.
// Subs performs capture-avoiding substitution of old by new; Simplify
// applies the node's rewrite rules and returns the input unchanged when
// none fires. Eval reduces a closed arithmetic expression to a rational.
type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Subs(old, new Expr) Expr
	Eval() (*Num, bool)
	Equal(other Expr) bool
	exprType() string
	children() []Expr
	toJSON() map[string]interface{}
}

// SymbolSet is a hashed set of symbols, used for free-variable and
// bound-variable bookkeeping.
type SymbolSet = set.HashSet[*Symbol, uint64]

func newSymbolSet() *SymbolSet { return set.NewHashSet[*Symbol, uint64](0) }

// FreeSymbols returns the free (unbound) symbols of e. Symbols introduced
// by a binder's limits are excluded; symbols appearing in a limit's bounds
// are included.
func FreeSymbols(e Expr) *SymbolSet {
	out := newSymbolSet()
	collectFree(e, out)
	return out
}

func collectFree(e Expr, out *SymbolSet) {
	switch v := e.(type) {
	case *Symbol:
		out.Insert(v)
		for _, d := range v.assume.Shape {
			collectFree(d, out)
		}
	case *BoundExpr:
		inner := newSymbolSet()
		collectFree(v.fn, inner)
		// Peel limits innermost-first: a bound variable is free in the
		// bounds of its own limit's predecessors but never in the body.
		for i := len(v.limits) - 1; i >= 0; i-- {
			lim := v.limits[i]
			inner.Remove(lim.Var)
			for _, b := range lim.boundExprs() {
				collectFree(b, inner)
			}
		}
		for _, s := range inner.Slice() {
			out.Insert(s)
		}
	default:
		for _, c := range v.children() {
			collectFree(c, out)
		}
	}
}

// Has reports whether target occurs anywhere in e, bound or free.
func Has(e, target Expr) bool {
	if e.Equal(target) {
		return true
	}
	if b, ok := e.(*BoundExpr); ok {
		for _, lim := range b.limits {
			if lim.Var.Equal(target) {
				return true
			}
			for _, bd := range lim.boundExprs() {
				if Has(bd, target) {
					return true
				}
			}
		}
		return Has(b.fn, target)
	}
	for _, c := range e.children() {
		if Has(c, target) {
			return true
		}
	}
	return false
}

// ============================================================
// Top-level convenience functions
// ============================================================

func Simplify(e Expr) Expr { return e.Simplify() }
func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

// Subs substitutes new for old in expr and simplifies the result. When
// expr is a binder and old one of its own bound variables, this is the
// bound-variable form: reindexing, elimination, or a quantifier
// derivation, depending on the shape of new.
func Subs(expr, old, new Expr) Expr {
	if b, ok := expr.(*BoundExpr); ok {
		if x, ok := old.(*Symbol); ok && b.binds(x) {
			return b.LimitsSubs(x, new).Simplify()
		}
	}
	return expr.Subs(old, new).Simplify()
}

// DeepSimplify applies repeated simplification passes until stable.
// The pass count is bounded so that pathological rule interplay cannot
// loop forever.
func DeepSimplify(e Expr) Expr {
	prev := ""
	curr := e.Simplify()
	for i := 0; i < 10; i++ {
		str := curr.String()
		if str == prev {
			break
		}
		prev = str
		curr = curr.Simplify()
	}
	return curr
}

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

func jsonExpr(data map[string]interface{}, field string) (Expr, error) {
	v, ok := data[field]
	if !ok {
		return nil, fmt.Errorf("missing %q", field)
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%q must be an object", field)
	}
	return FromJSON(m)
}

func jsonExprList(data map[string]interface{}, field string) ([]Expr, error) {
	v, ok := data[field]
	if !ok {
		return nil, fmt.Errorf("missing %q", field)
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%q must be an array", field)
	}
	out := make([]Expr, len(raw))
	for i, it := range raw {
		m, ok := it.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%q[%d] must be an object", field, i)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%q[%d]: %w", field, i, err)
		}
		out[i] = e
	}
	return out, nil
}

// FromJSON rebuilds an expression from its JSON tree form. Binder nodes
// round-trip with their variant and limits; symbols round-trip with their
// explicit assumptions.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	switch typ {
	case "num":
		return numFromJSON(data)
	case "inf":
		return infFromJSON(data)
	case "sym":
		return symbolFromJSON(data)
	case "add", "mul":
		args, err := jsonExprList(data, "args")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typ, err)
		}
		if typ == "add" {
			return AddOf(args...), nil
		}
		return MulOf(args...), nil
	case "pow":
		base, err := jsonExpr(data, "base")
		if err != nil {
			return nil, fmt.Errorf("pow: %w", err)
		}
		exp, err := jsonExpr(data, "exp")
		if err != nil {
			return nil, fmt.Errorf("pow: %w", err)
		}
		return PowOf(base, exp), nil
	case "delta":
		a, err := jsonExpr(data, "a")
		if err != nil {
			return nil, fmt.Errorf("delta: %w", err)
		}
		b, err := jsonExpr(data, "b")
		if err != nil {
			return nil, fmt.Errorf("delta: %w", err)
		}
		return DeltaOf(a, b), nil
	case "piecewise":
		return piecewiseFromJSON(data)
	case "indexed":
		return indexedFromJSON(data)
	case "bool":
		return boolFromJSON(data)
	case "and", "or", "not":
		return connectiveFromJSON(typ, data)
	case "rel":
		return relationalFromJSON(data)
	case "interval":
		return intervalFromJSON(data)
	case "finiteset":
		return finiteSetFromJSON(data)
	case "universe":
		return universeFromJSON(data)
	case "contains":
		return containsFromJSON(data)
	case "subset":
		return subsetFromJSON(data)
	case "array":
		args, err := jsonExprList(data, "args")
		if err != nil {
			return nil, fmt.Errorf("array: %w", err)
		}
		return ArrayOf(args...), nil
	case "extremum":
		args, err := jsonExprList(data, "args")
		if err != nil {
			return nil, fmt.Errorf("extremum: %w", err)
		}
		if max, _ := data["max"].(bool); max {
			return MaxOf(args...), nil
		}
		return MinOf(args...), nil
	case "bound":
		return boundFromJSON(data)
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}
