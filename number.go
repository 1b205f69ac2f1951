package axiom

import (
	"fmt"
	"math/big"
)

// ============================================================
// Num — exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("axiom: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}
func NFloat(f float64) *Num { return &Num{val: new(big.Rat).SetFloat64(f)} }

func (n *Num) Simplify() Expr     { return n }
func (n *Num) Subs(_, _ Expr) Expr {
	return n
}
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) exprType() string      { return "num" }
func (n *Num) children() []Expr      { return nil }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }

// Int64 returns the integer value of n; it panics when n is not an
// integer small enough to fit.
func (n *Num) Int64() int64 {
	if !n.val.IsInt() || !n.val.Num().IsInt64() {
		panic("axiom: Int64 on non-integer " + n.String())
	}
	return n.val.Num().Int64()
}

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)
)

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

func numFromJSON(data map[string]interface{}) (Expr, error) {
	valAny, ok := data["value"]
	if !ok {
		return nil, fmt.Errorf("num: missing 'value'")
	}
	val, ok := valAny.(string)
	if !ok || val == "" {
		return nil, fmt.Errorf("num: 'value' must be a non-empty string")
	}
	r := new(big.Rat)
	if _, ok := r.SetString(val); !ok {
		return nil, fmt.Errorf("invalid num value: %s", val)
	}
	return &Num{val: r}, nil
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("axiom: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}
func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }
func numCmp(a, b *Num) int  { return a.val.Cmp(b.val) }

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.val.Cmp(new(big.Rat).SetInt64(v)) == 0
}

// ============================================================
// Infinity — signed unbounded endpoint
// ============================================================

// Infinity is the unbounded interval endpoint and the identity element of
// the optimization variants. It takes part in comparisons and interval
// arithmetic but never in Eval.
type Infinity struct{ negative bool }

var (
	Inf    = &Infinity{}
	NegInf = &Infinity{negative: true}
)

func (i *Infinity) Simplify() Expr      { return i }
func (i *Infinity) Subs(_, _ Expr) Expr { return i }
func (i *Infinity) Eval() (*Num, bool)  { return nil, false }
func (i *Infinity) Equal(other Expr) bool {
	o, ok := other.(*Infinity)
	return ok && i.negative == o.negative
}
func (i *Infinity) exprType() string { return "inf" }
func (i *Infinity) children() []Expr { return nil }

func (i *Infinity) String() string {
	if i.negative {
		return "-oo"
	}
	return "oo"
}

func (i *Infinity) LaTeX() string {
	if i.negative {
		return "-\\infty"
	}
	return "\\infty"
}

func (i *Infinity) Neg() *Infinity {
	if i.negative {
		return Inf
	}
	return NegInf
}

func (i *Infinity) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "inf", "negative": i.negative}
}

func infFromJSON(data map[string]interface{}) (Expr, error) {
	neg, _ := data["negative"].(bool)
	if neg {
		return NegInf, nil
	}
	return Inf, nil
}

// IsInfinite reports whether e is a signed infinity.
func IsInfinite(e Expr) bool {
	_, ok := e.(*Infinity)
	return ok
}

// compareExprs orders two endpoint expressions when possible. Infinities
// compare as expected; rationals compare exactly; otherwise the order is
// unknown and ok is false.
func compareExprs(a, b Expr) (cmp int, ok bool) {
	ai, aInf := a.(*Infinity)
	bi, bInf := b.(*Infinity)
	switch {
	case aInf && bInf:
		switch {
		case ai.negative == bi.negative:
			return 0, true
		case ai.negative:
			return -1, true
		default:
			return 1, true
		}
	case aInf:
		if ai.negative {
			return -1, true
		}
		return 1, true
	case bInf:
		if bi.negative {
			return 1, true
		}
		return -1, true
	}
	an, aok := a.Eval()
	bn, bok := b.Eval()
	if aok && bok {
		return numCmp(an, bn), true
	}
	if a.Equal(b) {
		return 0, true
	}
	return 0, false
}
