package axiom_test

import (
	"testing"

	axiom "github.com/cosmosZhou/sagemath-sub000"
)

// ============================================================
// Free-variable substitution
// ============================================================

func TestSubs_BoundVariableUntouchable(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	b := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), n))
	got := b.Subs(x, axiom.N(3))
	if !got.Equal(b) {
		t.Errorf("substituting for the bound variable should be a no-op, got %s", got.String())
	}
}

func TestSubs_FreeVariableInBody(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	n := axiom.IntVar("n")
	b := axiom.SumOf(axiom.MulOf(x, y), axiom.Range(x, axiom.N(0), n))
	got := b.Subs(y, axiom.N(2))
	want := axiom.SumOf(axiom.MulOf(axiom.N(2), x), axiom.Range(x, axiom.N(0), n))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want.String(), got.String())
	}
}

func TestSubs_RoundTripPreservesAlpha(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	z := axiom.S("z")
	n := axiom.IntVar("n")
	e := axiom.SumOf(axiom.MulOf(x, y), axiom.Range(x, axiom.N(0), n))
	got := e.Subs(y, z).Subs(z, y)
	if !got.Equal(e) {
		t.Errorf("subs y->z->y should round-trip, got %s", got.String())
	}
}

func TestSubs_CaptureAvoidance(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.IntVar("y")
	n := axiom.IntVar("n")
	e := axiom.SumOf(axiom.MulOf(x, y), axiom.Range(x, axiom.N(0), n))
	got := e.Subs(y, axiom.AddOf(x, axiom.N(1)))
	b, ok := got.(*axiom.BoundExpr)
	if !ok {
		t.Fatalf("expected a binder, got %s", got.String())
	}
	if b.Limits()[0].Var.Equal(x) {
		t.Errorf("bound variable should be renamed away from the incoming x: %s", got.String())
	}
	if !axiom.FreeSymbols(got).Contains(x) {
		t.Errorf("x must stay free after substitution: %s", got.String())
	}
}

// ============================================================
// Bound-variable substitution (change of index)
// ============================================================

func TestLimitsSubs_AffineShift(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	b := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), n)).(*axiom.BoundExpr)
	got := b.LimitsSubs(x, axiom.AddOf(x, axiom.N(1)))
	want := axiom.SumOf(
		axiom.PowOf(axiom.SubOf(x, axiom.N(1)), axiom.N(2)),
		axiom.Range(x, axiom.N(1), axiom.AddOf(n, axiom.N(1))),
	)
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want.String(), got.String())
	}
}

func TestLimitsSubs_ReflectionPreservesValue(t *testing.T) {
	x := axiom.IntVar("x")
	b := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), axiom.N(3))).(*axiom.BoundExpr)
	got := b.LimitsSubs(x, axiom.SubOf(axiom.N(5), x))
	rb, ok := got.(*axiom.BoundExpr)
	if !ok {
		t.Fatalf("expected a binder, got %s", got.String())
	}
	lim := rb.Limits()[0]
	if !lim.Lo.Equal(axiom.N(2)) || !lim.Hi.Equal(axiom.N(5)) {
		t.Errorf("reflected range should be 2..5, got %s", lim.String())
	}
	if !axiom.DeepSimplify(got).Equal(axiom.DeepSimplify(b)) {
		t.Errorf("reindexing must preserve the value: %s vs %s",
			axiom.DeepSimplify(got).String(), axiom.DeepSimplify(b).String())
	}
}

func TestLimitsSubs_NonAffineRejected(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	b := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), n)).(*axiom.BoundExpr)
	got := b.LimitsSubs(x, axiom.MulOf(x, x))
	if !got.Equal(b) {
		t.Errorf("non-affine reindexing should return the input, got %s", got.String())
	}
}

func TestLimitsSubs_NonUnitStrideRejected(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	b := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), n)).(*axiom.BoundExpr)
	got := b.LimitsSubs(x, axiom.MulOf(axiom.N(2), x))
	if !got.Equal(b) {
		t.Errorf("stride 2 over an integer range should return the input, got %s", got.String())
	}
}

// ============================================================
// Affine decomposition helpers
// ============================================================

func TestIsUnitShift(t *testing.T) {
	x := axiom.IntVar("x")
	k, ok := axiom.IsUnitShift(axiom.AddOf(x, axiom.N(3)), x)
	if !ok || !k.Equal(axiom.N(3)) {
		t.Errorf("want shift 3, got %v (ok=%v)", k, ok)
	}
	if _, ok := axiom.IsUnitShift(axiom.MulOf(axiom.N(2), x), x); ok {
		t.Errorf("2x is not a unit shift")
	}
}

func TestInvertAffine(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.IntVar("y")
	inv, ok := axiom.InvertAffine(axiom.SubOf(axiom.N(5), x), x, y)
	if !ok {
		t.Fatalf("5 - x is affine in x")
	}
	want := axiom.MulOf(axiom.N(-1), axiom.SubOf(y, axiom.N(5)))
	if !inv.Equal(want) {
		t.Errorf("want %s, got %s", want.String(), inv.String())
	}
	if _, ok := axiom.InvertAffine(axiom.MulOf(x, x), x, y); ok {
		t.Errorf("x*x is not affine in x")
	}
}

func TestLimitsSubs_FreeLimitElimination(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.IntVar("y")
	b := axiom.SumOf(axiom.DeltaOf(x, y), axiom.Free(x))
	got := axiom.Subs(b, x, axiom.N(2))
	want := axiom.DeltaOf(axiom.N(2), y)
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want.String(), got.String())
	}
}
