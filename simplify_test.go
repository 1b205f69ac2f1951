package axiom_test

import (
	"testing"

	axiom "github.com/cosmosZhou/sagemath-sub000"
)

// ============================================================
// Finite aggregation
// ============================================================

func TestSimplify_FiniteSum(t *testing.T) {
	x := axiom.IntVar("x")
	e := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), axiom.N(2)))
	got := axiom.Simplify(e)
	if !got.Equal(axiom.N(5)) {
		t.Errorf("Sum(x^2, x=0..2) should be 5, got %s", got.String())
	}
}

func TestSimplify_FiniteSumWithFreeVariable(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	e := axiom.SumOf(axiom.MulOf(y, x), axiom.Range(x, axiom.N(1), axiom.N(3)))
	got := axiom.Simplify(e)
	want := axiom.MulOf(axiom.N(6), y)
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want.String(), got.String())
	}
}

func TestSimplify_FiniteProduct(t *testing.T) {
	x := axiom.IntVar("x")
	e := axiom.ProductOf(x, axiom.Range(x, axiom.N(1), axiom.N(5)))
	got := axiom.Simplify(e)
	if !got.Equal(axiom.N(120)) {
		t.Errorf("Product(x, x=1..5) should be 120, got %s", got.String())
	}
}

func TestSimplify_LargeRangeStaysSymbolic(t *testing.T) {
	x := axiom.IntVar("x")
	e := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), axiom.N(100000)))
	got := axiom.Simplify(e)
	if _, ok := got.(*axiom.BoundExpr); !ok {
		t.Errorf("a range past the unroll cap should stay a binder, got %s", got.String())
	}
}

// ============================================================
// Factoring independent parts
// ============================================================

func TestSimplify_FactorsMultiplicativeConstant(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	n := axiom.IntVar("n")
	sq := axiom.PowOf(x, axiom.N(2))
	e := axiom.SumOf(axiom.MulOf(y, sq), axiom.Range(x, axiom.N(0), n))
	got := axiom.Simplify(e)
	want := axiom.MulOf(y, axiom.SumOf(sq, axiom.Range(x, axiom.N(0), n)))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want.String(), got.String())
	}
}

func TestSimplify_ConstantBodySum(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	n := axiom.IntVar("n")
	e := axiom.SumOf(y, axiom.Range(x, axiom.N(0), n))
	got := axiom.Simplify(e)
	want := axiom.MulOf(axiom.AddOf(n, axiom.N(1)), y)
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want.String(), got.String())
	}
}

func TestSimplify_NegationFlipsMinimize(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	sq := axiom.PowOf(x, axiom.N(2))
	e := axiom.MinimizeOf(axiom.NegOf(sq), axiom.Range(x, axiom.N(0), n))
	got := axiom.Simplify(e)
	want := axiom.MulOf(axiom.N(-1), axiom.MaximizeOf(sq, axiom.Range(x, axiom.N(0), n)))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want.String(), got.String())
	}
}

func TestSimplify_ArgMaxDropsTranslationAndScale(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	n := axiom.IntVar("n")
	sq := axiom.PowOf(x, axiom.N(2))
	e := axiom.ArgMaxOf(axiom.AddOf(sq, y), axiom.Range(x, axiom.N(0), n))
	got := axiom.Simplify(e)
	want := axiom.ArgMaxOf(sq, axiom.Range(x, axiom.N(0), n))
	if !got.Equal(want) {
		t.Errorf("translation should not move the arg max: want %s, got %s",
			want.String(), got.String())
	}

	e = axiom.ArgMaxOf(axiom.MulOf(axiom.N(3), sq), axiom.Range(x, axiom.N(0), n))
	got = axiom.Simplify(e)
	if !got.Equal(want) {
		t.Errorf("positive scaling should not move the arg max: want %s, got %s",
			want.String(), got.String())
	}
}

// ============================================================
// Dead and singleton limits
// ============================================================

func TestSimplify_DeadLimitDropped(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	e := axiom.MaximizeOf(y, axiom.Range(x, axiom.N(0), axiom.N(5)))
	got := axiom.Simplify(e)
	if !got.Equal(y) {
		t.Errorf("Maximize of a constant should drop the limit, got %s", got.String())
	}
}

func TestSimplify_SingletonArgMin(t *testing.T) {
	x := axiom.IntVar("x")
	e := axiom.ArgMinOf(axiom.PowOf(x, axiom.N(2)), axiom.Over(x, axiom.FiniteSetOf(axiom.N(7))))
	got := axiom.Simplify(e)
	if !got.Equal(axiom.N(7)) {
		t.Errorf("ArgMin over a singleton is its point, got %s", got.String())
	}
}

func TestSimplify_SingletonForAll(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	e := axiom.ForAllOf(axiom.GtOf(x, y), axiom.Over(x, axiom.FiniteSetOf(axiom.N(5))))
	got := axiom.Simplify(e)
	want := axiom.GtOf(axiom.N(5), y)
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want.String(), got.String())
	}
}

func TestSimplify_DependentInnerCountBlocksFactoring(t *testing.T) {
	x := axiom.IntVar("x")
	z := axiom.IntVar("z")
	n := axiom.IntVar("n")
	y := axiom.S("y")
	e := axiom.SumOf(y, axiom.Range(x, axiom.N(0), n), axiom.Range(z, axiom.N(0), x))
	got := axiom.Simplify(e)
	if axiom.FreeSymbols(got).Contains(x) {
		t.Fatalf("a bound variable escaped the binder: %s", got.String())
	}
	if _, ok := got.(*axiom.BoundExpr); !ok {
		t.Errorf("the inner count depends on x, the binder must stand, got %s", got.String())
	}
}

// ============================================================
// Piecewise bodies
// ============================================================

func TestSimplify_PiecewiseIndependentCondition(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	n := axiom.IntVar("n")
	body := axiom.PiecewiseOf(
		axiom.Branch{Val: axiom.PowOf(x, axiom.N(2)), Cond: axiom.GeOf(y, axiom.N(0))},
		axiom.Branch{Val: x, Cond: axiom.True},
	)
	e := axiom.SumOf(body, axiom.Range(x, axiom.N(0), n))
	got := axiom.Simplify(e)
	if _, ok := got.(*axiom.Piecewise); !ok {
		t.Errorf("a condition free of the index should distribute, got %s", got.String())
	}
}

func TestSimplify_PiecewiseDependentConditionSplitsDomain(t *testing.T) {
	x := axiom.IntVar("x")
	body := axiom.PiecewiseOf(
		axiom.Branch{Val: axiom.N(1), Cond: axiom.LeOf(x, axiom.N(2))},
		axiom.Branch{Val: axiom.N(3), Cond: axiom.True},
	)
	e := axiom.SumOf(body, axiom.Range(x, axiom.N(0), axiom.N(1000)))
	got := axiom.DeepSimplify(e)
	if !got.Equal(axiom.N(2997)) {
		t.Errorf("3 points at 1 plus 998 at 3 should give 2997, got %s", got.String())
	}
}

func TestSimplify_PiecewiseStrictBoundSplitsDomain(t *testing.T) {
	// x < 5 narrows through a half-line whose lower endpoint is -oo; the
	// split must still produce the finite piece [0, 4].
	x := axiom.IntVar("x")
	body := axiom.PiecewiseOf(
		axiom.Branch{Val: axiom.N(1), Cond: axiom.LtOf(x, axiom.N(5))},
		axiom.Branch{Val: axiom.N(0), Cond: axiom.True},
	)
	e := axiom.SumOf(body, axiom.Range(x, axiom.N(0), axiom.N(1000)))
	got := axiom.DeepSimplify(e)
	if !got.Equal(axiom.N(5)) {
		t.Errorf("5 points at 1 should give 5, got %s", got.String())
	}
}

// ============================================================
// Domain narrowing
// ============================================================

func TestSimplify_DeltaNarrowsDomain(t *testing.T) {
	x := axiom.IntVar("x")
	e := axiom.SumOf(axiom.DeltaOf(x, axiom.N(3)), axiom.Range(x, axiom.N(0), axiom.N(1000)))
	got := axiom.DeepSimplify(e)
	if !got.Equal(axiom.N(1)) {
		t.Errorf("the delta picks a single term, got %s", got.String())
	}
}

func TestSimplify_DeltaFactorNarrowsDomain(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	e := axiom.SumOf(
		axiom.MulOf(axiom.DeltaOf(x, axiom.N(3)), y),
		axiom.Range(x, axiom.N(0), axiom.N(1000)),
	)
	got := axiom.DeepSimplify(e)
	if !got.Equal(y) {
		t.Errorf("Sum(delta(x,3)*y) over 0..1000 should be y, got %s", got.String())
	}
}

func TestSimplify_DeltaOutsideDomainVanishes(t *testing.T) {
	x := axiom.IntVar("x")
	e := axiom.SumOf(axiom.DeltaOf(x, axiom.N(50)), axiom.Range(x, axiom.N(0), axiom.N(10)))
	got := axiom.DeepSimplify(e)
	if !got.Equal(axiom.N(0)) {
		t.Errorf("the delta's support misses the range, got %s", got.String())
	}
}

// ============================================================
// Idempotence
// ============================================================

func TestSimplify_Idempotent(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	n := axiom.IntVar("n")
	exprs := []axiom.Expr{
		axiom.SumOf(axiom.MulOf(y, axiom.PowOf(x, axiom.N(2))), axiom.Range(x, axiom.N(0), n)),
		axiom.MinimizeOf(axiom.NegOf(axiom.PowOf(x, axiom.N(2))), axiom.Range(x, axiom.N(0), n)),
		axiom.SumOf(axiom.DeltaOf(x, axiom.N(3)), axiom.Range(x, axiom.N(0), axiom.N(1000))),
		axiom.ForAllOf(axiom.GeOf(x, axiom.N(0)), axiom.Over(x, axiom.NewIntInterval(axiom.N(0), n))),
		axiom.AddOf(axiom.PowOf(y, axiom.N(2)), axiom.MulOf(axiom.N(2), y)),
	}
	for _, e := range exprs {
		once := axiom.DeepSimplify(e)
		twice := axiom.DeepSimplify(once)
		if !twice.Equal(once) {
			t.Errorf("simplify not idempotent on %s: %s then %s",
				e.String(), once.String(), twice.String())
		}
	}
}
