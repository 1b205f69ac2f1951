package axiom_test

import (
	"strings"
	"testing"

	axiom "github.com/cosmosZhou/sagemath-sub000"
)

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s should panic", name)
		}
	}()
	f()
}

func TestVariant_TableComplete(t *testing.T) {
	variants := []axiom.Variant{
		axiom.Sum, axiom.Product, axiom.Integral, axiom.Minimize,
		axiom.Maximize, axiom.ArgMin, axiom.ArgMax, axiom.Mapping,
		axiom.UnionComp, axiom.InterComp, axiom.ForAll, axiom.Exists,
	}
	for _, v := range variants {
		if v.String() == "" {
			t.Errorf("variant %d has no name", int(v))
		}
	}
}

// ============================================================
// Construction collapses
// ============================================================

func TestBind_NoLimitsIsFunction(t *testing.T) {
	x := axiom.IntVar("x")
	got := axiom.Bind(axiom.Sum, x)
	if !got.Equal(x) {
		t.Errorf("Sum with no limits should be the body, got %s", got.String())
	}
}

func TestBind_DegenerateRangeSubstitutes(t *testing.T) {
	x := axiom.IntVar("x")
	got := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(3), axiom.N(3)))
	if !got.Equal(axiom.N(9)) {
		t.Errorf("Sum(x^2, x=3..3) should be 9, got %s", got.String())
	}
}

func TestBind_DegenerateSymbolicRange(t *testing.T) {
	x := axiom.IntVar("x")
	a := axiom.IntVar("a")
	got := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, a, a))
	want := axiom.PowOf(a, axiom.N(2))
	if !got.Equal(want) {
		t.Errorf("Sum(x^2, x=a..a) should be a^2, got %s", got.String())
	}
}

func TestBind_EmptyRangeIsIdentity(t *testing.T) {
	x := axiom.IntVar("x")
	got := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(3), axiom.N(2)))
	if !got.Equal(axiom.N(0)) {
		t.Errorf("Sum over x=3..2 should be 0, got %s", got.String())
	}
	got = axiom.ProductOf(x, axiom.Range(x, axiom.N(5), axiom.N(4)))
	if !got.Equal(axiom.N(1)) {
		t.Errorf("Product over x=5..4 should be 1, got %s", got.String())
	}
}

func TestBind_ReversedRangeNegates(t *testing.T) {
	// Karr convention: Sum(f, x=3..1) = -Sum(f, x=2..2) = -f(2).
	x := axiom.IntVar("x")
	got := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(3), axiom.N(1)))
	if !got.Equal(axiom.N(-4)) {
		t.Errorf("Sum(x^2, x=3..1) should be -4, got %s", got.String())
	}
}

func TestBind_EmptyQuantifierDomain(t *testing.T) {
	x := axiom.IntVar("x")
	got := axiom.ForAllOf(axiom.GtOf(x, axiom.N(0)), axiom.Over(x, axiom.FiniteSetOf()))
	if !got.Equal(axiom.True) {
		t.Errorf("ForAll over empty domain should be True, got %s", got.String())
	}
	got = axiom.ExistsOf(axiom.GtOf(x, axiom.N(0)), axiom.Over(x, axiom.FiniteSetOf()))
	if !got.Equal(axiom.False) {
		t.Errorf("Exists over empty domain should be False, got %s", got.String())
	}
}

func TestBind_BooleanAtomBody(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	got := axiom.ForAllOf(axiom.True, axiom.Range(x, axiom.N(0), n))
	if !got.Equal(axiom.True) {
		t.Errorf("ForAll of True should be True, got %s", got.String())
	}
}

func TestBind_DenestsSameVariant(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.IntVar("y")
	n := axiom.IntVar("n")
	inner := axiom.SumOf(axiom.MulOf(x, y), axiom.Range(y, axiom.N(0), x))
	outer := axiom.SumOf(inner, axiom.Range(x, axiom.N(0), n))
	b, ok := outer.(*axiom.BoundExpr)
	if !ok {
		t.Fatalf("expected a binder, got %s", outer.String())
	}
	if len(b.Limits()) != 2 {
		t.Errorf("nested Sum should denest into 2 limits, got %d", len(b.Limits()))
	}
	if b.Variant() != axiom.Sum {
		t.Errorf("want Sum variant, got %s", b.Variant())
	}
}

func TestBind_DuplicateVariablePanics(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	mustPanic(t, "duplicate bound variable", func() {
		axiom.SumOf(x, axiom.Range(x, axiom.N(0), n), axiom.Range(x, axiom.N(0), n))
	})
}

func TestBind_ForwardReferencePanics(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.IntVar("y")
	mustPanic(t, "bounds referencing a later variable", func() {
		axiom.SumOf(axiom.MulOf(x, y), axiom.Range(x, axiom.N(0), y), axiom.Free(y))
	})
}

func TestBind_NonBooleanQuantifierBodyPanics(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	mustPanic(t, "arithmetic ForAll body", func() {
		axiom.ForAllOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), n))
	})
}

// ============================================================
// Rendering
// ============================================================

func TestBound_String(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	got := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), n))
	if got.String() != "Sum(x^2, (x, 0, n))" {
		t.Errorf("want Sum(x^2, (x, 0, n)), got %s", got.String())
	}
}

func TestBound_LaTeX(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	got := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), n))
	if !strings.HasPrefix(got.LaTeX(), `\sum_{x=0}^{n}`) {
		t.Errorf("unexpected LaTeX: %s", got.LaTeX())
	}
}

// ============================================================
// Indexing
// ============================================================

func TestIndex_LiteralIntoMapping(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	m := axiom.MapOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), n))
	got := axiom.Index(m, axiom.N(3))
	if !got.Equal(axiom.N(9)) {
		t.Errorf("Map(x^2)[3] should be 9, got %s", got.String())
	}
}

func TestIndex_SymbolicIntoMapping(t *testing.T) {
	x := axiom.IntVar("x")
	k := axiom.IntVar("k")
	n := axiom.IntVar("n")
	m := axiom.MapOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), n))
	got := axiom.Index(m, k)
	want := axiom.PowOf(k, axiom.N(2))
	if !got.Equal(want) {
		t.Errorf("Map(x^2)[k] should be k^2, got %s", got.String())
	}
}

func TestIndex_OutOfDomainPanics(t *testing.T) {
	x := axiom.IntVar("x")
	m := axiom.MapOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), axiom.N(5)))
	mustPanic(t, "index below the domain", func() {
		axiom.Index(m, axiom.N(-1))
	})
}

func TestMapping_Shape(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	m := axiom.MapOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(1), n)).(*axiom.BoundExpr)
	shape := m.Shape()
	if len(shape) != 1 || !shape[0].Equal(n) {
		t.Errorf("Map over x=1..n should have shape [n], got %v", shape)
	}
}

// ============================================================
// ArgMin / ArgMax resolution
// ============================================================

func TestResolve_ArgMax(t *testing.T) {
	x := axiom.IntVar("x")
	b := axiom.ArgMaxOf(
		axiom.MulOf(x, axiom.SubOf(axiom.N(5), x)),
		axiom.Range(x, axiom.N(0), axiom.N(5)),
	).(*axiom.BoundExpr)
	got, ok := b.Resolve()
	if !ok {
		t.Fatalf("ArgMax over a finite domain should resolve")
	}
	if !got.Equal(axiom.N(2)) && !got.Equal(axiom.N(3)) {
		t.Errorf("ArgMax of x(5-x) on 0..5 should be 2 or 3, got %s", got.String())
	}
}

func TestResolve_EmptyDomainUndefined(t *testing.T) {
	x := axiom.IntVar("x")
	b := axiom.ArgMinOf(x, axiom.Over(x, axiom.FiniteSetOf()))
	be, ok := b.(*axiom.BoundExpr)
	if !ok {
		t.Fatalf("ArgMin over the empty domain has no identity, got %s", b.String())
	}
	if _, ok := be.Resolve(); ok {
		t.Errorf("ArgMin over the empty domain must not resolve")
	}
}
