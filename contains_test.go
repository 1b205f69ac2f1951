package axiom_test

import (
	"testing"

	axiom "github.com/cosmosZhou/sagemath-sub000"
)

// ============================================================
// Membership
// ============================================================

func TestContains_DecidedEagerly(t *testing.T) {
	evens := axiom.FiniteSetOf(axiom.N(0), axiom.N(2), axiom.N(4))
	if got := axiom.ContainsOf(axiom.N(2), evens); !got.Equal(axiom.True) {
		t.Errorf("2 in {0,2,4} should be True, got %s", got.String())
	}
	if got := axiom.ContainsOf(axiom.N(3), evens); !got.Equal(axiom.False) {
		t.Errorf("3 in {0,2,4} should be False, got %s", got.String())
	}
}

func TestContains_SymbolicStaysAtom(t *testing.T) {
	y := axiom.S("y")
	evens := axiom.FiniteSetOf(axiom.N(0), axiom.N(2), axiom.N(4))
	got := axiom.ContainsOf(y, evens)
	if _, ok := got.(*axiom.Contains); !ok {
		t.Errorf("undecidable membership should stay an atom, got %s", got.String())
	}
}

func TestContains_IntervalBounds(t *testing.T) {
	n := axiom.IntVar("n")
	dom := axiom.NewIntInterval(axiom.N(0), n)
	if got := axiom.ContainsOf(axiom.N(-1), dom); !got.Equal(axiom.False) {
		t.Errorf("-1 in [0, n] should be False, got %s", got.String())
	}
	got := axiom.ContainsOf(axiom.N(3), dom)
	if _, ok := got.(*axiom.Contains); !ok {
		t.Errorf("3 in [0, n] depends on n, got %s", got.String())
	}
}

func TestContains_NegationFlips(t *testing.T) {
	y := axiom.S("y")
	evens := axiom.FiniteSetOf(axiom.N(0), axiom.N(2), axiom.N(4))
	got := axiom.NotOf(axiom.ContainsOf(y, evens))
	c, ok := got.(*axiom.Contains)
	if !ok || !c.Negated() {
		t.Errorf("negated membership should be the notin atom, got %s", got.String())
	}
}

func TestContains_ComprehensionCollapses(t *testing.T) {
	x := axiom.IntVar("x")
	comp := axiom.UnionOf(
		axiom.FiniteSetOf(axiom.MulOf(axiom.N(2), x)),
		axiom.Range(x, axiom.N(0), axiom.N(2)),
	)
	got := axiom.ContainsOf(axiom.N(4), comp)
	if !got.Equal(axiom.True) {
		t.Errorf("4 is 2*2, want True, got %s", got.String())
	}
	got = axiom.ContainsOf(axiom.N(3), comp)
	if !got.Equal(axiom.False) {
		t.Errorf("3 is odd, want False, got %s", got.String())
	}
}

func TestContains_ComprehensionSplits(t *testing.T) {
	// An indexed family keeps the union symbolic, so membership splits
	// into one disjunct per index.
	x := axiom.IntVar("x")
	y := axiom.IntVar("y")
	family := axiom.Var("A", axiom.Assumptions{Type: axiom.SetType})
	comp := axiom.UnionOf(
		axiom.IndexedOf(family, x),
		axiom.Range(x, axiom.N(0), axiom.N(2)),
	)
	got := axiom.Simplify(axiom.ContainsOf(y, comp))
	or, ok := got.(*axiom.Or)
	if !ok {
		t.Fatalf("membership in an enumerable union should split, got %s", got.String())
	}
	if len(or.Args()) != 3 {
		t.Errorf("want 3 disjuncts, got %d: %s", len(or.Args()), got.String())
	}
}

func TestContains_AsKroneckerDelta(t *testing.T) {
	x := axiom.IntVar("x")
	got := axiom.ContainsOf(x, axiom.FiniteSetOf(axiom.N(3)))
	c, ok := got.(*axiom.Contains)
	if !ok {
		t.Fatalf("expected a membership atom, got %s", got.String())
	}
	d, ok := c.AsKroneckerDelta()
	if !ok {
		t.Fatalf("singleton membership should convert")
	}
	if !d.Equal(axiom.DeltaOf(x, axiom.N(3))) {
		t.Errorf("want delta(x, 3), got %s", d.String())
	}
}

// ============================================================
// Subset
// ============================================================

func TestSubset_Decisions(t *testing.T) {
	small := axiom.FiniteSetOf(axiom.N(1), axiom.N(2))
	big := axiom.NewIntInterval(axiom.N(0), axiom.N(10))
	if got := axiom.SubsetOf(small, big); !got.Equal(axiom.True) {
		t.Errorf("{1,2} subset [0,10] should be True, got %s", got.String())
	}
	if got := axiom.SubsetOf(axiom.FiniteSetOf(axiom.N(20)), big); !got.Equal(axiom.False) {
		t.Errorf("{20} subset [0,10] should be False, got %s", got.String())
	}
	if got := axiom.SubsetOf(axiom.FiniteSetOf(), big); !got.Equal(axiom.True) {
		t.Errorf("the empty set is a subset of anything, got %s", got.String())
	}
	if got := axiom.SubsetOf(big, axiom.Universe); !got.Equal(axiom.True) {
		t.Errorf("everything is a subset of the universe, got %s", got.String())
	}
}

func TestSubset_IntervalInInterval(t *testing.T) {
	inner := axiom.NewIntInterval(axiom.N(2), axiom.N(5))
	outer := axiom.NewIntInterval(axiom.N(0), axiom.N(10))
	got := axiom.SubsetOf(inner, outer)
	if !got.Equal(axiom.True) {
		t.Errorf("[2,5] subset [0,10] should be True, got %s", got.String())
	}
}

func TestSubset_UndecidableStaysAtom(t *testing.T) {
	n := axiom.IntVar("n")
	y := axiom.IntVar("y")
	got := axiom.SubsetOf(axiom.NewIntInterval(axiom.N(0), n), axiom.FiniteSetOf(y))
	if _, ok := got.(*axiom.Subset); !ok {
		t.Errorf("symbolic subset should stay an atom, got %s", got.String())
	}
}
