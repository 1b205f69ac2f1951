package axiom_test

import (
	"encoding/json"
	"testing"

	axiom "github.com/cosmosZhou/sagemath-sub000"
)

func roundTrip(t *testing.T, e axiom.Expr) axiom.Expr {
	t.Helper()
	js, err := axiom.ToJSON(e)
	if err != nil {
		t.Fatalf("marshal %s: %v", e.String(), err)
	}
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(js), &data); err != nil {
		t.Fatalf("unmarshal %s: %v", js, err)
	}
	out, err := axiom.FromJSON(data)
	if err != nil {
		t.Fatalf("decode %s: %v", js, err)
	}
	return out
}

// ============================================================
// Free symbols
// ============================================================

func TestFreeSymbols_ExcludesBoundVariables(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	n := axiom.IntVar("n")
	e := axiom.SumOf(axiom.MulOf(y, axiom.PowOf(x, axiom.N(2))), axiom.Range(x, axiom.N(0), n))
	free := axiom.FreeSymbols(e)
	if free.Contains(x) {
		t.Errorf("the bound variable is not free")
	}
	if !free.Contains(y) || !free.Contains(n) {
		t.Errorf("y and n occur free, got %v", free.Slice())
	}
}

func TestHas_SeesBoundVariables(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	e := axiom.SumOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), n))
	if !axiom.Has(e, x) {
		t.Errorf("Has should see the bound occurrence")
	}
}

// ============================================================
// JSON round-trips
// ============================================================

func TestJSON_BinderRoundTrip(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	n := axiom.IntVar("n")
	exprs := []axiom.Expr{
		axiom.SumOf(axiom.MulOf(y, axiom.PowOf(x, axiom.N(2))), axiom.Range(x, axiom.N(0), n)),
		axiom.ForAllOf(axiom.GeOf(x, axiom.N(0)), axiom.Over(x, axiom.NewIntInterval(axiom.N(0), n))),
		axiom.ContainsOf(y, axiom.FiniteSetOf(axiom.N(0), axiom.N(2))),
		axiom.PiecewiseOf(
			axiom.Branch{Val: axiom.PowOf(y, axiom.N(2)), Cond: axiom.GeOf(y, axiom.N(0))},
			axiom.Branch{Val: axiom.NegOf(y), Cond: axiom.True},
		),
		axiom.MapOf(axiom.PowOf(x, axiom.N(2)), axiom.Range(x, axiom.N(0), n)),
	}
	for _, e := range exprs {
		got := roundTrip(t, e)
		if !got.Equal(e) {
			t.Errorf("round trip changed %s into %s", e.String(), got.String())
		}
	}
}

func TestJSON_ProvenanceSurvives(t *testing.T) {
	x := axiom.IntVar("x")
	n := axiom.IntVar("n")
	dom := axiom.NewIntInterval(axiom.N(0), n)
	merged := axiom.AndOf(
		axiom.ForAllOf(axiom.GeOf(x, axiom.N(0)), axiom.Over(x, dom)),
		axiom.ForAllOf(axiom.LeOf(x, n), axiom.Over(x, dom)),
	).(*axiom.BoundExpr)
	if merged.Provenance() != axiom.ProvEquivalent {
		t.Fatalf("merge should be tagged equivalent, got %v", merged.Provenance())
	}
	got := roundTrip(t, merged).(*axiom.BoundExpr)
	if got.Provenance() != axiom.ProvEquivalent {
		t.Errorf("provenance lost in serialization, got %v", got.Provenance())
	}
}

// ============================================================
// DeepSimplify
// ============================================================

func TestDeepSimplify_ReachesFixpoint(t *testing.T) {
	x := axiom.IntVar("x")
	y := axiom.S("y")
	e := axiom.AddOf(
		axiom.SumOf(axiom.MulOf(axiom.DeltaOf(x, axiom.N(3)), y), axiom.Range(x, axiom.N(0), axiom.N(1000))),
		axiom.MulOf(axiom.N(2), y),
	)
	got := axiom.DeepSimplify(e)
	want := axiom.MulOf(axiom.N(3), y)
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want.String(), got.String())
	}
}
