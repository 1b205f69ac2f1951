package axiom

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"sync/atomic"
)

// ============================================================
// ElemType — element-type descriptor (dtype)
// ============================================================

type ElemType int

const (
	IntegerType ElemType = iota
	RationalType
	RealType
	ComplexType
	SetType
)

func (t ElemType) String() string {
	switch t {
	case IntegerType:
		return "integer"
	case RationalType:
		return "rational"
	case RealType:
		return "real"
	case ComplexType:
		return "complex"
	case SetType:
		return "set"
	}
	return fmt.Sprintf("ElemType(%d)", int(t))
}

// Includes reports whether a value of type o is acceptable where a value
// of type t is expected. The scalar types form a chain; SetType stands
// alone.
func (t ElemType) Includes(o ElemType) bool {
	if t == SetType || o == SetType {
		return t == o
	}
	return o <= t
}

// ============================================================
// Assumptions — the explicit assumption set of a symbol
// ============================================================

// Assumptions is the explicit assumption set carried by a symbol. It is
// part of symbol identity: two symbols are equal iff their names and
// explicit assumptions match. Facts derived from these (such as the
// symbol's default domain) never affect identity.
type Assumptions struct {
	Type       ElemType
	Positive   bool
	Nonneg     bool
	Domain     Set    // assumed domain, optional
	Shape      []Expr // nil = scalar; dimensions may be symbolic
	Definition Expr   // optional self-referential rewrite target
}

func (a Assumptions) key() string {
	var sb strings.Builder
	sb.WriteString(a.Type.String())
	if a.Positive {
		sb.WriteString("|positive")
	}
	if a.Nonneg {
		sb.WriteString("|nonneg")
	}
	if a.Domain != nil {
		sb.WriteString("|domain=")
		sb.WriteString(a.Domain.String())
	}
	for _, d := range a.Shape {
		sb.WriteString("|dim=")
		sb.WriteString(d.String())
	}
	if a.Definition != nil {
		sb.WriteString("|def=")
		sb.WriteString(a.Definition.String())
	}
	return sb.String()
}

// ============================================================
// Symbol — symbolic variable, hash-consed
// ============================================================

type Symbol struct {
	name   string
	assume Assumptions
	dummy  uint64 // nonzero for dummies; part of identity
	hash   uint64
}

var internTable = struct {
	sync.Mutex
	m map[string]*Symbol
}{m: map[string]*Symbol{}}

func hashKey(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

// Var is the symbol factory: canonicalize the assumption struct, then
// hash-cons so equal symbols share one allocation and comparison is by
// identity.
func Var(name string, assume Assumptions) *Symbol {
	if name == "" {
		panic("axiom: symbol name is empty")
	}
	key := name + "|" + assume.key()
	internTable.Lock()
	defer internTable.Unlock()
	if s, ok := internTable.m[key]; ok {
		return s
	}
	s := &Symbol{name: name, assume: assume, hash: hashKey(key)}
	internTable.m[key] = s
	return s
}

// S returns an unconstrained real scalar symbol.
func S(name string) *Symbol { return Var(name, Assumptions{Type: RealType}) }

// IntVar returns an unconstrained integer scalar symbol.
func IntVar(name string) *Symbol { return Var(name, Assumptions{Type: IntegerType}) }

var dummyCounter atomic.Uint64

// NewDummy creates a bound-variable placeholder carrying a globally unique
// index, so structurally identical dummies created independently never
// compare equal. Dummies are not interned.
func NewDummy(name string, assume Assumptions) *Symbol {
	idx := dummyCounter.Add(1)
	key := fmt.Sprintf("%s|%s|dummy%d", name, assume.key(), idx)
	return &Symbol{name: name, assume: assume, dummy: idx, hash: hashKey(key)}
}

// FreshDummy derives a dummy with s's assumptions, for alpha-conversion.
func (s *Symbol) FreshDummy() *Symbol { return NewDummy(s.name, s.assume) }

func (s *Symbol) IsDummy() bool            { return s.dummy != 0 }
func (s *Symbol) Name() string             { return s.name }
func (s *Symbol) Assumptions() Assumptions { return s.assume }
func (s *Symbol) Hash() uint64             { return s.hash }
func (s *Symbol) IsInteger() bool          { return s.assume.Type == IntegerType }
func (s *Symbol) IsSetValued() bool        { return s.assume.Type == SetType }
func (s *Symbol) Shape() []Expr            { return s.assume.Shape }

// Definition returns the expression this symbol is defined to equal, or
// nil when it has none.
func (s *Symbol) Definition() Expr { return s.assume.Definition }

// Domain returns the symbol's assumed domain, deriving one lazily from
// the assumption set when none was given explicitly.
func (s *Symbol) Domain() Set {
	if s.assume.Domain != nil {
		return s.assume.Domain
	}
	integer := s.assume.Type == IntegerType
	switch {
	case s.assume.Positive && integer:
		return NewIntInterval(N(1), Inf)
	case s.assume.Nonneg && integer:
		return NewIntInterval(N(0), Inf)
	case s.assume.Positive:
		return NewInterval(N(0), Inf, true, true)
	case s.assume.Nonneg:
		return NewInterval(N(0), Inf, false, true)
	case integer:
		return NewIntInterval(NegInf, Inf)
	}
	return Universe
}

// DomainAssumed returns the explicitly assumed domain, nil when the
// domain is only derived.
func (s *Symbol) DomainAssumed() Set { return s.assume.Domain }

// Unbounded returns the same symbol with any assumed domain stripped;
// used when a binder absorbs the symbol's domain into its limit.
func (s *Symbol) Unbounded() *Symbol {
	if s.assume.Domain == nil {
		return s
	}
	a := s.assume
	a.Domain = nil
	if s.dummy != 0 {
		return NewDummy(s.name, a)
	}
	return Var(s.name, a)
}

func (s *Symbol) Simplify() Expr { return s }
func (s *Symbol) String() string { return s.name }
func (s *Symbol) LaTeX() string  { return s.name }

func (s *Symbol) Subs(old, new Expr) Expr {
	if s.Equal(old) {
		return new
	}
	return s
}

func (s *Symbol) Eval() (*Num, bool) { return nil, false }

func (s *Symbol) Equal(other Expr) bool {
	o, ok := other.(*Symbol)
	if !ok {
		return false
	}
	if s == o {
		return true
	}
	// Interned symbols are canonical; only dummies from different intern
	// paths can be structurally equal without being identical.
	return s.hash == o.hash && s.name == o.name && s.dummy == o.dummy &&
		s.assume.key() == o.assume.key()
}

func (s *Symbol) exprType() string { return "sym" }
func (s *Symbol) children() []Expr { return nil }

func (s *Symbol) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "sym", "name": s.name, "dtype": s.assume.Type.String()}
	if s.assume.Positive {
		m["positive"] = true
	}
	if s.assume.Nonneg {
		m["nonneg"] = true
	}
	if s.dummy != 0 {
		m["dummy"] = s.dummy
	}
	return m
}

func symbolFromJSON(data map[string]interface{}) (Expr, error) {
	nameAny, ok := data["name"]
	if !ok {
		return nil, fmt.Errorf("sym: missing 'name'")
	}
	name, ok := nameAny.(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("sym: 'name' must be a non-empty string")
	}
	a := Assumptions{Type: RealType}
	if dt, ok := data["dtype"].(string); ok {
		switch dt {
		case "integer":
			a.Type = IntegerType
		case "rational":
			a.Type = RationalType
		case "real":
			a.Type = RealType
		case "complex":
			a.Type = ComplexType
		case "set":
			a.Type = SetType
		default:
			return nil, fmt.Errorf("sym: unknown dtype %q", dt)
		}
	}
	a.Positive, _ = data["positive"].(bool)
	a.Nonneg, _ = data["nonneg"].(bool)
	if _, isDummy := data["dummy"]; isDummy {
		return NewDummy(name, a), nil
	}
	return Var(name, a), nil
}

// elemTypeOf reports the element type of an expression, as far as the
// narrowing machinery needs: exact for numbers and symbols, a best effort
// for compounds.
func elemTypeOf(e Expr) ElemType {
	switch v := e.(type) {
	case *Num:
		if v.IsInteger() {
			return IntegerType
		}
		return RationalType
	case *Infinity:
		return RealType
	case *Symbol:
		return v.assume.Type
	case Set:
		return SetType
	}
	t := IntegerType
	for _, c := range e.children() {
		ct := elemTypeOf(c)
		if ct == SetType {
			return SetType
		}
		if ct > t {
			t = ct
		}
	}
	return t
}
