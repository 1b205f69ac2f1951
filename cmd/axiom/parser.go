package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	axiom "github.com/cosmosZhou/sagemath-sub000"
)

// Recursive-descent parser for shell input. Single-letter identifiers are
// symbols; i through n are integers by the usual convention. Binders use
// call syntax: Sum(body, var, lo, hi) or Sum(body, var) for the variable's
// own domain.

type parser struct {
	input string
	pos   int
}

func parse(s string) (axiom.Expr, error) {
	p := &parser{input: s}
	e, err := p.parseRel()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected %q at position %d", p.rest(), p.pos)
	}
	return e, nil
}

func (p *parser) rest() string {
	if p.pos >= len(p.input) {
		return "end of input"
	}
	return p.input[p.pos:]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) accept(c byte) bool {
	if p.peek() == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(c byte) error {
	if !p.accept(c) {
		return fmt.Errorf("expected %q, found %q", string(c), p.rest())
	}
	return nil
}

// acceptWord consumes a multi-byte operator when it is next.
func (p *parser) acceptWord(w string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], w) {
		p.pos += len(w)
		return true
	}
	return false
}

func (p *parser) parseRel() (axiom.Expr, error) {
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	ops := []struct {
		tok   string
		build func(lhs, rhs axiom.Expr) axiom.Expr
	}{
		{"==", axiom.EqOf},
		{"!=", axiom.NeOf},
		{"<=", axiom.LeOf},
		{">=", axiom.GeOf},
		{"<", axiom.LtOf},
		{">", axiom.GtOf},
	}
	for _, op := range ops {
		if p.acceptWord(op.tok) {
			right, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return op.build(left, right), nil
		}
	}
	return left, nil
}

func (p *parser) parseExpr() (axiom.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept('+'):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = axiom.AddOf(left, right)
		case p.accept('-'):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = axiom.SubOf(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (axiom.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept('*'):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = axiom.MulOf(left, right)
		case p.accept('/'):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = axiom.MulOf(left, axiom.PowOf(right, axiom.N(-1)))
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (axiom.Expr, error) {
	if p.accept('-') {
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return axiom.NegOf(e), nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (axiom.Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.accept('^') {
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return axiom.PowOf(base, exp), nil
	}
	return base, nil
}

func (p *parser) parseAtom() (axiom.Expr, error) {
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return e, nil
	case c >= '0' && c <= '9':
		return p.parseNumber()
	case unicode.IsLetter(rune(c)):
		return p.parseIdent()
	case c == 0:
		return nil, fmt.Errorf("unexpected end of input")
	}
	return nil, fmt.Errorf("unexpected %q", string(c))
}

func (p *parser) parseNumber() (axiom.Expr, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.ParseInt(p.input[start:p.pos], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad number %q: %w", p.input[start:p.pos], err)
	}
	return axiom.N(n), nil
}

func (p *parser) parseIdent() (axiom.Expr, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && (unicode.IsLetter(rune(p.input[p.pos])) || unicode.IsDigit(rune(p.input[p.pos]))) {
		p.pos++
	}
	name := p.input[start:p.pos]
	if p.peek() != '(' {
		return symbolFor(name), nil
	}
	p.pos++ // consume '('
	args := []axiom.Expr{}
	if p.peek() != ')' {
		for {
			a, err := p.parseRel()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if !p.accept(',') {
				break
			}
		}
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return applyCall(name, args)
}

func symbolFor(name string) *axiom.Symbol {
	first := strings.ToLower(name)[0]
	if first >= 'i' && first <= 'n' {
		return axiom.IntVar(name)
	}
	return axiom.S(name)
}

var binderVariants = map[string]axiom.Variant{
	"Sum":      axiom.Sum,
	"Product":  axiom.Product,
	"Integral": axiom.Integral,
	"Min":      axiom.Minimize,
	"Max":      axiom.Maximize,
	"ArgMin":   axiom.ArgMin,
	"ArgMax":   axiom.ArgMax,
	"Map":      axiom.Mapping,
	"ForAll":   axiom.ForAll,
	"Exists":   axiom.Exists,
}

func applyCall(name string, args []axiom.Expr) (axiom.Expr, error) {
	if name == "delta" {
		if len(args) != 2 {
			return nil, fmt.Errorf("delta takes 2 arguments, got %d", len(args))
		}
		return axiom.DeltaOf(args[0], args[1]), nil
	}
	variant, ok := binderVariants[name]
	if !ok {
		return nil, fmt.Errorf("unknown function %q", name)
	}
	// Min(a, b, ...) without a variable is the n-ary extremum.
	if variant == axiom.Minimize || variant == axiom.Maximize {
		isBinder := len(args) == 2 || len(args) == 4
		if isBinder {
			_, isBinder = args[1].(*axiom.Symbol)
		}
		if !isBinder {
			if variant == axiom.Minimize {
				return axiom.MinOf(args...), nil
			}
			return axiom.MaxOf(args...), nil
		}
	}
	switch len(args) {
	case 2:
		x, ok := args[1].(*axiom.Symbol)
		if !ok {
			return nil, fmt.Errorf("%s: second argument must be a variable", name)
		}
		return axiom.Bind(variant, args[0], axiom.Free(x)), nil
	case 4:
		x, ok := args[1].(*axiom.Symbol)
		if !ok {
			return nil, fmt.Errorf("%s: second argument must be a variable", name)
		}
		return axiom.Bind(variant, args[0], axiom.Range(x, args[2], args[3])), nil
	}
	return nil, fmt.Errorf("%s takes (body, var) or (body, var, lo, hi), got %d arguments", name, len(args))
}
