package symexpr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseError reports a malformed expression string.
type ParseError struct {
	Src string
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q at offset %d: %s", e.Src, e.Pos, e.Msg)
}

// Parse builds an expression tree from src. Identifiers found in consts are
// substituted with their numeric value; identifiers found in vars become Var
// leaves. Any other identifier that is not a known function name or a
// recognized literal (pi, E) is a parse error. Both "^" and "**" denote
// exponentiation.
func Parse(src string, vars map[string]bool, consts map[string]float64) (Node, error) {
	p := &parser{src: src, vars: vars, consts: consts}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, &ParseError{Src: src, Pos: p.pos, Msg: "unexpected trailing input"}
	}
	return node, nil
}

type parser struct {
	src    string
	pos    int
	vars   map[string]bool
	consts map[string]float64
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Src: p.src, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// parseExpr handles addition and subtraction.
func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: OpAdd, Left: left, Right: right}
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: OpSub, Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

// parseTerm handles multiplication and division.
func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		switch {
		case p.peek() == '*' && !strings.HasPrefix(p.src[p.pos:], "**"):
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: OpMul, Left: left, Right: right}
		case p.peek() == '/':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: OpDiv, Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

// parseUnary handles leading sign.
func (p *parser) parseUnary() (Node, error) {
	p.skipSpace()
	switch p.peek() {
	case '-':
		p.pos++
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpNeg, Child: child}, nil
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower handles exponentiation, which binds tighter than unary minus on
// its right and is right-associative.
func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], "**") {
		p.pos += 2
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Binary{Op: OpPow, Left: base, Right: exp}, nil
	}
	if p.peek() == '^' {
		p.pos++
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Binary{Op: OpPow, Left: base, Right: exp}, nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (Node, error) {
	p.skipSpace()
	ch := p.peek()
	switch {
	case ch == '(':
		p.pos++
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, p.errorf("expected ')'")
		}
		p.pos++
		return node, nil
	case ch >= '0' && ch <= '9' || ch == '.':
		return p.parseNumber()
	case isIdentStart(rune(ch)):
		return p.parseIdent()
	case ch == 0:
		return nil, p.errorf("unexpected end of input")
	default:
		return nil, p.errorf("unexpected character %q", ch)
	}
}

func (p *parser) parseNumber() (Node, error) {
	start := p.pos
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		if ch >= '0' && ch <= '9' || ch == '.' {
			p.pos++
			continue
		}
		// scientific notation: 1.5e-07
		if (ch == 'e' || ch == 'E') && p.pos > start {
			next := p.pos + 1
			if next < len(p.src) && (p.src[next] == '+' || p.src[next] == '-') {
				next++
			}
			if next < len(p.src) && p.src[next] >= '0' && p.src[next] <= '9' {
				p.pos = next + 1
				continue
			}
		}
		break
	}
	val, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, p.errorf("invalid number %q", p.src[start:p.pos])
	}
	return &Num{Val: val}, nil
}

func (p *parser) parseIdent() (Node, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentPart(rune(p.src[p.pos])) {
		p.pos++
	}
	name := p.src[start:p.pos]

	p.skipSpace()
	if p.peek() == '(' {
		if !KnownCall(name) {
			return nil, p.errorf("unknown function %q", name)
		}
		p.pos++
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, p.errorf("expected ')' closing %s(...)", name)
		}
		p.pos++
		return &Call{Fn: name, Arg: arg}, nil
	}

	if val, ok := p.consts[name]; ok {
		return &Num{Val: val}, nil
	}
	if p.vars[name] {
		return &Var{Name: name}, nil
	}
	switch name {
	case "pi":
		return &Num{Val: math.Pi}, nil
	case "E":
		return &Num{Val: math.E}, nil
	}
	return nil, p.errorf("unknown identifier %q", name)
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
