// Package expr evaluates scientific calculator expressions with a small
// recursive-descent parser. No dynamic code evaluation is involved; the
// grammar is fixed and every function is bound statically.
package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mode selects how trigonometric functions interpret angles.
type Mode int

const (
	// Radians evaluates trig functions on raw radian arguments.
	Radians Mode = iota
	// Degrees converts trig arguments from degrees and inverse trig
	// results back to degrees.
	Degrees
)

// ParseMode maps the wire value ("deg" or "rad") to a Mode. Unknown values
// fall back to degrees, the calculator's default.
func ParseMode(s string) Mode {
	if strings.EqualFold(s, "rad") {
		return Radians
	}
	return Degrees
}

// Normalize rewrites display notation into parser syntax. The on-screen
// keypad emits unicode operators and the square-root glyph.
func Normalize(s string) string {
	r := strings.NewReplacer(
		"×", "*",
		"÷", "/",
		"−", "-",
		"√(", "sqrt(",
		"π", "pi",
	)
	return r.Replace(s)
}

// Evaluate normalizes, parses, and evaluates the expression. The result is
// rounded at the twelfth decimal to absorb float noise, and non-finite
// results are rejected.
func Evaluate(input string, mode Mode) (float64, error) {
	return EvaluateWith(input, mode, nil)
}

// EvaluateWith evaluates the expression with named variables bound. Variables
// shadow the built-in constants.
func EvaluateWith(input string, mode Mode, vars map[string]float64) (float64, error) {
	p := &parser{src: Normalize(input), mode: mode, vars: vars}
	p.next()
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.tok.kind != tokEOF {
		return 0, fmt.Errorf("unexpected %q at position %d", p.tok.text, p.tok.pos)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("result is not a finite number")
	}
	return math.Round(v*1e12) / 1e12, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInvalid
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokCaret
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

type parser struct {
	src  string
	off  int
	tok  token
	mode Mode
	vars map[string]float64
}

func (p *parser) next() {
	for p.off < len(p.src) && (p.src[p.off] == ' ' || p.src[p.off] == '\t') {
		p.off++
	}
	start := p.off
	if p.off >= len(p.src) {
		p.tok = token{kind: tokEOF, pos: start}
		return
	}
	c := p.src[p.off]
	switch {
	case c >= '0' && c <= '9' || c == '.':
		end := p.off
		for end < len(p.src) && (p.src[end] >= '0' && p.src[end] <= '9' || p.src[end] == '.') {
			end++
		}
		text := p.src[p.off:end]
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			n = math.NaN()
		}
		p.tok = token{kind: tokNumber, text: text, num: n, pos: start}
		p.off = end
	case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		end := p.off
		for end < len(p.src) && (p.src[end] >= 'a' && p.src[end] <= 'z' || p.src[end] >= 'A' && p.src[end] <= 'Z' || p.src[end] >= '0' && p.src[end] <= '9') {
			end++
		}
		p.tok = token{kind: tokIdent, text: p.src[p.off:end], pos: start}
		p.off = end
	default:
		kinds := map[byte]tokenKind{
			'+': tokPlus, '-': tokMinus, '*': tokStar, '/': tokSlash,
			'%': tokPercent, '^': tokCaret, '(': tokLParen, ')': tokRParen,
			',': tokComma,
		}
		kind, ok := kinds[c]
		if !ok {
			p.tok = token{kind: tokInvalid, text: string(c), pos: start}
			p.off++
			return
		}
		p.tok = token{kind: kind, text: string(c), pos: start}
		p.off++
	}
}

// parseExpr handles addition and subtraction.
func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.tok.kind {
		case tokPlus:
			p.next()
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += rhs
		case tokMinus:
			p.next()
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

// parseTerm handles multiplication, division, and modulo.
func (p *parser) parseTerm() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.tok.kind {
		case tokStar:
			p.next()
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case tokSlash:
			p.next()
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v /= rhs
		case tokPercent:
			p.next()
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v = math.Mod(v, rhs)
		default:
			return v, nil
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	if p.tok.kind == tokMinus {
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	if p.tok.kind == tokPlus {
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower handles exponentiation, which binds tighter than unary minus
// on the right so that 2^-2 parses.
func (p *parser) parsePower() (float64, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if p.tok.kind == tokCaret {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (float64, error) {
	switch p.tok.kind {
	case tokNumber:
		v := p.tok.num
		if math.IsNaN(v) {
			return 0, fmt.Errorf("malformed number %q at position %d", p.tok.text, p.tok.pos)
		}
		p.next()
		return v, nil
	case tokLParen:
		p.next()
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.tok.kind != tokRParen {
			return 0, fmt.Errorf("missing closing parenthesis at position %d", p.tok.pos)
		}
		p.next()
		return v, nil
	case tokIdent:
		name := strings.ToLower(p.tok.text)
		pos := p.tok.pos
		p.next()
		if v, ok := p.vars[name]; ok {
			return v, nil
		}
		if c, ok := constants[name]; ok {
			return c, nil
		}
		fn, ok := functions[name]
		if !ok {
			return 0, fmt.Errorf("unknown identifier %q at position %d", name, pos)
		}
		if p.tok.kind != tokLParen {
			return 0, fmt.Errorf("function %q requires an argument at position %d", name, pos)
		}
		p.next()
		arg, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.tok.kind != tokRParen {
			return 0, fmt.Errorf("missing closing parenthesis for %q at position %d", name, p.tok.pos)
		}
		p.next()
		return fn(p.mode, arg)
	case tokEOF:
		return 0, fmt.Errorf("unexpected end of expression at position %d", p.tok.pos)
	default:
		return 0, fmt.Errorf("unexpected %q at position %d", p.tok.text, p.tok.pos)
	}
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

type funcImpl func(mode Mode, x float64) (float64, error)

func trig(f func(float64) float64) funcImpl {
	return func(mode Mode, x float64) (float64, error) {
		if mode == Degrees {
			x = x * math.Pi / 180
		}
		return f(x), nil
	}
}

func invTrig(f func(float64) float64) funcImpl {
	return func(mode Mode, x float64) (float64, error) {
		v := f(x)
		if mode == Degrees {
			v = v * 180 / math.Pi
		}
		return v, nil
	}
}

func plain(f func(float64) float64) funcImpl {
	return func(_ Mode, x float64) (float64, error) {
		return f(x), nil
	}
}

var functions = map[string]funcImpl{
	"sin":  trig(math.Sin),
	"cos":  trig(math.Cos),
	"tan":  trig(math.Tan),
	"asin": invTrig(math.Asin),
	"acos": invTrig(math.Acos),
	"atan": invTrig(math.Atan),
	"sinh": plain(math.Sinh),
	"cosh": plain(math.Cosh),
	"tanh": plain(math.Tanh),
	"sqrt": plain(math.Sqrt),
	"log":  plain(math.Log10),
	"ln":   plain(math.Log),
	"abs":  plain(math.Abs),
	"exp":  plain(math.Exp),
	"fact": factorial,
}

// factorial accepts non-negative integers up to 170, the last value whose
// factorial fits in a float64.
func factorial(_ Mode, x float64) (float64, error) {
	if x < 0 || x != math.Trunc(x) {
		return 0, fmt.Errorf("fact requires a non-negative integer, got %v", x)
	}
	if x > 170 {
		return 0, fmt.Errorf("fact argument %v is too large", x)
	}
	v := 1.0
	for i := 2.0; i <= x; i++ {
		v *= i
	}
	return v, nil
}
