package stylesheet

import (
	"fmt"
	"strings"
)

// ParseError reports a syntax error with its position in the source.
// Line and Column are 1-based; Offset is a 0-based byte offset.
type ParseError struct {
	Line, Column, Offset int
	Message              string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("stylesheet: line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Grammar:
//
//	stylesheet       := WS rule* WS
//	rule             := selector-list declaration-list
//	selector-list    := selector WS ( ',' WS selector WS )*
//	selector         := IDENT ( '.' IDENT )?
//	declaration-list := '{' WS ( ( declaration ';' | ';' ) WS )* '}' WS
//	declaration      := IDENT WS ':' WS value WS
//	value            := IDENT | NUMBER | COLOR
//	IDENT            := [A-Za-z_] ( [A-Za-z0-9_] | '\' ANY )*
//	NUMBER           := '-'? [0-9]+ ( '.' [0-9]+ )? ( [eE] [-+]? [0-9]+ )?
//	COLOR            := '#' [0-9A-Fa-f]{6}
//	WS               := ( [ \t\r\n] | '/*' ... '*/' )*
type parser struct {
	src  string
	pos  int
	line int
	col  int
}

const eof = -1

func (p *parser) peek() int {
	if p.pos >= len(p.src) {
		return eof
	}
	return int(p.src[p.pos])
}

func (p *parser) read() int {
	c := p.peek()
	if c == eof {
		return eof
	}
	p.pos++
	if c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return c
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Line: p.line, Column: p.col, Offset: p.pos, Message: fmt.Sprintf(format, args...)}
}

// saw describes the remainder of the current line for error messages.
func (p *parser) saw() string {
	if p.pos >= len(p.src) {
		return "EOF"
	}
	rest := p.src[p.pos:]
	if i := strings.IndexAny(rest, "\r\n"); i >= 0 {
		rest = rest[:i]
	}
	return fmt.Sprintf("%q", rest)
}

func (p *parser) expect(c byte) error {
	if p.peek() != int(c) {
		return p.errorf("expected '%c', saw %s", c, p.saw())
	}
	p.read()
	return nil
}

func (p *parser) ws() error {
	for {
		switch p.peek() {
		case '\t', '\n', '\r', ' ':
			p.read()
		case '/':
			p.read()
			if p.peek() != '*' {
				return p.errorf("expected /* ... */, saw %s", p.saw())
			}
			p.read()
			for {
				c := p.read()
				if c == eof {
					return p.errorf("expected */, saw EOF")
				}
				if c == '*' && p.peek() == '/' {
					p.read()
					break
				}
			}
		default:
			return nil
		}
	}
}

func isLetter(c int) bool { return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') || c == '_' }
func isDigit(c int) bool  { return '0' <= c && c <= '9' }
func isHex(c int) bool {
	return isDigit(c) || ('A' <= c && c <= 'F') || ('a' <= c && c <= 'f')
}

func (p *parser) ident() (string, bool, error) {
	if !isLetter(p.peek()) {
		return "", false, nil
	}
	var sb strings.Builder
	sb.WriteByte(byte(p.read()))
	for {
		c := p.peek()
		if c == '\\' {
			p.read()
			if p.peek() == eof {
				return "", false, p.errorf("expected character after \\, saw EOF")
			}
		} else if !isLetter(c) && !isDigit(c) {
			break
		}
		sb.WriteByte(byte(p.read()))
	}
	return sb.String(), true, nil
}

func (p *parser) number() (string, bool, error) {
	c := p.peek()
	if c != '-' && !isDigit(c) {
		return "", false, nil
	}
	start := p.pos
	if c == '-' {
		p.read()
	}
	digits := func() error {
		if !isDigit(p.peek()) {
			return p.errorf("expected digit, saw %s", p.saw())
		}
		for isDigit(p.peek()) {
			p.read()
		}
		return nil
	}
	if err := digits(); err != nil {
		return "", false, err
	}
	if p.peek() == '.' {
		p.read()
		if err := digits(); err != nil {
			return "", false, err
		}
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		p.read()
		if c := p.peek(); c == '+' || c == '-' {
			p.read()
		}
		if err := digits(); err != nil {
			return "", false, err
		}
	}
	return p.src[start:p.pos], true, nil
}

func (p *parser) color() (string, bool, error) {
	if p.peek() != '#' {
		return "", false, nil
	}
	start := p.pos
	p.read()
	for range 6 {
		if !isHex(p.peek()) {
			return "", false, p.errorf("expected hex digit, saw %s", p.saw())
		}
		p.read()
	}
	return p.src[start:p.pos], true, nil
}

func (p *parser) value() (string, error) {
	for _, scan := range []func() (string, bool, error){p.ident, p.number, p.color} {
		v, ok, err := scan()
		if err != nil {
			return "", err
		}
		if ok {
			return v, nil
		}
	}
	return "", p.errorf("expected value, saw %s", p.saw())
}

func (p *parser) selector() (*Selector, error) {
	element, ok, err := p.ident()
	if err != nil || !ok {
		return nil, err
	}
	sel := &Selector{Element: element}
	if p.peek() == '.' {
		p.read()
		code, ok, err := p.ident()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, p.errorf("expected code, saw %s", p.saw())
		}
		sel.Code = code
	}
	return sel, nil
}

func (p *parser) selectorList() ([]Selector, error) {
	sel, err := p.selector()
	if err != nil || sel == nil {
		return nil, err
	}
	selectors := []Selector{*sel}
	if err := p.ws(); err != nil {
		return nil, err
	}
	for p.peek() == ',' {
		p.read()
		if err := p.ws(); err != nil {
			return nil, err
		}
		sel, err := p.selector()
		if err != nil {
			return nil, err
		}
		if sel == nil {
			return nil, p.errorf("expected selector, saw %s", p.saw())
		}
		selectors = append(selectors, *sel)
		if err := p.ws(); err != nil {
			return nil, err
		}
	}
	return selectors, nil
}

func (p *parser) declaration() (*Declaration, error) {
	property, ok, err := p.ident()
	if err != nil || !ok {
		return nil, err
	}
	if err := p.ws(); err != nil {
		return nil, err
	}
	if err := p.expect(':'); err != nil {
		return nil, err
	}
	if err := p.ws(); err != nil {
		return nil, err
	}
	value, err := p.value()
	if err != nil {
		return nil, err
	}
	return &Declaration{Property: property, Value: value}, p.ws()
}

func (p *parser) declarationList() ([]Declaration, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	if err := p.ws(); err != nil {
		return nil, err
	}
	var decls []Declaration
	for p.peek() != '}' {
		if p.peek() == ';' {
			p.read()
			if err := p.ws(); err != nil {
				return nil, err
			}
			continue
		}
		d, err := p.declaration()
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, p.errorf("expected property or '}', saw %s", p.saw())
		}
		// Every declaration is terminated, including the last one.
		if err := p.expect(';'); err != nil {
			return nil, err
		}
		if err := p.ws(); err != nil {
			return nil, err
		}
		decls = append(decls, *d)
	}
	p.read()
	return decls, p.ws()
}

func (p *parser) stylesheet() ([]Rule, error) {
	if err := p.ws(); err != nil {
		return nil, err
	}
	var rules []Rule
	for {
		selectors, err := p.selectorList()
		if err != nil {
			return nil, err
		}
		if selectors == nil {
			break
		}
		decls, err := p.declarationList()
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{Selectors: selectors, Declarations: decls})
	}
	if err := p.ws(); err != nil {
		return nil, err
	}
	if p.peek() != eof {
		return nil, p.errorf("expected EOF, saw %s", p.saw())
	}
	return rules, nil
}
