package syntax

import "fmt"

// Parse parses a comma-separated expression list.
func Parse(src string) (*List, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseList()
}

// ParseExpr parses a single expression.
func ParseExpr(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.current().kind != tokEOF {
		return nil, p.unexpected("end of input")
	}
	return e, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) current() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.current()
	if t.kind != kind {
		return t, p.unexpected(kind.String())
	}
	return p.advance(), nil
}

func (p *parser) unexpected(want string) error {
	t := p.current()
	return &Error{Pos: t.pos, Msg: fmt.Sprintf("expected %s, found %s", want, t.describe())}
}

func (p *parser) parseList() (*List, error) {
	list := &List{}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, e)
		if p.current().kind != tokComma {
			break
		}
		p.advance()
	}
	if p.current().kind != tokEOF {
		return nil, p.unexpected("',' or end of input")
	}
	return list, nil
}

func (p *parser) parseExpr() (Expr, error) {
	x, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.current().kind {
		case tokPlus:
			op = Add
		case tokMinus:
			op = Sub
		default:
			return x, nil
		}
		at := p.advance().pos
		y, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		x = &Binary{X: x, Op: op, OpAt: at, Y: y}
	}
}

func (p *parser) parseTerm() (Expr, error) {
	x, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.current().kind {
		case tokStar:
			op = Mul
		case tokSlash:
			op = Div
		default:
			return x, nil
		}
		at := p.advance().pos
		y, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		x = &Binary{X: x, Op: op, OpAt: at, Y: y}
	}
}

func (p *parser) parsePostfix() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.current().kind == tokDot {
		p.advance()
		name, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		x = &Member{X: x, Name: name.text, NameAt: name.pos}
	}
	return x, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.current()
	switch t.kind {
	case tokNumber:
		p.advance()
		return &Number{At: t.pos, Text: t.text}, nil

	case tokIdent:
		p.advance()
		if p.current().kind != tokLParen {
			return &Ident{At: t.pos, Name: t.text}, nil
		}
		p.advance()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &Call{At: t.pos, Func: t.text, Args: args}, nil

	case tokLParen:
		p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return &Paren{At: t.pos, X: x}, nil
	}
	return nil, p.unexpected("operand")
}

// parseArgs parses call arguments after the opening parenthesis.
func (p *parser) parseArgs() ([]Expr, error) {
	var args []Expr
	if p.current().kind == tokRParen {
		p.advance()
		return args, nil
	}
	for {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.current().kind == tokComma {
			p.advance()
			continue
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return args, nil
	}
}
