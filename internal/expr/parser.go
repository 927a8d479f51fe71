package expr

// maxDepth bounds parenthesis and unary nesting.
const maxDepth = 200

// #region parse
// Parse builds an expression tree from src. With a nil table only numeric
// arithmetic is accepted and every identifier is an unknown symbol.
//
// Grammar:
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := ('+' | '-') unary | postfix
//	postfix := primary '%'*
//	primary := number | ident | ident '(' args ')' | '(' expr ')'
func Parse(src string, syms *Symbols) (Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, syms: syms}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, syntaxErr(tok.pos, "unexpected %s", describe(tok))
	}
	return n, nil
}

// #endregion parse

// #region parser
type parser struct {
	toks  []token
	pos   int
	depth int
	syms  *Symbols
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > maxDepth {
		return syntaxErr(pos, "expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokPlus && tok.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: tok.text[0], Left: left, Right: right}
	}
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokStar && tok.kind != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: tok.text[0], Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	tok := p.peek()
	if tok.kind != tokPlus && tok.kind != tokMinus {
		return p.parsePostfix()
	}
	p.next()
	if err := p.enter(tok.pos); err != nil {
		return nil, err
	}
	defer p.leave()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokMinus {
		return &Neg{X: operand}, nil
	}
	return operand, nil
}

func (p *parser) parsePostfix() (Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokPercent {
		p.next()
		n = &Percent{X: n}
	}
	return n, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return Num(tok.num), nil
	case tokIdent:
		return p.parseIdent(tok)
	case tokLParen:
		if err := p.enter(tok.pos); err != nil {
			return nil, err
		}
		defer p.leave()
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, syntaxErr(closing.pos, "expected ')' to close '(' at offset %d, found %s", tok.pos, describe(closing))
		}
		return n, nil
	case tokEOF:
		return nil, syntaxErr(tok.pos, "missing operand at end of expression")
	default:
		return nil, syntaxErr(tok.pos, "expected operand, found %s", describe(tok))
	}
}

func (p *parser) parseIdent(tok token) (Node, error) {
	name := canonical(tok.text)
	if p.syms == nil {
		return nil, &Error{Kind: KindUnknownSymbol, Pos: tok.pos, Msg: "identifier " + tok.text + " is not allowed"}
	}
	if p.peek().kind == tokLParen {
		fn, ok := p.syms.Funcs[name]
		if !ok {
			if p.isValue(name) {
				return nil, syntaxErr(tok.pos, "%s is not a function", tok.text)
			}
			return nil, &Error{Kind: KindUnknownSymbol, Pos: tok.pos, Msg: "unknown function " + tok.text}
		}
		return p.parseCall(tok, name, fn)
	}
	if name == p.syms.Var && name != "" {
		return Var(name), nil
	}
	if v, ok := p.syms.Consts[name]; ok {
		return Num(v), nil
	}
	if _, ok := p.syms.Funcs[name]; ok {
		return nil, syntaxErr(tok.pos, "function %s must be called with parentheses", tok.text)
	}
	return nil, &Error{Kind: KindUnknownSymbol, Pos: tok.pos, Msg: "unknown identifier " + tok.text}
}

func (p *parser) isValue(name string) bool {
	if name != "" && name == p.syms.Var {
		return true
	}
	_, ok := p.syms.Consts[name]
	return ok
}

func (p *parser) parseCall(tok token, name string, fn Func) (Node, error) {
	open := p.next()
	if err := p.enter(open.pos); err != nil {
		return nil, err
	}
	defer p.leave()

	var args []Node
	if p.peek().kind != tokRParen {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if closing := p.next(); closing.kind != tokRParen {
		return nil, syntaxErr(closing.pos, "expected ')' to close call to %s, found %s", tok.text, describe(closing))
	}
	if len(args) != fn.Arity {
		return nil, syntaxErr(tok.pos, "%s takes %d argument(s), got %d", tok.text, fn.Arity, len(args))
	}
	return &Call{Name: name, Fn: fn, Args: args}, nil
}

func describe(tok token) string {
	switch tok.kind {
	case tokNumber, tokIdent:
		return tok.kind.String() + " " + tok.text
	}
	return tok.kind.String()
}

// #endregion parser
