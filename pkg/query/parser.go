package query

import (
	"strconv"

	"github.com/Sumatoshi-tech/stylewalk/pkg/axis"
)

//nolint:gochecknoglobals // Static lookup table.
var comparisonOps = map[tokenKind]string{
	tokEq:  "=",
	tokNeq: "!=",
	tokLt:  "<",
	tokLte: "<=",
	tokGt:  ">",
	tokGte: ">=",
}

type parser struct {
	query  string
	tokens []token
	pos    int
}

func parse(query string) (expr, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return nil, err
	}

	p := &parser{query: query, tokens: tokens}

	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}

	return root, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) token {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.pos+offset]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}

	return tok
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		return tok, p.errorf(tok, "expected %s", what)
	}

	return tok, nil
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return newSyntaxError(p.query, tok.pos, format, args...)
}

func (p *parser) isKeyword(text string) bool {
	tok := p.peek()

	return tok.kind == tokName && tok.text == text
}

func (p *parser) parseOr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.isKeyword("or") {
		p.next()

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = &binaryExpr{op: "or", left: left, right: right}
	}

	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.isKeyword("and") {
		p.next()

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		left = &binaryExpr{op: "and", left: left, right: right}
	}

	return left, nil
}

func (p *parser) parseComparison() (expr, error) {
	left, err := p.parseUnion()
	if err != nil {
		return nil, err
	}

	op, ok := comparisonOps[p.peek().kind]
	if !ok {
		return left, nil
	}

	p.next()

	right, err := p.parseUnion()
	if err != nil {
		return nil, err
	}

	return &binaryExpr{op: op, left: left, right: right}, nil
}

func (p *parser) parseUnion() (expr, error) {
	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.peek().kind != tokPipe {
		return first, nil
	}

	union := &unionExpr{parts: []expr{first}}

	for p.peek().kind == tokPipe {
		p.next()

		part, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		union.parts = append(union.parts, part)
	}

	return union, nil
}

func (p *parser) parsePrimary() (expr, error) {
	tok := p.peek()

	switch tok.kind {
	case tokAt:
		p.next()

		name, err := p.expect(tokName, "attribute name")
		if err != nil {
			return nil, err
		}

		return &attrRef{name: name.text}, nil

	case tokString:
		p.next()

		return &stringLit{value: tok.text}, nil

	case tokNumber:
		p.next()

		value, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid number %q", tok.text)
		}

		return &numberLit{value: value}, nil

	case tokLParen:
		p.next()

		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}

		return inner, nil

	case tokName:
		if p.peekAt(1).kind == tokLParen && tok.text != "node" {
			return p.parseFunction()
		}

		return p.parsePath()

	case tokSlash, tokDoubleSlash, tokDot, tokDotDot, tokStar:
		return p.parsePath()

	default:
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}
}

func (p *parser) parseFunction() (expr, error) {
	name := p.next()
	p.next() // "(".

	call := &funcCall{name: name.text}

	if !knownFunction(name.text) {
		return nil, p.errorf(name, "unknown function %s()", name.text)
	}

	if p.peek().kind == tokRParen {
		p.next()

		return call, checkArity(p, name, call)
	}

	for {
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}

		call.args = append(call.args, arg)

		if p.peek().kind == tokComma {
			p.next()

			continue
		}

		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}

		return call, checkArity(p, name, call)
	}
}

func checkArity(p *parser, name token, call *funcCall) error {
	spec := functions[call.name]
	if len(call.args) < spec.minArgs || len(call.args) > spec.maxArgs {
		return p.errorf(name, "%s() takes %d to %d arguments, got %d",
			call.name, spec.minArgs, spec.maxArgs, len(call.args))
	}

	return nil
}

func (p *parser) parsePath() (expr, error) {
	path := &pathExpr{}

	switch p.peek().kind {
	case tokSlash:
		p.next()

		path.absolute = true

		if !p.startsStep() {
			return nil, p.errorf(p.peek(), "expected a location step after '/'")
		}
	case tokDoubleSlash:
		p.next()

		path.absolute = true
		path.steps = append(path.steps, descendantOrSelfStep())
	}

	for {
		st, err := p.parseStep()
		if err != nil {
			return nil, err
		}

		path.steps = append(path.steps, st)

		switch p.peek().kind {
		case tokSlash:
			p.next()
		case tokDoubleSlash:
			p.next()

			path.steps = append(path.steps, descendantOrSelfStep())
		default:
			return path, nil
		}
	}
}

func (p *parser) startsStep() bool {
	switch p.peek().kind {
	case tokName, tokStar, tokDot, tokDotDot:
		return true
	default:
		return false
	}
}

func descendantOrSelfStep() step {
	return step{axis: axis.DescendantOrSelf, test: nodeTest{anyNode: true}}
}

func (p *parser) parseStep() (step, error) {
	tok := p.peek()

	switch tok.kind {
	case tokDot:
		p.next()

		return step{axis: axis.Self, test: nodeTest{anyNode: true}}, nil
	case tokDotDot:
		p.next()

		return step{axis: axis.Parent, test: nodeTest{anyNode: true}}, nil
	case tokAt:
		return step{}, p.errorf(tok, "attributes can only be used inside predicates")
	}

	st := step{axis: axis.Child}

	if tok.kind == tokName && p.peekAt(1).kind == tokAxisSep {
		ax, ok := axis.ParseAxis(tok.text)
		if !ok {
			return step{}, p.errorf(tok, "unknown axis %q", tok.text)
		}

		st.axis = ax

		p.next()
		p.next()
	}

	test, err := p.parseNodeTest()
	if err != nil {
		return step{}, err
	}

	st.test = test

	for p.peek().kind == tokLBracket {
		p.next()

		pred, err := p.parseOr()
		if err != nil {
			return step{}, err
		}

		if _, err := p.expect(tokRBracket, "']'"); err != nil {
			return step{}, err
		}

		st.predicates = append(st.predicates, pred)
	}

	return st, nil
}

func (p *parser) parseNodeTest() (nodeTest, error) {
	tok := p.next()

	switch tok.kind {
	case tokStar:
		return nodeTest{any: true}, nil
	case tokName:
		if tok.text == "node" && p.peek().kind == tokLParen {
			p.next()

			if _, err := p.expect(tokRParen, "')'"); err != nil {
				return nodeTest{}, err
			}

			return nodeTest{anyNode: true}, nil
		}

		return nodeTest{name: tok.text}, nil
	default:
		return nodeTest{}, p.errorf(tok, "expected a node test")
	}
}
