package expr

import (
	"fmt"
	"strings"

	"github.com/Nabagata/scim/spec"
)

// CompileFilter parses a SCIM filter string into a Filter AST per the grammar in spec.md §4.4:
//
//	filter    := term  (' or ' term)*
//	term      := factor (' and ' factor)*
//	factor    := '(' filter ')' | predicate
//	predicate := attrPath op value | attrPath ' pr'
func CompileFilter(filter string) (*Filter, error) {
	tokens, err := tokenize(filter)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	f, err := p.parseFilter()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("%w: unexpected trailing input", spec.ErrInvalidFilter)
	}
	return f, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) peekWord(word string) bool {
	t, ok := p.peek()
	return ok && t.kind == tokWord && strings.EqualFold(t.text, word)
}

func (p *parser) parseFilter() (*Filter, error) {
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	f := &Filter{Or: []*Term{term}}
	for p.peekWord(Or) {
		p.pos++
		next, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		f.Or = append(f.Or, next)
	}
	return f, nil
}

func (p *parser) parseTerm() (*Term, error) {
	factor, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	t := &Term{And: []*Factor{factor}}
	for p.peekWord(And) {
		p.pos++
		next, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		t.And = append(t.And, next)
	}
	return t, nil
}

func (p *parser) parseFactor() (*Factor, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of filter", spec.ErrInvalidFilter)
	}
	if tok.kind == tokLParen {
		p.pos++
		sub, err := p.parseFilter()
		if err != nil {
			return nil, err
		}
		closeTok, ok := p.peek()
		if !ok || closeTok.kind != tokRParen {
			return nil, fmt.Errorf("%w: missing closing parenthesis", spec.ErrInvalidFilter)
		}
		p.pos++
		return &Factor{Sub: sub}, nil
	}
	pred, err := p.parsePredicate()
	if err != nil {
		return nil, err
	}
	return &Factor{Predicate: pred}, nil
}

func (p *parser) parsePredicate() (*Predicate, error) {
	pathTok, ok := p.peek()
	if !ok || pathTok.kind != tokWord {
		return nil, fmt.Errorf("%w: expected attribute path", spec.ErrInvalidFilter)
	}
	p.pos++
	path := ParsePath(pathTok.text)

	opTok, ok := p.peek()
	if !ok || opTok.kind != tokWord {
		return nil, fmt.Errorf("%w: expected operator after %q", spec.ErrInvalidFilter, pathTok.text)
	}
	op := strings.ToLower(opTok.text)
	p.pos++

	if op == Pr {
		return &Predicate{Path: path, Op: Pr}, nil
	}
	if !isRelational(op) {
		return nil, fmt.Errorf("%w: unknown operator %q", spec.ErrInvalidFilter, opTok.text)
	}

	valTok, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("%w: expected value after operator %q", spec.ErrInvalidFilter, op)
	}
	p.pos++

	var value interface{}
	switch valTok.kind {
	case tokString:
		value = valTok.text
	case tokNumber:
		value = valTok.num
	case tokBool:
		value = valTok.b
	default:
		return nil, fmt.Errorf("%w: invalid value in predicate", spec.ErrInvalidFilter)
	}

	return &Predicate{Path: path, Op: op, Value: value}, nil
}
