// Package emit implements the target-surface emitter of spec section
// 4.7: it walks the same grammar package eval evaluates, but renders
// text for the client-side target surface instead of a Value.
package emit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/exprlang/eval"
	"github.com/cwbudde/exprlang/registry"
	"github.com/cwbudde/exprlang/resolver"
	"github.com/cwbudde/exprlang/token"
)

type renderer struct {
	tokens   []token.Token
	registry *registry.Registry
	pos      int
	errors   eval.Errors
	vars     map[string]bool
}

// Render walks tokens (already lexed from a single expression) and
// renders the equivalent target-surface expression: operator aliases
// are normalized to their symbolic form, function calls are rewritten
// under their TargetName (or "" when TargetName is "NA", spec 4.7's
// unsupported-on-target marker), and variable references become
// READ(name) calls. When the expression references one or more
// variables, the result is wrapped in IF(ANY_NA([...]), null, expr) so
// the target surface short-circuits to null exactly when the host-side
// evaluator would have seen an irrelevant variable; otherwise it is
// wrapped in a bare pair of parentheses.
func Render(tokens []token.Token, reg *registry.Registry) (string, []string, eval.Errors) {
	r := &renderer{tokens: tokens, registry: reg, vars: make(map[string]bool)}
	if len(tokens) == 0 {
		return `""`, nil, nil
	}
	expr := r.assignment()
	if r.pos < len(r.tokens) {
		tok := r.tokens[r.pos]
		r.addError(fmt.Sprintf("unexpected %s %q", tok.Kind, tok.Lexeme), tok.Offset)
	}

	names := make([]string, 0, len(r.vars))
	for n := range r.vars {
		names = append(names, n)
	}
	sort.Strings(names)

	if len(names) == 0 {
		return "(" + expr + ")", names, r.errors
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}
	wrapped := fmt.Sprintf("IF(ANY_NA([%s]), null, %s)", strings.Join(quoted, ", "), expr)
	return wrapped, names, r.errors
}

func (r *renderer) addError(message string, offset int) {
	r.errors = append(r.errors, &eval.Error{Kind: eval.SyntaxError, Message: message, Offset: offset})
}

func (r *renderer) peek() (token.Token, bool) {
	if r.pos >= len(r.tokens) {
		return token.Token{}, false
	}
	return r.tokens[r.pos], true
}

func (r *renderer) peekAt(n int) (token.Token, bool) {
	if r.pos+n >= len(r.tokens) {
		return token.Token{}, false
	}
	return r.tokens[r.pos+n], true
}

func (r *renderer) advance() token.Token {
	tok := r.tokens[r.pos]
	r.pos++
	return tok
}

func (r *renderer) assignment() string {
	if tok, ok := r.peek(); ok && (tok.Kind == token.WORD || tok.Kind == token.SGQA) {
		if next, ok := r.peekAt(1); ok && next.Kind == token.ASSIGN {
			nameTok := r.advance()
			r.advance()
			rhs := r.assignment()
			ref := resolver.Parse(nameTok.Lexeme)
			return fmt.Sprintf("%s = %s", ref.Root, rhs)
		}
	}
	return r.logicalOr()
}

func (r *renderer) logicalOr() string {
	left := r.logicalAnd()
	for {
		tok, ok := r.peek()
		if !ok || tok.Kind != token.AND_OR || !(tok.Lexeme == "||" || tok.Lexeme == "or") {
			break
		}
		r.advance()
		right := r.logicalAnd()
		left = fmt.Sprintf("(%s || %s)", left, right)
	}
	return left
}

func (r *renderer) logicalAnd() string {
	left := r.relational()
	for {
		tok, ok := r.peek()
		if !ok || tok.Kind != token.AND_OR || !(tok.Lexeme == "&&" || tok.Lexeme == "and") {
			break
		}
		r.advance()
		right := r.relational()
		left = fmt.Sprintf("(%s && %s)", left, right)
	}
	return left
}

func (r *renderer) relational() string {
	left := r.additive()
	for {
		tok, ok := r.peek()
		if !ok || tok.Kind != token.COMPARE {
			break
		}
		r.advance()
		right := r.additive()
		left = fmt.Sprintf("(%s %s %s)", left, normalizeOp(tok.Lexeme), right)
	}
	return left
}

func normalizeOp(lexeme string) string {
	switch lexeme {
	case "lt":
		return "<"
	case "le":
		return "<="
	case "gt":
		return ">"
	case "ge":
		return ">="
	case "eq":
		return "=="
	case "ne":
		return "!="
	}
	return lexeme
}

func (r *renderer) additive() string {
	left := r.multiplicative()
	for {
		tok, ok := r.peek()
		if !ok || tok.Kind != token.BINARYOP || !(tok.Lexeme == "+" || tok.Lexeme == "-") {
			break
		}
		r.advance()
		right := r.multiplicative()
		left = fmt.Sprintf("(%s %s %s)", left, tok.Lexeme, right)
	}
	return left
}

func (r *renderer) multiplicative() string {
	left := r.unary()
	for {
		tok, ok := r.peek()
		if !ok || tok.Kind != token.BINARYOP || !(tok.Lexeme == "*" || tok.Lexeme == "/") {
			break
		}
		r.advance()
		right := r.unary()
		left = fmt.Sprintf("(%s %s %s)", left, tok.Lexeme, right)
	}
	return left
}

func (r *renderer) unary() string {
	if tok, ok := r.peek(); ok {
		if tok.Kind == token.BINARYOP && (tok.Lexeme == "-" || tok.Lexeme == "+") {
			r.advance()
			return tok.Lexeme + r.unary()
		}
		if tok.Kind == token.NOT {
			r.advance()
			return "!" + r.unary()
		}
	}
	return r.primary()
}

func (r *renderer) primary() string {
	tok, ok := r.peek()
	if !ok {
		r.addError("unexpected end of expression", 0)
		return `""`
	}

	switch tok.Kind {
	case token.NUMBER:
		r.advance()
		return tok.Lexeme

	case token.SQ_STRING, token.DQ_STRING:
		r.advance()
		return strconv.Quote(tok.Lexeme)

	case token.LP:
		r.advance()
		v := r.parenInner()
		return v

	case token.WORD, token.SGQA:
		if next, ok := r.peekAt(1); ok && next.Kind == token.LP {
			return r.call()
		}
		return r.variable()

	default:
		r.advance()
		r.addError(fmt.Sprintf("unexpected %s %q", tok.Kind, tok.Lexeme), tok.Offset)
		return `""`
	}
}

func (r *renderer) parenInner() string {
	parts := []string{r.assignment()}
	for {
		tok, ok := r.peek()
		if !ok || tok.Kind != token.COMMA {
			break
		}
		r.advance()
		parts = append(parts, r.assignment())
	}
	if tok, ok := r.peek(); ok && tok.Kind == token.RP {
		r.advance()
	} else {
		offset := 0
		if ok {
			offset = tok.Offset
		}
		r.addError("expected ')'", offset)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (r *renderer) variable() string {
	tok := r.advance()
	ref := resolver.Parse(tok.Lexeme)
	r.vars[ref.Root] = true
	if ref.Attr != "" {
		return fmt.Sprintf("READ(%s, %s)", strconv.Quote(ref.Root), strconv.Quote(ref.Attr))
	}
	return fmt.Sprintf("READ(%s)", strconv.Quote(ref.Root))
}

func (r *renderer) call() string {
	nameTok := r.advance()
	r.advance() // '('

	var args []string
	if tok, ok := r.peek(); !ok || tok.Kind != token.RP {
		for {
			args = append(args, r.assignment())
			tok, ok := r.peek()
			if ok && tok.Kind == token.COMMA {
				r.advance()
				continue
			}
			break
		}
	}
	if tok, ok := r.peek(); ok && tok.Kind == token.RP {
		r.advance()
	} else {
		r.addError("expected ')'", nameTok.Offset)
	}

	spec, found := r.registry.Lookup(nameTok.Lexeme)
	if !found {
		r.addError("unknown function "+nameTok.Lexeme, nameTok.Offset)
		return `""`
	}
	if spec.TargetName == "NA" || spec.TargetName == "" {
		return `""`
	}
	return fmt.Sprintf("%s(%s)", spec.TargetName, strings.Join(args, ", "))
}
