package eval

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/exprlang/registry"
	"github.com/cwbudde/exprlang/resolver"
	"github.com/cwbudde/exprlang/token"
	"github.com/cwbudde/exprlang/value"
)

// State drives one combined parse+evaluate pass over a token vector
// (spec 4.3): a single cursor, a recursive-descent grammar that
// evaluates as it recognizes, and an accumulating error log rather than
// a stop-at-first-error parser.
type State struct {
	Tokens    []token.Token
	Resolver  resolver.VariableResolver
	Registry  *registry.Registry
	ParseOnly bool
	GroupSeq  int
	QuestionSeq int

	pos      int
	Errors   Errors
	VarsUsed map[string]bool
}

// NewState builds a State ready to run over tokens. reg must not be nil;
// res may be nil for expressions that are known not to touch variables
// (ParseOnly dry-runs, or a pure-function sanity check).
func NewState(tokens []token.Token, res resolver.VariableResolver, reg *registry.Registry, parseOnly bool, groupSeq, questionSeq int) *State {
	return &State{
		Tokens:      tokens,
		Resolver:    res,
		Registry:    reg,
		ParseOnly:   parseOnly,
		GroupSeq:    groupSeq,
		QuestionSeq: questionSeq,
		VarsUsed:    make(map[string]bool),
	}
}

// Run parses and evaluates the entire token vector, returning the
// result of the top-level expression. Trailing unconsumed tokens are
// reported as a syntax error but do not stop evaluation of the prefix
// that did parse.
func (s *State) Run() value.Value {
	if len(s.Tokens) == 0 {
		return value.Str("")
	}
	result := s.parseExpressions()
	if s.pos < len(s.Tokens) {
		tok := s.Tokens[s.pos]
		s.addError(SyntaxError, fmt.Sprintf("unexpected %s %q", tok.Kind, tok.Lexeme), tok.Offset)
	}
	return result
}

// parseExpressions implements the grammar's top production, `expressions
// := expression (',' expression)*` (spec 4.3): a comma-separated
// sequence where every result but the last is discarded.
func (s *State) parseExpressions() value.Value {
	result := s.parseAssignment()
	for {
		tok, ok := s.peek()
		if !ok || tok.Kind != token.COMMA {
			break
		}
		s.advance()
		result = s.parseAssignment()
	}
	return result
}

func (s *State) addError(kind Kind, message string, offset int) {
	s.Errors = append(s.Errors, &Error{Kind: kind, Message: message, Offset: offset})
}

func (s *State) peek() (token.Token, bool) {
	if s.pos >= len(s.Tokens) {
		return token.Token{}, false
	}
	return s.Tokens[s.pos], true
}

func (s *State) peekAt(n int) (token.Token, bool) {
	if s.pos+n >= len(s.Tokens) {
		return token.Token{}, false
	}
	return s.Tokens[s.pos+n], true
}

func (s *State) advance() token.Token {
	tok := s.Tokens[s.pos]
	s.pos++
	return tok
}

// endOffset is used for diagnostics raised past the last token, e.g. an
// expression that ends with an open '('.
func (s *State) endOffset() int {
	if len(s.Tokens) == 0 {
		return 0
	}
	last := s.Tokens[len(s.Tokens)-1]
	return last.Offset + len([]rune(last.Lexeme))
}

func (s *State) expect(kind token.Kind, what string) (token.Token, bool) {
	tok, ok := s.peek()
	if !ok || tok.Kind != kind {
		offset := s.endOffset()
		if ok {
			offset = tok.Offset
		}
		s.addError(SyntaxError, "expected "+what, offset)
		return token.Token{}, false
	}
	return s.advance(), true
}

// parseAssignment implements the grammar's `expression` production: a bare variable
// reference immediately followed by '=' is an assignment (spec 4.3);
// everything else falls through to logicalOr. Only plain '=' is
// accepted — the VariableResolver interface exposes +=/-=/*=//= for
// hosts driving it directly, but the expression grammar itself never
// produces anything but OpAssign (an explicit scope decision: the
// client-side evaluator this mirrors has no compound-assignment
// operator token).
func (s *State) parseAssignment() value.Value {
	if tok, ok := s.peek(); ok && (tok.Kind == token.WORD || tok.Kind == token.SGQA) {
		if next, ok := s.peekAt(1); ok && next.Kind == token.ASSIGN {
			nameTok := s.advance()
			s.advance() // consume '='
			rhs := s.parseAssignment()

			ref := resolver.Parse(nameTok.Lexeme)
			s.VarsUsed[nameTok.Lexeme] = true
			if s.ParseOnly {
				return value.Num(1)
			}
			if s.Resolver == nil {
				s.addError(RuntimeError, "no variable resolver configured for assignment to "+ref.Root, nameTok.Offset)
				return value.NaN()
			}
			stored, err := s.Resolver.Write(resolver.OpAssign, ref.Root, rhs)
			if err != nil {
				s.addError(TypeError, err.Error(), nameTok.Offset)
				return value.NaN()
			}
			return stored
		}
	}
	return s.parseLogicalOr()
}

func (s *State) parseLogicalOr() value.Value {
	left := s.parseLogicalAnd()
	for {
		tok, ok := s.peek()
		if !ok || tok.Kind != token.AND_OR || !(tok.Lexeme == "||" || tok.Lexeme == "or") {
			break
		}
		s.advance()
		right := s.parseLogicalAnd()
		left = value.Or(left, right)
	}
	return left
}

func (s *State) parseLogicalAnd() value.Value {
	left := s.parseRelational()
	for {
		tok, ok := s.peek()
		if !ok || tok.Kind != token.AND_OR || !(tok.Lexeme == "&&" || tok.Lexeme == "and") {
			break
		}
		s.advance()
		right := s.parseRelational()
		left = value.And(left, right)
	}
	return left
}

func (s *State) parseRelational() value.Value {
	left := s.parseAdditive()
	for {
		tok, ok := s.peek()
		if !ok || tok.Kind != token.COMPARE {
			break
		}
		s.advance()
		right := s.parseAdditive()
		left = applyCompare(normalizeCompareOp(tok.Lexeme), left, right)
	}
	return left
}

func normalizeCompareOp(lexeme string) string {
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

func applyCompare(op string, a, b value.Value) value.Value {
	switch op {
	case "==":
		return value.Bool(value.Equal(a, b))
	case "!=":
		return value.Bool(value.NotEqual(a, b))
	default:
		return value.Bool(value.Compare(op, a, b))
	}
}

func (s *State) parseAdditive() value.Value {
	left := s.parseMultiplicative()
	for {
		tok, ok := s.peek()
		if !ok || tok.Kind != token.BINARYOP || !(tok.Lexeme == "+" || tok.Lexeme == "-") {
			break
		}
		s.advance()
		right := s.parseMultiplicative()
		if tok.Lexeme == "+" {
			left = value.Add(left, right)
		} else {
			left = value.Sub(left, right)
		}
	}
	return left
}

func (s *State) parseMultiplicative() value.Value {
	left := s.parseUnary()
	for {
		tok, ok := s.peek()
		if !ok || tok.Kind != token.BINARYOP || !(tok.Lexeme == "*" || tok.Lexeme == "/") {
			break
		}
		s.advance()
		right := s.parseUnary()
		if tok.Lexeme == "*" {
			left = value.Mul(left, right)
		} else {
			left = value.Div(left, right)
		}
	}
	return left
}

func (s *State) parseUnary() value.Value {
	if tok, ok := s.peek(); ok {
		if tok.Kind == token.BINARYOP && (tok.Lexeme == "-" || tok.Lexeme == "+") {
			s.advance()
			operand := s.parseUnary()
			if tok.Lexeme == "-" {
				return value.UnaryNeg(operand)
			}
			return value.UnaryPos(operand)
		}
		if tok.Kind == token.NOT {
			s.advance()
			operand := s.parseUnary()
			return value.UnaryNot(operand)
		}
	}
	return s.parsePrimary()
}

func (s *State) parsePrimary() value.Value {
	tok, ok := s.peek()
	if !ok {
		s.addError(SyntaxError, "unexpected end of expression", s.endOffset())
		return value.NaN()
	}

	switch tok.Kind {
	case token.NUMBER:
		s.advance()
		n, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			s.addError(SyntaxError, "invalid number "+tok.Lexeme, tok.Offset)
			return value.NaN()
		}
		return value.Value{Kind: value.KindNum, Num: n, Origin: value.OriginNumber, Offset: tok.Offset}

	case token.SQ_STRING:
		s.advance()
		return value.Value{Kind: value.KindStr, Str: tok.Lexeme, Origin: value.OriginSQString, Offset: tok.Offset}

	case token.DQ_STRING:
		s.advance()
		return value.Value{Kind: value.KindStr, Str: tok.Lexeme, Origin: value.OriginDQString, Offset: tok.Offset}

	case token.LP:
		s.advance()
		v := s.parseExpressions()
		s.expect(token.RP, "')'")
		return v

	case token.WORD, token.SGQA:
		if next, ok := s.peekAt(1); ok && next.Kind == token.LP {
			return s.parseCall()
		}
		return s.parseVariable()

	default:
		s.advance()
		s.addError(SyntaxError, fmt.Sprintf("unexpected %s %q", tok.Kind, tok.Lexeme), tok.Offset)
		return value.NaN()
	}
}

// parseVariable implements the variable-read semantics of spec 4.3: an
// irrelevant variable (relevanceStatus resolving falsy) reads as an
// opaque NUMBER-tagged null; otherwise the value's origin tag is WORD,
// or NUMBER when the variable's onlynum attribute is set. Explicit
// attribute access (.qid, .NAOK, ...) bypasses the relevance gate
// entirely — it is how a host asks "tell me anyway".
func (s *State) parseVariable() value.Value {
	tok := s.advance()
	ref := resolver.Parse(tok.Lexeme)
	// The referenced-variable set records distinct surface forms (spec
	// 3's invariant), not just the root: `{x}` and `{x.NAOK}` are
	// tracked separately so booleanEvaluate's NAOK exception (spec 6)
	// can recognize which surface form unlocked an irrelevant read.
	s.VarsUsed[tok.Lexeme] = true

	if s.ParseOnly {
		return value.Num(1)
	}
	if s.Resolver == nil {
		s.addError(SyntaxError, "undefined variable "+ref.Root, tok.Offset)
		return value.Null()
	}

	if ref.Attr != "" {
		v, err := s.Resolver.Read(ref.Root, ref.Attr, value.Null(), s.GroupSeq, s.QuestionSeq)
		if err != nil {
			s.addError(SyntaxError, "undefined variable "+tok.Lexeme, tok.Offset)
			return value.NaN()
		}
		return v
	}

	if rel, err := s.Resolver.Read(ref.Root, "relevanceStatus", value.Bool(true), s.GroupSeq, s.QuestionSeq); err == nil && !rel.Truthy() {
		return value.Null()
	}

	v, err := s.Resolver.Read(ref.Root, "", value.Null(), s.GroupSeq, s.QuestionSeq)
	if err != nil {
		s.addError(SyntaxError, "undefined variable "+ref.Root, tok.Offset)
		return value.NaN()
	}

	onlynum, _ := s.Resolver.Read(ref.Root, "onlynum", value.Bool(false), s.GroupSeq, s.QuestionSeq)
	if onlynum.Truthy() {
		v.Origin = value.OriginNumber
	} else {
		v.Origin = value.OriginWord
	}
	return v
}

func (s *State) parseCall() value.Value {
	nameTok := s.advance() // WORD
	s.advance()            // '('

	var args []value.Value
	if tok, ok := s.peek(); !ok || tok.Kind != token.RP {
		for {
			args = append(args, s.parseAssignment())
			tok, ok := s.peek()
			if ok && tok.Kind == token.COMMA {
				s.advance()
				continue
			}
			break
		}
	}
	s.expect(token.RP, "')'")

	spec, found := s.Registry.Lookup(nameTok.Lexeme)
	if !found {
		s.addError(SyntaxError, "unknown function "+nameTok.Lexeme, nameTok.Offset)
		return value.NaN()
	}
	if !registry.Allows(spec.Arities, len(args)) {
		s.addError(ArityError, fmt.Sprintf("%s() expects %s argument(s), got %d", spec.Name, registry.Describe(spec.Arities), len(args)), nameTok.Offset)
		return value.NaN()
	}
	if s.ParseOnly {
		return value.Num(1)
	}
	result, err := spec.Fn(args)
	if err != nil {
		s.addError(RuntimeError, err.Error(), nameTok.Offset)
		return value.NaN()
	}
	return result
}
