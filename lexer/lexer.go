// Package lexer tokenizes survey-template expression strings into the
// token vocabulary defined by package token.
//
// A single composite regular expression drives tokenization: it is built
// from the same classification patterns, in the same priority order, that
// spec section 4.1 enumerates (quoted strings, whitespace, punctuation,
// logical/comparison operator aliases, SGQA field codes, words, numbers,
// and finally a single-character fallback). Go's regexp package resolves
// alternation left-to-right ("leftmost-first"), so ordering the
// alternatives in priority order reproduces the classification order
// directly, the same way DWScript's lexer commits to an ordered sequence
// of recognizers (see github.com/cwbudde/go-dws/internal/lexer).
package lexer

import (
	"regexp"
	"strings"

	"github.com/cwbudde/exprlang/token"
)

// Option configures a Lexer. Mirrors the functional-options shape used
// throughout the teacher package (lexer.WithPreserveComments, etc).
type Option func(*Lexer)

// WithEditMode retains SPACE tokens instead of dropping them, and is used
// by diagnostic/editor tooling that needs to preserve exact offsets.
func WithEditMode(enabled bool) Option {
	return func(l *Lexer) { l.editMode = enabled }
}

// Lexer tokenizes a single expression string.
type Lexer struct {
	input    string
	editMode bool
}

// New creates a Lexer over input with the given options applied.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// group names, in classification priority order. Earlier wins when more
// than one alternative could match at the same position.
const (
	gDQ      = "dq"
	gSQ      = "sq"
	gSpace   = "space"
	gLParen  = "lparen"
	gRParen  = "rparen"
	gComma   = "comma"
	gAndOr   = "andor"
	gCompare = "compare"
	gSGQA    = "sgqa"
	gWord    = "word"
	gNumber  = "number"
	gNot     = "not"
	gIncDec  = "incdec"
	gAssign  = "assign"
	gBinOp   = "binop"
	gOther   = "other"
)

// composite is the single pattern that drives tokenization. Each
// alternative is wrapped in a named group so a match can be classified by
// which group captured text.
var composite = regexp.MustCompile(strings.Join([]string{
	`(?P<` + gDQ + `>"(?:\\.|[^"\\])*")`,
	`(?P<` + gSQ + `>'(?:\\.|[^'\\])*')`,
	`(?P<` + gSpace + `>[ \t\r\n]+)`,
	`(?P<` + gLParen + `>\()`,
	`(?P<` + gRParen + `>\))`,
	`(?P<` + gComma + `>,)`,
	`(?P<` + gAndOr + `>&&|\|\||\band\b|\bor\b)`,
	`(?P<` + gCompare + `><=|>=|==|!=|<|>|\ble\b|\blt\b|\bge\b|\bgt\b|\beq\b|\bne\b)`,
	`(?P<` + gSGQA + `>\d+X\d+X\d+[A-Za-z0-9_]*#?[01]?)`,
	`(?P<` + gWord + `>[A-Za-z_][A-Za-z0-9_]*(?::[A-Za-z_][A-Za-z0-9_]*)?(?:\.[A-Za-z_][A-Za-z0-9_]*)*)`,
	`(?P<` + gNumber + `>\d+\.\d*|\.\d+|\d+)`,
	`(?P<` + gNot + `>!)`,
	`(?P<` + gIncDec + `>\+\+|--)`,
	`(?P<` + gAssign + `>=)`,
	`(?P<` + gBinOp + `>[+*/-])`,
	`(?P<` + gOther + `>.)`,
}, "|"))

var subexpNames = composite.SubexpNames()

// Tokenize scans the whole input and returns its token vector. SPACE
// tokens are dropped unless the Lexer was built WithEditMode(true).
func (l *Lexer) Tokenize() []token.Token {
	var out []token.Token
	matches := composite.FindAllStringSubmatchIndex(l.input, -1)
	// offsets are rune-based per spec; track the rune offset of each byte
	// position by walking the input once.
	runeOffset := byteToRuneOffsets(l.input)

	for _, m := range matches {
		start, end := m[0], m[1]
		lexeme := l.input[start:end]
		kind, group := classify(m)
		if kind == token.SPACE && !l.editMode {
			continue
		}
		offset := runeOffset[start]
		switch group {
		case gDQ:
			lexeme = unquoteDouble(lexeme)
		case gSQ:
			lexeme = unquoteSingle(lexeme)
		}
		out = append(out, token.Token{Kind: kind, Lexeme: lexeme, Offset: offset})
	}
	return out
}

// classify determines which named group matched and maps it to a
// token.Kind.
func classify(m []int) (token.Kind, string) {
	for i, name := range subexpNames {
		if name == "" {
			continue
		}
		if m[2*i] == -1 {
			continue
		}
		switch name {
		case gDQ:
			return token.DQ_STRING, name
		case gSQ:
			return token.SQ_STRING, name
		case gSpace:
			return token.SPACE, name
		case gLParen:
			return token.LP, name
		case gRParen:
			return token.RP, name
		case gComma:
			return token.COMMA, name
		case gAndOr:
			return token.AND_OR, name
		case gCompare:
			return token.COMPARE, name
		case gSGQA:
			return token.SGQA, name
		case gWord:
			return token.WORD, name
		case gNumber:
			return token.NUMBER, name
		case gNot:
			return token.NOT, name
		case gIncDec:
			return token.OTHER, name
		case gAssign:
			return token.ASSIGN, name
		case gBinOp:
			return token.BINARYOP, name
		case gOther:
			return token.OTHER, name
		}
	}
	return token.OTHER, gOther
}

// byteToRuneOffsets returns, for every byte index that starts a rune in s
// (plus len(s)), the rune offset of that position.
func byteToRuneOffsets(s string) map[int]int {
	offsets := make(map[int]int, len(s)+1)
	runeIdx := 0
	for byteIdx := range s {
		offsets[byteIdx] = runeIdx
		runeIdx++
	}
	offsets[len(s)] = runeIdx
	return offsets
}

// unquoteDouble strips the surrounding quotes from a double-quoted lexeme
// and resolves \" \\ escapes, leaving other backslash sequences verbatim.
func unquoteDouble(lexeme string) string {
	return unquote(lexeme, '"')
}

// unquoteSingle strips the surrounding quotes from a single-quoted lexeme
// and resolves \' \\ escapes, leaving other backslash sequences verbatim.
func unquoteSingle(lexeme string) string {
	return unquote(lexeme, '\'')
}

func unquote(lexeme string, quote byte) string {
	if len(lexeme) < 2 {
		return lexeme
	}
	inner := lexeme[1 : len(lexeme)-1]
	var sb strings.Builder
	sb.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			next := inner[i+1]
			if next == quote || next == '\\' {
				sb.WriteByte(next)
				i++
				continue
			}
		}
		sb.WriteByte(inner[i])
	}
	return sb.String()
}
