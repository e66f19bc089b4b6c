package lexer

import (
	"testing"

	"github.com/cwbudde/exprlang/token"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestTokenizeBasicArithmetic(t *testing.T) {
	got := New("1+2*3").Tokenize()
	want := []token.Token{
		{Kind: token.NUMBER, Lexeme: "1", Offset: 0},
		{Kind: token.BINARYOP, Lexeme: "+", Offset: 1},
		{Kind: token.NUMBER, Lexeme: "2", Offset: 2},
		{Kind: token.BINARYOP, Lexeme: "*", Offset: 3},
		{Kind: token.NUMBER, Lexeme: "3", Offset: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeDropsSpaceUnlessEditMode(t *testing.T) {
	got := New("1 + 2").Tokenize()
	for _, tok := range got {
		assert.NotEqual(t, token.SPACE, tok.Kind)
	}

	withSpace := New("1 + 2", WithEditMode(true)).Tokenize()
	var sawSpace bool
	for _, tok := range withSpace {
		if tok.Kind == token.SPACE {
			sawSpace = true
		}
	}
	assert.True(t, sawSpace)
}

func TestTokenizeQuotedStringsUnescape(t *testing.T) {
	got := New(`"a\"b" 'c\'d'`, WithEditMode(false)).Tokenize()
	if assert.Len(t, got, 2) {
		assert.Equal(t, token.DQ_STRING, got[0].Kind)
		assert.Equal(t, `a"b`, got[0].Lexeme)
		assert.Equal(t, token.SQ_STRING, got[1].Kind)
		assert.Equal(t, `c'd`, got[1].Lexeme)
	}
}

func TestTokenizeCompareAndAndOrAliases(t *testing.T) {
	got := New("1 lt 2 and 3 eq 3").Tokenize()
	var kinds []token.Kind
	var lexemes []string
	for _, tok := range got {
		kinds = append(kinds, tok.Kind)
		lexemes = append(lexemes, tok.Lexeme)
	}
	assert.Equal(t, []string{"1", "lt", "2", "and", "3", "eq", "3"}, lexemes)
	assert.Equal(t, token.COMPARE, kinds[1])
	assert.Equal(t, token.AND_OR, kinds[3])
	assert.Equal(t, token.COMPARE, kinds[5])
}

func TestTokenizeSGQA(t *testing.T) {
	got := New("12X34X56SQ001").Tokenize()
	if assert.Len(t, got, 1) {
		assert.Equal(t, token.SGQA, got[0].Kind)
	}
}

func TestTokenizeUnrecognizedIsOther(t *testing.T) {
	got := New("1 ~ 2").Tokenize()
	var sawOther bool
	for _, tok := range got {
		if tok.Kind == token.OTHER && tok.Lexeme == "~" {
			sawOther = true
		}
	}
	assert.True(t, sawOther)
}

func TestTokenizeOffsetsAreRuneBased(t *testing.T) {
	// "é" is 2 bytes in UTF-8 but a single rune; offsets must track runes.
	got := New(`é+1`).Tokenize()
	if assert.Len(t, got, 3) {
		assert.Equal(t, 0, got[0].Offset)
		assert.Equal(t, 1, got[1].Offset)
		assert.Equal(t, 2, got[2].Offset)
	}
}
