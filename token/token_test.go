package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "NUMBER", NUMBER.String())
	assert.Equal(t, "SGQA", SGQA.String())
	assert.Contains(t, Kind(999).String(), "Kind(999)")
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: NUMBER, Lexeme: "3", Offset: 4}
	assert.Equal(t, `NUMBER("3")@4`, tok.String())
}

func TestIsCompareAlias(t *testing.T) {
	for _, lexeme := range []string{"lt", "le", "gt", "ge", "eq", "ne"} {
		assert.True(t, IsCompareAlias(lexeme), lexeme)
	}
	assert.False(t, IsCompareAlias("<="))
	assert.False(t, IsCompareAlias("and"))
}

func TestIsAndOrAlias(t *testing.T) {
	assert.True(t, IsAndOrAlias("and"))
	assert.True(t, IsAndOrAlias("or"))
	assert.False(t, IsAndOrAlias("&&"))
}
