package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSimpleExpression(t *testing.T) {
	segs := Split("{1+2}")
	require.Len(t, segs, 1)
	assert.Equal(t, EXPRESSION, segs[0].Kind)
	assert.Equal(t, "1+2", segs[0].Text)
}

func TestSplitWhitespaceAdjacentBraceIsLiteral(t *testing.T) {
	segs := Split("{ 1+2 }")
	require.Len(t, segs, 1)
	assert.Equal(t, STRING, segs[0].Kind)
	assert.Equal(t, "{ 1+2 }", segs[0].Text)
}

func TestSplitLiteralAndExpressionMix(t *testing.T) {
	segs := Split("hello {1+2} world")
	require.Len(t, segs, 3)
	assert.Equal(t, Segment{Text: "hello ", Offset: 0, Kind: STRING}, segs[0])
	assert.Equal(t, Segment{Text: "1+2", Offset: 6, Kind: EXPRESSION}, segs[1])
	assert.Equal(t, Segment{Text: " world", Offset: 11, Kind: STRING}, segs[2])
}

func TestSplitEscapedBraces(t *testing.T) {
	segs := Split(`\{not an expr\}`)
	require.Len(t, segs, 1)
	assert.Equal(t, STRING, segs[0].Kind)
	assert.Equal(t, `\{not an expr\}`, segs[0].Text)
}

func TestSplitNestedQuoteWithBrace(t *testing.T) {
	segs := Split(`{'}'}`)
	require.Len(t, segs, 1)
	assert.Equal(t, EXPRESSION, segs[0].Kind)
	assert.Equal(t, `'}'`, segs[0].Text)
}

func TestSplitUnterminatedExpressionFlushedAsLiteral(t *testing.T) {
	segs := Split("{1+2")
	require.Len(t, segs, 1)
	assert.Equal(t, STRING, segs[0].Kind)
	assert.Equal(t, "{1+2", segs[0].Text)
}

func TestSplitNoBracesPassesThrough(t *testing.T) {
	segs := Split("just text")
	require.Len(t, segs, 1)
	assert.Equal(t, "just text", segs[0].Text)
}
