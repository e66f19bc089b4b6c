package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlainRoot(t *testing.T) {
	ref := Parse("Q001")
	assert.Equal(t, "Q001", ref.Root)
	assert.Equal(t, "", ref.Attr)
	assert.False(t, ref.HasInsertAnsPrefix)
}

func TestParseWithAttr(t *testing.T) {
	ref := Parse("12X34X56SQ001.NAOK")
	assert.Equal(t, "12X34X56SQ001", ref.Root)
	assert.Equal(t, "NAOK", ref.Attr)
}

func TestParseUnknownTrailingSegmentStaysInRoot(t *testing.T) {
	ref := Parse("q1.subanswer")
	assert.Equal(t, "q1.subanswer", ref.Root)
	assert.Equal(t, "", ref.Attr)
}

func TestParseInsertAnsPrefix(t *testing.T) {
	ref := Parse("INSERTANS:Q001.value")
	assert.True(t, ref.HasInsertAnsPrefix)
	assert.Equal(t, "Q001", ref.Root)
	assert.Equal(t, "value", ref.Attr)
}

func TestIsSGQA(t *testing.T) {
	assert.True(t, IsSGQA("12X34X56SQ001"))
	assert.True(t, IsSGQA("1X2X3#0"))
	assert.False(t, IsSGQA("Q001"))
}
