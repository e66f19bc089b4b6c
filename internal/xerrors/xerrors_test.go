package xerrors

import (
	"strings"
	"testing"

	"github.com/cwbudde/exprlang/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionOfFindsLineAndColumn(t *testing.T) {
	source := "first\nsecond line\nthird"
	pos := positionOf(source, len("first\nsecond "))
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 8, pos.Column)
}

func TestFromEvalErrorsPreservesKindAndMessage(t *testing.T) {
	errs := eval.Errors{
		{Kind: eval.SyntaxError, Message: "undefined variable x", Offset: 3},
	}
	out := FromEvalErrors(errs, "1+x", "")
	require.Len(t, out, 1)
	assert.Equal(t, eval.SyntaxError, out[0].Kind)
	assert.Equal(t, "undefined variable x", out[0].Message)
	assert.Equal(t, 1, out[0].Pos.Line)
}

func TestFormatIncludesCaretUnderOffendingColumn(t *testing.T) {
	ce := &CompilerError{
		Kind:    eval.SyntaxError,
		Message: "unexpected token",
		Source:  "1+@",
		Pos:     Position{Line: 1, Column: 3},
	}
	out := ce.Format(false)
	assert.True(t, strings.Contains(out, "1+@"))
	assert.True(t, strings.Contains(out, "^"))
	assert.True(t, strings.Contains(out, "unexpected token"))
}

func TestFormatErrorsNumbersMultipleDiagnostics(t *testing.T) {
	errs := []*CompilerError{
		{Kind: eval.SyntaxError, Message: "first", Pos: Position{Line: 1, Column: 1}},
		{Kind: eval.ArityError, Message: "second", Pos: Position{Line: 1, Column: 2}},
	}
	out := FormatErrors(errs, false)
	assert.True(t, strings.Contains(out, "2 error(s)"))
	assert.True(t, strings.Contains(out, "[Error 1 of 2]"))
	assert.True(t, strings.Contains(out, "[Error 2 of 2]"))
}

func TestFormatErrorsEmptyYieldsEmptyString(t *testing.T) {
	assert.Equal(t, "", FormatErrors(nil, false))
}
