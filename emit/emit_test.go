package emit

import (
	"testing"

	"github.com/cwbudde/exprlang/lexer"
	"github.com/cwbudde/exprlang/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, expr string) (string, []string) {
	t.Helper()
	tokens := lexer.New(expr).Tokenize()
	out, vars, errs := Render(tokens, registry.Default())
	require.Empty(t, errs)
	return out, vars
}

func TestRenderFunctionUsesTargetName(t *testing.T) {
	out, vars := render(t, "abs(-3)")
	assert.Equal(t, "(Math.abs(-3))", out)
	assert.Empty(t, vars)
}

func TestRenderUnsupportedTargetNameRendersEmptyString(t *testing.T) {
	out, _ := render(t, `sprintf('%d', 1)`)
	assert.Equal(t, `("")`, out)
}

func TestRenderOperatorAliasesNormalized(t *testing.T) {
	out, _ := render(t, "1 lt 2 and 3 gt 2")
	assert.Equal(t, "(((1 < 2) && (3 > 2)))", out)
}

func TestRenderVariableWrapsWithAnyNA(t *testing.T) {
	out, vars := render(t, "Q001+1")
	require.Len(t, vars, 1)
	assert.Equal(t, "Q001", vars[0])
	assert.Equal(t, `IF(ANY_NA(["Q001"]), null, (READ("Q001") + 1))`, out)
}

func TestRenderVariableWithAttr(t *testing.T) {
	out, vars := render(t, "Q001.NAOK")
	require.Len(t, vars, 1)
	assert.Equal(t, `IF(ANY_NA(["Q001"]), null, READ("Q001", "NAOK"))`, out)
}

func TestRenderNoVariablesWrapsInParens(t *testing.T) {
	out, vars := render(t, "1+2*3")
	assert.Empty(t, vars)
	assert.Equal(t, "((1 + (2 * 3)))", out)
}

func TestRenderParenCommaSequencePreserved(t *testing.T) {
	out, _ := render(t, "(1,2,3)")
	assert.Equal(t, "((1, 2, 3))", out)
}

func TestRenderUnknownFunctionIsSyntaxError(t *testing.T) {
	tokens := lexer.New("bogus(1)").Tokenize()
	_, _, errs := Render(tokens, registry.Default())
	require.Len(t, errs, 1)
}
