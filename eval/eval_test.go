package eval

import (
	"testing"

	"github.com/cwbudde/exprlang/lexer"
	"github.com/cwbudde/exprlang/registry"
	"github.com/cwbudde/exprlang/resolver"
	"github.com/cwbudde/exprlang/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVar struct {
	name              string
	val               value.Value
	readWrite         bool
	relevanceStatus   bool
	onlynum           bool
	unknown           bool
}

type stubResolver struct {
	vars map[string]*stubVar
}

func (r *stubResolver) Read(name, attr string, def value.Value, groupSeq, questionSeq int) (value.Value, error) {
	v, ok := r.vars[name]
	if !ok || v.unknown {
		return value.Value{}, assertErr{}
	}
	switch attr {
	case "":
		return v.val, nil
	case "relevanceStatus":
		return value.Bool(v.relevanceStatus), nil
	case "onlynum":
		return value.Bool(v.onlynum), nil
	case "readWrite":
		return value.Bool(v.readWrite), nil
	}
	return def, nil
}

func (r *stubResolver) Write(op resolver.WriteOp, name string, v value.Value) (value.Value, error) {
	sv, ok := r.vars[name]
	if !ok || !sv.readWrite {
		return value.Value{}, assertErr{}
	}
	sv.val = v
	return v, nil
}

type assertErr struct{}

func (assertErr) Error() string { return "not writable" }

func run(t *testing.T, expr string, res resolver.VariableResolver) (value.Value, *State) {
	t.Helper()
	tokens := lexer.New(expr).Tokenize()
	st := NewState(tokens, res, registry.Default(), false, -1, -1)
	return st.Run(), st
}

func TestArithmeticPrecedence(t *testing.T) {
	v, st := run(t, "1+2*3", nil)
	require.Empty(t, st.Errors)
	assert.Equal(t, 7.0, v.Num)
}

func TestStringConcatVsNumericAdd(t *testing.T) {
	v, st := run(t, `"a"+"b"`, nil)
	require.Empty(t, st.Errors)
	assert.Equal(t, "ab", v.Raw())

	v, st = run(t, `"1"+1`, nil)
	require.Empty(t, st.Errors)
	assert.Equal(t, "11", v.Raw())
}

func TestIfFunctionCall(t *testing.T) {
	v, st := run(t, `if(1<2,'yes','no')`, nil)
	require.Empty(t, st.Errors)
	assert.Equal(t, "yes", v.Str)

	v, st = run(t, `if(1 lt 2,'y','n')`, nil)
	require.Empty(t, st.Errors)
	assert.Equal(t, "y", v.Str)
}

func TestUnknownFunctionIsSyntaxError(t *testing.T) {
	_, st := run(t, "bogus(1)", nil)
	require.Len(t, st.Errors, 1)
	assert.Equal(t, SyntaxError, st.Errors[0].Kind)
}

func TestArityMismatch(t *testing.T) {
	_, st := run(t, "abs(1,2)", nil)
	require.Len(t, st.Errors, 1)
	assert.Equal(t, ArityError, st.Errors[0].Kind)
}

func TestUndefinedVariableIsSyntaxError(t *testing.T) {
	res := &stubResolver{vars: map[string]*stubVar{}}
	_, st := run(t, "undefined_var", res)
	require.Len(t, st.Errors, 1)
	assert.Equal(t, SyntaxError, st.Errors[0].Kind)
}

func TestAssignmentWritesThroughResolver(t *testing.T) {
	res := &stubResolver{vars: map[string]*stubVar{
		"a": {readWrite: true, relevanceStatus: true},
	}}
	v, st := run(t, "a=5", res)
	require.Empty(t, st.Errors)
	assert.Equal(t, 5.0, v.Num)
}

func TestAssignmentToReadOnlyIsTypeError(t *testing.T) {
	res := &stubResolver{vars: map[string]*stubVar{
		"b": {readWrite: false},
	}}
	_, st := run(t, "b=5", res)
	require.Len(t, st.Errors, 1)
	assert.Equal(t, TypeError, st.Errors[0].Kind)
}

func TestIrrelevantVariableReadsNull(t *testing.T) {
	res := &stubResolver{vars: map[string]*stubVar{
		"x": {val: value.Num(42), relevanceStatus: false},
	}}
	v, st := run(t, "x", res)
	require.Empty(t, st.Errors)
	assert.True(t, v.IsNull())
}

func TestCommaSequenceKeepsLastValue(t *testing.T) {
	v, st := run(t, "(1,2,3)", nil)
	require.Empty(t, st.Errors)
	assert.Equal(t, 3.0, v.Num)
}

func TestParseOnlyShortCircuits(t *testing.T) {
	tokens := lexer.New("5+count(1,2)").Tokenize()
	st := NewState(tokens, nil, registry.Default(), true, -1, -1)
	v := st.Run()
	require.Empty(t, st.Errors)
	assert.Equal(t, 6.0, v.Num)
}

func TestParseOnlyAssignmentReturnsPlaceholder(t *testing.T) {
	tokens := lexer.New("a=5").Tokenize()
	st := NewState(tokens, nil, registry.Default(), true, -1, -1)
	v := st.Run()
	require.Empty(t, st.Errors)
	assert.Equal(t, 1.0, v.Num)
	assert.True(t, st.VarsUsed["a"])
}
