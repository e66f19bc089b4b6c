package engine

import (
	"bytes"
	"testing"

	"github.com/cwbudde/exprlang/registry"
	"github.com/cwbudde/exprlang/resolver"
	"github.com/cwbudde/exprlang/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVar struct {
	val             value.Value
	readWrite       bool
	relevanceStatus bool
	onlynum         bool
}

type fakeVars struct {
	vars map[string]*fakeVar
}

func (f *fakeVars) Read(name, attr string, def value.Value, groupSeq, questionSeq int) (value.Value, error) {
	v, ok := f.vars[name]
	if !ok {
		return value.Value{}, errNotFound{name}
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
	return v.val, nil
}

func (f *fakeVars) Write(op resolver.WriteOp, name string, v value.Value) (value.Value, error) {
	sv, ok := f.vars[name]
	if !ok || !sv.readWrite {
		return value.Value{}, errNotFound{name}
	}
	sv.val = v
	return v, nil
}

type errNotFound struct{ name string }

func (e errNotFound) Error() string { return "unknown variable " + e.name }

func TestProcessStringSubstitutesExpressions(t *testing.T) {
	vars := &fakeVars{vars: map[string]*fakeVar{
		"Q001": {val: value.Num(3), relevanceStatus: true},
	}}
	e := New(vars, nil)
	out := e.ProcessString("You picked {Q001+1} items.", 1, -1, -1)
	assert.Equal(t, "You picked 4 items.", out)
}

func TestProcessStringUnescapesLiteralBraces(t *testing.T) {
	e := New(nil, nil)
	out := e.ProcessString(`literal \{braces\}`, 1, -1, -1)
	assert.Equal(t, "literal {braces}", out)
}

func TestProcessStringFallsBackOnSegmentError(t *testing.T) {
	e := New(nil, nil)
	out := e.ProcessString("before {undefined_var} after", 1, -1, -1)
	assert.Equal(t, "before {undefined_var} after", out)
}

func TestBooleanEvaluateTrueAndFalse(t *testing.T) {
	vars := &fakeVars{vars: map[string]*fakeVar{
		"a": {val: value.Num(1), relevanceStatus: true},
	}}
	e := New(vars, nil)
	assert.True(t, e.BooleanEvaluate("a==1", -1, -1))
	assert.False(t, e.BooleanEvaluate("a==2", -1, -1))
}

func TestBooleanEvaluateFalseWhenVariableIrrelevant(t *testing.T) {
	vars := &fakeVars{vars: map[string]*fakeVar{
		"a": {val: value.Num(1), relevanceStatus: false},
	}}
	e := New(vars, nil)
	assert.False(t, e.BooleanEvaluate("a==1", -1, -1))
}

func TestBooleanEvaluateNAOKBypassesIrrelevance(t *testing.T) {
	vars := &fakeVars{vars: map[string]*fakeVar{
		"a": {val: value.Num(1), relevanceStatus: false},
	}}
	e := New(vars, nil)
	assert.True(t, e.BooleanEvaluate("a.NAOK==1", -1, -1))
}

func TestToTargetExpressionRendersTargetSurface(t *testing.T) {
	e := New(nil, nil)
	out := e.ToTargetExpression("abs(-3)")
	assert.Equal(t, "(Math.abs(-3))", out)
}

func TestRegisterFunctionsExtendsOverlayOnly(t *testing.T) {
	var buf bytes.Buffer
	e := New(nil, nil)
	e.SetOutput(&buf)
	e.RegisterFunctions(map[string]registry.FunctionSpec{
		"triple": {Name: "triple", Arities: registry.Arities(1), Fn: func(args []value.Value) (value.Value, error) {
			f, _ := args[0].AsFloat()
			return value.Num(f * 3), nil
		}},
	})
	assert.Contains(t, buf.String(), "registered 1 function")

	ok := e.Evaluate("triple(2)", false)
	require.True(t, ok)
	assert.Equal(t, 6.0, e.Result().Num)

	fresh := registry.Default()
	_, found := fresh.Lookup("triple")
	assert.False(t, found)
}

func TestEvaluateTracksVarsUsed(t *testing.T) {
	vars := &fakeVars{vars: map[string]*fakeVar{
		"x": {val: value.Num(5), relevanceStatus: true},
	}}
	e := New(vars, nil)
	ok := e.Evaluate("x+1", false)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, e.VarsUsed())
}

func TestNewWithCategoriesRestrictsRegistry(t *testing.T) {
	e := NewWithCategories([]string{"math"}, nil, nil)
	_, ok := e.Registry.Lookup("abs")
	assert.True(t, ok)
	_, ok = e.Registry.Lookup("count")
	assert.False(t, ok)
}
