package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.True(t, Num(1).Truthy())
	assert.False(t, Num(0).Truthy())
	assert.False(t, Str("").Truthy())
	assert.False(t, Str("0").Truthy())
	assert.True(t, Str("0.0").Truthy())
	assert.False(t, Null().Truthy())
	assert.True(t, Bool(true).Truthy())
}

func TestNumericIshAndStringIsh(t *testing.T) {
	assert.True(t, Str("").NumericIsh())
	assert.True(t, Str("3.5").NumericIsh())
	assert.False(t, Str("abc").NumericIsh())
	assert.True(t, Str("abc").StringIsh())
	assert.False(t, Str("3.5").StringIsh())
}

func TestAddConcatenatesWhenBothString(t *testing.T) {
	a := Value{Kind: KindStr, Str: "a", Origin: OriginDQString}
	b := Value{Kind: KindStr, Str: "b", Origin: OriginDQString}
	assert.Equal(t, "ab", Add(a, b).Raw())

	one := Value{Kind: KindStr, Str: "1", Origin: OriginDQString}
	assert.Equal(t, "11", Add(one, Num(1)).Raw())
}

func TestArithmeticNaNOnNonNumeric(t *testing.T) {
	assert.True(t, math.IsNaN(Sub(Str("a"), Num(1)).Num))
	assert.True(t, math.IsNaN(Div(Num(1), Num(0)).Num))
}

func TestEqualLooseEquality(t *testing.T) {
	assert.True(t, Equal(Str("a"), Str("a")))
	assert.True(t, Equal(Num(1), Str("1")))
}

func TestCompareScenario8(t *testing.T) {
	assert.True(t, Equal(Value{Kind: KindStr, Str: "a", Origin: OriginDQString}, Value{Kind: KindStr, Str: "a", Origin: OriginSQString}))
	assert.False(t, Compare("<", Value{Kind: KindStr, Str: "a", Origin: OriginDQString}, Num(1)))
	assert.True(t, Compare("<=", Value{Kind: KindStr, Str: "", Origin: OriginDQString}, Value{Kind: KindStr, Str: "0", Origin: OriginDQString}))
	assert.True(t, Compare(">=", Value{Kind: KindStr, Str: "0", Origin: OriginDQString}, Value{Kind: KindStr, Str: "", Origin: OriginDQString}))
}

func TestUnaryOperators(t *testing.T) {
	assert.Equal(t, -5.0, UnaryNeg(Num(5)).Num)
	assert.Equal(t, 5.0, UnaryPos(Str("5")).Num)
	assert.True(t, UnaryNot(Num(0)).Bool)
	assert.False(t, UnaryNot(Num(1)).Bool)
}

func TestLogicalOperators(t *testing.T) {
	assert.True(t, And(Num(1), Str("x")).Bool)
	assert.False(t, And(Num(0), Str("x")).Bool)
	assert.True(t, Or(Num(0), Str("x")).Bool)
}
