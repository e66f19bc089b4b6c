package value

import "math"

// bothNumeric implements spec 4.4's "both numeric" test: both operands
// numeric-ish, and neither has a quoted/string origin that would force
// string coercion.
func bothNumeric(a, b Value) bool {
	if !a.NumericIsh() || !b.NumericIsh() {
		return false
	}
	if a.HasQuotedOrigin() || b.HasQuotedOrigin() {
		return false
	}
	return true
}

// Add implements the `+` operator: concatenation when "both string",
// otherwise numeric addition.
func Add(a, b Value) Value {
	if bothNumeric(a, b) {
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return Num(af + bf)
	}
	return Str(a.Raw() + b.Raw())
}

// Sub implements `-`: NaN unless both numeric.
func Sub(a, b Value) Value { return arith(a, b, func(x, y float64) float64 { return x - y }) }

// Mul implements `*`: NaN unless both numeric.
func Mul(a, b Value) Value { return arith(a, b, func(x, y float64) float64 { return x * y }) }

// Div implements `/`: NaN unless both numeric; division by zero yields
// NaN rather than an error.
func Div(a, b Value) Value {
	return arith(a, b, func(x, y float64) float64 {
		if y == 0 {
			return math.NaN()
		}
		return x / y
	})
}

func arith(a, b Value, op func(x, y float64) float64) Value {
	if !bothNumeric(a, b) {
		return NaN()
	}
	af, _ := a.AsFloat()
	bf, _ := b.AsFloat()
	return Num(op(af, bf))
}

// Equal implements loose equality (spec 4.4): operands that are "both
// numeric" (numeric-ish with no quoted/string origin) compare
// numerically; otherwise their raw string representations are compared.
func Equal(a, b Value) bool {
	if bothNumeric(a, b) {
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return af == bf
	}
	return a.Raw() == b.Raw()
}

// NotEqual is the negation of Equal.
func NotEqual(a, b Value) bool { return !Equal(a, b) }

// zeroEmptyOverride implements the special-case pair from spec 4.4:
// ("0","") <= true, ("","0") >= true, overriding the textual rule.
func zeroEmptyOverride(a, b Value, op string) (bool, bool) {
	araw, braw := a.Raw(), b.Raw()
	if op == "<=" && araw == "0" && braw == "" {
		return true, true
	}
	if op == ">=" && araw == "" && braw == "0" {
		return true, true
	}
	return false, false
}

// Compare implements the four ordered comparisons. Both-numeric operands
// compare numerically unless a quoted origin forces "both string" (spec
// 4.4); a genuine numeric/string mismatch always yields false, overridden
// only by the ("0","") / ("","0") special case checked first.
func Compare(op string, a, b Value) bool {
	if res, matched := zeroEmptyOverride(a, b, op); matched {
		return res
	}
	numA, numB := a.NumericIsh(), b.NumericIsh()
	switch {
	case numA && numB && !(a.HasQuotedOrigin() || b.HasQuotedOrigin()):
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		switch op {
		case "<":
			return af < bf
		case "<=":
			return af <= bf
		case ">":
			return af > bf
		case ">=":
			return af >= bf
		}
		return false
	case numA && numB:
		// both numeric-ish but quoted: coerced to "both string".
		return compareStrings(op, a.Raw(), b.Raw())
	case numA != numB:
		// mismatch: one numeric-ish, one genuinely string-ish.
		return false
	default:
		// neither numeric-ish: genuinely both string.
		return compareStrings(op, a.Raw(), b.Raw())
	}
}

func compareStrings(op, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}

// UnaryNeg implements unary `-`: numeric-coerce then negate.
func UnaryNeg(a Value) Value {
	f, ok := a.AsFloat()
	if !ok {
		return NaN()
	}
	return Num(-f)
}

// UnaryPos implements unary `+`: numeric-coerce.
func UnaryPos(a Value) Value {
	f, ok := a.AsFloat()
	if !ok {
		return NaN()
	}
	return Num(f)
}

// UnaryNot implements unary `!`: host truthiness, negated.
func UnaryNot(a Value) Value { return Bool(!a.Truthy()) }

// And implements `&&`/`and`: host truthiness of both operands.
func And(a, b Value) Value { return Bool(a.Truthy() && b.Truthy()) }

// Or implements `||`/`or`: host truthiness of either operand.
func Or(a, b Value) Value { return Bool(a.Truthy() || b.Truthy()) }
