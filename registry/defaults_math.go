package registry

import (
	"math"
	"math/rand"

	"github.com/cwbudde/exprlang/value"
)

func numArg(args []value.Value, i int) (float64, bool) {
	if i >= len(args) {
		return 0, false
	}
	return args[i].AsFloat()
}

func mathUnary(f func(float64) float64) BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		n, ok := numArg(args, 0)
		if !ok {
			return value.NaN(), nil
		}
		return value.Num(f(n)), nil
	}
}

func registerMath(r *Registry) {
	r.Register(FunctionSpec{Name: "abs", TargetName: "Math.abs", Signature: "abs(n)", Arities: Arities(1), Fn: mathUnary(math.Abs)})
	r.Register(FunctionSpec{Name: "acos", TargetName: "Math.acos", Signature: "acos(n)", Arities: Arities(1), Fn: mathUnary(math.Acos)})
	r.Register(FunctionSpec{Name: "asin", TargetName: "Math.asin", Signature: "asin(n)", Arities: Arities(1), Fn: mathUnary(math.Asin)})
	r.Register(FunctionSpec{Name: "atan", TargetName: "Math.atan", Signature: "atan(n)", Arities: Arities(1), Fn: mathUnary(math.Atan)})
	r.Register(FunctionSpec{Name: "ceil", TargetName: "Math.ceil", Signature: "ceil(n)", Arities: Arities(1), Fn: mathUnary(math.Ceil)})
	r.Register(FunctionSpec{Name: "cos", TargetName: "Math.cos", Signature: "cos(n)", Arities: Arities(1), Fn: mathUnary(math.Cos)})
	r.Register(FunctionSpec{Name: "exp", TargetName: "Math.exp", Signature: "exp(n)", Arities: Arities(1), Fn: mathUnary(math.Exp)})
	r.Register(FunctionSpec{Name: "floor", TargetName: "Math.floor", Signature: "floor(n)", Arities: Arities(1), Fn: mathUnary(math.Floor)})
	r.Register(FunctionSpec{Name: "sin", TargetName: "Math.sin", Signature: "sin(n)", Arities: Arities(1), Fn: mathUnary(math.Sin)})
	r.Register(FunctionSpec{Name: "sqrt", TargetName: "Math.sqrt", Signature: "sqrt(n)", Arities: Arities(1), Fn: mathUnary(math.Sqrt)})
	r.Register(FunctionSpec{Name: "tan", TargetName: "Math.tan", Signature: "tan(n)", Arities: Arities(1), Fn: mathUnary(math.Tan)})

	r.Register(FunctionSpec{Name: "round", TargetName: "Math.round", Signature: "round(n)", Arities: Arities(1), Fn: mathUnary(math.Round)})

	r.Register(FunctionSpec{Name: "atan2", TargetName: "Math.atan2", Signature: "atan2(y, x)", Arities: Arities(2), Fn: func(args []value.Value) (value.Value, error) {
		y, ok1 := numArg(args, 0)
		x, ok2 := numArg(args, 1)
		if !ok1 || !ok2 {
			return value.NaN(), nil
		}
		return value.Num(math.Atan2(y, x)), nil
	}})

	r.Register(FunctionSpec{Name: "pow", TargetName: "Math.pow", Signature: "pow(base, exp)", Arities: Arities(2), Fn: func(args []value.Value) (value.Value, error) {
		base, ok1 := numArg(args, 0)
		exp, ok2 := numArg(args, 1)
		if !ok1 || !ok2 {
			return value.NaN(), nil
		}
		return value.Num(math.Pow(base, exp)), nil
	}})

	r.Register(FunctionSpec{Name: "log", TargetName: "Math.log", Signature: "log(n, base=e)", Arities: Arities(1, 2), Fn: func(args []value.Value) (value.Value, error) {
		n, ok := numArg(args, 0)
		if !ok || n <= 0 {
			return value.NaN(), nil
		}
		if len(args) == 2 {
			base, ok := numArg(args, 1)
			if !ok || base <= 0 || base == 1 {
				return value.NaN(), nil
			}
			return value.Num(math.Log(n) / math.Log(base)), nil
		}
		return value.Num(math.Log(n)), nil
	}})

	r.Register(FunctionSpec{Name: "max", TargetName: "Math.max", Signature: "max(a, b, ...)", Arities: AtLeast(1), Fn: func(args []value.Value) (value.Value, error) {
		best, ok := numArg(args, 0)
		if !ok {
			return value.NaN(), nil
		}
		for i := 1; i < len(args); i++ {
			n, ok := numArg(args, i)
			if !ok {
				return value.NaN(), nil
			}
			if n > best {
				best = n
			}
		}
		return value.Num(best), nil
	}})

	r.Register(FunctionSpec{Name: "min", TargetName: "Math.min", Signature: "min(a, b, ...)", Arities: AtLeast(1), Fn: func(args []value.Value) (value.Value, error) {
		best, ok := numArg(args, 0)
		if !ok {
			return value.NaN(), nil
		}
		for i := 1; i < len(args); i++ {
			n, ok := numArg(args, i)
			if !ok {
				return value.NaN(), nil
			}
			if n < best {
				best = n
			}
		}
		return value.Num(best), nil
	}})

	r.Register(FunctionSpec{Name: "pi", TargetName: "Math.PI", Signature: "pi()", Arities: Arities(0), Fn: func(args []value.Value) (value.Value, error) {
		return value.Num(math.Pi), nil
	}})

	r.Register(FunctionSpec{Name: "rand", TargetName: "NA", Signature: "rand()", Arities: Arities(0, 1), Fn: func(args []value.Value) (value.Value, error) {
		if len(args) == 1 {
			n, ok := numArg(args, 0)
			if !ok || n <= 0 {
				return value.NaN(), nil
			}
			return value.Num(float64(rand.Intn(int(n)))), nil
		}
		return value.Num(rand.Float64()), nil
	}})
}
