package registry

import (
	"math"
	"strconv"

	"github.com/cwbudde/exprlang/value"
)

func registerConvert(r *Registry) {
	r.Register(FunctionSpec{Name: "intval", TargetName: "parseInt", Signature: "intval(x)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		f, ok := args[0].AsFloat()
		if !ok {
			return value.Num(0), nil
		}
		return value.Num(math.Trunc(f)), nil
	}})

	r.Register(FunctionSpec{Name: "is_int", TargetName: "NA", Signature: "is_int(x)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		v := args[0]
		if v.Kind != value.KindNum {
			return value.Bool(false), nil
		}
		return value.Bool(v.Num == math.Trunc(v.Num)), nil
	}})

	r.Register(FunctionSpec{Name: "is_float", TargetName: "NA", Signature: "is_float(x)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		v := args[0]
		if v.Kind != value.KindNum {
			return value.Bool(false), nil
		}
		return value.Bool(v.Num != math.Trunc(v.Num)), nil
	}})

	r.Register(FunctionSpec{Name: "is_nan", TargetName: "isNaN", Signature: "is_nan(x)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		f, ok := args[0].AsFloat()
		return value.Bool(ok && math.IsNaN(f)), nil
	}})

	r.Register(FunctionSpec{Name: "is_numeric", TargetName: "NA", Signature: "is_numeric(x)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Bool(args[0].NumericIsh() && args[0].Raw() != ""), nil
	}})

	r.Register(FunctionSpec{Name: "is_null", TargetName: "NA", Signature: "is_null(x)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Bool(args[0].IsNull()), nil
	}})

	r.Register(FunctionSpec{Name: "is_string", TargetName: "NA", Signature: "is_string(x)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Bool(args[0].Kind == value.KindStr), nil
	}})

	r.Register(FunctionSpec{Name: "fixnum", TargetName: "NA", Signature: "fixnum(x, decimals=2)", Arities: Arities(1, 2), Fn: func(args []value.Value) (value.Value, error) {
		f, ok := args[0].AsFloat()
		if !ok {
			return value.NaN(), nil
		}
		decimals := 2
		if len(args) == 2 {
			if d, ok := args[1].AsFloat(); ok {
				decimals = int(d)
			}
		}
		return value.Str(strconv.FormatFloat(f, 'f', decimals, 64)), nil
	}})

	r.Register(FunctionSpec{Name: "convert_value", TargetName: "NA", Signature: "convert_value(v, strict, fromList, toList)", Arities: AtLeast(4), Fn: convertValue})
}

// convertValue implements the nearest-neighbor numeric mapping of spec
// section 6: strict=1 requires an exact match in fromList; otherwise the
// toList entry at the index of the closest fromList value is returned.
// Non-numeric input or mismatched list lengths yield null.
func convertValue(args []value.Value) (value.Value, error) {
	v, ok := args[0].AsFloat()
	if !ok {
		return value.Null(), nil
	}
	strict := args[1].Truthy()
	rest := args[2:]
	if len(rest)%2 != 0 {
		return value.Null(), nil
	}
	half := len(rest) / 2
	fromList := rest[:half]
	toList := rest[half:]

	bestIdx := -1
	bestDist := math.Inf(1)
	for i, fv := range fromList {
		fn, ok := fv.AsFloat()
		if !ok {
			continue
		}
		dist := math.Abs(fn - v)
		if strict && dist == 0 {
			return toList[i], nil
		}
		if dist < bestDist {
			bestDist = dist
			bestIdx = i
		}
	}
	if strict || bestIdx < 0 {
		return value.Null(), nil
	}
	return toList[bestIdx], nil
}
