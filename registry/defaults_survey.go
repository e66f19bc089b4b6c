package registry

import (
	"math"
	"regexp"
	"strings"

	"github.com/cwbudde/exprlang/value"
)

func registerSurvey(r *Registry) {
	r.Register(FunctionSpec{Name: "count", TargetName: "NA", Signature: "count(x, ...)", Arities: AtLeast(1), Fn: func(args []value.Value) (value.Value, error) {
		n := 0
		for _, a := range args {
			if !isEmptyValue(a) {
				n++
			}
		}
		return value.Num(float64(n)), nil
	}})

	r.Register(FunctionSpec{Name: "countif", TargetName: "NA", Signature: "countif(v, x, ...)", Arities: AtLeast(2), Fn: func(args []value.Value) (value.Value, error) {
		target := args[0]
		n := 0
		for _, a := range args[1:] {
			if value.Equal(target, a) {
				n++
			}
		}
		return value.Num(float64(n)), nil
	}})

	r.Register(FunctionSpec{Name: "countifop", TargetName: "NA", Signature: "countifop(op, v, x, ...)", Arities: AtLeast(3), Fn: func(args []value.Value) (value.Value, error) {
		op := strArg(args, 0)
		target := args[1]
		n := 0
		for _, a := range args[2:] {
			if matchOp(op, target, a) {
				n++
			}
		}
		return value.Num(float64(n)), nil
	}})

	r.Register(FunctionSpec{Name: "sum", TargetName: "NA", Signature: "sum(x, ...)", Arities: AtLeast(1), Fn: func(args []value.Value) (value.Value, error) {
		total := 0.0
		for _, a := range args {
			if f, ok := a.AsFloat(); ok {
				total += f
			}
		}
		return value.Num(total), nil
	}})

	r.Register(FunctionSpec{Name: "sumifop", TargetName: "NA", Signature: "sumifop(op, v, x, ...)", Arities: AtLeast(3), Fn: func(args []value.Value) (value.Value, error) {
		op := strArg(args, 0)
		target := args[1]
		total := 0.0
		for _, a := range args[2:] {
			if matchOp(op, target, a) {
				if f, ok := a.AsFloat(); ok {
					total += f
				}
			}
		}
		return value.Num(total), nil
	}})

	r.Register(FunctionSpec{Name: "if", TargetName: "NA", Signature: "if(test, a, b)", Arities: Arities(3), Fn: func(args []value.Value) (value.Value, error) {
		if args[0].Truthy() {
			return args[1], nil
		}
		return args[2], nil
	}})

	r.Register(FunctionSpec{Name: "implode", TargetName: "NA", Signature: "implode(sep, x, ...)", Arities: AtLeast(1), Fn: func(args []value.Value) (value.Value, error) {
		sep := strArg(args, 0)
		parts := make([]string, 0, len(args)-1)
		for _, a := range args[1:] {
			parts = append(parts, a.Raw())
		}
		return value.Str(strings.Join(parts, sep)), nil
	}})

	r.Register(FunctionSpec{Name: "join", TargetName: "NA", Signature: "join(sep, x, ...)", Arities: AtLeast(1), Fn: func(args []value.Value) (value.Value, error) {
		sep := strArg(args, 0)
		parts := make([]string, 0, len(args)-1)
		for _, a := range args[1:] {
			parts = append(parts, a.Raw())
		}
		return value.Str(strings.Join(parts, sep)), nil
	}})

	r.Register(FunctionSpec{Name: "list", TargetName: "NA", Signature: "list(x, ...)", Arities: AtLeast(0), Fn: func(args []value.Value) (value.Value, error) {
		var parts []string
		for _, a := range args {
			if !isEmptyValue(a) {
				parts = append(parts, a.Raw())
			}
		}
		return value.Str(strings.Join(parts, ", ")), nil
	}})

	r.Register(FunctionSpec{Name: "stddev", TargetName: "NA", Signature: "stddev(x, ...)", Arities: AtLeast(1), Fn: func(args []value.Value) (value.Value, error) {
		var nums []float64
		for _, a := range args {
			if f, ok := a.AsFloat(); ok && !isEmptyValue(a) {
				nums = append(nums, f)
			}
		}
		if len(nums) < 2 {
			return value.Null(), nil
		}
		mean := 0.0
		for _, n := range nums {
			mean += n
		}
		mean /= float64(len(nums))
		variance := 0.0
		for _, n := range nums {
			variance += (n - mean) * (n - mean)
		}
		variance /= float64(len(nums) - 1)
		return value.Num(math.Sqrt(variance)), nil
	}})

	r.Register(FunctionSpec{Name: "unique", TargetName: "NA", Signature: "unique(x, ...)", Arities: AtLeast(0), Fn: func(args []value.Value) (value.Value, error) {
		seen := make(map[string]bool)
		for _, a := range args {
			if isEmptyValue(a) {
				continue
			}
			key := strings.TrimSpace(a.Raw())
			if seen[key] {
				return value.Bool(false), nil
			}
			seen[key] = true
		}
		return value.Bool(true), nil
	}})

	r.Register(FunctionSpec{Name: "is_empty", TargetName: "NA", Signature: "is_empty(x)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Bool(isEmptyValue(args[0])), nil
	}})

	r.Register(FunctionSpec{Name: "regexMatch", TargetName: "NA", Signature: "regexMatch(pattern, subject)", Arities: Arities(2), Fn: func(args []value.Value) (value.Value, error) {
		pattern, subject := strArg(args, 0), strArg(args, 1)
		re, err := regexp.Compile(pattern)
		if err != nil {
			return value.Bool(false), nil
		}
		return value.Bool(re.MatchString(subject)), nil
	}})
}

// isEmptyValue implements spec section 6's is_empty semantics: null,
// empty string, or false.
func isEmptyValue(v value.Value) bool {
	switch v.Kind {
	case value.KindNull:
		return true
	case value.KindStr:
		return v.Str == ""
	case value.KindBool:
		return !v.Bool
	}
	return false
}

// matchOp implements the countifop/sumifop comparator set of spec
// section 6: ==|eq, !=|ne, <|lt, <=|le, >|gt, >=|ge, and RX (regex
// match, invalid patterns silently counted as no match).
func matchOp(op string, target, candidate value.Value) bool {
	switch op {
	case "==", "eq":
		return value.Equal(target, candidate)
	case "!=", "ne":
		return value.NotEqual(target, candidate)
	case "<", "lt":
		return value.Compare("<", candidate, target)
	case "<=", "le":
		return value.Compare("<=", candidate, target)
	case ">", "gt":
		return value.Compare(">", candidate, target)
	case ">=", "ge":
		return value.Compare(">=", candidate, target)
	case "RX":
		re, err := regexp.Compile(target.Raw())
		if err != nil {
			return false
		}
		return re.MatchString(candidate.Raw())
	}
	return false
}
