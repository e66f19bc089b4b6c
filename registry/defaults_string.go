package registry

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cwbudde/exprlang/value"
)

// ucwords title-cases the first rune of every whitespace-separated word.
func ucwords(s string) string {
	runes := []rune(s)
	atStart := true
	for i, r := range runes {
		if unicode.IsSpace(r) {
			atStart = true
			continue
		}
		if atStart {
			runes[i] = unicode.ToUpper(r)
			atStart = false
		}
	}
	return string(runes)
}

func strArg(args []value.Value, i int) string {
	if i >= len(args) {
		return ""
	}
	return args[i].Raw()
}

func registerStringBasic(r *Registry) {
	r.Register(FunctionSpec{Name: "strlen", TargetName: "NA", Signature: "strlen(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Num(float64(utf8.RuneCountInString(strArg(args, 0)))), nil
	}})

	r.Register(FunctionSpec{Name: "strtolower", TargetName: "toLowerCase", Signature: "strtolower(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(strings.ToLower(strArg(args, 0))), nil
	}})

	r.Register(FunctionSpec{Name: "strtoupper", TargetName: "toUpperCase", Signature: "strtoupper(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(strings.ToUpper(strArg(args, 0))), nil
	}})

	r.Register(FunctionSpec{Name: "trim", TargetName: "NA", Signature: "trim(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(strings.TrimSpace(strArg(args, 0))), nil
	}})

	r.Register(FunctionSpec{Name: "ltrim", TargetName: "NA", Signature: "ltrim(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(strings.TrimLeft(strArg(args, 0), " \t\n\r\x00\x0B")), nil
	}})

	r.Register(FunctionSpec{Name: "rtrim", TargetName: "NA", Signature: "rtrim(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(strings.TrimRight(strArg(args, 0), " \t\n\r\x00\x0B")), nil
	}})

	r.Register(FunctionSpec{Name: "strrev", TargetName: "NA", Signature: "strrev(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		runes := []rune(strArg(args, 0))
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return value.Str(string(runes)), nil
	}})

	r.Register(FunctionSpec{Name: "ucwords", TargetName: "NA", Signature: "ucwords(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(ucwords(strArg(args, 0))), nil
	}})

	r.Register(FunctionSpec{Name: "substr", TargetName: "NA", Signature: "substr(s, start, len=rest)", Arities: Arities(2, 3), Fn: func(args []value.Value) (value.Value, error) {
		s := []rune(strArg(args, 0))
		start, _ := args[1].AsFloat()
		start64 := int(start)
		if start64 < 0 {
			start64 += len(s)
			if start64 < 0 {
				start64 = 0
			}
		}
		if start64 > len(s) {
			start64 = len(s)
		}
		end := len(s)
		if len(args) == 3 {
			n, _ := args[2].AsFloat()
			if n < 0 {
				end = len(s) + int(n)
			} else {
				end = start64 + int(n)
			}
			if end > len(s) {
				end = len(s)
			}
			if end < start64 {
				end = start64
			}
		}
		return value.Str(string(s[start64:end])), nil
	}})

	r.Register(FunctionSpec{Name: "strpos", TargetName: "NA", Signature: "strpos(haystack, needle)", Arities: Arities(2), Fn: strPosFn(false)})
	r.Register(FunctionSpec{Name: "stripos", TargetName: "NA", Signature: "stripos(haystack, needle)", Arities: Arities(2), Fn: strPosFn(true)})

	r.Register(FunctionSpec{Name: "strstr", TargetName: "NA", Signature: "strstr(haystack, needle)", Arities: Arities(2), Fn: strStrFn(false)})
	r.Register(FunctionSpec{Name: "stristr", TargetName: "NA", Signature: "stristr(haystack, needle)", Arities: Arities(2), Fn: strStrFn(true)})

	r.Register(FunctionSpec{Name: "strcmp", TargetName: "NA", Signature: "strcmp(a, b)", Arities: Arities(2), Fn: func(args []value.Value) (value.Value, error) {
		return value.Num(float64(strings.Compare(strArg(args, 0), strArg(args, 1)))), nil
	}})

	r.Register(FunctionSpec{Name: "strcasecmp", TargetName: "NA", Signature: "strcasecmp(a, b)", Arities: Arities(2), Fn: func(args []value.Value) (value.Value, error) {
		a, b := strings.ToLower(strArg(args, 0)), strings.ToLower(strArg(args, 1))
		return value.Num(float64(strings.Compare(a, b))), nil
	}})

	r.Register(FunctionSpec{Name: "str_repeat", TargetName: "NA", Signature: "str_repeat(s, times)", Arities: Arities(2), Fn: func(args []value.Value) (value.Value, error) {
		n, _ := args[1].AsFloat()
		if n < 0 {
			n = 0
		}
		return value.Str(strings.Repeat(strArg(args, 0), int(n))), nil
	}})

	r.Register(FunctionSpec{Name: "str_replace", TargetName: "NA", Signature: "str_replace(search, replace, subject)", Arities: Arities(3), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(strings.ReplaceAll(strArg(args, 2), strArg(args, 0), strArg(args, 1))), nil
	}})

	r.Register(FunctionSpec{Name: "str_pad", TargetName: "NA", Signature: "str_pad(s, length, pad=' ', type=right)", Arities: Arities(2, 3, 4), Fn: strPad})

	r.Register(FunctionSpec{Name: "sprintf", TargetName: "NA", Signature: "sprintf(format, ...)", Arities: AtLeast(1), Fn: func(args []value.Value) (value.Value, error) {
		format := strArg(args, 0)
		rest := make([]any, 0, len(args)-1)
		for _, a := range args[1:] {
			if a.Kind == value.KindNum {
				rest = append(rest, a.Num)
			} else {
				rest = append(rest, a.Raw())
			}
		}
		return value.Str(fmt.Sprintf(format, rest...)), nil
	}})

	r.Register(FunctionSpec{Name: "number_format", TargetName: "NA", Signature: "number_format(n, decimals=0, decPoint='.', thousandsSep=',')", Arities: Arities(1, 2, 3, 4), Fn: numberFormat})
}

func strPosFn(caseInsensitive bool) BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		haystack, needle := strArg(args, 0), strArg(args, 1)
		h, n := haystack, needle
		if caseInsensitive {
			h, n = strings.ToLower(h), strings.ToLower(n)
		}
		idx := strings.Index(h, n)
		if idx < 0 {
			return value.Bool(false), nil
		}
		return value.Num(float64(utf8.RuneCountInString(h[:idx]))), nil
	}
}

func strStrFn(caseInsensitive bool) BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		haystack, needle := strArg(args, 0), strArg(args, 1)
		h, n := haystack, needle
		if caseInsensitive {
			h, n = strings.ToLower(h), strings.ToLower(n)
		}
		idx := strings.Index(h, n)
		if idx < 0 {
			return value.Bool(false), nil
		}
		return value.Str(haystack[idx:]), nil
	}
}

func strPad(args []value.Value) (value.Value, error) {
	s := strArg(args, 0)
	length, _ := args[1].AsFloat()
	pad := " "
	if len(args) >= 3 {
		pad = strArg(args, 2)
	}
	padType := "right"
	if len(args) == 4 {
		padType = strArg(args, 3)
	}
	need := int(length) - utf8.RuneCountInString(s)
	if need <= 0 || pad == "" {
		return value.Str(s), nil
	}
	fill := strings.Repeat(pad, need/utf8.RuneCountInString(pad)+1)
	fill = string([]rune(fill)[:need])
	switch padType {
	case "left":
		return value.Str(fill + s), nil
	case "both":
		leftN := need / 2
		rightN := need - leftN
		leftFill := string([]rune(fill)[:leftN])
		rightFill := string([]rune(fill)[:rightN])
		return value.Str(leftFill + s + rightFill), nil
	default:
		return value.Str(s + fill), nil
	}
}

func numberFormat(args []value.Value) (value.Value, error) {
	n, ok := args[0].AsFloat()
	if !ok {
		return value.NaN(), nil
	}
	decimals := 0
	if len(args) >= 2 {
		if d, ok := args[1].AsFloat(); ok {
			decimals = int(d)
		}
	}
	decPoint := "."
	if len(args) >= 3 {
		decPoint = strArg(args, 2)
	}
	thousandsSep := ","
	if len(args) >= 4 {
		thousandsSep = strArg(args, 3)
	}

	formatted := strconv.FormatFloat(n, 'f', decimals, 64)
	neg := strings.HasPrefix(formatted, "-")
	if neg {
		formatted = formatted[1:]
	}
	intPart, fracPart := formatted, ""
	if idx := strings.IndexByte(formatted, '.'); idx >= 0 {
		intPart, fracPart = formatted[:idx], formatted[idx+1:]
	}

	var grouped strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteString(thousandsSep)
		}
		grouped.WriteRune(c)
	}

	out := grouped.String()
	if fracPart != "" {
		out += decPoint + fracPart
	}
	if neg {
		out = "-" + out
	}
	return value.Str(out), nil
}
