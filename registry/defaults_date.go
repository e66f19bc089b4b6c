package registry

import (
	"strings"
	"time"

	"github.com/cwbudde/exprlang/value"
)

// phpDateFormat renders t according to a (small, commonly used) subset
// of PHP's date() format characters, which is the format survey
// templates author against.
func phpDateFormat(format string, t time.Time) string {
	var sb strings.Builder
	for _, c := range format {
		switch c {
		case 'Y':
			sb.WriteString(t.Format("2006"))
		case 'y':
			sb.WriteString(t.Format("06"))
		case 'm':
			sb.WriteString(t.Format("01"))
		case 'n':
			sb.WriteString(itoa(int(t.Month())))
		case 'd':
			sb.WriteString(t.Format("02"))
		case 'j':
			sb.WriteString(itoa(t.Day()))
		case 'H':
			sb.WriteString(t.Format("15"))
		case 'G':
			sb.WriteString(itoa(t.Hour()))
		case 'i':
			sb.WriteString(t.Format("04"))
		case 's':
			sb.WriteString(t.Format("05"))
		case 'N':
			wd := int(t.Weekday())
			if wd == 0 {
				wd = 7
			}
			sb.WriteString(itoa(wd))
		case 'U':
			sb.WriteString(itoa(int(t.Unix())))
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

func registerDate(r *Registry) {
	r.Register(FunctionSpec{Name: "time", TargetName: "NA", Signature: "time()", Arities: Arities(0), Fn: func(args []value.Value) (value.Value, error) {
		return value.Num(float64(time.Now().Unix())), nil
	}})

	r.Register(FunctionSpec{Name: "date", TargetName: "NA", Signature: "date(format, timestamp=now)", Arities: Arities(1, 2), Fn: dateFn(time.Local)})
	r.Register(FunctionSpec{Name: "gmdate", TargetName: "NA", Signature: "gmdate(format, timestamp=now)", Arities: Arities(1, 2), Fn: dateFn(time.UTC)})

	r.Register(FunctionSpec{Name: "idate", TargetName: "NA", Signature: "idate(format, timestamp=now)", Arities: Arities(1, 2), Fn: func(args []value.Value) (value.Value, error) {
		v, err := dateFn(time.Local)(args)
		if err != nil || v.Kind != value.KindStr {
			return value.NaN(), nil
		}
		n, ok := value.Str(v.Str).AsFloat()
		if !ok {
			return value.NaN(), nil
		}
		return value.Num(n), nil
	}})

	r.Register(FunctionSpec{Name: "mktime", TargetName: "NA", Signature: "mktime(h, m, s, month, day, year)", Arities: Arities(0, 1, 2, 3, 4, 5, 6), Fn: func(args []value.Value) (value.Value, error) {
		now := time.Now()
		parts := []int{now.Hour(), now.Minute(), now.Second(), int(now.Month()), now.Day(), now.Year()}
		for i := 0; i < len(args) && i < 6; i++ {
			if f, ok := args[i].AsFloat(); ok {
				parts[i] = int(f)
			}
		}
		t := time.Date(parts[5], time.Month(parts[3]), parts[4], parts[0], parts[1], parts[2], 0, time.Local)
		return value.Num(float64(t.Unix())), nil
	}})

	r.Register(FunctionSpec{Name: "checkdate", TargetName: "NA", Signature: "checkdate(month, day, year)", Arities: Arities(3), Fn: func(args []value.Value) (value.Value, error) {
		month, _ := args[0].AsFloat()
		day, _ := args[1].AsFloat()
		year, _ := args[2].AsFloat()
		m, d, y := int(month), int(day), int(year)
		if m < 1 || m > 12 || d < 1 || y < 1 || y > 32767 {
			return value.Bool(false), nil
		}
		t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
		return value.Bool(t.Year() == y && int(t.Month()) == m && t.Day() == d), nil
	}})

	r.Register(FunctionSpec{Name: "strtotime", TargetName: "NA", Signature: "strtotime(s, base=now)", Arities: Arities(1, 2), Fn: func(args []value.Value) (value.Value, error) {
		base := time.Now()
		if len(args) == 2 {
			if ts, ok := args[1].AsFloat(); ok {
				base = time.Unix(int64(ts), 0)
			}
		}
		t, ok := strToTime(strArg(args, 0), base)
		if !ok {
			return value.Bool(false), nil
		}
		return value.Num(float64(t.Unix())), nil
	}})
}

// strtotimeLayouts are the subset of PHP's freeform date-string formats
// that survey templates author against, tried in order.
var strtotimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01/02/2006 15:04:05",
	"January 2, 2006",
	"2 January 2006",
	"15:04:05",
}

// strToTime parses s with PHP strtotime semantics as far as this
// engine's function set needs: "now" resolves to base, a leading "+"/"-"
// relative offset in days resolves against base, and otherwise s is
// tried against strtotimeLayouts. Returns ok=false on anything else,
// matching PHP's strtotime returning false rather than raising.
func strToTime(s string, base time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if strings.EqualFold(s, "now") {
		return base, true
	}
	if days, ok := relativeDayOffset(s); ok {
		return base.AddDate(0, 0, days), true
	}
	for _, layout := range strtotimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func relativeDayOffset(s string) (int, bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, false
	}
	sign := 1
	numStr := fields[0]
	switch {
	case strings.HasPrefix(numStr, "+"):
		numStr = numStr[1:]
	case strings.HasPrefix(numStr, "-"):
		sign = -1
		numStr = numStr[1:]
	default:
		return 0, false
	}
	n := 0
	for _, c := range numStr {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	unit := strings.ToLower(strings.TrimSuffix(fields[1], "s"))
	if unit != "day" {
		return 0, false
	}
	return sign * n, true
}

func dateFn(loc *time.Location) BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		format := strArg(args, 0)
		t := time.Now()
		if len(args) == 2 {
			if ts, ok := args[1].AsFloat(); ok {
				t = time.Unix(int64(ts), 0)
			}
		}
		return value.Str(phpDateFormat(format, t.In(loc))), nil
	}
}
