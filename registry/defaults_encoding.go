package registry

import (
	"html"
	"regexp"
	"strings"

	"github.com/cwbudde/exprlang/value"
)

func registerEncoding(r *Registry) {
	r.Register(FunctionSpec{Name: "addslashes", TargetName: "NA", Signature: "addslashes(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		s := strArg(args, 0)
		replacer := strings.NewReplacer(`\`, `\\`, `'`, `\'`, `"`, `\"`)
		return value.Str(replacer.Replace(s)), nil
	}})

	r.Register(FunctionSpec{Name: "stripslashes", TargetName: "NA", Signature: "stripslashes(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		s := strArg(args, 0)
		var sb strings.Builder
		for i := 0; i < len(s); i++ {
			if s[i] == '\\' && i+1 < len(s) {
				i++
				sb.WriteByte(s[i])
				continue
			}
			sb.WriteByte(s[i])
		}
		return value.Str(sb.String()), nil
	}})

	r.Register(FunctionSpec{Name: "htmlentities", TargetName: "NA", Signature: "htmlentities(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(html.EscapeString(strArg(args, 0))), nil
	}})

	r.Register(FunctionSpec{Name: "html_entity_decode", TargetName: "NA", Signature: "html_entity_decode(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(html.UnescapeString(strArg(args, 0))), nil
	}})

	r.Register(FunctionSpec{Name: "htmlspecialchars", TargetName: "NA", Signature: "htmlspecialchars(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#039;")
		return value.Str(replacer.Replace(strArg(args, 0))), nil
	}})

	r.Register(FunctionSpec{Name: "htmlspecialchars_decode", TargetName: "NA", Signature: "htmlspecialchars_decode(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		replacer := strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#039;", "'")
		return value.Str(replacer.Replace(strArg(args, 0))), nil
	}})

	r.Register(FunctionSpec{Name: "nl2br", TargetName: "NA", Signature: "nl2br(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		s := strArg(args, 0)
		s = strings.ReplaceAll(s, "\r\n", "<br />\r\n")
		s = strings.ReplaceAll(s, "\n", "<br />\n")
		return value.Str(s), nil
	}})

	r.Register(FunctionSpec{Name: "quotemeta", TargetName: "NA", Signature: "quotemeta(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(regexp.QuoteMeta(strArg(args, 0))), nil
	}})

	r.Register(FunctionSpec{Name: "strip_tags", TargetName: "NA", Signature: "strip_tags(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(tagPattern.ReplaceAllString(strArg(args, 0), "")), nil
	}})

	r.Register(FunctionSpec{Name: "quoted_printable_encode", TargetName: "NA", Signature: "quoted_printable_encode(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(quotedPrintableEncode(strArg(args, 0))), nil
	}})

	r.Register(FunctionSpec{Name: "quoted_printable_decode", TargetName: "NA", Signature: "quoted_printable_decode(s)", Arities: Arities(1), Fn: func(args []value.Value) (value.Value, error) {
		return value.Str(quotedPrintableDecode(strArg(args, 0))), nil
	}})
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func quotedPrintableEncode(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 33 && c <= 126 && c != '=') || c == ' ' || c == '\t' {
			sb.WriteByte(c)
			continue
		}
		sb.WriteString("=")
		sb.WriteString(strings.ToUpper(hexByte(c)))
	}
	return sb.String()
}

func hexByte(b byte) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{hex[b>>4], hex[b&0xF]})
}

func quotedPrintableDecode(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '=' && i+2 < len(s) {
			hi, okHi := fromHexDigit(s[i+1])
			lo, okLo := fromHexDigit(s[i+2])
			if okHi && okLo {
				sb.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func fromHexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}
