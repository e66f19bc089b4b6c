// Package expand implements the self/that variable-expansion
// preprocessor of spec section 4.6: before lexing, self[.sub]*[.attr]
// and that.<qcode>[.sub]*[.attr] references are expanded into a
// comma-separated list of concrete variable names.
package expand

import (
	"regexp"
	"strings"

	"github.com/cwbudde/exprlang/resolver"
)

// reference matches a self/that pseudo-reference anywhere in raw
// expression text, including its dotted sub-segments, so it can be
// rewritten before the text reaches the lexer.
var reference = regexp.MustCompile(`\b(self|that)(\.[A-Za-z_][A-Za-z0-9_]*)*\b`)

// Expander expands self/that references against a QuestionResolver,
// scoped to the current question code (for bare `self`) and memoizing
// each distinct surface form for the lifetime of one host call.
type Expander struct {
	Questions       resolver.QuestionResolver
	CurrentQuestion string

	cache map[string]string
}

// New creates an Expander for a single Engine call. currentQuestion is
// the code of the question the expression is being evaluated within,
// used to resolve bare `self` references.
func New(q resolver.QuestionResolver, currentQuestion string) *Expander {
	return &Expander{Questions: q, CurrentQuestion: currentQuestion, cache: make(map[string]string)}
}

// Expand rewrites every self/that reference in expr. Unresolved or
// malformed references are left unchanged, per spec 4.6.
func (e *Expander) Expand(expr string) string {
	if e.Questions == nil {
		return expr
	}
	return reference.ReplaceAllStringFunc(expr, func(match string) string {
		if cached, ok := e.cache[match]; ok {
			return cached
		}
		expanded := e.expandOne(match)
		e.cache[match] = expanded
		return expanded
	})
}

func (e *Expander) expandOne(match string) string {
	segments := strings.Split(match, ".")
	var qcode string
	var rest []string

	switch segments[0] {
	case "self":
		qcode = e.CurrentQuestion
		rest = segments[1:]
	case "that":
		if len(segments) < 2 {
			return match
		}
		qcode = segments[1]
		rest = segments[2:]
	default:
		return match
	}

	if qcode == "" {
		return match
	}

	attr := ""
	if n := len(rest); n > 0 && resolver.AllowedAttrs[rest[n-1]] {
		attr = rest[n-1]
		rest = rest[:n-1]
	}

	q, ok := e.Questions.GetByCode(qcode)
	if !ok {
		return match
	}

	fields := q.Fields
	for _, seg := range rest {
		var err error
		fields, err = applySubSegment(q, fields, seg)
		if err != nil {
			return match
		}
	}

	if len(fields) == 0 {
		return match
	}

	names := make([]string, len(fields))
	for i, f := range fields {
		if attr != "" {
			names[i] = f.Name + "." + attr
		} else {
			names[i] = f.Name
		}
	}
	return strings.Join(names, ",")
}

func applySubSegment(q *resolver.Question, fields []resolver.Field, seg string) ([]resolver.Field, error) {
	switch {
	case seg == "comments":
		return filterFields(fields, func(f resolver.Field) bool {
			return strings.HasSuffix(f.Name, "comment")
		}), nil
	case seg == "nocomments":
		return filterFields(fields, func(f resolver.Field) bool {
			return !strings.HasSuffix(f.Name, "comment")
		}), nil
	case strings.HasPrefix(seg, "sq_"):
		re, err := regexp.Compile(seg[len("sq_"):])
		if err != nil {
			return nil, err
		}
		return filterFields(fields, func(f resolver.Field) bool {
			return re.MatchString(fieldSuffix(q, f))
		}), nil
	case strings.HasPrefix(seg, "nosq_"):
		re, err := regexp.Compile(seg[len("nosq_"):])
		if err != nil {
			return nil, err
		}
		return filterFields(fields, func(f resolver.Field) bool {
			return !re.MatchString(fieldSuffix(q, f))
		}), nil
	default:
		return nil, errInvalidSegment
	}
}

var errInvalidSegment = &invalidSegmentError{}

type invalidSegmentError struct{}

func (*invalidSegmentError) Error() string { return "invalid self/that sub-segment" }

// fieldSuffix returns the part of a field's name past the question's
// SGQA prefix, the part sq_<regex>/nosq_<regex> filter against.
func fieldSuffix(q *resolver.Question, f resolver.Field) string {
	return strings.TrimPrefix(f.Name, q.SGQA)
}

func filterFields(fields []resolver.Field, keep func(resolver.Field) bool) []resolver.Field {
	out := make([]resolver.Field, 0, len(fields))
	for _, f := range fields {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}
