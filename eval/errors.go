// Package eval implements the recursive-descent parser/evaluator of spec
// section 4.3: a single pass over a token vector that parses and
// evaluates an expression at once, passing intermediate values back up
// the recursive descent (no explicit value stack) and keeping an error
// log instead of stopping at the first problem.
package eval

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies why an eval.Error was raised.
type Kind int

const (
	SyntaxError Kind = iota
	ArityError
	TypeError
	RuntimeError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case ArityError:
		return "ArityError"
	case TypeError:
		return "TypeError"
	case RuntimeError:
		return "RuntimeError"
	}
	return "Error"
}

// Error is one diagnostic raised while parsing/evaluating an expression,
// carrying the rune Offset into the expression source it refers to.
type Error struct {
	Kind    Kind
	Message string
	Offset  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d: %s", e.Kind, e.Offset, e.Message)
}

// Errors is an ordered error log, sortable by source position the way
// the teacher's FormatErrors numbers errors in source order.
type Errors []*Error

func (e Errors) Len() int           { return len(e) }
func (e Errors) Less(i, j int) bool { return e[i].Offset < e[j].Offset }
func (e Errors) Swap(i, j int)      { e[i], e[j] = e[j], e[i] }

// Sort orders the log by source offset.
func (e Errors) Sort() { sort.Sort(e) }

// Format renders the error log against source, one finding per error
// with a caret pointing at its rune offset, in the style of the
// teacher's CompilerError.Format (github.com/cwbudde/go-dws
// internal/errors/errors.go) adapted to single-line expression source
// rather than multi-line compilation units.
func (e Errors) Format(source string) string {
	if len(e) == 0 {
		return ""
	}
	sorted := make(Errors, len(e))
	copy(sorted, e)
	sorted.Sort()

	runes := []rune(source)
	var sb strings.Builder
	if len(sorted) > 1 {
		sb.WriteString(fmt.Sprintf("%d errors:\n\n", len(sorted)))
	}
	for i, err := range sorted {
		col := err.Offset + 1
		sb.WriteString(fmt.Sprintf("%s at column %d: %s\n", err.Kind, col, err.Message))
		sb.WriteString("    | ")
		sb.WriteString(source)
		sb.WriteString("\n")
		sb.WriteString("    | ")
		if err.Offset >= 0 && err.Offset <= len(runes) {
			sb.WriteString(strings.Repeat(" ", err.Offset))
		}
		sb.WriteString("^")
		if i < len(sorted)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
