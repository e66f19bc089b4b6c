// Package xerrors formats eval.Error diagnostics with source context, a
// caret, and a message, in the manner of the teacher's
// internal/errors.CompilerError (github.com/cwbudde/go-dws).
package xerrors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/exprlang/eval"
)

// Position is a 1-based line/column pair derived from a rune offset.
type Position struct {
	Line   int
	Column int
}

// CompilerError is one formatted diagnostic: an eval.Error located
// against a source string and an optional file/segment label.
type CompilerError struct {
	Kind    eval.Kind
	Message string
	Source  string
	File    string
	Pos     Position
}

// FromEvalErrors converts an eval.Errors log into CompilerErrors
// positioned against source, the way the teacher's FromStringErrors
// turns a parser's string error list into located CompilerErrors.
func FromEvalErrors(errs eval.Errors, source, file string) []*CompilerError {
	out := make([]*CompilerError, 0, len(errs))
	for _, e := range errs {
		out = append(out, &CompilerError{
			Kind:    e.Kind,
			Message: e.Message,
			Source:  source,
			File:    file,
			Pos:     positionOf(source, e.Offset),
		})
	}
	return out
}

// positionOf converts a 0-based rune offset into source into a 1-based
// line/column pair.
func positionOf(source string, offset int) Position {
	line, col := 1, 1
	runeIdx := 0
	for _, r := range source {
		if runeIdx >= offset {
			break
		}
		runeIdx++
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return Position{Line: line, Column: col}
}

// Error implements the error interface.
func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders e with a line/column header, the offending source
// line, and a caret, mirroring CompilerError.Format in the teacher.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s in %s:%d:%d\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s at line %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors formats a batch of CompilerErrors, numbering them when
// there is more than one, mirroring the teacher's FormatErrors.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("evaluation failed with %d error(s):\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
