// Package engine is the public façade of spec section 6: it wires the
// splitter, expander, lexer, parser/evaluator, and emitter packages
// into the operations a host actually calls.
package engine

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/exprlang/emit"
	"github.com/cwbudde/exprlang/eval"
	"github.com/cwbudde/exprlang/expand"
	"github.com/cwbudde/exprlang/lexer"
	"github.com/cwbudde/exprlang/registry"
	"github.com/cwbudde/exprlang/resolver"
	"github.com/cwbudde/exprlang/splitter"
	"github.com/cwbudde/exprlang/token"
	"github.com/cwbudde/exprlang/value"
)

// Engine holds one host's variable/question resolvers, its per-instance
// function overlay, and the diagnostic sinks from the last Evaluate
// call. It carries per-call mutable state (spec 5) and is therefore not
// safe for concurrent use by multiple goroutines.
type Engine struct {
	Registry  *registry.Registry
	Variables resolver.VariableResolver
	Questions resolver.QuestionResolver

	out   io.Writer
	trace io.Writer

	lastResult value.Value
	lastErrors eval.Errors
	lastVars   map[string]bool
}

// New creates an Engine seeded from the process-wide default function
// registry (spec 5); vars/questions may be nil for diagnostic-only use
// (Tokenize, parse-only Evaluate).
func New(vars resolver.VariableResolver, questions resolver.QuestionResolver) *Engine {
	return &Engine{
		Registry:  registry.Default().Clone(),
		Variables: vars,
		Questions: questions,
		out:       io.Discard,
		trace:     io.Discard,
	}
}

// NewWithCategories builds an Engine whose function registry is
// restricted to the named builtin categories (package config's
// EnabledCategories), instead of the full process-wide default table.
func NewWithCategories(categories []string, vars resolver.VariableResolver, questions resolver.QuestionResolver) *Engine {
	return &Engine{
		Registry:  registry.NewCategorized(categories),
		Variables: vars,
		Questions: questions,
		out:       io.Discard,
		trace:     io.Discard,
	}
}

// SetOutput sets the sink for lifecycle diagnostics (currently the
// registry-merge line written by RegisterFunctions), grounded on the
// teacher's interp.New(os.Stdout).
func (e *Engine) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	e.out = w
}

// SetTrace sets the sink for per-evaluation trace lines, grounded on
// the teacher's --trace flag (cmd/dwscript/cmd/run.go).
func (e *Engine) SetTrace(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	e.trace = w
}

// RegisterFunctions merges specs into this Engine's private overlay
// registry without touching the process-wide default table.
func (e *Engine) RegisterFunctions(specs map[string]registry.FunctionSpec) {
	e.Registry.Merge(specs)
	fmt.Fprintf(e.out, "registered %d function(s)\n", len(specs))
}

// Tokenize exposes the lexer directly for diagnostic/edit surfaces.
func (e *Engine) Tokenize(src string, editMode bool) []token.Token {
	return lexer.New(src, lexer.WithEditMode(editMode)).Tokenize()
}

// Evaluate parses and evaluates expr with no group/question context
// (groupSeq=questionSeq=-1, matching ProcessString's defaults), self/
// that expansion skipped since no question context is available to
// resolve a bare `self` against. Use ProcessString or BooleanEvaluate
// when self/that expansion must run.
func (e *Engine) Evaluate(expr string, parseOnly bool) bool {
	return e.run(e.Tokenize(expr, false), parseOnly, -1, -1)
}

func (e *Engine) run(tokens []token.Token, parseOnly bool, groupSeq, questionSeq int) bool {
	st := eval.NewState(tokens, e.Variables, e.Registry, parseOnly, groupSeq, questionSeq)
	e.lastResult = st.Run()
	e.lastErrors = st.Errors
	e.lastVars = st.VarsUsed
	fmt.Fprintf(e.trace, "eval -> %s (%d error(s), %d var(s))\n", e.lastResult.Raw(), len(e.lastErrors), len(e.lastVars))
	return len(e.lastErrors) == 0
}

// Result returns the value produced by the last Evaluate/ProcessString
// segment/BooleanEvaluate call.
func (e *Engine) Result() value.Value { return e.lastResult }

// Errors returns the error log from the last evaluation call.
func (e *Engine) Errors() eval.Errors { return e.lastErrors }

// VarsUsed returns the distinct variable surface forms referenced by
// the last evaluation call, sorted for determinism.
func (e *Engine) VarsUsed() []string {
	names := make([]string, 0, len(e.lastVars))
	for n := range e.lastVars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) expand(expr string, questionSeq int) string {
	if e.Questions == nil {
		return expr
	}
	exp := expand.New(e.Questions, strconv.Itoa(questionSeq))
	return exp.Expand(expr)
}

// ProcessString implements spec 6's string-substitution entry point:
// split the host string into literal/expression segments, expand and
// evaluate each expression segment, substitute its result, repeat up
// to recursionLevels times (results can themselves contain braces),
// then unescape \{ and \}. A segment that fails to evaluate falls back
// to its original `{...}` text rather than aborting the whole string
// (spec 7's per-segment error policy).
func (e *Engine) ProcessString(src string, recursionLevels, groupSeq, questionSeq int) string {
	if recursionLevels < 1 {
		recursionLevels = 1
	}

	out := src
	for level := 0; level < recursionLevels; level++ {
		segments := splitter.Split(out)
		sawExpression := false
		var sb strings.Builder

		for _, seg := range segments {
			if seg.Kind == splitter.STRING {
				sb.WriteString(seg.Text)
				continue
			}
			sawExpression = true

			expanded := e.expand(seg.Text, questionSeq)
			tokens := e.Tokenize(expanded, false)
			if e.run(tokens, false, groupSeq, questionSeq) {
				sb.WriteString(e.lastResult.Raw())
			} else {
				sb.WriteString("{" + seg.Text + "}")
			}
		}

		out = sb.String()
		if !sawExpression {
			break
		}
	}

	out = strings.ReplaceAll(out, `\{`, "{")
	out = strings.ReplaceAll(out, `\}`, "}")
	return out
}

// ToTargetExpression re-tokenizes expr and renders it in the
// client-side target surface (spec 4.7).
func (e *Engine) ToTargetExpression(expr string) string {
	tokens := e.Tokenize(expr, false)
	rendered, _, errs := emit.Render(tokens, e.Registry)
	e.lastErrors = errs
	return rendered
}

// BooleanEvaluate implements spec 6's relevance-equation entry point:
// false on any error, a null result, or a referenced variable whose
// relevanceStatus resolves falsy — unless that reference's own surface
// form ends in .NAOK or .relevanceStatus, which is how a host asks to
// read through the irrelevance gate.
func (e *Engine) BooleanEvaluate(expr string, groupSeq, questionSeq int) bool {
	expanded := e.expand(expr, questionSeq)
	tokens := e.Tokenize(expanded, false)
	if !e.run(tokens, false, groupSeq, questionSeq) {
		return false
	}
	if e.lastResult.IsNull() {
		return false
	}

	for surface := range e.lastVars {
		if strings.HasSuffix(surface, ".NAOK") || strings.HasSuffix(surface, ".relevanceStatus") {
			continue
		}
		if e.Variables == nil {
			continue
		}
		ref := resolver.Parse(surface)
		rel, err := e.Variables.Read(ref.Root, "relevanceStatus", value.Bool(true), groupSeq, questionSeq)
		if err == nil && !rel.Truthy() {
			return false
		}
	}

	return e.lastResult.Truthy()
}
