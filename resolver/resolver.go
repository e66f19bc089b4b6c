// Package resolver defines the two host-supplied collaborators the
// evaluator consults (spec section 6) and the VariableReference grammar
// of spec section 3.
package resolver

import (
	"regexp"
	"strings"

	"github.com/cwbudde/exprlang/value"
)

// AllowedAttrs is the closed set of dotted attribute suffixes a
// VariableReference may carry.
var AllowedAttrs = map[string]bool{
	"code": true, "gid": true, "grelevance": true, "gseq": true,
	"jsName": true, "mandatory": true, "NAOK": true, "qid": true,
	"qseq": true, "question": true, "readWrite": true,
	"relevanceStatus": true, "relevance": true, "rowdivid": true,
	"sgqa": true, "shown": true, "type": true, "valueNAOK": true,
	"value": true,
}

// sgqaRoot matches spec section 3's SGQA grammar for a reference root.
var sgqaRoot = regexp.MustCompile(`^\d+X\d+X\d+[A-Z0-9_]*#?[01]?$`)

// VariableReference is a parsed dotted variable name: an optional
// INSERTANS: prefix, a question/token root, and an optional trailing
// attribute from AllowedAttrs.
type VariableReference struct {
	HasInsertAnsPrefix bool
	Root               string
	Attr               string // "" if no attribute suffix
	Surface            string // the original, unparsed text
}

// Parse splits raw WORD/SGQA token text into a VariableReference. If the
// trailing dotted segment is not in AllowedAttrs, the whole dotted path
// is kept as the root (it is not an attribute reference, just a
// multi-segment variable name).
func Parse(raw string) VariableReference {
	ref := VariableReference{Surface: raw}

	rest := raw
	const prefix = "INSERTANS:"
	if strings.HasPrefix(rest, prefix) {
		ref.HasInsertAnsPrefix = true
		rest = rest[len(prefix):]
	}

	if idx := strings.LastIndexByte(rest, '.'); idx >= 0 {
		attr := rest[idx+1:]
		if AllowedAttrs[attr] {
			ref.Root = rest[:idx]
			ref.Attr = attr
			return ref
		}
	}
	ref.Root = rest
	return ref
}

// IsSGQA reports whether root matches the SGQA field-code grammar.
func IsSGQA(root string) bool {
	return sgqaRoot.MatchString(root)
}

// Question is the shape a QuestionResolver hands back: its SGQA prefix
// and the concrete field names belonging to it.
type Question struct {
	SGQA   string
	Fields []Field
}

// Field is one concrete variable belonging to a Question.
type Field struct {
	Name string
	Code string
}

// QuestionResolver looks survey questions up by their code, used by the
// self/that expansion preprocessor (spec section 4.6).
type QuestionResolver interface {
	GetByCode(code string) (*Question, bool)
}

// WriteOp is the assignment form used in a VariableResolver.Write call.
type WriteOp string

const (
	OpAssign WriteOp = "="
	OpAdd    WriteOp = "+="
	OpSub    WriteOp = "-="
	OpMul    WriteOp = "*="
	OpDiv    WriteOp = "/="
)

// VariableResolver is the host's read/write channel for variable access
// (spec section 6).
type VariableResolver interface {
	// Read resolves name's stored value when attr is "", or the named
	// attribute otherwise. def is used when the host has no value and
	// the caller supplied a default via the variable's attribute
	// grammar. groupSeq/questionSeq scope group-relative lookups (-1
	// means "unspecified", matching Engine.ProcessString's defaults).
	Read(name, attr string, def value.Value, groupSeq, questionSeq int) (value.Value, error)

	// Write performs an assignment through op and returns the canonical
	// stored value subsequent reads should observe.
	Write(op WriteOp, name string, v value.Value) (value.Value, error)
}
