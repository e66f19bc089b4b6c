// Package registry implements the whitelisted function table of spec
// section 4.5: a process-wide immutable default table plus a per-instance
// overlay, arity checking, and dispatch.
//
// Grounded on github.com/cwbudde/go-dws's
// internal/interp/builtins/registry.go, which keeps a case-insensitive,
// mutex-guarded map of FunctionInfo keyed by lowercase name, categorized
// for introspection. This registry keeps that shape (case-insensitive
// lookup, RWMutex-guarded map) and adds the arity-set/target-name/
// description fields spec.md's FunctionSpec requires.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cwbudde/exprlang/value"
)

// BuiltinFunc is the Go implementation behind a FunctionSpec. Variadic
// functions receive the full argument list; fixed-arity functions also
// receive the full list (positional access by index) to keep a single
// function shape, per spec 4.5 ("variadic dispatch passes the argument
// list as a single list ... fixed-arity dispatch passes positional
// arguments" — positional access is just args[i] here).
type BuiltinFunc func(args []value.Value) (value.Value, error)

// FunctionSpec describes one whitelisted function: its local name, its
// name in the client-side target surface (spec 4.7; "NA" means
// unsupported there), documentation, and its allowed arities.
//
// Arities is either a set of non-negative counts, or a single negative
// entry -(min+1) meaning "at least min arguments, unbounded above" (spec
// 4.5's "single negative integer N meaning at least (|N|-1) arguments").
type FunctionSpec struct {
	Name        string
	TargetName  string
	Description string
	Signature   string
	DocURL      string
	Arities     []int
	Fn          BuiltinFunc
}

// Arities constructs a fixed allowed-arity set.
func Arities(ns ...int) []int { return ns }

// AtLeast constructs a variadic "at least n arguments" arity spec.
func AtLeast(n int) []int { return []int{-(n + 1)} }

// Allows reports whether n arguments satisfy spec's arity rule.
func Allows(arities []int, n int) bool {
	if len(arities) == 1 && arities[0] < 0 {
		min := -arities[0] - 1
		return n >= min
	}
	for _, a := range arities {
		if a == n {
			return true
		}
	}
	return false
}

// Describe renders the allowed arities for error messages, e.g.
// "0, 1, or 2" or "at least 1".
func Describe(arities []int) string {
	if len(arities) == 1 && arities[0] < 0 {
		return fmt.Sprintf("at least %d", -arities[0]-1)
	}
	parts := make([]string, len(arities))
	for i, a := range arities {
		parts[i] = fmt.Sprintf("%d", a)
	}
	switch len(parts) {
	case 0:
		return "none"
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", or " + parts[len(parts)-1]
	}
}

// Registry is a case-insensitive, concurrency-safe function table.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]FunctionSpec
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]FunctionSpec)}
}

// Register adds or replaces a function by (case-insensitive) name.
func (r *Registry) Register(spec FunctionSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs[strings.ToLower(spec.Name)] = spec
}

// Merge registers every spec in a batch; used to layer a per-instance
// overlay registered via Engine.RegisterFunctions on top of this table.
func (r *Registry) Merge(specs map[string]FunctionSpec) {
	for _, spec := range specs {
		r.Register(spec)
	}
}

// Lookup finds a function by case-insensitive name.
func (r *Registry) Lookup(name string) (FunctionSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[strings.ToLower(name)]
	return spec, ok
}

// Names returns every registered function name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.specs))
	for _, s := range r.specs {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a new Registry pre-populated with r's entries, used to
// build a per-Engine overlay seeded from the process-wide defaults.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := NewRegistry()
	for k, v := range r.specs {
		clone.specs[k] = v
	}
	return clone
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide immutable default function registry,
// built once. Callers must never mutate it directly; Engine.Clone's it
// into a per-instance overlay before RegisterFunctions can add to it.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		registerAll(defaultRegistry)
	})
	return defaultRegistry
}
