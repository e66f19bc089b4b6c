package registry

// registerAll populates r with spec section 6's full default function
// table, grouped into files the way the teacher package splits its
// builtins directory by category (math_basic.go, strings_basic.go,
// datetime.go, conversion.go, encoding.go).
func registerAll(r *Registry) {
	registerMath(r)
	registerConvert(r)
	registerStringBasic(r)
	registerEncoding(r)
	registerDate(r)
	registerSurvey(r)
}

// categoryRegistrars maps a config.Config category name to the
// register* function that populates it, so a host can build a reduced
// registry (package config's EnabledCategories) instead of the full
// default table.
var categoryRegistrars = map[string]func(*Registry){
	"math":     registerMath,
	"convert":  registerConvert,
	"string":   registerStringBasic,
	"encoding": registerEncoding,
	"date":     registerDate,
	"survey":   registerSurvey,
}

// NewCategorized builds a Registry containing only the named
// categories. Unknown category names are ignored.
func NewCategorized(categories []string) *Registry {
	r := NewRegistry()
	for _, c := range categories {
		if fn, ok := categoryRegistrars[c]; ok {
			fn(r)
		}
	}
	return r
}
