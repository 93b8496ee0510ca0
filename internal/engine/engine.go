// Package engine defines the shared contract for generation modules: the
// generation context, the module interface, and the supporting value types.
// A module is pure with respect to its context: identical context state and
// parameters yield identical output. All randomness must flow through the
// context's Source and all clock reads through its Now function.
package engine

import (
	"time"

	"github.com/syntorio/synthid/internal/engine/dictionary"
	"github.com/syntorio/synthid/internal/engine/random"
)

// Context carries everything a module is allowed to depend on during a
// generation call. It lives for one call or for a batch of calls that share
// a seed lineage.
type Context struct {
	// Random is the deterministic randomness source, owned by the context.
	Random *random.Source
	// Dictionaries is the shared, read-mostly reference data registry.
	Dictionaries *dictionary.Registry
	// Now returns the current time. Injectable so tests can pin the clock.
	Now func() time.Time
}

// NewContext creates a generation context. A nil now falls back to the wall
// clock in UTC.
func NewContext(src *random.Source, registry *dictionary.Registry, now func() time.Time) *Context {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Context{
		Random:       src,
		Dictionaries: registry,
		Now:          now,
	}
}

// Meta carries diagnostic information a module returns alongside its payload.
type Meta struct {
	// Stats holds arbitrary numeric diagnostics, e.g. generated entity counts.
	Stats map[string]int `json:"stats,omitempty"`
	// Tags marks the scenario or enabled submodules.
	Tags []string `json:"tags,omitempty"`
}

// Result bundles a generated payload with its metadata.
type Result[P any] struct {
	Payload P
	Meta    Meta
}

// Issue describes a single validation problem found in a generated payload.
type Issue struct {
	// Path is the dot-notation location of the offending field.
	Path string `json:"path"`
	// Message is a human-readable description of the problem.
	Message string `json:"message"`
	// Code categorizes the problem for programmatic handling.
	Code string `json:"code,omitempty"`
}

// ValidationResult reports whether a payload passed a module's self-check.
type ValidationResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Module is the uniform shape every generation unit implements.
//
// Determinism contract: for fixed params, fixed dictionary contents, and a
// random source at a given state, Generate must consume the source in a fixed
// sequence of operations and produce a fixed payload.
type Module[Params any, P any] interface {
	// Name returns the stable module identifier.
	Name() string
	// Seed declares and warms the dictionaries the module requires.
	Seed(registry *dictionary.Registry) error
	// Generate produces a payload plus metadata from the given parameters.
	Generate(params Params, ctx *Context) (*Result[P], error)
	// Validate re-checks a generated payload against the module's invariants.
	Validate(payload *P) ValidationResult
}
