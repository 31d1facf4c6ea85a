package types

import (
	"errors"
	"fmt"
	"strings"
)

// Data integrity errors surfaced by the graph builder and the store layer.
var (
	// ErrUnknownAspect is returned when a referenced aspect name does not
	// exist in the loaded aspect set.
	ErrUnknownAspect = errors.New("unknown aspect")
	// ErrDegenerateWeight is returned for an aspect whose base value is not
	// strictly positive; its weight is not computable.
	ErrDegenerateWeight = errors.New("degenerate weight: base value must be positive")
	// ErrRecipeCycle is returned when a recipe would make an aspect a
	// component of itself, directly or transitively.
	ErrRecipeCycle = errors.New("recipe would introduce a cycle")
	// ErrEmptyName is returned when an aspect record has no name.
	ErrEmptyName = errors.New("aspect name cannot be empty")
)

// Aspect is an atomic unit in the recipe graph.
type Aspect struct {
	// Name uniquely identifies the aspect.
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	// Mod is the provenance tag naming the content pack the aspect came
	// from. Empty for aspects without one.
	Mod string `json:"mod,omitempty" yaml:"mod,omitempty" mapstructure:"mod"`
	// BaseValue is the normalization scalar dividing the self weight.
	// Must be strictly positive; defaults to 1.0.
	BaseValue float64 `json:"base_value" yaml:"base_value" mapstructure:"base_value"`
}

// Validate checks the Aspect record for load-time integrity.
func (a *Aspect) Validate() error {
	if a.Name == "" {
		return ErrEmptyName
	}
	if a.BaseValue <= 0 {
		return fmt.Errorf("aspect %q: %w", a.Name, ErrDegenerateWeight)
	}
	return nil
}

// Recipe states that Name is producible by combining ComponentA and
// ComponentB. An aspect may have zero recipes (a primary aspect) or several
// alternative ones.
type Recipe struct {
	Name       string `json:"name" yaml:"name" mapstructure:"name"`
	ComponentA string `json:"component_a" yaml:"component_a" mapstructure:"component_a"`
	ComponentB string `json:"component_b" yaml:"component_b" mapstructure:"component_b"`
}

// Validate checks the Recipe record for load-time integrity.
func (r *Recipe) Validate() error {
	if r.Name == "" || r.ComponentA == "" || r.ComponentB == "" {
		return ErrEmptyName
	}
	if r.ComponentA == r.Name || r.ComponentB == r.Name {
		return fmt.Errorf("recipe %q: %w", r.Name, ErrRecipeCycle)
	}
	return nil
}

// String renders the recipe the way the CLI prints it.
func (r Recipe) String() string {
	return fmt.Sprintf("%s = %s + %s", r.Name, r.ComponentA, r.ComponentB)
}

// Path is an ordered sequence of aspect names from a begin aspect to an end
// aspect, each consecutive pair connected by a component-or-composite edge.
// A path visits each aspect at most once.
type Path struct {
	Aspects []string `json:"aspects"`
}

// Begin returns the first aspect of the path, or "" for an empty path.
func (p Path) Begin() string {
	if len(p.Aspects) == 0 {
		return ""
	}
	return p.Aspects[0]
}

// End returns the last aspect of the path, or "" for an empty path.
func (p Path) End() string {
	if len(p.Aspects) == 0 {
		return ""
	}
	return p.Aspects[len(p.Aspects)-1]
}

// Len returns the number of aspects on the path.
func (p Path) Len() int { return len(p.Aspects) }

// Key returns the path's aspects joined by "->". Used for display and as a
// deterministic tie-break when two paths carry equal weight.
func (p Path) Key() string {
	return strings.Join(p.Aspects, "->")
}

func (p Path) String() string { return p.Key() }
