// Package graph builds an immutable in-memory snapshot of the aspect recipe
// graph. Aspects are interned to integer handles into flat arrays so the
// adjacency and visited sets in path search are plain index operations.
package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/thaumlab/aspecter/pkg/types"
)

// pair holds the two component handles of one recipe.
type pair struct {
	A, B int
}

// Snapshot is a frozen view of the recipe graph. It is never mutated after
// Build returns, so it is safe to share across concurrent queries.
type Snapshot struct {
	names   []string
	index   map[string]int
	aspects []types.Aspect
	held    []float64

	recipes    [][]pair // handle -> its recipes (component pairs)
	composites [][]int  // handle -> aspects using it as a component
	neighbors  [][]int  // undirected component/composite adjacency, deduped

	rejected []types.Recipe
}

// Build interns all aspects, wires the component and composite relations and
// freezes the result. It fails with types.ErrUnknownAspect when a recipe
// references an aspect absent from the aspect set, and with
// types.ErrDegenerateWeight when an aspect's base value is not positive.
// Recipes whose closure would make an aspect its own component are rejected
// individually and reported by Rejected; the rest of the graph still loads.
func Build(aspects []types.Aspect, recipes []types.Recipe, holdings map[string]float64) (*Snapshot, error) {
	s := &Snapshot{
		names:   make([]string, 0, len(aspects)),
		index:   make(map[string]int, len(aspects)),
		aspects: make([]types.Aspect, 0, len(aspects)),
	}

	for _, a := range aspects {
		if a.BaseValue == 0 {
			a.BaseValue = 1.0
		}
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.index[a.Name]; dup {
			return nil, fmt.Errorf("duplicate aspect %q", a.Name)
		}
		s.index[a.Name] = len(s.names)
		s.names = append(s.names, a.Name)
		s.aspects = append(s.aspects, a)
	}

	n := len(s.names)
	s.held = make([]float64, n)
	for name, qty := range holdings {
		h, ok := s.index[name]
		if !ok {
			return nil, fmt.Errorf("holding for %q: %w", name, types.ErrUnknownAspect)
		}
		if qty < 0 {
			return nil, fmt.Errorf("holding for %q is negative", name)
		}
		s.held[h] = qty
	}

	s.recipes = make([][]pair, n)
	s.composites = make([][]int, n)

	for _, r := range recipes {
		if err := r.Validate(); err != nil {
			if errors.Is(err, types.ErrEmptyName) {
				return nil, err
			}
			// Direct self-reference is a cycle of length one.
			s.rejected = append(s.rejected, r)
			continue
		}
		result, ok := s.index[r.Name]
		if !ok {
			return nil, fmt.Errorf("recipe result %q: %w", r.Name, types.ErrUnknownAspect)
		}
		a, ok := s.index[r.ComponentA]
		if !ok {
			return nil, fmt.Errorf("recipe component %q: %w", r.ComponentA, types.ErrUnknownAspect)
		}
		b, ok := s.index[r.ComponentB]
		if !ok {
			return nil, fmt.Errorf("recipe component %q: %w", r.ComponentB, types.ErrUnknownAspect)
		}

		if s.reachesComponent(a, result) || s.reachesComponent(b, result) {
			s.rejected = append(s.rejected, r)
			continue
		}

		s.recipes[result] = append(s.recipes[result], pair{A: a, B: b})
		s.composites[a] = appendUnique(s.composites[a], result)
		if b != a {
			s.composites[b] = appendUnique(s.composites[b], result)
		}
	}

	s.buildNeighbors()
	return s, nil
}

// reachesComponent reports whether target appears in the component closure
// rooted at from, under the recipes accepted so far.
func (s *Snapshot) reachesComponent(from, target int) bool {
	if from == target {
		return true
	}
	seen := make([]bool, len(s.names))
	stack := []int{from}
	seen[from] = true
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range s.recipes[h] {
			for _, c := range []int{p.A, p.B} {
				if c == target {
					return true
				}
				if !seen[c] {
					seen[c] = true
					stack = append(stack, c)
				}
			}
		}
	}
	return false
}

// buildNeighbors derives the undirected adjacency: for every aspect, its
// recipe components plus the aspects it is a component of. Sorted by name so
// traversal order, and therefore tie-broken rankings, are deterministic.
func (s *Snapshot) buildNeighbors() {
	s.neighbors = make([][]int, len(s.names))
	for h := range s.names {
		set := make(map[int]struct{})
		for _, p := range s.recipes[h] {
			set[p.A] = struct{}{}
			set[p.B] = struct{}{}
		}
		for _, c := range s.composites[h] {
			set[c] = struct{}{}
		}
		delete(set, h)

		adj := make([]int, 0, len(set))
		for nb := range set {
			adj = append(adj, nb)
		}
		sort.Slice(adj, func(i, j int) bool { return s.names[adj[i]] < s.names[adj[j]] })
		s.neighbors[h] = adj
	}
}

func appendUnique(xs []int, x int) []int {
	for _, v := range xs {
		if v == x {
			return xs
		}
	}
	return append(xs, x)
}

// Len returns the number of aspects in the snapshot.
func (s *Snapshot) Len() int { return len(s.names) }

// Handle returns the integer handle for an aspect name.
func (s *Snapshot) Handle(name string) (int, bool) {
	h, ok := s.index[name]
	return h, ok
}

// Name returns the aspect name for a handle.
func (s *Snapshot) Name(h int) string { return s.names[h] }

// Aspect returns the aspect record for a handle.
func (s *Snapshot) Aspect(h int) types.Aspect { return s.aspects[h] }

// Held returns the held quantity for a handle (0 when none was recorded).
func (s *Snapshot) Held(h int) float64 { return s.held[h] }

// Neighbors returns the undirected component/composite adjacency of h. The
// returned slice must not be modified.
func (s *Snapshot) Neighbors(h int) []int { return s.neighbors[h] }

// Recipes returns the recipes producing h as component handle pairs. Primary
// aspects have none. The returned slice must not be modified.
func (s *Snapshot) Recipes(h int) [][2]int {
	rs := make([][2]int, len(s.recipes[h]))
	for i, p := range s.recipes[h] {
		rs[i] = [2]int{p.A, p.B}
	}
	return rs
}

// Composites returns the handles of aspects that use h as a component. The
// returned slice must not be modified.
func (s *Snapshot) Composites(h int) []int { return s.composites[h] }

// IsPrimary reports whether h has no recipe.
func (s *Snapshot) IsPrimary(h int) bool { return len(s.recipes[h]) == 0 }

// Primaries returns the names of all aspects without a recipe, sorted.
func (s *Snapshot) Primaries() []string {
	var out []string
	for h := range s.names {
		if s.IsPrimary(h) {
			out = append(out, s.names[h])
		}
	}
	sort.Strings(out)
	return out
}

// Aspects returns all aspect records sorted by name.
func (s *Snapshot) Aspects() []types.Aspect {
	out := make([]types.Aspect, len(s.aspects))
	copy(out, s.aspects)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Mods returns the distinct provenance tags present in the snapshot, sorted.
func (s *Snapshot) Mods() []string {
	set := make(map[string]struct{})
	for _, a := range s.aspects {
		if a.Mod != "" {
			set[a.Mod] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Rejected returns the recipes the builder refused because they would have
// introduced a cycle.
func (s *Snapshot) Rejected() []types.Recipe { return s.rejected }
