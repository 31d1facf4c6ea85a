package search

import (
	"fmt"

	"github.com/thaumlab/aspecter/pkg/types"
)

// Crack decomposes a multiset of aspects into the multiset of primary
// aspects producing them, expanding each aspect through its first recipe
// recursively. Quantities multiply through the expansion. Aspects with
// several recipes expand through the first one the store listed.
func (s *Searcher) Crack(quantities map[string]float64) (map[string]float64, error) {
	memo := make(map[int]map[int]float64)
	out := make(map[string]float64)

	for name, qty := range quantities {
		h, ok := s.snap.Handle(name)
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, types.ErrUnknownAspect)
		}
		if qty <= 0 {
			return nil, fmt.Errorf("quantity for %q must be positive", name)
		}
		for prim, count := range s.crackOne(h, memo) {
			out[s.snap.Name(prim)] += count * qty
		}
	}
	return out, nil
}

// crackOne returns the primary-aspect counts for a single unit of h.
// Recipes are acyclic, so the recursion is bounded by the component depth.
func (s *Searcher) crackOne(h int, memo map[int]map[int]float64) map[int]float64 {
	if counts, ok := memo[h]; ok {
		return counts
	}

	counts := make(map[int]float64)
	recipes := s.snap.Recipes(h)
	if len(recipes) == 0 {
		counts[h] = 1
	} else {
		for _, c := range recipes[0] {
			for prim, n := range s.crackOne(c, memo) {
				counts[prim] += n
			}
		}
	}
	memo[h] = counts
	return counts
}
