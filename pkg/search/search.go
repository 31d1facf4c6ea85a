// Package search enumerates and ranks transformation paths between two
// aspects of a graph snapshot.
package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/thaumlab/aspecter/pkg/graph"
	"github.com/thaumlab/aspecter/pkg/types"
	"github.com/thaumlab/aspecter/pkg/weight"
)

// Options bounds a Recommend query. Zero values mean unlimited.
type Options struct {
	// MaxPaths caps how many paths are enumerated. Best-effort: traversal
	// stops once the cap is hit, in traversal order, before ranking.
	MaxPaths int `json:"max_paths" mapstructure:"max_paths"`
	// MaxPathLength caps the number of aspects on a path.
	MaxPathLength int `json:"max_path_length" mapstructure:"max_path_length"`
}

// RankedPath is one recommended path together with its score.
type RankedPath struct {
	Path types.Path `json:"path"`
	// Weights holds each aspect's weight in this path's context, aligned
	// with Path.Aspects.
	Weights []float64 `json:"weights"`
	// FinalWeight is the sum of Weights, the ranking score.
	FinalWeight float64 `json:"final_weight"`
}

// Searcher runs recommendation queries against one frozen snapshot. Self
// weights are computed once per snapshot since they do not depend on path
// context.
type Searcher struct {
	snap  *graph.Snapshot
	eval  *weight.Evaluator
	selfs []float64
}

// NewSearcher validates every aspect's weight inputs up front and memoizes
// the self weights.
func NewSearcher(snap *graph.Snapshot, eval *weight.Evaluator) (*Searcher, error) {
	if eval == nil {
		eval = weight.NewDefaultEvaluator()
	}
	selfs := make([]float64, snap.Len())
	for h := 0; h < snap.Len(); h++ {
		w, err := eval.Self(snap.Held(h), snap.Aspect(h).BaseValue)
		if err != nil {
			return nil, fmt.Errorf("aspect %q: %w", snap.Name(h), err)
		}
		selfs[h] = w
	}
	return &Searcher{snap: snap, eval: eval, selfs: selfs}, nil
}

// SelfWeight returns the memoized self weight of an aspect.
func (s *Searcher) SelfWeight(name string) (float64, error) {
	h, ok := s.snap.Handle(name)
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, types.ErrUnknownAspect)
	}
	return s.selfs[h], nil
}

// Recommend enumerates every simple path from begin to end over the
// undirected component/composite adjacency, scores each in its own context
// and returns them ordered by descending final weight. Ties break on shorter
// paths first, then on the lexicographic order of the joined aspect names.
// A disconnected pair yields an empty result, not an error.
func (s *Searcher) Recommend(ctx context.Context, begin, end string, opts *Options) ([]RankedPath, error) {
	if opts == nil {
		opts = &Options{}
	}
	from, ok := s.snap.Handle(begin)
	if !ok {
		return nil, fmt.Errorf("begin %q: %w", begin, types.ErrUnknownAspect)
	}
	to, ok := s.snap.Handle(end)
	if !ok {
		return nil, fmt.Errorf("end %q: %w", end, types.ErrUnknownAspect)
	}

	if from == to {
		// By convention the single-node path scores its self weight.
		return []RankedPath{{
			Path:        types.Path{Aspects: []string{begin}},
			Weights:     []float64{s.selfs[from]},
			FinalWeight: s.selfs[from],
		}}, nil
	}

	paths, err := s.enumerate(ctx, from, to, opts)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedPath, 0, len(paths))
	for _, p := range paths {
		selfs := make([]float64, len(p))
		names := make([]string, len(p))
		for i, h := range p {
			selfs[i] = s.selfs[h]
			names[i] = s.snap.Name(h)
		}
		weights, final := s.eval.PathWeights(selfs)
		ranked = append(ranked, RankedPath{
			Path:        types.Path{Aspects: names},
			Weights:     weights,
			FinalWeight: final,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.FinalWeight != b.FinalWeight {
			return a.FinalWeight > b.FinalWeight
		}
		if a.Path.Len() != b.Path.Len() {
			return a.Path.Len() < b.Path.Len()
		}
		return a.Path.Key() < b.Path.Key()
	})
	return ranked, nil
}

// enumerate collects every simple path from from to to by depth-first
// traversal. Termination is guaranteed because paths revisit no aspect and
// the aspect set is finite.
func (s *Searcher) enumerate(ctx context.Context, from, to int, opts *Options) ([][]int, error) {
	var (
		out     [][]int
		visited = make([]bool, s.snap.Len())
		stack   = make([]int, 0, s.snap.Len())
	)

	var dfs func(h int) error
	dfs = func(h int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.MaxPaths > 0 && len(out) >= opts.MaxPaths {
			return nil
		}

		visited[h] = true
		stack = append(stack, h)
		defer func() {
			visited[h] = false
			stack = stack[:len(stack)-1]
		}()

		if h == to {
			p := make([]int, len(stack))
			copy(p, stack)
			out = append(out, p)
			return nil
		}
		if opts.MaxPathLength > 0 && len(stack) >= opts.MaxPathLength {
			return nil
		}
		for _, nb := range s.snap.Neighbors(h) {
			if visited[nb] {
				continue
			}
			if err := dfs(nb); err != nil {
				return err
			}
		}
		return nil
	}

	if err := dfs(from); err != nil {
		return nil, err
	}
	return out, nil
}
