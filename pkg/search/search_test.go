package search

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/thaumlab/aspecter/pkg/graph"
	"github.com/thaumlab/aspecter/pkg/types"
	"github.com/thaumlab/aspecter/pkg/weight"
)

func buildSearcher(t *testing.T, aspects []types.Aspect, recipes []types.Recipe, holdings map[string]float64) *Searcher {
	t.Helper()
	snap, err := graph.Build(aspects, recipes, holdings)
	if err != nil {
		t.Fatalf("graph.Build error: %v", err)
	}
	s, err := NewSearcher(snap, weight.NewDefaultEvaluator())
	if err != nil {
		t.Fatalf("NewSearcher error: %v", err)
	}
	return s
}

func names(rp RankedPath) []string { return rp.Path.Aspects }

func TestRecommendSingleRecipe(t *testing.T) {
	// Nodes A(h=0), B(h=100), C(h=0) with recipe C = A + B. The only route
	// from A to B runs through C.
	s := buildSearcher(t,
		[]types.Aspect{
			{Name: "A", BaseValue: 1},
			{Name: "B", BaseValue: 1},
			{Name: "C", BaseValue: 1},
		},
		[]types.Recipe{{Name: "C", ComponentA: "A", ComponentB: "B"}},
		map[string]float64{"B": 100},
	)

	got, err := s.Recommend(context.Background(), "A", "B", nil)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Recommend returned %d paths, want 1", len(got))
	}
	if !reflect.DeepEqual(names(got[0]), []string{"A", "C", "B"}) {
		t.Fatalf("path = %v, want [A C B]", names(got[0]))
	}

	// Recompute the final weight independently from the stated formulas.
	eval := weight.NewDefaultEvaluator()
	selfA, _ := eval.Self(0, 1)
	selfB, _ := eval.Self(100, 1)
	selfC, _ := eval.Self(0, 1)
	wB := selfB
	wC := eval.Combine(selfC, wB)
	wA := eval.Combine(selfA, wC)
	want := wA + wC + wB
	if math.Abs(got[0].FinalWeight-want) > 1e-12 {
		t.Errorf("FinalWeight = %v, want %v", got[0].FinalWeight, want)
	}

	// Per-aspect weights must sum to the final weight.
	var sum float64
	for _, w := range got[0].Weights {
		sum += w
	}
	if math.Abs(got[0].FinalWeight-sum) > 1e-12 {
		t.Errorf("FinalWeight = %v does not match weight sum %v", got[0].FinalWeight, sum)
	}
}

func TestRecommendSameAspect(t *testing.T) {
	s := buildSearcher(t,
		[]types.Aspect{{Name: "X", BaseValue: 2}},
		nil,
		map[string]float64{"X": 500},
	)

	got, err := s.Recommend(context.Background(), "X", "X", nil)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(got) != 1 || got[0].Path.Len() != 1 || got[0].Path.Begin() != "X" {
		t.Fatalf("Recommend(X, X) = %v, want single one-aspect path", got)
	}

	self, err := s.SelfWeight("X")
	if err != nil {
		t.Fatalf("SelfWeight error: %v", err)
	}
	if got[0].FinalWeight != self {
		t.Errorf("FinalWeight = %v, want self weight %v", got[0].FinalWeight, self)
	}
}

func TestRecommendDisconnected(t *testing.T) {
	s := buildSearcher(t,
		[]types.Aspect{
			{Name: "A", BaseValue: 1},
			{Name: "B", BaseValue: 1},
			{Name: "C", BaseValue: 1},
			{Name: "D", BaseValue: 1},
		},
		[]types.Recipe{{Name: "C", ComponentA: "A", ComponentB: "B"}},
		nil,
	)

	got, err := s.Recommend(context.Background(), "A", "D", nil)
	if err != nil {
		t.Fatalf("Recommend error: %v, want empty result without error", err)
	}
	if len(got) != 0 {
		t.Errorf("Recommend returned %d paths, want 0", len(got))
	}
}

func TestRecommendUnknownAspect(t *testing.T) {
	s := buildSearcher(t, []types.Aspect{{Name: "A", BaseValue: 1}}, nil, nil)

	if _, err := s.Recommend(context.Background(), "Nonexistent", "A", nil); !errors.Is(err, types.ErrUnknownAspect) {
		t.Errorf("begin unknown: error = %v, want ErrUnknownAspect", err)
	}
	if _, err := s.Recommend(context.Background(), "A", "Nonexistent", nil); !errors.Is(err, types.ErrUnknownAspect) {
		t.Errorf("end unknown: error = %v, want ErrUnknownAspect", err)
	}
}

// diamondSearcher builds two routes from A to D: A-C1-D and A-C2-D, where
// C1 = A + B1, D = C1 + B2, C2 = A + B3, D2... Simpler: C1 and C2 both made
// from A, D made from C1 and also from C2 via alternative recipes.
func diamondSearcher(t *testing.T, holdings map[string]float64) *Searcher {
	t.Helper()
	return buildSearcher(t,
		[]types.Aspect{
			{Name: "A", BaseValue: 1},
			{Name: "B", BaseValue: 1},
			{Name: "C1", BaseValue: 1},
			{Name: "C2", BaseValue: 1},
			{Name: "D", BaseValue: 1},
		},
		[]types.Recipe{
			{Name: "C1", ComponentA: "A", ComponentB: "B"},
			{Name: "C2", ComponentA: "A", ComponentB: "B"},
			{Name: "D", ComponentA: "C1", ComponentB: "C2"},
		},
		holdings,
	)
}

func TestRecommendRankingOrder(t *testing.T) {
	// Holding C1 heavily should rank the C1 route above the C2 route.
	s := diamondSearcher(t, map[string]float64{"C1": 900})

	got, err := s.Recommend(context.Background(), "A", "D", nil)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(got) < 2 {
		t.Fatalf("Recommend returned %d paths, want at least 2", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].FinalWeight < got[i].FinalWeight {
			t.Fatalf("paths not sorted by descending weight: %v before %v",
				got[i-1].FinalWeight, got[i].FinalWeight)
		}
	}

	// Every route containing the held aspect outscores the route avoiding
	// it; the pure C2 route carries zero weight and ranks last.
	top := names(got[0])
	hasC1 := false
	for _, n := range top {
		if n == "C1" {
			hasC1 = true
		}
	}
	if !hasC1 {
		t.Errorf("best path = %v, want a route through C1", top)
	}
	last := got[len(got)-1]
	if !reflect.DeepEqual(names(last), []string{"A", "C2", "D"}) {
		t.Errorf("worst path = %v, want [A C2 D]", names(last))
	}
	if last.FinalWeight != 0 {
		t.Errorf("worst path weight = %v, want 0", last.FinalWeight)
	}
}

func TestRecommendDeterministicTieBreak(t *testing.T) {
	// No holdings: the two symmetric routes tie on weight and on length,
	// so lexicographic order of the joined names decides.
	s := diamondSearcher(t, nil)

	first, err := s.Recommend(context.Background(), "A", "D", nil)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	second, err := s.Recommend(context.Background(), "A", "D", nil)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("Recommend is not idempotent for identical inputs")
	}

	for i := 1; i < len(first); i++ {
		a, b := first[i-1], first[i]
		if a.FinalWeight == b.FinalWeight && a.Path.Len() == b.Path.Len() {
			if a.Path.Key() >= b.Path.Key() {
				t.Errorf("tie not broken lexicographically: %q before %q", a.Path.Key(), b.Path.Key())
			}
		}
	}
}

func TestRecommendShorterPathWinsTies(t *testing.T) {
	// B is reachable from A directly through C (A,C,B) and by the longer
	// detour through D, so a longer competing path always exists.
	s := buildSearcher(t,
		[]types.Aspect{
			{Name: "A", BaseValue: 1},
			{Name: "B", BaseValue: 1},
			{Name: "C", BaseValue: 1},
			{Name: "D", BaseValue: 1},
		},
		[]types.Recipe{
			{Name: "C", ComponentA: "A", ComponentB: "B"},
			{Name: "D", ComponentA: "C", ComponentB: "B"},
		},
		nil,
	)

	got, err := s.Recommend(context.Background(), "A", "B", nil)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(got) < 2 {
		t.Fatalf("Recommend returned %d paths, want at least 2", len(got))
	}
	for i := 1; i < len(got); i++ {
		a, b := got[i-1], got[i]
		if a.FinalWeight == b.FinalWeight && a.Path.Len() > b.Path.Len() {
			t.Errorf("equal-weight paths not ordered by length: %v before %v", names(a), names(b))
		}
	}
}

func TestRecommendMaxPathLength(t *testing.T) {
	s := diamondSearcher(t, nil)

	got, err := s.Recommend(context.Background(), "A", "D", &Options{MaxPathLength: 3})
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	for _, rp := range got {
		if rp.Path.Len() > 3 {
			t.Errorf("path %v exceeds max length 3", names(rp))
		}
	}
	if len(got) == 0 {
		t.Error("length-3 routes exist and should be returned")
	}
}

func TestRecommendMaxPaths(t *testing.T) {
	s := diamondSearcher(t, nil)

	got, err := s.Recommend(context.Background(), "A", "D", &Options{MaxPaths: 1})
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Recommend returned %d paths, want 1", len(got))
	}
}

func TestRecommendCancelled(t *testing.T) {
	s := diamondSearcher(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Recommend(ctx, "A", "D", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Recommend error = %v, want context.Canceled", err)
	}
}

func TestNewSearcherRejectsDegenerateSnapshot(t *testing.T) {
	// graph.Build already rejects bad base values; guard the searcher's own
	// check with a snapshot built from validated records where holdings are
	// fine but the evaluator still runs per aspect.
	snap, err := graph.Build([]types.Aspect{{Name: "A", BaseValue: 1}}, nil, nil)
	if err != nil {
		t.Fatalf("graph.Build error: %v", err)
	}
	if _, err := NewSearcher(snap, nil); err != nil {
		t.Errorf("NewSearcher error: %v", err)
	}
}
