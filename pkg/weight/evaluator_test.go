package weight

import (
	"errors"
	"math"
	"testing"

	"github.com/thaumlab/aspecter/pkg/types"
)

func TestSelfWeight(t *testing.T) {
	e := NewDefaultEvaluator()

	got, err := e.Self(0, 1)
	if err != nil {
		t.Fatalf("Self(0, 1) error: %v", err)
	}
	if got != 0 {
		t.Errorf("Self(0, 1) = %v, want 0", got)
	}

	// Doubling the base value halves the weight.
	a, _ := e.Self(100, 1)
	b, _ := e.Self(100, 2)
	if math.Abs(a-2*b) > 1e-12 {
		t.Errorf("Self(100, 2) = %v, want half of Self(100, 1) = %v", b, a)
	}

	// Self weight stays in [0, 1) for base >= 1.
	for _, h := range []float64{0, 10, 1000, 1e9} {
		w, err := e.Self(h, 1)
		if err != nil {
			t.Fatalf("Self(%v, 1) error: %v", h, err)
		}
		if w < 0 || w >= 1 {
			t.Errorf("Self(%v, 1) = %v, want value in [0, 1)", h, w)
		}
	}
}

func TestSelfWeightDegenerateBase(t *testing.T) {
	e := NewDefaultEvaluator()
	for _, base := range []float64{0, -1} {
		if _, err := e.Self(10, base); !errors.Is(err, types.ErrDegenerateWeight) {
			t.Errorf("Self(10, %v) error = %v, want ErrDegenerateWeight", base, err)
		}
	}
}

func TestCombineLeafContext(t *testing.T) {
	e := NewDefaultEvaluator()
	// No sub components: the inverse term contributes nothing.
	if got := e.Combine(0.42, 0); got != 0.42 {
		t.Errorf("Combine(0.42, 0) = %v, want 0.42", got)
	}
}

func TestCombine(t *testing.T) {
	e := NewDefaultEvaluator()
	got := e.Combine(0.5, 2.0)
	want := 0.7*0.5 + 0.3*(1.0/2.0)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Combine(0.5, 2.0) = %v, want %v", got, want)
	}
}

func TestPathWeights(t *testing.T) {
	e := NewDefaultEvaluator()

	selfs := []float64{0.1, 0.2, 0.3}
	weights, final := e.PathWeights(selfs)

	if len(weights) != 3 {
		t.Fatalf("PathWeights returned %d weights, want 3", len(weights))
	}
	// Last aspect is a leaf in its path context.
	if weights[2] != 0.3 {
		t.Errorf("weights[2] = %v, want self weight 0.3", weights[2])
	}
	// Interior weights follow the recursive rule.
	want1 := e.Combine(0.2, weights[2])
	if math.Abs(weights[1]-want1) > 1e-12 {
		t.Errorf("weights[1] = %v, want %v", weights[1], want1)
	}
	want0 := e.Combine(0.1, weights[1])
	if math.Abs(weights[0]-want0) > 1e-12 {
		t.Errorf("weights[0] = %v, want %v", weights[0], want0)
	}

	// Final weight is the sum of the per-aspect weights.
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(final-sum) > 1e-12 {
		t.Errorf("final = %v, want sum %v", final, sum)
	}
}

func TestPathWeightsSingleNode(t *testing.T) {
	e := NewDefaultEvaluator()
	weights, final := e.PathWeights([]float64{0.25})
	if len(weights) != 1 || weights[0] != 0.25 || final != 0.25 {
		t.Errorf("single-node path: weights=%v final=%v, want [0.25] 0.25", weights, final)
	}
}

func TestPathWeightsEmpty(t *testing.T) {
	e := NewDefaultEvaluator()
	weights, final := e.PathWeights(nil)
	if weights != nil || final != 0 {
		t.Errorf("empty path: weights=%v final=%v, want nil 0", weights, final)
	}
}

func TestNewEvaluatorRateDomain(t *testing.T) {
	for _, rate := range []float64{0, -0.1, 1.1} {
		if _, err := NewEvaluator(DefaultCurve(), rate); err == nil {
			t.Errorf("NewEvaluator(rate=%v) should fail with a domain error", rate)
		}
	}
	if _, err := NewEvaluator(nil, 1.0); err != nil {
		t.Errorf("NewEvaluator(nil, 1.0) error: %v", err)
	}
}
