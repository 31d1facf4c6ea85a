package weight

import (
	"fmt"

	"github.com/thaumlab/aspecter/pkg/types"
)

// DefaultRate is the mix between an aspect's own weight and the inverse of
// its path-context sub weights.
const DefaultRate = 0.7

// Evaluator computes aspect weights. It is stateless and safe for concurrent
// use.
type Evaluator struct {
	curve *Curve
	rate  float64
}

// NewEvaluator builds an evaluator from a curve and a mixing rate in (0, 1].
func NewEvaluator(curve *Curve, rate float64) (*Evaluator, error) {
	if rate <= 0 || rate > 1 {
		return nil, &DomainError{ValidRegion: "(0, 1]", Input: rate}
	}
	if curve == nil {
		curve = DefaultCurve()
	}
	return &Evaluator{curve: curve, rate: rate}, nil
}

// NewDefaultEvaluator returns an evaluator with the default curve and rate.
func NewDefaultEvaluator() *Evaluator {
	e, err := NewEvaluator(DefaultCurve(), DefaultRate)
	if err != nil {
		panic(err)
	}
	return e
}

// Self computes an aspect's intrinsic weight M(held)/base, independent of
// any path context. base must be strictly positive.
func (e *Evaluator) Self(held, base float64) (float64, error) {
	if base <= 0 {
		return 0, fmt.Errorf("base value %v: %w", base, types.ErrDegenerateWeight)
	}
	m, err := e.curve.Eval(held)
	if err != nil {
		return 0, err
	}
	return m / base, nil
}

// Combine mixes an aspect's own weight with the aggregate weight of its path
// context. A zero subSum means the aspect has no sub components in this
// context; the inverse term contributes nothing and the weight is the self
// weight alone.
func (e *Evaluator) Combine(self, subSum float64) float64 {
	if subSum == 0 {
		return self
	}
	return e.rate*self + (1-e.rate)*(1.0/subSum)
}

// PathWeights computes the context weight of each aspect on a path given the
// aspects' self weights in path order. An aspect's sub components are its
// path neighbors excluding the predecessor, so weights propagate from the
// end of the path backwards: the last aspect is a leaf in its context and
// keeps its self weight. Returns the per-aspect weights and their sum, the
// path's final weight.
func (e *Evaluator) PathWeights(selfWeights []float64) ([]float64, float64) {
	n := len(selfWeights)
	if n == 0 {
		return nil, 0
	}
	weights := make([]float64, n)
	weights[n-1] = selfWeights[n-1]
	for i := n - 2; i >= 0; i-- {
		weights[i] = e.Combine(selfWeights[i], weights[i+1])
	}
	var final float64
	for _, w := range weights {
		final += w
	}
	return weights, final
}
