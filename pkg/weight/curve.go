// Package weight computes aspect weights: the held-quantity transform and
// the path-context aggregation rule used to score candidate paths.
package weight

import (
	"fmt"
	"math"
)

// DefaultAlpha is the curve knee: the value the curve reaches at the end of
// its linear region.
const DefaultAlpha = 0.7

// linearSpan is the width of the curve's linear region. Held quantities in
// [0, linearSpan) map linearly; beyond it the curve saturates toward 1.
const linearSpan = 1000.0

// DomainError reports an input outside a function's valid region.
type DomainError struct {
	ValidRegion string
	Input       float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: valid region %s, got %v", e.ValidRegion, e.Input)
}

// Curve maps a held quantity in [0, +inf) onto [0, 1). It is continuous,
// strictly increasing on [0, linearSpan), satisfies Eval(0) == 0, and
// approaches 1 asymptotically without reaching it for finite input.
type Curve struct {
	alpha float64
	beta  float64
}

// NewCurve builds a curve with the given knee value. alpha must lie strictly
// inside (0, 1).
func NewCurve(alpha float64) (*Curve, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, &DomainError{ValidRegion: "(0, 1)", Input: alpha}
	}
	return &Curve{
		alpha: alpha,
		beta:  alpha / (linearSpan * (1 - alpha)),
	}, nil
}

// DefaultCurve returns the curve with the default knee.
func DefaultCurve() *Curve {
	c, err := NewCurve(DefaultAlpha)
	if err != nil {
		// DefaultAlpha is a valid constant; this cannot happen.
		panic(err)
	}
	return c
}

// Eval maps x onto [0, 1). x must be non-negative.
func (c *Curve) Eval(x float64) (float64, error) {
	if x < 0 {
		return 0, &DomainError{ValidRegion: "[0, +inf)", Input: x}
	}
	if x < linearSpan {
		return c.alpha * x / linearSpan, nil
	}
	v := c.alpha + (1-c.alpha)*(1-math.Exp(-c.beta*(x-linearSpan)))
	// The Exp term underflows to 0 for very large x; the result must stay
	// strictly below 1 for all finite input.
	return math.Min(v, math.Nextafter(1, 0)), nil
}
