// Package dist provides seeded variate streams: lazy, infinite sequences of
// draws from the distributions the queueing model needs.
package dist

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Stream produces an unending sequence of draws. Streams are stateful and
// non-restartable; a stream is owned by the model instance that created it
// and must not be shared across simulators.
type Stream interface {
	Next() float64
}

// Exponential draws from the exponential law with the configured mean.
type Exponential struct {
	dist distuv.Exponential
}

// NewExponential returns an exponential stream with the given mean, backed
// by a private source seeded with seed. The mean must be positive and
// finite.
func NewExponential(mean float64, seed uint64) (*Exponential, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) || mean <= 0 {
		return nil, fmt.Errorf("exponential stream: mean must be positive and finite, got %v", mean)
	}
	return &Exponential{
		dist: distuv.Exponential{Rate: 1 / mean, Src: rand.NewSource(seed)},
	}, nil
}

// Next returns the next draw. Draws are always non-negative.
func (e *Exponential) Next() float64 { return e.dist.Rand() }

// TruncNormal draws from a standard normal truncated to [lower, upper].
// Sampling inverts the normal CDF over the admissible interval, so every
// draw lies within the bounds. When the bounds coincide the stream is a
// degenerate point mass at that value.
type TruncNormal struct {
	lower, upper float64
	cdfLo, cdfHi float64
	std          distuv.Normal
	rng          *rand.Rand
}

// NewTruncNormal returns a truncated standard normal stream over [lower,
// upper], backed by a private source seeded with seed. The lower bound may
// equal the upper bound (a degenerate stream) but must not exceed it.
func NewTruncNormal(lower, upper float64, seed uint64) (*TruncNormal, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return nil, fmt.Errorf("truncated normal stream: NaN bound (lower=%v upper=%v)", lower, upper)
	}
	if lower > upper {
		return nil, fmt.Errorf("truncated normal stream: lower bound %v exceeds upper bound %v", lower, upper)
	}
	std := distuv.Normal{Mu: 0, Sigma: 1}
	return &TruncNormal{
		lower: lower,
		upper: upper,
		cdfLo: std.CDF(lower),
		cdfHi: std.CDF(upper),
		std:   std,
		rng:   rand.New(rand.NewSource(seed)),
	}, nil
}

// Next returns the next draw, always within [lower, upper].
func (t *TruncNormal) Next() float64 {
	span := t.cdfHi - t.cdfLo
	if span <= 0 {
		// Collapsed bounds: point mass at the shared value.
		return t.lower
	}
	u := t.cdfLo + t.rng.Float64()*span
	x := t.std.Quantile(u)
	// Quantile can step just outside the bounds at the CDF edges; clamp.
	if x < t.lower {
		return t.lower
	}
	if x > t.upper {
		return t.upper
	}
	return x
}
