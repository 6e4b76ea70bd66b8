// Package stats provides the sample collector wired into simulation runs and
// the summary statistics the experiment driver reports.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Series is an append-only sequence of recorded samples. It is written
// during a run and read after the run completes.
type Series struct {
	values []float64
}

// Add appends one sample.
func (s *Series) Add(v float64) { s.values = append(s.values, v) }

// Count returns the number of recorded samples.
func (s *Series) Count() int { return len(s.values) }

// Mean returns the sample mean, or NaN when no samples have been recorded.
// NaN keeps the collector total for callers that probe before a run has
// produced data; it is the caller's job to check Count if NaN is unwelcome.
func (s *Series) Mean() float64 {
	if len(s.values) == 0 {
		return math.NaN()
	}
	return stat.Mean(s.values, nil)
}

// Values returns a copy of the recorded samples in insertion order.
func (s *Series) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Summary is the aggregate the driver reports per sweep point: the grand
// mean of the trial means bracketed by the 5th and 95th percentiles (a 90%
// interval).
type Summary struct {
	Mean float64 `json:"mean"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Summarize computes a Summary over the given samples using linear
// percentile interpolation. An empty input yields an all-NaN summary.
func Summarize(samples []float64) Summary {
	if len(samples) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Low: nan, High: nan}
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	return Summary{
		Mean: stat.Mean(sorted, nil),
		Low:  stat.Quantile(0.05, stat.LinInterp, sorted, nil),
		High: stat.Quantile(0.95, stat.LinInterp, sorted, nil),
	}
}
