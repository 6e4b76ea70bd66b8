package queueing

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qsim/mg1/internal/sim"
	"github.com/qsim/mg1/internal/stats"
)

// transition is one logged arrival or departure event.
type transition struct {
	msg  string
	t    float64
	n    int64
	next int64
}

// captureHandler records occupancy transitions for assertions.
type captureHandler struct {
	mu      sync.Mutex
	records []transition
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler       { return h }
func (h *captureHandler) WithGroup(string) slog.Handler            { return h }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	tr := transition{msg: r.Message}
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "t":
			tr.t = a.Value.Float64()
		case "num_in_system":
			tr.n = a.Value.Int64()
		case "next":
			tr.next = a.Value.Int64()
		}
		return true
	})
	h.mu.Lock()
	h.records = append(h.records, tr)
	h.mu.Unlock()
	return nil
}

func demoParams() Params {
	return Params{MeanInterarrival: 1.2, ServiceLow: 0, ServiceHigh: 0.8}
}

func runDemo(t *testing.T, seed uint64, logger *slog.Logger) *stats.Series {
	t.Helper()
	s := sim.New("mg1", seed, logger)
	series := &stats.Series{}
	_, err := NewMG1(s, demoParams(), series)
	require.NoError(t, err)
	s.Run(10)
	return series
}

func TestNewMG1RejectsInvalidParams(t *testing.T) {
	s := sim.New("mg1", 1, nil)
	_, err := NewMG1(s, Params{MeanInterarrival: 0, ServiceLow: 0, ServiceHigh: 1}, nil)
	assert.Error(t, err)

	s = sim.New("mg1", 1, nil)
	_, err = NewMG1(s, Params{MeanInterarrival: 1.2, ServiceLow: 2, ServiceHigh: 1}, nil)
	assert.Error(t, err)
}

func TestDemoRunIsDeterministic(t *testing.T) {
	first := runDemo(t, 13579, nil)
	second := runDemo(t, 13579, nil)

	require.Greater(t, first.Count(), 0)
	assert.Equal(t, first.Values(), second.Values())

	other := runDemo(t, 24680, nil)
	assert.NotEqual(t, first.Values(), other.Values())
}

func TestSystemTimesAreNonNegative(t *testing.T) {
	series := runDemo(t, 13579, nil)
	for _, v := range series.Values() {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestOccupancyTransitions(t *testing.T) {
	h := &captureHandler{}
	runDemo(t, 13579, slog.New(h))
	require.NotEmpty(t, h.records)

	count := int64(0)
	last := 0.0
	for _, tr := range h.records {
		assert.GreaterOrEqual(t, tr.t, last, "timestamps must not decrease")
		last = tr.t

		assert.Equal(t, count, tr.n, "logged occupancy must match the live count")
		switch tr.msg {
		case "customer arrives":
			assert.Equal(t, tr.n+1, tr.next)
			count++
		case "customer departs":
			assert.Equal(t, tr.n-1, tr.next)
			count--
		default:
			t.Fatalf("unexpected log message %q", tr.msg)
		}
		assert.GreaterOrEqual(t, count, int64(0))
	}
}

func TestEventLogIsReproducible(t *testing.T) {
	h1 := &captureHandler{}
	runDemo(t, 13579, slog.New(h1))
	h2 := &captureHandler{}
	runDemo(t, 13579, slog.New(h2))

	assert.Equal(t, h1.records, h2.records)
}

func TestDegenerateServiceBounds(t *testing.T) {
	// a == b == 0 gives zero service time: every customer departs the
	// instant it reaches the server, so system times are all zero.
	s := sim.New("mg1", 13579, nil)
	series := &stats.Series{}
	q, err := NewMG1(s, Params{MeanInterarrival: 1.2, ServiceLow: 0, ServiceHigh: 0}, series)
	require.NoError(t, err)
	s.Run(10)

	require.Greater(t, series.Count(), 0)
	for _, v := range series.Values() {
		assert.Equal(t, 0.0, v)
	}
	// Zero service time means nobody lingers in the system.
	assert.Equal(t, 0, q.Server().NumInSystem())
}
