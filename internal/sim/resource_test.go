package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qsim/mg1/internal/stats"
)

func TestResourceImmediateAcquire(t *testing.T) {
	s := New("test", 1, nil)
	series := &stats.Series{}
	r := s.Resource(series)

	s.Process(func(p *Proc) {
		assert.Equal(t, 0, r.NumInSystem())
		r.Acquire(p)
		assert.Equal(t, 1, r.NumInSystem())
		p.Sleep(2.5)
		r.Release(p)
		assert.Equal(t, 0, r.NumInSystem())
	})
	s.Run(10)

	require.Equal(t, 1, series.Count())
	assert.Equal(t, []float64{2.5}, series.Values())
}

func TestResourceFIFOAndCapacityInvariant(t *testing.T) {
	s := New("test", 1, nil)
	series := &stats.Series{}
	r := s.Resource(series)

	// Three entities arriving at t=0, 1, 2 with service times 5, 2, 1.
	// The server is busy until t=5, so grants must follow arrival order:
	// holder changes at t=5 (second) and t=7 (third).
	arrivals := []float64{0, 1, 2}
	services := []float64{5, 2, 1}
	var grantOrder []int
	inService := 0

	for i := range arrivals {
		i := i
		s.Process(func(p *Proc) {
			p.Sleep(arrivals[i])
			r.Acquire(p)
			grantOrder = append(grantOrder, i)
			inService++
			assert.Equal(t, 1, inService, "capacity-1 resource granted twice")
			p.Sleep(services[i])
			inService--
			r.Release(p)
			assert.GreaterOrEqual(t, r.NumInSystem(), 0)
		})
	}
	s.Run(100)

	assert.Equal(t, []int{0, 1, 2}, grantOrder)
	// System times: 5-0, 7-1, 8-2.
	assert.Equal(t, []float64{5, 6, 6}, series.Values())
	assert.Equal(t, 0, r.NumInSystem())
}

func TestResourceOccupancyCountsQueuedAndInService(t *testing.T) {
	s := New("test", 1, nil)
	r := s.Resource(nil)

	for i := 0; i < 3; i++ {
		s.Process(func(p *Proc) {
			r.Acquire(p)
			p.Sleep(10)
			r.Release(p)
		})
	}
	observed := -1
	s.Process(func(p *Proc) {
		p.Sleep(1)
		observed = r.NumInSystem()
	})
	s.Run(5)

	// All three requested at t=0; one is in service and two are queued, and
	// the count reflects all of them.
	assert.Equal(t, 3, observed)
}

func TestResourceWithoutCollector(t *testing.T) {
	s := New("test", 1, nil)
	r := s.Resource(nil)
	done := false
	s.Process(func(p *Proc) {
		r.Acquire(p)
		p.Sleep(1)
		r.Release(p)
		done = true
	})
	s.Run(10)
	assert.True(t, done)
}
