// Package queueing implements the M/G/1 model: Poisson arrivals into a
// single server whose service times follow a truncated normal distribution.
package queueing

import (
	"fmt"
	"log/slog"

	"github.com/qsim/mg1/internal/dist"
	"github.com/qsim/mg1/internal/sim"
	"github.com/qsim/mg1/internal/stats"
)

// Params configures one M/G/1 queue.
type Params struct {
	// MeanInterarrival is the mean of the exponential inter-arrival law.
	MeanInterarrival float64
	// ServiceLow and ServiceHigh bound the truncated-normal service times.
	ServiceLow  float64
	ServiceHigh float64
}

// MG1 is a single-server queue bound to one simulator. Constructing it
// registers the arrival-generator process; customers are spawned as the run
// proceeds. If a collector is given, the server records each customer's
// system time (arrival to departure) into it.
type MG1 struct {
	sim          *sim.Simulator
	interarrival dist.Stream
	service      dist.Stream
	server       *sim.Resource
	logger       *slog.Logger
}

// NewMG1 builds the queue on the given simulator. Both variate streams are
// seeded from the simulator's root source, so a fixed simulator seed fully
// determines the run. The collector may be nil.
func NewMG1(s *sim.Simulator, p Params, collect *stats.Series) (*MG1, error) {
	interarrival, err := dist.NewExponential(p.MeanInterarrival, s.RandSeed())
	if err != nil {
		return nil, fmt.Errorf("mg1: %w", err)
	}
	service, err := dist.NewTruncNormal(p.ServiceLow, p.ServiceHigh, s.RandSeed())
	if err != nil {
		return nil, fmt.Errorf("mg1: %w", err)
	}
	q := &MG1{
		sim:          s,
		interarrival: interarrival,
		service:      service,
		server:       s.Resource(collect),
		logger:       s.Logger(),
	}
	s.Process(q.genArrivals)
	return q, nil
}

// Server exposes the underlying resource, mainly for occupancy checks in
// tests.
func (q *MG1) Server() *sim.Resource { return q.server }

// genArrivals sleeps for a drawn inter-arrival time, spawns one customer,
// and loops. It never waits for customers to finish; its lifetime is bounded
// only by the run's stop time.
func (q *MG1) genArrivals(p *sim.Proc) {
	for {
		p.Sleep(q.interarrival.Next())
		q.sim.Process(q.customer)
	}
}

// customer acquires the server, holds it for a drawn service time, and
// releases it. The resource records the customer's system time on release.
func (q *MG1) customer(p *sim.Proc) {
	n := q.server.NumInSystem()
	q.logger.Info("customer arrives", "t", p.Now(), "num_in_system", n, "next", n+1)
	q.server.Acquire(p)
	p.Sleep(q.service.Next())
	n = q.server.NumInSystem()
	q.logger.Info("customer departs", "t", p.Now(), "num_in_system", n, "next", n-1)
	q.server.Release(p)
}
