package sim

import "github.com/qsim/mg1/internal/stats"

// waiter is a queued acquire request.
type waiter struct {
	p  *Proc
	at float64 // simulated time the request was made
}

// Resource is a capacity-1 shared resource with FIFO waiters and a counted
// occupancy. The occupancy counts every entity present, queued or in
// service: it increments when an acquire request is made and decrements on
// release. If a collector is wired, the resource records each holder's
// system time (release time minus acquire-request time) on release.
//
// All methods must be called from process goroutines; the cooperative
// scheduler serializes them, so the resource needs no locking.
type Resource struct {
	sim     *Simulator
	collect *stats.Series

	count     int
	holder    *Proc
	holdSince float64
	waiters   []waiter
}

// Resource constructs a capacity-1 resource owned by this simulator. The
// collector may be nil.
func (s *Simulator) Resource(collect *stats.Series) *Resource {
	return &Resource{sim: s, collect: collect}
}

// Acquire obtains the resource, suspending the caller in FIFO order if it is
// held. The occupancy count reflects the request as soon as it is made.
func (r *Resource) Acquire(p *Proc) {
	r.count++
	if r.holder == nil {
		r.holder = p
		r.holdSince = r.sim.now
		return
	}
	r.waiters = append(r.waiters, waiter{p: p, at: r.sim.now})
	p.park()
}

// Release relinquishes the resource and hands it to the next FIFO waiter, if
// any. The waiter resumes through the event queue at the current simulated
// time, after events already scheduled for that time. Releasing a resource
// the caller does not hold is a programming error.
func (r *Resource) Release(p *Proc) {
	if r.holder != p {
		panic("sim: Release by a process that does not hold the resource")
	}
	r.count--
	if r.collect != nil {
		r.collect.Add(r.sim.now - r.holdSince)
	}
	if len(r.waiters) == 0 {
		r.holder = nil
		return
	}
	next := r.waiters[0]
	r.waiters = r.waiters[1:]
	r.holder = next.p
	r.holdSince = next.at
	r.sim.schedule(r.sim.now, next.p)
}

// NumInSystem reports how many entities currently hold or wait for the
// resource. It is never negative.
func (r *Resource) NumInSystem() int { return r.count }
