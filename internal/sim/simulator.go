// Package sim provides a minimal discrete-event simulation kernel: a virtual
// clock, cooperatively scheduled processes, and a capacity-1 resource with
// FIFO waiters. Processes run on goroutines but exactly one is active at a
// time; all model state mutation happens between suspension points, so client
// code needs no locking.
package sim

import (
	"container/heap"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/exp/rand"
)

// event is a scheduled wakeup for a parked process.
type event struct {
	at  float64
	seq uint64 // insertion order; ties at the same timestamp fire FIFO
	p   *Proc
}

// eventHeap is a min-heap ordered by (at, seq).
type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)        { *h = append(*h, x.(*event)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return ev
}

// Simulator owns a virtual clock, an event queue, and a root random source.
// Create one per run; simulators are not reusable after Run returns and must
// not be shared across trials.
type Simulator struct {
	name   string
	now    float64
	seq    uint64
	events eventHeap
	procs  []*Proc
	parked chan struct{}
	rng    *rand.Rand
	logger *slog.Logger
}

// New creates a simulator whose root random source is seeded with seed.
// The logger is used by model code for simulated-time diagnostics; pass nil
// to discard all output.
func New(name string, seed uint64, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Simulator{
		name:   name,
		parked: make(chan struct{}),
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger.With("sim", name),
	}
}

// Now returns the current simulated time. It never decreases.
func (s *Simulator) Now() float64 { return s.now }

// Logger returns the simulator's logger.
func (s *Simulator) Logger() *slog.Logger { return s.logger }

// RandSeed draws a 32-bit seed from the simulator's root source. Variate
// streams owned by a model are seeded this way so that trials with different
// root seeds produce uncorrelated draws.
func (s *Simulator) RandSeed() uint64 { return uint64(s.rng.Uint32()) }

// Process spawns a cooperative process. The process starts at the current
// simulated time, after any events already scheduled for that time. It may be
// called before Run or from inside a running process.
func (s *Simulator) Process(fn func(*Proc)) {
	p := &Proc{s: s, resume: make(chan struct{})}
	s.procs = append(s.procs, p)
	s.schedule(s.now, p)
	go func() {
		defer func() {
			p.done = true
			if r := recover(); r != nil && r != errStopped {
				panic(r)
			}
			s.parked <- struct{}{}
		}()
		p.block()
		fn(p)
	}()
}

// Run processes events in timestamp order until the queue drains or the next
// event lies beyond until. The clock finishes exactly at until. Processes
// still suspended at that point are unwound; the simulator cannot be reused.
func (s *Simulator) Run(until float64) {
	if until < s.now {
		panic(fmt.Sprintf("sim: Run(%g) before current time %g", until, s.now))
	}
	for len(s.events) > 0 {
		ev := s.events[0]
		if ev.at > until {
			break
		}
		heap.Pop(&s.events)
		s.now = ev.at
		s.step(ev.p)
	}
	s.now = until
	s.stopAll()
}

// step resumes one process and waits for it to suspend or finish.
func (s *Simulator) step(p *Proc) {
	p.resume <- struct{}{}
	<-s.parked
}

func (s *Simulator) schedule(at float64, p *Proc) {
	s.seq++
	heap.Push(&s.events, &event{at: at, seq: s.seq, p: p})
}

// stopAll unwinds every process that has not finished, in creation order, so
// no goroutine outlives the run.
func (s *Simulator) stopAll() {
	for _, p := range s.procs {
		if p.done {
			continue
		}
		p.stopped = true
		s.step(p)
	}
}

// errStopped unwinds a process goroutine when the run ends while it is
// suspended. It never escapes the kernel.
var errStopped = fmt.Errorf("sim: run stopped")

// Proc is the handle passed to a process function. It is only valid on the
// goroutine the kernel started for that function.
type Proc struct {
	s       *Simulator
	resume  chan struct{}
	stopped bool
	done    bool
}

// Now returns the current simulated time.
func (p *Proc) Now() float64 { return p.s.now }

// Sleep suspends the process for d simulated time units. Sleep(0) yields
// through the event queue, preserving FIFO order among same-time events.
// Negative durations are a programming error.
func (p *Proc) Sleep(d float64) {
	if d < 0 {
		panic(fmt.Sprintf("sim: Sleep(%g): negative duration", d))
	}
	p.s.schedule(p.s.now+d, p)
	p.park()
}

// park hands control back to the scheduler and blocks until resumed.
// Callers must have arranged a wakeup (a scheduled event or a resource
// grant) beforehand.
func (p *Proc) park() {
	p.s.parked <- struct{}{}
	p.block()
}

func (p *Proc) block() {
	<-p.resume
	if p.stopped {
		panic(errStopped)
	}
}

// Discard is a logger that drops everything. Convenient for tests and for
// sweep trials where per-customer logging would swamp the run.
var Discard = slog.New(slog.NewTextHandler(io.Discard, nil))
