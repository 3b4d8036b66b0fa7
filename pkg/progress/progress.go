// Package progress provides the cooperative progress-and-cancellation
// handle shared by every long-running core operation (node layout, edge
// layout, alignment merge, cycle detection).
//
// # Cooperative Cancellation
//
// The core has no internal goroutines and performs no blocking I/O: a
// caller cancels a running operation by cancelling the context.Context
// threaded through to a Monitor, and the operation observes it the next
// time it reaches a suspension point — a loop boundary over nodes, links,
// or alignment chains. This mirrors the teacher's Orderer/ContextOrderer
// split: a Monitor answers "should I stop" synchronously, with no channel
// select required by the caller.
//
// A *Monitor also accumulates progress as a simple step counter against a
// known total, so a CLI progress bar (or the API's render-status poll)
// can report percent-complete without the core importing a rendering
// library.
//
// # Usage
//
//	mon := progress.New(ctx, len(network.Nodes()))
//	for _, n := range sortedNodes {
//	    if mon.Cancelled() {
//	        return nil, errors.New(errors.ErrCodeCancelled, "node layout cancelled")
//	    }
//	    // ... process n ...
//	    mon.Step()
//	}
package progress

import (
	"context"
	"sync"
	"sync/atomic"
)

// Reporter receives progress updates from a running operation. Libraries
// never log progress directly; a caller registers a Reporter (a
// bubbletea program, a lipgloss-styled bar, or a no-op) to receive it.
type Reporter interface {
	// OnProgress is called after every Step, with the current count and
	// the total supplied to New.
	OnProgress(done, total int)
}

// NoopReporter discards all progress updates.
type NoopReporter struct{}

// OnProgress implements Reporter.
func (NoopReporter) OnProgress(int, int) {}

// Monitor is a cooperative cancellation-and-progress handle passed into
// long-running layout, merge, and cycle-detection operations. The zero
// value is not usable; construct with New.
type Monitor struct {
	ctx      context.Context
	total    int
	done     int64
	reporter Reporter
	mu       sync.Mutex
}

// New creates a Monitor bound to ctx, with the given total step count
// (used only for percent-complete reporting; pass 0 if unknown). Reports
// are discarded until SetReporter is called.
func New(ctx context.Context, total int) *Monitor {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Monitor{ctx: ctx, total: total, reporter: NoopReporter{}}
}

// SetReporter installs a Reporter to receive Step updates. Not safe to
// call concurrently with Step.
func (m *Monitor) SetReporter(r Reporter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r != nil {
		m.reporter = r
	}
}

// Cancelled reports whether the bound context has been cancelled. Call
// this at every suspension point — the top of an outer loop over nodes,
// links, or alignment chains — never inside a tight inner loop.
func (m *Monitor) Cancelled() bool {
	select {
	case <-m.ctx.Done():
		return true
	default:
		return false
	}
}

// Err returns the context's cancellation cause, or nil if still running.
func (m *Monitor) Err() error {
	return m.ctx.Err()
}

// Step records one unit of completed work and notifies the Reporter.
func (m *Monitor) Step() {
	done := atomic.AddInt64(&m.done, 1)
	m.mu.Lock()
	r := m.reporter
	total := m.total
	m.mu.Unlock()
	r.OnProgress(int(done), total)
}

// Done returns the number of steps completed so far.
func (m *Monitor) Done() int {
	return int(atomic.LoadInt64(&m.done))
}

// Total returns the total step count supplied to New.
func (m *Monitor) Total() int {
	return m.total
}

// Context returns the bound context, for operations that need to pass it
// to a further sub-call (e.g. the nested Default layout WorldBank runs).
func (m *Monitor) Context() context.Context {
	return m.ctx
}
