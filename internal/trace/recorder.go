package trace

import (
	"sync"

	"decisionengine/internal/decision"
)

// Sink is the minimal interface ambient callers (CLI, ledger writer) depend
// on to observe traces as they are built. Record must be inert: it must not
// panic and must not return an error. Kernel code never depends on Sink;
// only the layers around the kernel observe it.
type Sink interface {
	Record(tr decision.Trace)
}

// NopSink discards every trace.
type NopSink struct{}

func (NopSink) Record(decision.Trace) {}

// SafeRecord records a trace and guarantees inertness even if the sink is
// buggy, swallowing any panic from a misbehaving implementation.
func SafeRecord(s Sink, tr decision.Trace) {
	if s == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	s.Record(tr)
}

// Recorder is a concurrency-safe in-memory collector of decision traces,
// used by ambient callers that want to review a batch of evaluations (e.g.
// before writing them to a snapshot store) without threading a slice
// through every call site.
type Recorder struct {
	mu     sync.Mutex
	traces []decision.Trace
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Record(tr decision.Trace) {
	if r == nil {
		return
	}
	defer func() {
		_ = recover()
	}()

	r.mu.Lock()
	r.traces = append(r.traces, tr)
	r.mu.Unlock()
}

// Snapshot returns a point-in-time copy of all recorded traces.
func (r *Recorder) Snapshot() []decision.Trace {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]decision.Trace, len(r.traces))
	copy(out, r.traces)
	return out
}
