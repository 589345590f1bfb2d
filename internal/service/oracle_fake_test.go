package service

import (
	"context"
	"sync"

	"github.com/spec-kit/ticket-intel/internal/events"
	"github.com/spec-kit/ticket-intel/internal/oracle"
)

type oracleResult struct {
	text string
	err  error
}

// fakeOracle is a scripted oracle.Client. Responses come from respond when
// set, otherwise from the queue, otherwise from fallback. gate, when set,
// runs before each response so tests can hold calls in flight.
type fakeOracle struct {
	mu       sync.Mutex
	calls    int
	respond  func(p oracle.Prompt) (string, error)
	queue    []oracleResult
	fallback oracleResult
	gate     func(call int)
}

func (f *fakeOracle) Complete(_ context.Context, p oracle.Prompt) (string, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	respond := f.respond
	gate := f.gate
	var res oracleResult
	if respond == nil {
		if len(f.queue) > 0 {
			res = f.queue[0]
			f.queue = f.queue[1:]
		} else {
			res = f.fallback
		}
	}
	f.mu.Unlock()

	if gate != nil {
		gate(call)
	}
	if respond != nil {
		return respond(p)
	}
	return res.text, res.err
}

func (f *fakeOracle) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// recordingDispatcher collects published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(t events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.Event, 0)
	for _, e := range d.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
