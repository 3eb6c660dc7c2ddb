package app

import (
	"context"
	"sync"

	"trashpiles/internal/domain"
)

const maxHistory = 50

// Dispatcher routes commands to the handler registered for their family and
// owns the authoritative state. Dispatch is serialized: one command runs at a
// time, its replacement snapshot is installed, and its events fan out to
// subscribers in emission order before the next command starts.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[Family]Handler
	state    *domain.GameState
	subs     []func(Event)
	history  []*domain.GameState

	queueMu sync.Mutex
	queue   []Command
	wake    *sync.Cond
}

func NewDispatcher(initial *domain.GameState, handlers ...Handler) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[Family]Handler, len(handlers)),
		state:    initial,
	}
	for _, h := range handlers {
		d.handlers[h.Family()] = h
	}
	d.wake = sync.NewCond(&d.queueMu)
	return d
}

// Subscribe registers a callback invoked for every event, in order. Not safe
// to call concurrently with Dispatch.
func (d *Dispatcher) Subscribe(fn func(Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, fn)
}

// State returns the current authoritative snapshot. Callers must not mutate
// it; handlers always clone before changing anything.
func (d *Dispatcher) State() *domain.GameState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// History returns recent snapshots, oldest first, capped at the last 50.
func (d *Dispatcher) History() []*domain.GameState {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*domain.GameState, len(d.history))
	copy(out, d.history)
	return out
}

// Dispatch runs one command synchronously. An error is returned only for
// wiring faults (unroutable family, handler mismatch); gameplay rejections
// surface as InvalidMove events with the state unchanged.
func (d *Dispatcher) Dispatch(cmd Command) ([]Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	h, ok := d.handlers[cmd.Family()]
	if !ok {
		return nil, ErrUnroutable
	}

	next, events, err := h.Handle(d.state, cmd)
	if err != nil {
		return nil, err
	}
	if next != d.state {
		d.history = append(d.history, d.state)
		if len(d.history) > maxHistory {
			d.history = d.history[len(d.history)-maxHistory:]
		}
		d.state = next
	}
	for _, ev := range events {
		for _, fn := range d.subs {
			fn(ev)
		}
	}
	return events, nil
}

// Submit enqueues a command for the Run loop. The queue is unbounded, so
// Submit never blocks the caller.
func (d *Dispatcher) Submit(cmd Command) {
	d.queueMu.Lock()
	d.queue = append(d.queue, cmd)
	d.queueMu.Unlock()
	d.wake.Signal()
}

// Run drains submitted commands until the context is cancelled. Wiring
// faults are reported through errFn when it is non-nil.
func (d *Dispatcher) Run(ctx context.Context, errFn func(Command, error)) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		d.wake.Broadcast()
	}()

	for {
		d.queueMu.Lock()
		for len(d.queue) == 0 && ctx.Err() == nil {
			d.wake.Wait()
		}
		if ctx.Err() != nil {
			d.queueMu.Unlock()
			return
		}
		cmd := d.queue[0]
		d.queue = d.queue[1:]
		d.queueMu.Unlock()

		if _, err := d.Dispatch(cmd); err != nil && errFn != nil {
			errFn(cmd, err)
		}
	}
}
