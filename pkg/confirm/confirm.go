// Package confirm tracks short lived yes/no confirmations. Each confirmation starts
// awaiting an answer and ends exactly once: confirmed, cancelled or timed out.
package confirm

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrUnknown is returned for a confirmation that does not exist or already ended.
	ErrUnknown = errors.New("confirmation is not pending")

	// ErrNotOwner is returned when someone other than the requester answers.
	ErrNotOwner = errors.New("confirmation belongs to another user")

	// ErrExists is returned when an id is already awaiting an answer.
	ErrExists = errors.New("confirmation already pending")
)

// State is the state of a confirmation.
type State int

const (
	StateAwaiting State = iota + 1
	StateConfirmed
	StateCancelled
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateAwaiting:
		return "awaiting"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	case StateTimedOut:
		return "timed_out"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Request is a confirmation and its final state.
type Request struct {
	// ID identifies the confirmation, normally the id of the interaction that asked for it.
	ID        string
	UserID    string
	ChannelID string
	State     State
	CreatedAt time.Time
}

type entry struct {
	req       Request
	timer     *time.Timer
	onTimeout func(Request)
}

// Registry holds the pending confirmations.
type Registry struct {
	mu      sync.Mutex
	timeout time.Duration
	pending map[string]*entry
}

// NewRegistry creates a registry whose confirmations time out after timeout.
func NewRegistry(timeout time.Duration) *Registry {
	return &Registry{
		timeout: timeout,
		pending: make(map[string]*entry),
	}
}

// Timeout returns how long a confirmation waits for an answer.
func (r *Registry) Timeout() time.Duration {
	return r.timeout
}

// Begin starts a confirmation. onTimeout runs on its own goroutine if nobody answers in time.
func (r *Registry) Begin(id, userID, channelID string, onTimeout func(Request)) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pending[id]; ok {
		return Request{}, fmt.Errorf("%s: %w", id, ErrExists)
	}

	e := &entry{
		req: Request{
			ID:        id,
			UserID:    userID,
			ChannelID: channelID,
			State:     StateAwaiting,
			CreatedAt: time.Now(),
		},
		onTimeout: onTimeout,
	}
	e.timer = time.AfterFunc(r.timeout, func() { r.expire(id, e) })
	r.pending[id] = e
	return e.req, nil
}

// Confirm answers yes for userID.
func (r *Registry) Confirm(id, userID string) (Request, error) {
	return r.resolve(id, userID, StateConfirmed)
}

// Cancel answers no for userID.
func (r *Registry) Cancel(id, userID string) (Request, error) {
	return r.resolve(id, userID, StateCancelled)
}

func (r *Registry) resolve(id, userID string, to State) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.pending[id]
	if !ok {
		return Request{}, fmt.Errorf("%s: %w", id, ErrUnknown)
	}
	if e.req.UserID != userID {
		return e.req, fmt.Errorf("%s: %w", id, ErrNotOwner)
	}

	e.timer.Stop()
	delete(r.pending, id)
	e.req.State = to
	return e.req, nil
}

func (r *Registry) expire(id string, e *entry) {
	r.mu.Lock()
	current, ok := r.pending[id]
	if !ok || current != e {
		r.mu.Unlock()
		return
	}
	delete(r.pending, id)
	e.req.State = StateTimedOut
	req := e.req
	r.mu.Unlock()

	if e.onTimeout != nil {
		e.onTimeout(req)
	}
}

// Pending returns the state of a confirmation that is still awaiting an answer.
func (r *Registry) Pending(id string) (Request, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.pending[id]
	if !ok {
		return Request{}, false
	}
	return e.req, true
}

// Len returns the number of pending confirmations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Stop cancels every pending confirmation without running its timeout.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.pending {
		e.timer.Stop()
		delete(r.pending, id)
	}
}
