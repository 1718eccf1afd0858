// Package flow models each remote fetch as an explicit state machine with
// cancellation tokens. Every flow (survey submission, ambient risk, overlay,
// explanation) owns one Machine; starting a new request supersedes the
// in-flight one, and a superseded response is never committed. This makes
// the stale-response race a first-class, testable transition instead of an
// incidental property of handler scheduling.
package flow

import (
	"context"
	"sync"
)

// State of a fetch flow.
type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Token identifies one request generation. A token taken at Begin becomes
// stale as soon as a newer Begin runs; Complete with a stale token is a
// no-op on machine state.
type Token struct {
	gen uint64
	ctx context.Context
}

// Context returns the request-scoped context derived at Begin. It is
// cancelled when a newer request supersedes this one.
func (t Token) Context() context.Context {
	return t.ctx
}

// Machine tracks one fetch flow. The zero value is not usable; create with
// NewMachine.
type Machine[T any] struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State
	result T
	err    error
}

// NewMachine returns a machine in the idle state.
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{state: StateIdle}
}

// Begin starts a new request generation, cancelling any in-flight one, and
// transitions the machine to loading. The returned token must be passed to
// Complete together with the call's outcome.
func (m *Machine[T]) Begin(ctx context.Context) Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
	m.gen++
	cctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.state = StateLoading
	return Token{gen: m.gen, ctx: cctx}
}

// Complete commits a response for the given token. It reports false — and
// leaves machine state untouched — when the token has been superseded by a
// newer Begin; only the currently relevant generation ever commits.
func (m *Machine[T]) Complete(t Token, result T, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.gen != m.gen {
		return false
	}
	if err != nil {
		m.state = StateFailed
		m.err = err
		return true
	}
	m.state = StateSucceeded
	m.result = result
	m.err = nil
	return true
}

// Snapshot returns the machine's current state, last committed result and
// last committed error.
func (m *Machine[T]) Snapshot() (State, T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.result, m.err
}
