// Package search holds the list query shared between the prompt that edits
// it and the list engine that reads it.
package search

import (
	"context"
	"errors"
	"sync"
)

// ConfigurationError reports a component wired up incorrectly.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Msg
}

// ErrNotAttached is returned when no State was attached to the context or a
// nil *State is used.
var ErrNotAttached error = &ConfigurationError{Msg: "search state is not attached"}

// State is a query value holder with change notification.
type State struct {
	mu     sync.RWMutex
	query  string
	nextID int
	subs   map[int]func(string)
}

func NewState() *State {
	return &State{subs: make(map[int]func(string))}
}

// Query returns the current query.
func (s *State) Query() (string, error) {
	if s == nil {
		return "", ErrNotAttached
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query, nil
}

// SetQuery stores q and notifies subscribers when it changed.
func (s *State) SetQuery(q string) error {
	if s == nil {
		return ErrNotAttached
	}

	s.mu.Lock()
	if s.query == q {
		s.mu.Unlock()
		return nil
	}
	s.query = q
	subs := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(q)
	}
	return nil
}

// Subscribe registers fn for query changes. The returned func removes it.
func (s *State) Subscribe(fn func(query string)) (func(), error) {
	if s == nil {
		return nil, ErrNotAttached
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(string))
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}, nil
}

type ctxKey struct{}

// WithState attaches s to ctx.
func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the State attached with WithState.
func FromContext(ctx context.Context) (*State, error) {
	s, ok := ctx.Value(ctxKey{}).(*State)
	if !ok || s == nil {
		return nil, ErrNotAttached
	}
	return s, nil
}

// IsNotAttached reports whether err is ErrNotAttached.
func IsNotAttached(err error) bool {
	return errors.Is(err, ErrNotAttached)
}
