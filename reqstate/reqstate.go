// Package reqstate tracks the loading, data and error state of a backend call so callers
// do not each keep their own flags.
package reqstate

import (
	"context"
	"sync"
)

// Result is the state of one call. Loading is true only while the call runs.
type Result[T any] struct {
	Loading bool
	Data    T
	Err     error
}

// OK reports whether the call finished without error.
func (r Result[T]) OK() bool {
	return !r.Loading && r.Err == nil
}

// Do runs fn and captures its outcome.
func Do[T any](ctx context.Context, fn func(context.Context) (T, error)) Result[T] {
	data, err := fn(ctx)
	if err != nil {
		return Result[T]{Err: err}
	}
	return Result[T]{Data: data}
}

// Tracker holds the latest Result of a repeatable call. Concurrent Run calls are allowed;
// the result of the most recently started run wins.
type Tracker[T any] struct {
	mu     sync.RWMutex
	result Result[T]
	runID  uint64
}

// Run marks the tracker as loading, runs fn and stores its outcome. The previous Data is kept
// while loading so callers can keep showing it.
func (t *Tracker[T]) Run(ctx context.Context, fn func(context.Context) (T, error)) Result[T] {
	t.mu.Lock()
	t.runID++
	id := t.runID
	t.result.Loading = true
	t.result.Err = nil
	t.mu.Unlock()

	data, err := fn(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	res := Result[T]{Data: data, Err: err}
	if err != nil {
		res.Data = t.result.Data
	}
	if id == t.runID {
		t.result = res
	}
	return res
}

func (t *Tracker[T]) Result() Result[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.result
}

// Reset forgets data and errors. A run still in flight will not overwrite the reset state.
func (t *Tracker[T]) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runID++
	t.result = Result[T]{}
}
