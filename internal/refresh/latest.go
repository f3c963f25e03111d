package refresh

import (
	"context"
	"errors"
	"sync"
)

var ErrSuperseded = errors.New("superseded by a newer load")

// Latest keeps the result of the most recent Load. Starting a Load cancels
// the one before it, and a load that finishes after being superseded never
// replaces the stored value.
type Latest[T any] struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	value  T
	loaded bool
}

func (l *Latest[T]) Load(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.seq++
	mine := l.seq
	l.cancel = cancel
	l.mu.Unlock()

	v, err := fn(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	cancel()
	if mine != l.seq {
		return zero, ErrSuperseded
	}
	l.cancel = nil
	if err != nil {
		return zero, err
	}
	l.value = v
	l.loaded = true
	return v, nil
}

// Value returns the stored result and whether any load has succeeded.
func (l *Latest[T]) Value() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.loaded
}

// Set replaces the stored value without loading, e.g. after a mutation the
// backend already confirmed.
func (l *Latest[T]) Set(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value = v
	l.loaded = true
}
