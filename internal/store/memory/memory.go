package memory

import (
	"sync"
	"time"

	"crudkit/internal/model"
)

// Store keeps records of one entity type in insertion order. Reads share the
// lock; mutations hold it exclusively.
type Store[T model.Entity[T]] struct {
	mu       sync.RWMutex
	resource string
	records  []T
	index    map[string]int
	now      func() time.Time
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func New[T model.Entity[T]](resource string, opts ...Option) *Store[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{
		resource: resource,
		index:    make(map[string]int),
		now:      o.now,
	}
}

func (s *Store[T]) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
