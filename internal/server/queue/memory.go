package queue

import (
	"context"
	"sync"
)

// MemoryQueue collects payloads in memory. Used in tests and as a stand-in
// when no broker is configured.
type MemoryQueue struct {
	mu   sync.Mutex
	jobs []any

	// FailWith, when set, makes Enqueue return this error.
	FailWith error
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (q *MemoryQueue) Enqueue(_ context.Context, payload any) error {
	if q.FailWith != nil {
		return q.FailWith
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, payload)
	return nil
}

// Jobs returns a snapshot of the enqueued payloads.
func (q *MemoryQueue) Jobs() []any {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]any, len(q.jobs))
	copy(out, q.jobs)
	return out
}
