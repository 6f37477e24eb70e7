// Package queue provides the fire-and-forget handoff to background
// consumers (thumbnail generation, welcome mail). Delivery is at-most-once
// from this side: the core never awaits an acknowledgment and never retries.
package queue

import "context"

// Queue accepts job payloads for an external consumer.
type Queue interface {
	Enqueue(ctx context.Context, payload any) error
}
