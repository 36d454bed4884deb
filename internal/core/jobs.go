package core

import (
	"context"
)

// JobDispatcher defines the contract for a system that can accept and queue
// background jobs for asynchronous processing. This interface decouples the
// event source (the webhook handler) from the job execution mechanism.
type JobDispatcher interface {
	// Dispatch accepts a TriageEvent and queues it for processing. It returns
	// an error if the job cannot be queued, for example if the queue is full,
	// providing a mechanism for backpressure.
	Dispatch(ctx context.Context, event *TriageEvent) error
}

// Job represents a single, executable unit of work processed by the
// dispatcher. Each job is triggered by a TriageEvent.
type Job interface {
	// Run executes the job's logic for one event. A failure terminates only
	// that event's processing; it must never affect other events.
	Run(ctx context.Context, event *TriageEvent) error
}
