// Package jobs defines the background triage work triggered by webhook events.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shweta-bavishi/github-auto-review-bot/internal/core"
)

// dispatcher implements core.JobDispatcher and manages a pool of worker
// goroutines processing triage events. One event's failure is logged by the
// worker and never affects other events or the process.
type dispatcher struct {
	triageJob  core.Job
	jobQueue   chan *core.TriageEvent
	maxWorkers int
	wg         sync.WaitGroup
	logger     *slog.Logger
}

// NewDispatcher initializes a dispatcher with a worker pool.
// If maxWorkers is 0 or negative, it defaults to 1.
func NewDispatcher(triageJob core.Job, maxWorkers int, logger *slog.Logger) core.JobDispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	d := &dispatcher{
		triageJob:  triageJob,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan *core.TriageEvent, 100),
		logger:     logger,
	}
	d.startWorkers()
	return d
}

func (d *dispatcher) startWorkers() {
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.startWorker(i)
	}
}

// startWorker processes events from the queue until it's closed.
func (d *dispatcher) startWorker(workerID int) {
	defer d.wg.Done()
	d.logger.Info("starting triage worker", "id", workerID)

	for event := range d.jobQueue {
		d.processEvent(workerID, event)
	}

	d.logger.Info("shutting down triage worker", "id", workerID)
}

// processEvent runs the triage job for one event. Errors terminate only this
// event's processing.
func (d *dispatcher) processEvent(workerID int, event *core.TriageEvent) {
	d.logger.Info("worker processing event",
		"worker_id", workerID,
		"kind", event.Kind,
		"repo", event.RepoFullName,
		"pr", event.PRNumber,
	)

	if err := d.triageJob.Run(context.Background(), event); err != nil {
		d.logger.Error("triage job failed",
			"kind", event.Kind,
			"repo", event.RepoFullName,
			"pr", event.PRNumber,
			"error", err,
		)
	}
}

// Dispatch queues a triage event for processing by a worker.
func (d *dispatcher) Dispatch(_ context.Context, event *core.TriageEvent) error {
	d.logger.Info("queuing triage event", "kind", event.Kind, "repo", event.RepoFullName, "pr", event.PRNumber)

	select {
	case d.jobQueue <- event:
		return nil
	default:
		return fmt.Errorf("job queue is full, cannot accept new triage event")
	}
}

// Stop gracefully shuts down the dispatcher, waiting for all workers to finish.
func (d *dispatcher) Stop() {
	d.logger.Info("stopping dispatcher and waiting for events to finish")
	close(d.jobQueue)
	d.wg.Wait()
	d.logger.Info("all triage events have finished")
}
