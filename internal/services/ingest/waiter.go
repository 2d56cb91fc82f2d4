package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/liber/internal/interfaces"
	"github.com/ternarybob/liber/internal/models"
)

// PollStatus is the outcome of a single poll step.
type PollStatus int

const (
	// StatusPending means the operation has not reached a terminal state.
	StatusPending PollStatus = iota
	// StatusDone means the operation completed successfully.
	StatusDone
	// StatusFailed means the operation reached a terminal failure state.
	StatusFailed
)

// SleepFunc pauses between polls. The default implementation sleeps on a
// timer and aborts early when the context is cancelled; tests inject a fake
// to avoid wall-clock delay.
type SleepFunc func(ctx context.Context, d time.Duration) error

// OperationWaiter blocks until an asynchronous import operation reaches a
// terminal state, refreshing the handle at a fixed interval. It imposes no
// timeout of its own; callers bound the wait with a context deadline when one
// is required. A fixed interval (no backoff) is acceptable because imports
// are low-frequency batch work, not a hot path.
type OperationWaiter struct {
	svc      interfaces.RetrievalService
	logger   arbor.ILogger
	interval time.Duration
	sleep    SleepFunc
}

// NewOperationWaiter creates a waiter polling at the given interval.
func NewOperationWaiter(svc interfaces.RetrievalService, interval time.Duration, logger arbor.ILogger) *OperationWaiter {
	return &OperationWaiter{
		svc:      svc,
		logger:   logger,
		interval: interval,
		sleep:    sleepWithContext,
	}
}

// Poll refreshes the operation once and classifies its state. A terminal
// operation whose failure state is set yields StatusFailed together with the
// error to surface; terminal is never silently treated as success.
func (w *OperationWaiter) Poll(ctx context.Context, op *models.ImportOperation) (PollStatus, *models.ImportOperation, error) {
	refreshed, err := w.svc.RefreshOperation(ctx, op)
	if err != nil {
		return StatusPending, op, fmt.Errorf("refresh operation %s: %w", op.Name, err)
	}

	if !refreshed.Done {
		return StatusPending, refreshed, nil
	}
	if refreshed.Failed {
		return StatusFailed, refreshed, terminalFailure(refreshed)
	}
	return StatusDone, refreshed, nil
}

// Wait blocks until op is terminal, sleeping the configured interval between
// polls. It returns the terminal operation, or an error if the operation
// failed, a refresh failed, or the context was cancelled.
func (w *OperationWaiter) Wait(ctx context.Context, op *models.ImportOperation) (*models.ImportOperation, error) {
	// Already-terminal handles are classified without a refresh
	if op.Done {
		if op.Failed {
			return op, terminalFailure(op)
		}
		return op, nil
	}

	for {
		if err := w.sleep(ctx, w.interval); err != nil {
			return op, fmt.Errorf("wait for operation %s: %w", op.Name, err)
		}

		status, refreshed, err := w.Poll(ctx, op)
		if err != nil {
			return refreshed, err
		}
		op = refreshed

		switch status {
		case StatusDone:
			return op, nil
		case StatusPending:
			w.logger.Debug().Str("operation", op.Name).Msg("Import operation still running")
		}
	}
}

func terminalFailure(op *models.ImportOperation) error {
	msg := op.FailureMessage
	if msg == "" {
		msg = "operation reported failure without detail"
	}
	return fmt.Errorf("import operation %s failed: %s: %w", op.Name, msg, models.ErrTransient)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
