package notification

import (
	"context"
	"fmt"

	"agendly/models"
	"agendly/services/tasks"

	"github.com/hibiken/asynq"
)

// Dispatcher hands lifecycle events to the notification pipeline. Dispatch is
// fire-and-forget from the booking engine's point of view: the engine logs a
// failure and moves on, it never blocks on or rolls back for delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload models.NotificationPayload) error
}

// AsynqDispatcher enqueues events onto the Redis-backed task queue; a worker
// drains them outside the request path.
type AsynqDispatcher struct {
	Client *asynq.Client
}

func NewAsynqDispatcher(client *asynq.Client) (*AsynqDispatcher, error) {
	if client == nil {
		return nil, fmt.Errorf("notification dispatcher initialization error: asynq client is nil")
	}
	return &AsynqDispatcher{Client: client}, nil
}

func (d *AsynqDispatcher) Dispatch(ctx context.Context, payload models.NotificationPayload) error {
	task, err := tasks.NewAppointmentEventTask(payload)
	if err != nil {
		return fmt.Errorf("building appointment event task: %w", err)
	}
	if _, err := d.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueueing appointment event: %w", err)
	}
	return nil
}
