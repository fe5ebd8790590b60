package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

type TaskQueue interface {
	RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error)
	// DeleteTask removes a queued task by name. A task that no longer exists
	// is not an error.
	DeleteTask(ctx context.Context, taskName string) error
}
