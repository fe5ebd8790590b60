package deadline

import (
	"context"
	"time"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

// EventNotifier keeps queued event notifications in step with stored events.
type EventNotifier interface {
	Schedule(ctx context.Context, previous, event *domain.Event, now time.Time) error
	Cancel(ctx context.Context, event *domain.Event) error
}

// Completion describes when a completed task was finished relative to its
// due date.
type Completion struct {
	Result  domain.DurationResult
	Early   bool
	Message string
}

type TaskDeadline struct {
	Task *domain.Task
	// Remaining is set for open tasks.
	Remaining *domain.DurationResult
	// Completion is set for completed tasks with a completion time.
	Completion *Completion
	Due        string
}

type ReminderDeadline struct {
	Reminder  *domain.Reminder
	Remaining domain.DurationResult
	Due       string
}

type EventDeadline struct {
	Event      *domain.Event
	Starts     domain.DurationResult
	Ends       domain.DurationResult
	InProgress bool
	Ended      bool
	StartsAt   string
	EndsAt     string
}
