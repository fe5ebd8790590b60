package domain

import "context"

//go:generate mockgen -source=item_repository.go -destination=item_repository_mock.go -package=domain

type TaskRepository interface {
	SaveTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, userID, id string) (*Task, error)
	ListTasks(ctx context.Context, userID string) ([]*Task, error)
	DeleteTask(ctx context.Context, userID, id string) error
}

type ReminderRepository interface {
	SaveReminder(ctx context.Context, reminder *Reminder) error
	GetReminder(ctx context.Context, userID, id string) (*Reminder, error)
	ListReminders(ctx context.Context, userID string) ([]*Reminder, error)
	DeleteReminder(ctx context.Context, userID, id string) error
}

type EventRepository interface {
	SaveEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, userID, id string) (*Event, error)
	ListEvents(ctx context.Context, userID string) ([]*Event, error)
	DeleteEvent(ctx context.Context, userID, id string) error
}

// LabelRepository stores the label palette a user picks event labels from.
type LabelRepository interface {
	GetLabels(ctx context.Context, userID string) ([]Label, error)
	SaveLabels(ctx context.Context, userID string, labels []Label) error
}
