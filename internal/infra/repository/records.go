package repository

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

// Documents store instants as {seconds, nanoseconds} pairs, the same shape
// the mobile and web clients write.

type taskRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	DueDate     domain.Timestamp  `json:"dueDate"`
	IsCompleted bool              `json:"isCompleted"`
	CompletedAt *domain.Timestamp `json:"completedAt"`
	CreatedAt   domain.Timestamp  `json:"createdAt"`
	UpdatedAt   domain.Timestamp  `json:"updatedAt"`
}

type reminderRecord struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Complete    domain.Timestamp `json:"complete"`
	AllDay      bool             `json:"allDay"`
	CreatedAt   domain.Timestamp `json:"createdAt"`
	UpdatedAt   domain.Timestamp `json:"updatedAt"`
}

type eventTimeRecord struct {
	Start domain.Timestamp `json:"start"`
	End   domain.Timestamp `json:"end"`
}

type notificationRecord struct {
	Duration int    `json:"duration"`
	Unit     string `json:"unit"`
}

type labelRecord struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type eventRecord struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Time         eventTimeRecord    `json:"time"`
	AllDay       bool               `json:"allDay"`
	Notification notificationRecord `json:"notification"`
	Label        labelRecord        `json:"label"`
	Location     *string            `json:"location,omitempty"`
	CreatedAt    domain.Timestamp   `json:"createdAt"`
	UpdatedAt    domain.Timestamp   `json:"updatedAt"`
}

func newTaskRecord(task *domain.Task) taskRecord {
	record := taskRecord{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		DueDate:     domain.TimestampFromTime(task.DueDate),
		IsCompleted: task.IsCompleted,
		CreatedAt:   domain.TimestampFromTime(task.CreatedAt),
		UpdatedAt:   domain.TimestampFromTime(task.UpdatedAt),
	}
	if task.CompletedAt != nil {
		ts := domain.TimestampFromTime(*task.CompletedAt)
		record.CompletedAt = &ts
	}
	return record
}

func (r taskRecord) toDomain(userID string) (*domain.Task, error) {
	var d decoder
	task := &domain.Task{
		ID:          r.ID,
		UserID:      userID,
		Name:        r.Name,
		Description: r.Description,
		DueDate:     d.time("dueDate", r.DueDate),
		IsCompleted: r.IsCompleted,
		CreatedAt:   d.time("createdAt", r.CreatedAt),
		UpdatedAt:   d.time("updatedAt", r.UpdatedAt),
	}
	if r.CompletedAt != nil {
		completedAt := d.time("completedAt", *r.CompletedAt)
		task.CompletedAt = &completedAt
	}
	if d.err != nil {
		return nil, d.err
	}
	return task, nil
}

func newReminderRecord(reminder *domain.Reminder) reminderRecord {
	return reminderRecord{
		ID:          reminder.ID,
		Name:        reminder.Name,
		Description: reminder.Description,
		Complete:    domain.TimestampFromTime(reminder.Complete),
		AllDay:      reminder.AllDay,
		CreatedAt:   domain.TimestampFromTime(reminder.CreatedAt),
		UpdatedAt:   domain.TimestampFromTime(reminder.UpdatedAt),
	}
}

func (r reminderRecord) toDomain(userID string) (*domain.Reminder, error) {
	var d decoder
	reminder := &domain.Reminder{
		ID:          r.ID,
		UserID:      userID,
		Name:        r.Name,
		Description: r.Description,
		Complete:    d.time("complete", r.Complete),
		AllDay:      r.AllDay,
		CreatedAt:   d.time("createdAt", r.CreatedAt),
		UpdatedAt:   d.time("updatedAt", r.UpdatedAt),
	}
	if d.err != nil {
		return nil, d.err
	}
	return reminder, nil
}

func newEventRecord(event *domain.Event) eventRecord {
	return eventRecord{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		Time: eventTimeRecord{
			Start: domain.TimestampFromTime(event.Start),
			End:   domain.TimestampFromTime(event.End),
		},
		AllDay: event.AllDay,
		Notification: notificationRecord{
			Duration: event.Notification.Duration,
			Unit:     string(event.Notification.Unit),
		},
		Label: labelRecord{
			Name:  event.Label.Name,
			Color: event.Label.Color,
		},
		Location:  event.Location,
		CreatedAt: domain.TimestampFromTime(event.CreatedAt),
		UpdatedAt: domain.TimestampFromTime(event.UpdatedAt),
	}
}

func (r eventRecord) toDomain(userID string) (*domain.Event, error) {
	var d decoder
	event := &domain.Event{
		ID:          r.ID,
		UserID:      userID,
		Name:        r.Name,
		Description: r.Description,
		Start:       d.time("time.start", r.Time.Start),
		End:         d.time("time.end", r.Time.End),
		AllDay:      r.AllDay,
		Notification: domain.NotificationOffset{
			Duration: r.Notification.Duration,
			Unit:     domain.NotificationUnit(r.Notification.Unit),
		},
		Label: domain.Label{
			Name:  r.Label.Name,
			Color: r.Label.Color,
		},
		Location:  r.Location,
		CreatedAt: d.time("createdAt", r.CreatedAt),
		UpdatedAt: d.time("updatedAt", r.UpdatedAt),
	}
	if d.err != nil {
		return nil, d.err
	}
	return event, nil
}

// decoder converts stored timestamps and keeps the first failure.
type decoder struct {
	err error
}

func (d *decoder) time(field string, ts domain.Timestamp) time.Time {
	if d.err != nil {
		return time.Time{}
	}
	t, err := ts.Time()
	if err != nil {
		d.err = fmt.Errorf("%w: %s: %w", ErrInvalidItemData, field, err)
		return time.Time{}
	}
	return t
}
