package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

const minNameLength = 3

// ItemKind names the collection an item belongs to.
type ItemKind string

const (
	KindTask     ItemKind = "task"
	KindReminder ItemKind = "reminder"
	KindEvent    ItemKind = "event"
)

func (k ItemKind) String() string {
	return string(k)
}

type Task struct {
	ID          string
	UserID      string
	Name        string
	Description string
	DueDate     time.Time
	IsCompleted bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) Validate() error {
	var errs []error
	errs = append(errs, validateIdentity(t.ID, t.UserID)...)
	if len(t.Name) < minNameLength {
		errs = append(errs, errors.New("minimum task name is 3 characters"))
	}
	if t.DueDate.IsZero() {
		errs = append(errs, errors.New("due date is required"))
	}
	if t.CompletedAt != nil && !t.IsCompleted {
		errs = append(errs, errors.New("completed_at set on an open task"))
	}
	return joinValidation(errs)
}

type Reminder struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Complete    time.Time
	AllDay      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Reminder) Validate() error {
	var errs []error
	errs = append(errs, validateIdentity(r.ID, r.UserID)...)
	if len(r.Name) < minNameLength {
		errs = append(errs, errors.New("minimum reminder name is 3 characters"))
	}
	if r.Complete.IsZero() {
		errs = append(errs, errors.New("complete time is required"))
	}
	return joinValidation(errs)
}

// NotificationUnit is the unit of an event's notification lead time.
type NotificationUnit string

const (
	NotificationMinutes NotificationUnit = "minutes"
	NotificationHours   NotificationUnit = "hours"
	NotificationDays    NotificationUnit = "days"
	NotificationWeeks   NotificationUnit = "weeks"
)

func (u NotificationUnit) Duration() (time.Duration, bool) {
	switch u {
	case NotificationMinutes:
		return time.Minute, true
	case NotificationHours:
		return time.Hour, true
	case NotificationDays:
		return 24 * time.Hour, true
	case NotificationWeeks:
		return 7 * 24 * time.Hour, true
	}
	return 0, false
}

// MaxNotificationLead bounds how far ahead of an event its notification may
// fire.
const MaxNotificationLead = 52 * 7 * 24 * time.Hour

// NotificationOffset is how long before an event starts its notification fires.
type NotificationOffset struct {
	Duration int
	Unit     NotificationUnit
}

func (n NotificationOffset) Enabled() bool {
	return n.Duration > 0
}

// Lead converts the offset to a duration. It reports false for an unknown
// unit or a lead longer than MaxNotificationLead.
func (n NotificationOffset) Lead() (time.Duration, bool) {
	step, ok := n.Unit.Duration()
	if !ok || n.Duration < 0 || int64(n.Duration) > int64(MaxNotificationLead/step) {
		return 0, false
	}
	return time.Duration(n.Duration) * step, true
}

// Before returns the instant the notification for an event starting at
// start should fire. An offset without a valid lead yields start.
func (n NotificationOffset) Before(start time.Time) time.Time {
	lead, ok := n.Lead()
	if !ok {
		return start
	}
	return start.Add(-lead)
}

type Label struct {
	Name  string
	Color string
}

// ValidateLabels checks every label in a user's palette.
func ValidateLabels(labels []Label) error {
	var errs []error
	for i, label := range labels {
		if err := label.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("label %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

const (
	minLabelColorLength = 4
	maxLabelColorLength = 9
)

var labelColorPattern = regexp.MustCompile(`^#?([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

func (l Label) Validate() error {
	n := len(l.Color)
	if n < minLabelColorLength || n > maxLabelColorLength || !labelColorPattern.MatchString(l.Color) {
		return fmt.Errorf("%w: color must be of length 4, 7, or 9 (including #)", ErrValidation)
	}
	return nil
}

type Event struct {
	ID           string
	UserID       string
	Name         string
	Description  string
	Start        time.Time
	End          time.Time
	AllDay       bool
	Notification NotificationOffset
	Label        Label
	Location     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e *Event) Validate() error {
	var errs []error
	errs = append(errs, validateIdentity(e.ID, e.UserID)...)
	if len(e.Name) < minNameLength {
		errs = append(errs, errors.New("minimum event name is 3 characters"))
	}
	if !e.End.After(e.Start) {
		errs = append(errs, errors.New("end time must be after start time"))
	}
	if e.Notification.Duration < 0 {
		errs = append(errs, errors.New("notification duration must not be negative"))
	}
	if e.Notification.Enabled() {
		if _, ok := e.Notification.Unit.Duration(); !ok {
			errs = append(errs, errors.New("notification unit must be minutes, hours, days, or weeks"))
		} else if _, ok := e.Notification.Lead(); !ok {
			errs = append(errs, errors.New("notification must fire at most 52 weeks before the event"))
		}
	}
	if err := e.Label.Validate(); err != nil {
		errs = append(errs, errors.New("color must be of length 4, 7, or 9 (including #)"))
	}
	return joinValidation(errs)
}

// NotifyAt returns when the event's notification should fire and whether
// a valid one is configured.
func (e *Event) NotifyAt() (time.Time, bool) {
	if !e.Notification.Enabled() {
		return time.Time{}, false
	}
	lead, ok := e.Notification.Lead()
	if !ok {
		return time.Time{}, false
	}
	return e.Start.Add(-lead), true
}

func validateIdentity(id, userID string) []error {
	var errs []error
	if userID == "" {
		errs = append(errs, errors.New("user id is required"))
	}
	if id != "" {
		if _, err := uuid.Parse(id); err != nil {
			errs = append(errs, errors.New("not a valid UUID"))
		}
	}
	return errs
}

func joinValidation(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidation, errors.Join(errs...))
}

// NewItemID returns a fresh identifier for a stored item.
func NewItemID() string {
	return uuid.NewString()
}
