package deadline

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
	"github.com/KasumiMercury/primind-deadline/internal/observability/metrics"
	"github.com/KasumiMercury/primind-deadline/internal/observability/tracing"
	"github.com/KasumiMercury/primind-deadline/internal/service/remaining"
)

// Service loads a user's items and annotates each with how much time is
// left, or how late it is, relative to a caller-supplied now.
type Service struct {
	tasks      domain.TaskRepository
	reminders  domain.ReminderRepository
	events     domain.EventRepository
	classifier *remaining.Classifier
	notifier   EventNotifier
	recorder   domain.DeadlineRecorder
	metrics    *metrics.DeadlineMetrics
}

func NewService(
	tasks domain.TaskRepository,
	reminders domain.ReminderRepository,
	events domain.EventRepository,
	classifier *remaining.Classifier,
	notifier EventNotifier,
	recorder domain.DeadlineRecorder,
	deadlineMetrics *metrics.DeadlineMetrics,
) *Service {
	return &Service{
		tasks:      tasks,
		reminders:  reminders,
		events:     events,
		classifier: classifier,
		notifier:   notifier,
		recorder:   recorder,
		metrics:    deadlineMetrics,
	}
}

func (s *Service) Classifier() *remaining.Classifier {
	return s.classifier
}

func (s *Service) Tasks(ctx context.Context, userID string, now time.Time) (result []TaskDeadline, err error) {
	ctx, span := tracing.StartListSpan(ctx, domain.KindTask.String(), userID, now)
	defer span.End()
	start := time.Now()
	defer func() {
		s.metrics.RecordListDuration(ctx, domain.KindTask.String(), time.Since(start))
		tracing.RecordListResult(span, len(result), countOverdueTasks(result), err)
	}()

	tasks, err := s.tasks.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(tasks, func(a, b *domain.Task) int {
		return a.DueDate.Compare(b.DueDate)
	})

	result = make([]TaskDeadline, 0, len(tasks))
	records := make([]domain.DeadlineRecord, 0, len(tasks))
	for _, task := range tasks {
		d := s.DescribeTask(task, now)
		result = append(result, d)
		if d.Remaining != nil {
			records = append(records, s.observe(ctx, userID, domain.KindTask, task.ID, task.DueDate, now, *d.Remaining))
		}
	}

	s.record(ctx, records)
	return result, nil
}

func (s *Service) Task(ctx context.Context, userID, id string, now time.Time) (*TaskDeadline, error) {
	task, err := s.tasks.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	d := s.DescribeTask(task, now)
	return &d, nil
}

// DescribeTask annotates a single task without touching the store.
func (s *Service) DescribeTask(task *domain.Task, now time.Time) TaskDeadline {
	d := TaskDeadline{
		Task: task,
		Due:  s.classifier.Format(task.DueDate, false),
	}

	switch {
	case task.IsCompleted && task.CompletedAt != nil:
		d.Completion = s.completion(task.DueDate, *task.CompletedAt)
	case task.IsCompleted:
	default:
		r := s.classifier.Classify(task.DueDate, now)
		d.Remaining = &r
	}

	return d
}

func (s *Service) completion(due, completedAt time.Time) *Completion {
	r := s.classifier.Between(due, completedAt)

	message := "completed on time"
	if r.Count() > 0 || r.Unit != domain.UnitMinute {
		direction := "before"
		if r.Overdue {
			direction = "after"
		}
		message = "completed " + r.Quantity() + " " + direction + " due date"
	}

	return &Completion{
		Result:  r,
		Early:   !r.Overdue,
		Message: message,
	}
}

func (s *Service) Reminders(ctx context.Context, userID string, now time.Time) (result []ReminderDeadline, err error) {
	ctx, span := tracing.StartListSpan(ctx, domain.KindReminder.String(), userID, now)
	defer span.End()
	start := time.Now()
	defer func() {
		s.metrics.RecordListDuration(ctx, domain.KindReminder.String(), time.Since(start))
		overdue := 0
		for _, d := range result {
			if d.Remaining.Overdue {
				overdue++
			}
		}
		tracing.RecordListResult(span, len(result), overdue, err)
	}()

	reminders, err := s.reminders.ListReminders(ctx, userID)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(reminders, func(a, b *domain.Reminder) int {
		return a.Complete.Compare(b.Complete)
	})

	result = make([]ReminderDeadline, 0, len(reminders))
	records := make([]domain.DeadlineRecord, 0, len(reminders))
	for _, reminder := range reminders {
		d := s.DescribeReminder(reminder, now)
		result = append(result, d)
		records = append(records, s.observe(ctx, userID, domain.KindReminder, reminder.ID, reminder.Complete, now, d.Remaining))
	}

	s.record(ctx, records)
	return result, nil
}

func (s *Service) Reminder(ctx context.Context, userID, id string, now time.Time) (*ReminderDeadline, error) {
	reminder, err := s.reminders.GetReminder(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	d := s.DescribeReminder(reminder, now)
	return &d, nil
}

func (s *Service) DescribeReminder(reminder *domain.Reminder, now time.Time) ReminderDeadline {
	return ReminderDeadline{
		Reminder:  reminder,
		Remaining: s.classifier.Classify(reminder.Complete, now),
		Due:       s.classifier.Format(reminder.Complete, reminder.AllDay),
	}
}

func (s *Service) Events(ctx context.Context, userID string, now time.Time) (result []EventDeadline, err error) {
	ctx, span := tracing.StartListSpan(ctx, domain.KindEvent.String(), userID, now)
	defer span.End()
	start := time.Now()
	defer func() {
		s.metrics.RecordListDuration(ctx, domain.KindEvent.String(), time.Since(start))
		ended := 0
		for _, d := range result {
			if d.Ended {
				ended++
			}
		}
		tracing.RecordListResult(span, len(result), ended, err)
	}()

	events, err := s.events.ListEvents(ctx, userID)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(events, func(a, b *domain.Event) int {
		return a.Start.Compare(b.Start)
	})

	result = make([]EventDeadline, 0, len(events))
	records := make([]domain.DeadlineRecord, 0, len(events))
	for _, event := range events {
		d := s.DescribeEvent(event, now)
		result = append(result, d)
		records = append(records, s.observe(ctx, userID, domain.KindEvent, event.ID, event.Start, now, d.Starts))
	}

	s.record(ctx, records)
	return result, nil
}

func (s *Service) Event(ctx context.Context, userID, id string, now time.Time) (*EventDeadline, error) {
	event, err := s.events.GetEvent(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	d := s.DescribeEvent(event, now)
	return &d, nil
}

func (s *Service) DescribeEvent(event *domain.Event, now time.Time) EventDeadline {
	return EventDeadline{
		Event:      event,
		Starts:     s.classifier.Classify(event.Start, now),
		Ends:       s.classifier.Classify(event.End, now),
		InProgress: !now.Before(event.Start) && now.Before(event.End),
		Ended:      !now.Before(event.End),
		StartsAt:   s.classifier.Format(event.Start, event.AllDay),
		EndsAt:     s.classifier.Format(event.End, event.AllDay),
	}
}

func (s *Service) observe(ctx context.Context, userID string, kind domain.ItemKind, itemID string, target, now time.Time, r domain.DurationResult) domain.DeadlineRecord {
	s.metrics.RecordClassification(ctx, kind.String(), r.Unit.String(), r.Severity.String(), r.Overdue)

	return domain.DeadlineRecord{
		UserID:     userID,
		Kind:       kind,
		ItemID:     itemID,
		Target:     target,
		Reference:  now,
		Unit:       r.Unit,
		Severity:   r.Severity,
		Overdue:    r.Overdue,
		Magnitude:  r.Magnitude,
		RecordedAt: time.Now(),
	}
}

func (s *Service) record(ctx context.Context, records []domain.DeadlineRecord) {
	if s.recorder == nil || len(records) == 0 {
		return
	}
	if err := s.recorder.RecordDeadlines(ctx, records); err != nil {
		slog.WarnContext(ctx, "failed to record deadlines",
			slog.Int("record_count", len(records)),
			slog.String("error", err.Error()),
		)
	}
}

func countOverdueTasks(tasks []TaskDeadline) int {
	n := 0
	for _, d := range tasks {
		if d.Remaining != nil && d.Remaining.Overdue {
			n++
		}
	}
	return n
}

// SaveTask creates or replaces a task. A task without an id gets a new one.
// CompletedAt is stamped with now when a task is first marked completed and
// cleared when it is reopened.
func (s *Service) SaveTask(ctx context.Context, task *domain.Task, now time.Time) (*domain.Task, error) {
	if task.ID != "" {
		existing, err := s.tasks.GetTask(ctx, task.UserID, task.ID)
		switch {
		case err == nil:
			task.CreatedAt = existing.CreatedAt
			if task.IsCompleted && task.CompletedAt == nil {
				task.CompletedAt = existing.CompletedAt
			}
		case !errors.Is(err, domain.ErrTaskNotFound):
			return nil, err
		}
	}

	if task.IsCompleted && task.CompletedAt == nil {
		completedAt := now
		task.CompletedAt = &completedAt
	}
	if !task.IsCompleted {
		task.CompletedAt = nil
	}

	if err := stamp(&task.ID, &task.CreatedAt, &task.UpdatedAt, now, task.Validate); err != nil {
		return nil, err
	}

	if err := s.tasks.SaveTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, userID, id string) error {
	return s.tasks.DeleteTask(ctx, userID, id)
}

func (s *Service) SaveReminder(ctx context.Context, reminder *domain.Reminder, now time.Time) (*domain.Reminder, error) {
	if reminder.ID != "" {
		existing, err := s.reminders.GetReminder(ctx, reminder.UserID, reminder.ID)
		switch {
		case err == nil:
			reminder.CreatedAt = existing.CreatedAt
		case !errors.Is(err, domain.ErrReminderNotFound):
			return nil, err
		}
	}

	if err := stamp(&reminder.ID, &reminder.CreatedAt, &reminder.UpdatedAt, now, reminder.Validate); err != nil {
		return nil, err
	}

	if err := s.reminders.SaveReminder(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *Service) DeleteReminder(ctx context.Context, userID, id string) error {
	return s.reminders.DeleteReminder(ctx, userID, id)
}

// SaveEvent stores the event and then reschedules its notification. A
// scheduling failure is logged and does not undo the save.
func (s *Service) SaveEvent(ctx context.Context, event *domain.Event, now time.Time) (*domain.Event, error) {
	var previous *domain.Event
	if event.ID != "" {
		existing, err := s.events.GetEvent(ctx, event.UserID, event.ID)
		switch {
		case err == nil:
			previous = existing
			event.CreatedAt = existing.CreatedAt
		case !errors.Is(err, domain.ErrEventNotFound):
			return nil, err
		}
	}

	if err := stamp(&event.ID, &event.CreatedAt, &event.UpdatedAt, now, event.Validate); err != nil {
		return nil, err
	}

	if err := s.events.SaveEvent(ctx, event); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.Schedule(ctx, previous, event, now); err != nil {
			slog.WarnContext(ctx, "event saved without notification",
				slog.String("event_id", event.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return event, nil
}

// DeleteEvent removes the event and its queued notification.
func (s *Service) DeleteEvent(ctx context.Context, userID, id string) error {
	event, err := s.events.GetEvent(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.events.DeleteEvent(ctx, userID, id); err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.Cancel(ctx, event); err != nil {
			slog.WarnContext(ctx, "event deleted but notification remains queued",
				slog.String("event_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// stamp assigns a new id and creation time to unsaved items, sets the
// update time and validates the result.
func stamp(id *string, createdAt, updatedAt *time.Time, now time.Time, validate func() error) error {
	if *id == "" {
		*id = domain.NewItemID()
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
	return validate()
}
