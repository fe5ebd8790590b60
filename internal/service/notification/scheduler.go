package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
	"github.com/KasumiMercury/primind-deadline/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-deadline/internal/observability/metrics"
	"github.com/KasumiMercury/primind-deadline/internal/observability/tracing"
	"github.com/KasumiMercury/primind-deadline/internal/service/remaining"
)

const (
	operationSchedule = "schedule"
	operationCancel   = "cancel"

	outcomeRegistered = "registered"
	outcomeDeleted    = "deleted"
	outcomeSkipped    = "skipped"
	outcomeDisabled   = "disabled"
	outcomeFailed     = "failed"
)

// Scheduler keeps one queued notification task per event in step with the
// event's start time and notification offset.
type Scheduler struct {
	queue      taskqueue.TaskQueue
	classifier *remaining.Classifier
	metrics    *metrics.DeadlineMetrics
}

// NewScheduler returns a Scheduler. A nil queue disables notifications.
func NewScheduler(queue taskqueue.TaskQueue, classifier *remaining.Classifier, deadlineMetrics *metrics.DeadlineMetrics) *Scheduler {
	return &Scheduler{
		queue:      queue,
		classifier: classifier,
		metrics:    deadlineMetrics,
	}
}

// TaskName is the queue task name for the notification of event as it was
// saved at event.UpdatedAt. Each save yields a new name because Cloud Tasks
// refuses to reuse a recently deleted one.
func TaskName(event *domain.Event) string {
	return fmt.Sprintf("event-%s-%d", event.ID, event.UpdatedAt.UnixMilli())
}

// Schedule replaces the notification of previous, which may be nil, with one
// for event. Nothing is queued when the event has no notification or its
// notification time is not after now.
func (s *Scheduler) Schedule(ctx context.Context, previous, event *domain.Event, now time.Time) error {
	ctx, span := tracing.StartNotificationSpan(ctx, operationSchedule, event.ID)
	defer span.End()

	if s.queue == nil {
		s.metrics.RecordNotification(ctx, operationSchedule, outcomeDisabled)
		tracing.RecordNotificationResult(span, "", time.Time{}, nil)
		return nil
	}

	if previous != nil {
		if err := s.cancel(ctx, previous); err != nil {
			s.metrics.RecordNotification(ctx, operationSchedule, outcomeFailed)
			tracing.RecordNotificationResult(span, "", time.Time{}, err)
			return err
		}
	}

	notifyAt, ok := event.NotifyAt()
	if !ok || !notifyAt.After(now) {
		slog.DebugContext(ctx, "no notification to schedule",
			slog.String("event_id", event.ID),
			slog.Bool("configured", ok),
			slog.Time("notify_at", notifyAt),
		)
		s.metrics.RecordNotification(ctx, operationSchedule, outcomeSkipped)
		tracing.RecordNotificationResult(span, "", notifyAt, nil)
		return nil
	}

	task := s.buildTask(event, notifyAt)
	resp, err := s.queue.RegisterNotification(ctx, task)
	if err != nil {
		slog.ErrorContext(ctx, "failed to register event notification",
			slog.String("event_id", event.ID),
			slog.String("user_id", event.UserID),
			slog.String("error", err.Error()),
		)
		s.metrics.RecordNotification(ctx, operationSchedule, outcomeFailed)
		tracing.RecordNotificationResult(span, task.Name, notifyAt, err)
		return fmt.Errorf("failed to register notification: %w", err)
	}

	slog.InfoContext(ctx, "event notification scheduled",
		slog.String("event_id", event.ID),
		slog.String("task_name", resp.Name),
		slog.Time("notify_at", notifyAt),
	)
	s.metrics.RecordNotification(ctx, operationSchedule, outcomeRegistered)
	tracing.RecordNotificationResult(span, task.Name, notifyAt, nil)
	return nil
}

// Cancel removes the queued notification of event, if any.
func (s *Scheduler) Cancel(ctx context.Context, event *domain.Event) error {
	ctx, span := tracing.StartNotificationSpan(ctx, operationCancel, event.ID)
	defer span.End()

	if s.queue == nil {
		s.metrics.RecordNotification(ctx, operationCancel, outcomeDisabled)
		tracing.RecordNotificationResult(span, "", time.Time{}, nil)
		return nil
	}

	err := s.cancel(ctx, event)
	if err != nil {
		s.metrics.RecordNotification(ctx, operationCancel, outcomeFailed)
	}
	tracing.RecordNotificationResult(span, TaskName(event), time.Time{}, err)
	return err
}

func (s *Scheduler) cancel(ctx context.Context, event *domain.Event) error {
	if !event.Notification.Enabled() {
		return nil
	}

	name := TaskName(event)
	if err := s.queue.DeleteTask(ctx, name); err != nil {
		slog.ErrorContext(ctx, "failed to delete event notification",
			slog.String("event_id", event.ID),
			slog.String("task_name", name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	s.metrics.RecordNotification(ctx, operationCancel, outcomeDeleted)
	return nil
}

func (s *Scheduler) buildTask(event *domain.Event, notifyAt time.Time) *taskqueue.NotificationTask {
	result := s.classifier.Between(event.Start, notifyAt)

	return &taskqueue.NotificationTask{
		Name:       TaskName(event),
		ScheduleAt: notifyAt,
		EventID:    event.ID,
		UserID:     event.UserID,
		Title:      event.Name,
		Message:    result.Message,
		Severity:   result.Severity.String(),
		Color:      result.Severity.Color(),
		StartsAt:   event.Start,
	}
}
