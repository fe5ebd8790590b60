package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const deadlineTracerName = "github.com/KasumiMercury/primind-deadline/internal/service/deadline"

func DeadlineTracer() trace.Tracer {
	return otel.Tracer(deadlineTracerName)
}

func StartListSpan(ctx context.Context, kind, userID string, now time.Time) (context.Context, trace.Span) {
	return DeadlineTracer().Start(ctx, "deadline.list_"+kind,
		trace.WithAttributes(
			attribute.String("item.kind", kind),
			attribute.String("user_id", userID),
			attribute.String("deadline.reference", now.Format(time.RFC3339)),
		),
	)
}

func RecordListResult(span trace.Span, count, overdueCount int, err error) {
	span.SetAttributes(
		attribute.Int("deadline.item_count", count),
		attribute.Int("deadline.overdue_count", overdueCount),
	)
	recordError(span, err)
}

func StartNotificationSpan(ctx context.Context, operation, eventID string) (context.Context, trace.Span) {
	return DeadlineTracer().Start(ctx, "notification."+operation,
		trace.WithAttributes(
			attribute.String("event_id", eventID),
		),
	)
}

func RecordNotificationResult(span trace.Span, taskName string, scheduleAt time.Time, err error) {
	if taskName != "" {
		span.SetAttributes(attribute.String("notification.task_name", taskName))
	}
	if !scheduleAt.IsZero() {
		span.SetAttributes(attribute.String("notification.schedule_at", scheduleAt.Format(time.RFC3339)))
	}
	recordError(span, err)
}

func recordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
