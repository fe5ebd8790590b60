package metrics

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const deadlineMeterName = "deadline.service"

type DeadlineMetrics struct {
	classifications metric.Int64Counter
	listDuration    metric.Float64Histogram
	notifications   metric.Int64Counter
}

func NewDeadlineMetrics() (*DeadlineMetrics, error) {
	meter := otel.Meter(deadlineMeterName)

	classifications, err := meter.Int64Counter(
		"deadline_classifications_total",
		metric.WithDescription("Total number of items classified by unit and severity"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	listDuration, err := meter.Float64Histogram(
		"deadline_list_duration_seconds",
		metric.WithDescription("Time spent loading and classifying a user's items"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
		),
	)
	if err != nil {
		return nil, err
	}

	notifications, err := meter.Int64Counter(
		"deadline_notifications_total",
		metric.WithDescription("Event notification scheduling outcomes"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	return &DeadlineMetrics{
		classifications: classifications,
		listDuration:    listDuration,
		notifications:   notifications,
	}, nil
}

func (m *DeadlineMetrics) RecordClassification(ctx context.Context, kind, unit, severity string, overdue bool) {
	m.classifications.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("unit", unit),
		attribute.String("severity", severity),
		attribute.String("overdue", strconv.FormatBool(overdue)),
	))
}

func (m *DeadlineMetrics) RecordListDuration(ctx context.Context, kind string, duration time.Duration) {
	m.listDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *DeadlineMetrics) RecordNotification(ctx context.Context, operation, outcome string) {
	m.notifications.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}
