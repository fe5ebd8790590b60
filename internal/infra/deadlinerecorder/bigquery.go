//go:build gcloud

package deadlinerecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt time.Time `bigquery:"recorded_at"`
	UserID     string    `bigquery:"user_id"`
	Kind       string    `bigquery:"kind"`
	ItemID     string    `bigquery:"item_id"`
	Target     time.Time `bigquery:"target"`
	Reference  time.Time `bigquery:"reference"`
	Unit       string    `bigquery:"unit"`
	Severity   string    `bigquery:"severity"`
	Overdue    bool      `bigquery:"overdue"`
	Magnitude  float64   `bigquery:"magnitude"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DeadlineRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "deadline recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, deadline recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, deadline recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "deadline recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
	}, nil
}

func (r *bigQueryRecorder) RecordDeadlines(ctx context.Context, records []domain.DeadlineRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*bigQueryRecord, 0, len(records))
	for _, record := range records {
		recordedAt := record.RecordedAt
		if recordedAt.IsZero() {
			recordedAt = now
		}
		rows = append(rows, &bigQueryRecord{
			RecordedAt: recordedAt,
			UserID:     record.UserID,
			Kind:       record.Kind.String(),
			ItemID:     record.ItemID,
			Target:     record.Target,
			Reference:  record.Reference,
			Unit:       record.Unit.String(),
			Severity:   record.Severity.String(),
			Overdue:    record.Overdue,
			Magnitude:  record.Magnitude,
		})
	}

	if err := r.inserter.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert deadline snapshot to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
