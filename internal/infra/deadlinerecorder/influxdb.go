//go:build !gcloud

package deadlinerecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

const deadlineMeasurement = "deadline_snapshot"

type pointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI pointWriter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DeadlineRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "deadline recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, deadline recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "deadline recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
	}, nil
}

// RecordDeadlines writes one point per record. Write failures are logged and
// never surface to the caller.
func (r *influxDBRecorder) RecordDeadlines(ctx context.Context, records []domain.DeadlineRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, toPoint(record))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write deadline snapshot to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func toPoint(record domain.DeadlineRecord) *write.Point {
	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	return influxdb2.NewPoint(
		deadlineMeasurement,
		map[string]string{
			"kind":     record.Kind.String(),
			"unit":     record.Unit.String(),
			"severity": record.Severity.String(),
			"overdue":  boolTag(record.Overdue),
		},
		map[string]any{
			"user_id":        record.UserID,
			"item_id":        record.ItemID,
			"magnitude":      record.Magnitude,
			"target_unix":    record.Target.Unix(),
			"reference_unix": record.Reference.Unix(),
		},
		recordedAt,
	)
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (r *influxDBRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
