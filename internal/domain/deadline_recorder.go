package domain

import (
	"context"
	"time"
)

// DeadlineRecord is one classified item captured for offline analysis.
type DeadlineRecord struct {
	UserID     string
	Kind       ItemKind
	ItemID     string
	Target     time.Time
	Reference  time.Time
	Unit       Unit
	Severity   Severity
	Overdue    bool
	Magnitude  float64
	RecordedAt time.Time
}

type DeadlineRecorder interface {
	RecordDeadlines(ctx context.Context, records []DeadlineRecord) error
	Flush(ctx context.Context) error
	Close() error
}
