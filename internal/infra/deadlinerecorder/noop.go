package deadlinerecorder

import (
	"context"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.DeadlineRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordDeadlines(_ context.Context, _ []domain.DeadlineRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
