package label

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

// Service manages the per-user palette of event labels.
type Service struct {
	repo domain.LabelRepository
}

func NewService(repo domain.LabelRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Labels(ctx context.Context, userID string) ([]domain.Label, error) {
	return s.repo.GetLabels(ctx, userID)
}

// ReplaceLabels overwrites the whole palette. Nothing is written when any
// label is invalid.
func (s *Service) ReplaceLabels(ctx context.Context, userID string, labels []domain.Label) ([]domain.Label, error) {
	if labels == nil {
		labels = []domain.Label{}
	}
	if err := domain.ValidateLabels(labels); err != nil {
		return nil, err
	}

	if err := s.repo.SaveLabels(ctx, userID, labels); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "labels replaced",
		slog.String("user_id", userID),
		slog.Int("label_count", len(labels)),
	)
	return labels, nil
}

// AddLabel appends one label to the stored palette.
func (s *Service) AddLabel(ctx context.Context, userID string, label domain.Label) ([]domain.Label, error) {
	if err := label.Validate(); err != nil {
		return nil, err
	}

	labels, err := s.repo.GetLabels(ctx, userID)
	if err != nil {
		return nil, err
	}
	labels = append(labels, label)

	if err := s.repo.SaveLabels(ctx, userID, labels); err != nil {
		return nil, err
	}
	return labels, nil
}
