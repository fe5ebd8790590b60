package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

// eventSettingsID names the settings document that holds event preferences.
const eventSettingsID = "events"

type eventSettingsRecord struct {
	Labels []labelRecord `json:"labels"`
}

type labelRepository struct {
	store documentStore
}

func NewLabelRepository(client *redis.Client) domain.LabelRepository {
	return &labelRepository{
		store: documentStore{client: client, collection: "settings"},
	}
}

// GetLabels returns an empty palette for users who never saved one.
func (r *labelRepository) GetLabels(ctx context.Context, userID string) ([]domain.Label, error) {
	data, err := r.store.get(ctx, userID, eventSettingsID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Label{}, nil
		}
		return nil, err
	}

	var record eventSettingsRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidItemData
	}

	labels := make([]domain.Label, 0, len(record.Labels))
	for _, l := range record.Labels {
		labels = append(labels, domain.Label{Name: l.Name, Color: l.Color})
	}
	return labels, nil
}

func (r *labelRepository) SaveLabels(ctx context.Context, userID string, labels []domain.Label) error {
	record := eventSettingsRecord{Labels: make([]labelRecord, 0, len(labels))}
	for _, l := range labels {
		record.Labels = append(record.Labels, labelRecord{Name: l.Name, Color: l.Color})
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidItemData
	}

	return r.store.put(ctx, userID, eventSettingsID, data)
}
