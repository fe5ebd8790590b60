package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

type eventRepository struct {
	store documentStore
}

func NewEventRepository(client *redis.Client) domain.EventRepository {
	return &eventRepository{
		store: documentStore{client: client, collection: "events"},
	}
}

func (r *eventRepository) SaveEvent(ctx context.Context, event *domain.Event) error {
	if event == nil {
		return ErrInvalidItemData
	}

	data, err := json.Marshal(newEventRecord(event))
	if err != nil {
		return ErrInvalidItemData
	}

	return r.store.put(ctx, event.UserID, event.ID, data)
}

func (r *eventRepository) GetEvent(ctx context.Context, userID, id string) (*domain.Event, error) {
	data, err := r.store.get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}

	return decodeEvent(userID, data)
}

func (r *eventRepository) ListEvents(ctx context.Context, userID string) ([]*domain.Event, error) {
	docs, err := r.store.list(ctx, userID)
	if err != nil {
		return nil, err
	}

	events := make([]*domain.Event, 0, len(docs))
	for _, data := range docs {
		event, err := decodeEvent(userID, data)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

func (r *eventRepository) DeleteEvent(ctx context.Context, userID, id string) error {
	deleted, err := r.store.remove(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrEventNotFound
	}
	return nil
}

func decodeEvent(userID string, data []byte) (*domain.Event, error) {
	var record eventRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidItemData
	}
	return record.toDomain(userID)
}
