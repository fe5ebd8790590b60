package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

type reminderRepository struct {
	store documentStore
}

func NewReminderRepository(client *redis.Client) domain.ReminderRepository {
	return &reminderRepository{
		store: documentStore{client: client, collection: "reminders"},
	}
}

func (r *reminderRepository) SaveReminder(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil {
		return ErrInvalidItemData
	}

	data, err := json.Marshal(newReminderRecord(reminder))
	if err != nil {
		return ErrInvalidItemData
	}

	return r.store.put(ctx, reminder.UserID, reminder.ID, data)
}

func (r *reminderRepository) GetReminder(ctx context.Context, userID, id string) (*domain.Reminder, error) {
	data, err := r.store.get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, err
	}

	return decodeReminder(userID, data)
}

func (r *reminderRepository) ListReminders(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	docs, err := r.store.list(ctx, userID)
	if err != nil {
		return nil, err
	}

	reminders := make([]*domain.Reminder, 0, len(docs))
	for _, data := range docs {
		reminder, err := decodeReminder(userID, data)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}

	return reminders, nil
}

func (r *reminderRepository) DeleteReminder(ctx context.Context, userID, id string) error {
	deleted, err := r.store.remove(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrReminderNotFound
	}
	return nil
}

func decodeReminder(userID string, data []byte) (*domain.Reminder, error) {
	var record reminderRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidItemData
	}
	return record.toDomain(userID)
}
