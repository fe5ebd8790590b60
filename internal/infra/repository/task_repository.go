package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

type taskRepository struct {
	store documentStore
}

func NewTaskRepository(client *redis.Client) domain.TaskRepository {
	return &taskRepository{
		store: documentStore{client: client, collection: "tasks"},
	}
}

func (r *taskRepository) SaveTask(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return ErrInvalidItemData
	}

	data, err := json.Marshal(newTaskRecord(task))
	if err != nil {
		return ErrInvalidItemData
	}

	return r.store.put(ctx, task.UserID, task.ID, data)
}

func (r *taskRepository) GetTask(ctx context.Context, userID, id string) (*domain.Task, error) {
	data, err := r.store.get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	return decodeTask(userID, data)
}

func (r *taskRepository) ListTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	docs, err := r.store.list(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for _, data := range docs {
		task, err := decodeTask(userID, data)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (r *taskRepository) DeleteTask(ctx context.Context, userID, id string) error {
	deleted, err := r.store.remove(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}
	return nil
}

func decodeTask(userID string, data []byte) (*domain.Task, error) {
	var record taskRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidItemData
	}
	return record.toDomain(userID)
}
