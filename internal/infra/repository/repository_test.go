package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
	"github.com/KasumiMercury/primind-deadline/internal/testutil"
)

func TestTaskRepositorySaveGetList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTaskRepository(client)
	due := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)

	tasks := []*domain.Task{
		{ID: "b0000000-0000-0000-0000-000000000002", UserID: "user-1", Name: "Second", DueDate: due.Add(time.Hour)},
		{ID: "a0000000-0000-0000-0000-000000000001", UserID: "user-1", Name: "First", DueDate: due},
		{ID: "c0000000-0000-0000-0000-000000000003", UserID: "user-2", Name: "Other user", DueDate: due},
	}
	for _, task := range tasks {
		if err := repo.SaveTask(ctx, task); err != nil {
			t.Fatalf("SaveTask() error = %v", err)
		}
	}

	got, err := repo.GetTask(ctx, "user-1", tasks[0].ID)
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if got.Name != "Second" || !got.DueDate.Equal(tasks[0].DueDate) {
		t.Errorf("GetTask() = %+v", got)
	}

	listed, err := repo.ListTasks(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(listed))
	}
	if listed[0].ID != tasks[1].ID {
		t.Errorf("expected tasks ordered by id, got %s first", listed[0].ID)
	}

	if _, err := repo.GetTask(ctx, "user-2", tasks[0].ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("GetTask() for another user error = %v, want %v", err, domain.ErrTaskNotFound)
	}
}

func TestTaskRepositoryDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTaskRepository(client)
	task := &domain.Task{ID: domain.NewItemID(), UserID: "user-1", Name: "Disposable", DueDate: time.Now()}

	if err := repo.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask() error = %v", err)
	}
	if err := repo.DeleteTask(ctx, "user-1", task.ID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if err := repo.DeleteTask(ctx, "user-1", task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("second DeleteTask() error = %v, want %v", err, domain.ErrTaskNotFound)
	}

	members, err := client.SMembers(ctx, "deadline:users:user-1:tasks").Result()
	if err != nil {
		t.Fatalf("SMembers() error = %v", err)
	}
	if len(members) != 0 {
		t.Errorf("expected empty index, got %v", members)
	}
}

func TestListDropsStaleIndexEntries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderRepository(client)
	reminder := &domain.Reminder{ID: domain.NewItemID(), UserID: "user-1", Name: "Water plants", Complete: time.Now()}
	if err := repo.SaveReminder(ctx, reminder); err != nil {
		t.Fatalf("SaveReminder() error = %v", err)
	}
	if err := client.SAdd(ctx, "deadline:users:user-1:reminders", "ghost").Err(); err != nil {
		t.Fatalf("SAdd() error = %v", err)
	}

	listed, err := repo.ListReminders(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListReminders() error = %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(listed))
	}

	isMember, err := client.SIsMember(ctx, "deadline:users:user-1:reminders", "ghost").Result()
	if err != nil {
		t.Fatalf("SIsMember() error = %v", err)
	}
	if isMember {
		t.Error("stale id should have been removed from the index")
	}
}

func TestEventRepositoryRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewEventRepository(client)
	start := time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC)
	event := &domain.Event{
		ID:           domain.NewItemID(),
		UserID:       "user-1",
		Name:         "Offsite",
		Start:        start,
		End:          start.Add(3 * time.Hour),
		AllDay:       true,
		Notification: domain.NotificationOffset{Duration: 2, Unit: domain.NotificationDays},
	}

	if err := repo.SaveEvent(ctx, event); err != nil {
		t.Fatalf("SaveEvent() error = %v", err)
	}

	got, err := repo.GetEvent(ctx, "user-1", event.ID)
	if err != nil {
		t.Fatalf("GetEvent() error = %v", err)
	}
	if !got.AllDay || got.Notification != event.Notification || !got.End.Equal(event.End) {
		t.Errorf("GetEvent() = %+v", got)
	}

	if err := repo.SaveEvent(ctx, &domain.Event{Name: "No owner"}); !errors.Is(err, ErrMissingItemOwner) {
		t.Errorf("SaveEvent() without owner error = %v, want %v", err, ErrMissingItemOwner)
	}
}

func TestLabelRepositoryRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewLabelRepository(client)

	empty, err := repo.GetLabels(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetLabels() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no labels, got %+v", empty)
	}

	labels := []domain.Label{
		{Name: "work", Color: "#1e90ff"},
		{Name: "family", Color: "#f0a"},
	}
	if err := repo.SaveLabels(ctx, "user-1", labels); err != nil {
		t.Fatalf("SaveLabels() error = %v", err)
	}

	got, err := repo.GetLabels(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetLabels() error = %v", err)
	}
	if len(got) != 2 || got[0] != labels[0] || got[1] != labels[1] {
		t.Errorf("GetLabels() = %+v, want %+v", got, labels)
	}

	if other, err := repo.GetLabels(ctx, "user-2"); err != nil || len(other) != 0 {
		t.Errorf("GetLabels() for another user = %+v, %v", other, err)
	}

	if err := repo.SaveLabels(ctx, "", labels); !errors.Is(err, ErrMissingItemOwner) {
		t.Errorf("SaveLabels() without owner error = %v, want %v", err, ErrMissingItemOwner)
	}
}
