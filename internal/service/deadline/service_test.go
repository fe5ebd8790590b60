package deadline

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
	"github.com/KasumiMercury/primind-deadline/internal/observability/metrics"
	"github.com/KasumiMercury/primind-deadline/internal/service/remaining"
)

var now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeNotifier struct {
	scheduled []*domain.Event
	previous  []*domain.Event
	canceled  []*domain.Event
	err       error
}

func (f *fakeNotifier) Schedule(_ context.Context, previous, event *domain.Event, _ time.Time) error {
	f.previous = append(f.previous, previous)
	f.scheduled = append(f.scheduled, event)
	return f.err
}

func (f *fakeNotifier) Cancel(_ context.Context, event *domain.Event) error {
	f.canceled = append(f.canceled, event)
	return f.err
}

type fakeRecorder struct {
	records []domain.DeadlineRecord
}

func (f *fakeRecorder) RecordDeadlines(_ context.Context, records []domain.DeadlineRecord) error {
	f.records = append(f.records, records...)
	return nil
}

func (f *fakeRecorder) Flush(context.Context) error { return nil }
func (f *fakeRecorder) Close() error                { return nil }

type fixture struct {
	tasks     *domain.MockTaskRepository
	reminders *domain.MockReminderRepository
	events    *domain.MockEventRepository
	notifier  *fakeNotifier
	recorder  *fakeRecorder
	service   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	deadlineMetrics, err := metrics.NewDeadlineMetrics()
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	f := &fixture{
		tasks:     domain.NewMockTaskRepository(ctrl),
		reminders: domain.NewMockReminderRepository(ctrl),
		events:    domain.NewMockEventRepository(ctrl),
		notifier:  &fakeNotifier{},
		recorder:  &fakeRecorder{},
	}
	f.service = NewService(
		f.tasks,
		f.reminders,
		f.events,
		remaining.NewClassifier(time.UTC, remaining.PluralizeByCount),
		f.notifier,
		f.recorder,
		deadlineMetrics,
	)
	return f
}

func TestService_Tasks(t *testing.T) {
	f := newFixture(t)

	completedAt := time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC)
	tasks := []*domain.Task{
		{ID: "late", UserID: "user-1", Name: "Late task", DueDate: now.Add(-20 * time.Minute)},
		{ID: "done", UserID: "user-1", Name: "Finished task", DueDate: time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC), IsCompleted: true, CompletedAt: &completedAt},
		{ID: "soon", UserID: "user-1", Name: "Soon task", DueDate: now.Add(30 * time.Minute)},
	}
	f.tasks.EXPECT().ListTasks(gomock.Any(), "user-1").Return(tasks, nil)

	got, err := f.service.Tasks(context.Background(), "user-1", now)
	if err != nil {
		t.Fatalf("Tasks() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(got))
	}

	wantOrder := []string{"done", "late", "soon"}
	for i, id := range wantOrder {
		if got[i].Task.ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].Task.ID, id)
		}
	}

	done := got[0]
	if done.Remaining != nil || done.Completion == nil {
		t.Fatalf("completed task should carry a completion, got %+v", done)
	}
	if done.Completion.Message != "completed 2 days before due date" || !done.Completion.Early {
		t.Errorf("Completion = %+v", done.Completion)
	}

	late := got[1]
	if late.Remaining == nil || late.Remaining.Message != "20 minutes overdue" || late.Remaining.Severity != domain.SeverityError {
		t.Errorf("late Remaining = %+v", late.Remaining)
	}

	soon := got[2]
	if soon.Remaining == nil || soon.Remaining.Message != "30 minutes remaining" {
		t.Errorf("soon Remaining = %+v", soon.Remaining)
	}
	if soon.Due != "1/1/2024 12:30 AM UTC" {
		t.Errorf("Due = %q", soon.Due)
	}

	if len(f.recorder.records) != 2 {
		t.Errorf("expected 2 recorded deadlines, got %d", len(f.recorder.records))
	}
}

func TestService_TasksRepositoryError(t *testing.T) {
	f := newFixture(t)
	repoErr := errors.New("redis down")
	f.tasks.EXPECT().ListTasks(gomock.Any(), "user-1").Return(nil, repoErr)

	if _, err := f.service.Tasks(context.Background(), "user-1", now); !errors.Is(err, repoErr) {
		t.Errorf("Tasks() error = %v, want %v", err, repoErr)
	}
	if len(f.recorder.records) != 0 {
		t.Error("nothing should be recorded on failure")
	}
}

func TestService_CompletionMessages(t *testing.T) {
	f := newFixture(t)
	due := time.Date(2024, 5, 10, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		completedAt time.Time
		want        string
		wantEarly   bool
	}{
		{"three hours late", due.Add(3 * time.Hour), "completed 3 hours after due date", false},
		{"a day early", due.Add(-24 * time.Hour), "completed 24 hours before due date", true},
		{"on the dot", due, "completed on time", true},
		{"ten days early", due.AddDate(0, 0, -10), "completed 10 days before due date", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.service.completion(due, tt.completedAt)
			if got.Message != tt.want {
				t.Errorf("Message = %q, want %q", got.Message, tt.want)
			}
			if got.Early != tt.wantEarly {
				t.Errorf("Early = %v, want %v", got.Early, tt.wantEarly)
			}
		})
	}
}

func TestService_Reminders(t *testing.T) {
	f := newFixture(t)

	reminders := []*domain.Reminder{
		{ID: "r2", UserID: "user-1", Name: "Later", Complete: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), AllDay: true},
		{ID: "r1", UserID: "user-1", Name: "Sooner", Complete: now.Add(54 * time.Hour)},
	}
	f.reminders.EXPECT().ListReminders(gomock.Any(), "user-1").Return(reminders, nil)

	got, err := f.service.Reminders(context.Background(), "user-1", now)
	if err != nil {
		t.Fatalf("Reminders() error = %v", err)
	}

	if got[0].Reminder.ID != "r1" || got[0].Remaining.Message != "2 days remaining" || got[0].Remaining.Severity != domain.SeverityWarn {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Remaining.Message != "17 months remaining" || got[1].Due != "6/1/2025" {
		t.Errorf("second = %+v", got[1])
	}
}

func TestService_Events(t *testing.T) {
	f := newFixture(t)

	events := []*domain.Event{
		{ID: "upcoming", UserID: "user-1", Name: "Upcoming", Start: now.Add(36 * time.Hour), End: now.Add(38 * time.Hour)},
		{ID: "ongoing", UserID: "user-1", Name: "Ongoing", Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
		{ID: "past", UserID: "user-1", Name: "Past", Start: now.AddDate(0, 0, -3), End: now.AddDate(0, 0, -3).Add(time.Hour)},
	}
	f.events.EXPECT().ListEvents(gomock.Any(), "user-1").Return(events, nil)

	got, err := f.service.Events(context.Background(), "user-1", now)
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}

	byID := make(map[string]EventDeadline, len(got))
	for _, d := range got {
		byID[d.Event.ID] = d
	}

	if d := byID["upcoming"]; d.InProgress || d.Ended || d.Starts.Message != "36 hours remaining" {
		t.Errorf("upcoming = %+v", d)
	}
	if d := byID["ongoing"]; !d.InProgress || d.Ended || d.Ends.Message != "60 minutes remaining" {
		t.Errorf("ongoing = %+v", d)
	}
	if d := byID["past"]; d.InProgress || !d.Ended || !d.Starts.Overdue {
		t.Errorf("past = %+v", d)
	}
	if got[0].Event.ID != "past" {
		t.Errorf("events should be ordered by start, got %s first", got[0].Event.ID)
	}
}

func TestService_TaskNotFound(t *testing.T) {
	f := newFixture(t)
	f.tasks.EXPECT().GetTask(gomock.Any(), "user-1", "missing").Return(nil, domain.ErrTaskNotFound)

	if _, err := f.service.Task(context.Background(), "user-1", "missing", now); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("Task() error = %v, want %v", err, domain.ErrTaskNotFound)
	}
}

func TestService_SaveTaskCreates(t *testing.T) {
	f := newFixture(t)

	f.tasks.EXPECT().SaveTask(gomock.Any(), gomock.Any()).Return(nil)

	task := &domain.Task{UserID: "user-1", Name: "New task", DueDate: now.Add(time.Hour), IsCompleted: true}
	saved, err := f.service.SaveTask(context.Background(), task, now)
	if err != nil {
		t.Fatalf("SaveTask() error = %v", err)
	}

	if saved.ID == "" {
		t.Error("expected an id to be assigned")
	}
	if !saved.CreatedAt.Equal(now) || !saved.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v / %v, want %v", saved.CreatedAt, saved.UpdatedAt, now)
	}
	if saved.CompletedAt == nil || !saved.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", saved.CompletedAt, now)
	}
}

func TestService_SaveTaskUpdatePreservesCreation(t *testing.T) {
	f := newFixture(t)

	id := domain.NewItemID()
	created := now.AddDate(0, 0, -7)
	completed := now.AddDate(0, 0, -1)
	f.tasks.EXPECT().GetTask(gomock.Any(), "user-1", id).Return(&domain.Task{
		ID: id, UserID: "user-1", CreatedAt: created, IsCompleted: true, CompletedAt: &completed,
	}, nil)
	f.tasks.EXPECT().SaveTask(gomock.Any(), gomock.Any()).Return(nil)

	task := &domain.Task{ID: id, UserID: "user-1", Name: "Renamed", DueDate: now, IsCompleted: true}
	saved, err := f.service.SaveTask(context.Background(), task, now)
	if err != nil {
		t.Fatalf("SaveTask() error = %v", err)
	}

	if !saved.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", saved.CreatedAt, created)
	}
	if saved.CompletedAt == nil || !saved.CompletedAt.Equal(completed) {
		t.Errorf("CompletedAt = %v, want %v", saved.CompletedAt, completed)
	}
}

func TestService_SaveTaskValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.SaveTask(context.Background(), &domain.Task{UserID: "user-1", Name: "x"}, now)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("SaveTask() error = %v, want %v", err, domain.ErrValidation)
	}
}

func TestService_SaveReminder(t *testing.T) {
	f := newFixture(t)
	f.reminders.EXPECT().SaveReminder(gomock.Any(), gomock.Any()).Return(nil)

	reminder := &domain.Reminder{UserID: "user-1", Name: "Pay rent", Complete: now.AddDate(0, 0, 3)}
	saved, err := f.service.SaveReminder(context.Background(), reminder, now)
	if err != nil {
		t.Fatalf("SaveReminder() error = %v", err)
	}
	if saved.ID == "" || !saved.CreatedAt.Equal(now) {
		t.Errorf("saved = %+v", saved)
	}
}

func TestService_SaveEventSchedulesNotification(t *testing.T) {
	f := newFixture(t)

	id := domain.NewItemID()
	previous := &domain.Event{ID: id, UserID: "user-1", Name: "Old name", CreatedAt: now.AddDate(0, 0, -1)}
	f.events.EXPECT().GetEvent(gomock.Any(), "user-1", id).Return(previous, nil)
	f.events.EXPECT().SaveEvent(gomock.Any(), gomock.Any()).Return(nil)

	event := &domain.Event{
		ID:           id,
		UserID:       "user-1",
		Name:         "New name",
		Start:        now.Add(2 * time.Hour),
		End:          now.Add(3 * time.Hour),
		Notification: domain.NotificationOffset{Duration: 30, Unit: domain.NotificationMinutes},
		Label:        domain.Label{Name: "work", Color: "#3B82F6"},
	}

	if _, err := f.service.SaveEvent(context.Background(), event, now); err != nil {
		t.Fatalf("SaveEvent() error = %v", err)
	}

	if len(f.notifier.scheduled) != 1 || f.notifier.previous[0] != previous {
		t.Errorf("notifier calls = %+v", f.notifier)
	}
	if !event.CreatedAt.Equal(previous.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", event.CreatedAt, previous.CreatedAt)
	}
}

func TestService_SaveEventIgnoresNotifierFailure(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("queue down")
	f.events.EXPECT().SaveEvent(gomock.Any(), gomock.Any()).Return(nil)

	event := &domain.Event{
		UserID: "user-1",
		Name:   "Kickoff",
		Start:  now.Add(time.Hour),
		End:    now.Add(2 * time.Hour),
		Label:  domain.Label{Name: "work", Color: "#3B82F6"},
	}
	if _, err := f.service.SaveEvent(context.Background(), event, now); err != nil {
		t.Errorf("SaveEvent() error = %v", err)
	}
}

func TestService_DeleteEventCancelsNotification(t *testing.T) {
	f := newFixture(t)

	event := &domain.Event{ID: "e1", UserID: "user-1"}
	f.events.EXPECT().GetEvent(gomock.Any(), "user-1", "e1").Return(event, nil)
	f.events.EXPECT().DeleteEvent(gomock.Any(), "user-1", "e1").Return(nil)

	if err := f.service.DeleteEvent(context.Background(), "user-1", "e1"); err != nil {
		t.Fatalf("DeleteEvent() error = %v", err)
	}
	if len(f.notifier.canceled) != 1 || f.notifier.canceled[0] != event {
		t.Errorf("canceled = %+v", f.notifier.canceled)
	}
}

func TestService_DeleteEventNotFound(t *testing.T) {
	f := newFixture(t)
	f.events.EXPECT().GetEvent(gomock.Any(), "user-1", "e1").Return(nil, domain.ErrEventNotFound)

	if err := f.service.DeleteEvent(context.Background(), "user-1", "e1"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("DeleteEvent() error = %v, want %v", err, domain.ErrEventNotFound)
	}
	if len(f.notifier.canceled) != 0 {
		t.Error("nothing should be canceled")
	}
}
