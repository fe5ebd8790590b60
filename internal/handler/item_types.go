package handler

import (
	"time"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
	"github.com/KasumiMercury/primind-deadline/internal/service/deadline"
)

type taskRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	DueDate     *instant `json:"dueDate" binding:"required"`
	IsCompleted bool     `json:"isCompleted"`
}

func (r taskRequest) toDomain(userID, id string) *domain.Task {
	return &domain.Task{
		ID:          id,
		UserID:      userID,
		Name:        r.Name,
		Description: r.Description,
		DueDate:     r.DueDate.value(),
		IsCompleted: r.IsCompleted,
	}
}

type completionResponse struct {
	Result  domain.DurationResult `json:"result"`
	Early   bool                  `json:"early"`
	Message string                `json:"message"`
}

type taskResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	DueDate     time.Time              `json:"dueDate"`
	Due         string                 `json:"due"`
	IsCompleted bool                   `json:"isCompleted"`
	CompletedAt *time.Time             `json:"completedAt,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
	Remaining   *domain.DurationResult `json:"remaining,omitempty"`
	Completion  *completionResponse    `json:"completion,omitempty"`
}

func newTaskResponse(d deadline.TaskDeadline) taskResponse {
	resp := taskResponse{
		ID:          d.Task.ID,
		Name:        d.Task.Name,
		Description: d.Task.Description,
		DueDate:     d.Task.DueDate,
		Due:         d.Due,
		IsCompleted: d.Task.IsCompleted,
		CompletedAt: d.Task.CompletedAt,
		CreatedAt:   d.Task.CreatedAt,
		UpdatedAt:   d.Task.UpdatedAt,
		Remaining:   d.Remaining,
	}
	if d.Completion != nil {
		resp.Completion = &completionResponse{
			Result:  d.Completion.Result,
			Early:   d.Completion.Early,
			Message: d.Completion.Message,
		}
	}
	return resp
}

type reminderRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Complete    *instant `json:"complete" binding:"required"`
	AllDay      bool     `json:"allDay"`
}

func (r reminderRequest) toDomain(userID, id string) *domain.Reminder {
	return &domain.Reminder{
		ID:          id,
		UserID:      userID,
		Name:        r.Name,
		Description: r.Description,
		Complete:    r.Complete.value(),
		AllDay:      r.AllDay,
	}
}

type reminderResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Complete    time.Time             `json:"complete"`
	AllDay      bool                  `json:"allDay"`
	Due         string                `json:"due"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
	Remaining   domain.DurationResult `json:"remaining"`
}

func newReminderResponse(d deadline.ReminderDeadline) reminderResponse {
	return reminderResponse{
		ID:          d.Reminder.ID,
		Name:        d.Reminder.Name,
		Description: d.Reminder.Description,
		Complete:    d.Reminder.Complete,
		AllDay:      d.Reminder.AllDay,
		Due:         d.Due,
		CreatedAt:   d.Reminder.CreatedAt,
		UpdatedAt:   d.Reminder.UpdatedAt,
		Remaining:   d.Remaining,
	}
}

type notificationBody struct {
	Duration int    `json:"duration"`
	Unit     string `json:"unit"`
}

type labelBody struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type eventRequest struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Start        *instant         `json:"start" binding:"required"`
	End          *instant         `json:"end" binding:"required"`
	AllDay       bool             `json:"allDay"`
	Notification notificationBody `json:"notification"`
	Label        labelBody        `json:"label"`
	Location     *string          `json:"location"`
}

func (r eventRequest) toDomain(userID, id string) *domain.Event {
	return &domain.Event{
		ID:          id,
		UserID:      userID,
		Name:        r.Name,
		Description: r.Description,
		Start:       r.Start.value(),
		End:         r.End.value(),
		AllDay:      r.AllDay,
		Notification: domain.NotificationOffset{
			Duration: r.Notification.Duration,
			Unit:     domain.NotificationUnit(r.Notification.Unit),
		},
		Label:    domain.Label{Name: r.Label.Name, Color: r.Label.Color},
		Location: r.Location,
	}
}

type eventResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Start        time.Time             `json:"start"`
	End          time.Time             `json:"end"`
	AllDay       bool                  `json:"allDay"`
	Notification notificationBody      `json:"notification"`
	Label        labelBody             `json:"label"`
	Location     *string               `json:"location,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	StartsAt     string                `json:"startsAt"`
	EndsAt       string                `json:"endsAt"`
	Starts       domain.DurationResult `json:"starts"`
	Ends         domain.DurationResult `json:"ends"`
	InProgress   bool                  `json:"inProgress"`
	Ended        bool                  `json:"ended"`
}

func newEventResponse(d deadline.EventDeadline) eventResponse {
	e := d.Event
	return eventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Start:       e.Start,
		End:         e.End,
		AllDay:      e.AllDay,
		Notification: notificationBody{
			Duration: e.Notification.Duration,
			Unit:     string(e.Notification.Unit),
		},
		Label:      labelBody{Name: e.Label.Name, Color: e.Label.Color},
		Location:   e.Location,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		StartsAt:   d.StartsAt,
		EndsAt:     d.EndsAt,
		Starts:     d.Starts,
		Ends:       d.Ends,
		InProgress: d.InProgress,
		Ended:      d.Ended,
	}
}
