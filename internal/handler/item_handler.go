package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-deadline/internal/service/deadline"
)

// ItemHandler serves a user's tasks, reminders and events, each annotated
// with its remaining time.
type ItemHandler struct {
	service *deadline.Service
}

func NewItemHandler(service *deadline.Service) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users/:user_id")

	users.GET("/tasks", h.ListTasks)
	users.POST("/tasks", h.PutTask)
	users.GET("/tasks/:id", h.GetTask)
	users.PUT("/tasks/:id", h.PutTask)
	users.DELETE("/tasks/:id", h.DeleteTask)

	users.GET("/reminders", h.ListReminders)
	users.POST("/reminders", h.PutReminder)
	users.GET("/reminders/:id", h.GetReminder)
	users.PUT("/reminders/:id", h.PutReminder)
	users.DELETE("/reminders/:id", h.DeleteReminder)

	users.GET("/events", h.ListEvents)
	users.POST("/events", h.PutEvent)
	users.GET("/events/:id", h.GetEvent)
	users.PUT("/events/:id", h.PutEvent)
	users.DELETE("/events/:id", h.DeleteEvent)
}

func (h *ItemHandler) ListTasks(c *gin.Context) {
	now, ok := requestNow(c)
	if !ok {
		return
	}

	deadlines, err := h.service.Tasks(c.Request.Context(), c.Param("user_id"), now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]taskResponse, 0, len(deadlines))
	for _, d := range deadlines {
		resp = append(resp, newTaskResponse(d))
	}
	c.JSON(http.StatusOK, gin.H{"tasks": resp})
}

func (h *ItemHandler) GetTask(c *gin.Context) {
	now, ok := requestNow(c)
	if !ok {
		return
	}

	d, err := h.service.Task(c.Request.Context(), c.Param("user_id"), c.Param("id"), now)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(*d))
}

// PutTask creates a task when no id is in the path and replaces one otherwise.
func (h *ItemHandler) PutTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	now := time.Now()
	task, err := h.service.SaveTask(c.Request.Context(), req.toDomain(c.Param("user_id"), c.Param("id")), now)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(savedStatus(c), newTaskResponse(h.service.DescribeTask(task, now)))
}

func (h *ItemHandler) DeleteTask(c *gin.Context) {
	if err := h.service.DeleteTask(c.Request.Context(), c.Param("user_id"), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ItemHandler) ListReminders(c *gin.Context) {
	now, ok := requestNow(c)
	if !ok {
		return
	}

	deadlines, err := h.service.Reminders(c.Request.Context(), c.Param("user_id"), now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]reminderResponse, 0, len(deadlines))
	for _, d := range deadlines {
		resp = append(resp, newReminderResponse(d))
	}
	c.JSON(http.StatusOK, gin.H{"reminders": resp})
}

func (h *ItemHandler) GetReminder(c *gin.Context) {
	now, ok := requestNow(c)
	if !ok {
		return
	}

	d, err := h.service.Reminder(c.Request.Context(), c.Param("user_id"), c.Param("id"), now)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newReminderResponse(*d))
}

func (h *ItemHandler) PutReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	now := time.Now()
	reminder, err := h.service.SaveReminder(c.Request.Context(), req.toDomain(c.Param("user_id"), c.Param("id")), now)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(savedStatus(c), newReminderResponse(h.service.DescribeReminder(reminder, now)))
}

func (h *ItemHandler) DeleteReminder(c *gin.Context) {
	if err := h.service.DeleteReminder(c.Request.Context(), c.Param("user_id"), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ItemHandler) ListEvents(c *gin.Context) {
	now, ok := requestNow(c)
	if !ok {
		return
	}

	deadlines, err := h.service.Events(c.Request.Context(), c.Param("user_id"), now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]eventResponse, 0, len(deadlines))
	for _, d := range deadlines {
		resp = append(resp, newEventResponse(d))
	}
	c.JSON(http.StatusOK, gin.H{"events": resp})
}

func (h *ItemHandler) GetEvent(c *gin.Context) {
	now, ok := requestNow(c)
	if !ok {
		return
	}

	d, err := h.service.Event(c.Request.Context(), c.Param("user_id"), c.Param("id"), now)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEventResponse(*d))
}

func (h *ItemHandler) PutEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	now := time.Now()
	event, err := h.service.SaveEvent(c.Request.Context(), req.toDomain(c.Param("user_id"), c.Param("id")), now)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(savedStatus(c), newEventResponse(h.service.DescribeEvent(event, now)))
}

func (h *ItemHandler) DeleteEvent(c *gin.Context) {
	if err := h.service.DeleteEvent(c.Request.Context(), c.Param("user_id"), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func savedStatus(c *gin.Context) int {
	if c.Param("id") == "" {
		return http.StatusCreated
	}
	return http.StatusOK
}
