package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
	"github.com/KasumiMercury/primind-deadline/internal/service/label"
)

// LabelHandler serves the palette of labels a user can attach to events.
type LabelHandler struct {
	service *label.Service
}

func NewLabelHandler(service *label.Service) *LabelHandler {
	return &LabelHandler{service: service}
}

func (h *LabelHandler) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users/:user_id")

	users.GET("/labels", h.GetLabels)
	users.PUT("/labels", h.PutLabels)
	users.POST("/labels", h.AddLabel)
}

type labelsBody struct {
	Labels []labelBody `json:"labels"`
}

func newLabelsBody(labels []domain.Label) labelsBody {
	body := labelsBody{Labels: make([]labelBody, 0, len(labels))}
	for _, l := range labels {
		body.Labels = append(body.Labels, labelBody{Name: l.Name, Color: l.Color})
	}
	return body
}

func (h *LabelHandler) GetLabels(c *gin.Context) {
	labels, err := h.service.Labels(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newLabelsBody(labels))
}

func (h *LabelHandler) PutLabels(c *gin.Context) {
	var req labelsBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	labels := make([]domain.Label, 0, len(req.Labels))
	for _, l := range req.Labels {
		labels = append(labels, domain.Label{Name: l.Name, Color: l.Color})
	}

	saved, err := h.service.ReplaceLabels(c.Request.Context(), c.Param("user_id"), labels)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newLabelsBody(saved))
}

func (h *LabelHandler) AddLabel(c *gin.Context) {
	var req labelBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	saved, err := h.service.AddLabel(c.Request.Context(), c.Param("user_id"), domain.Label{Name: req.Name, Color: req.Color})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newLabelsBody(saved))
}
