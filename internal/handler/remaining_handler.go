package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
	"github.com/KasumiMercury/primind-deadline/internal/service/remaining"
)

// RemainingHandler exposes the classifier directly for clients that only
// hold raw timestamps.
type RemainingHandler struct {
	classifier *remaining.Classifier
}

func NewRemainingHandler(classifier *remaining.Classifier) *RemainingHandler {
	return &RemainingHandler{classifier: classifier}
}

func (h *RemainingHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/remaining", h.HandleRemaining)
	rg.POST("/remaining/between", h.HandleBetween)
}

type remainingRequest struct {
	Target    *instant `json:"target" binding:"required"`
	Reference *instant `json:"reference"`
	Timezone  string   `json:"timezone"`
}

type remainingResponse struct {
	Result    domain.DurationResult `json:"result"`
	Target    string                `json:"target"`
	Reference string                `json:"reference"`
	Timezone  string                `json:"timezone"`
}

type betweenRequest struct {
	From     *instant `json:"from" binding:"required"`
	To       *instant `json:"to" binding:"required"`
	Timezone string   `json:"timezone"`
}

type betweenResponse struct {
	Result   domain.DurationResult `json:"result"`
	From     string                `json:"from"`
	To       string                `json:"to"`
	Timezone string                `json:"timezone"`
}

// HandleRemaining classifies target against reference, defaulting the
// reference to the current time.
func (h *RemainingHandler) HandleRemaining(c *gin.Context) {
	var req remainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	classifier, ok := h.classifierFor(c, req.Timezone)
	if !ok {
		return
	}

	reference := time.Now()
	if req.Reference != nil {
		reference = req.Reference.value()
	}

	target := req.Target.value()
	c.JSON(http.StatusOK, remainingResponse{
		Result:    classifier.Classify(target, reference),
		Target:    remaining.FormatTimestamp(target, classifier.Location()),
		Reference: remaining.FormatTimestamp(reference, classifier.Location()),
		Timezone:  classifier.Location().String(),
	})
}

// HandleBetween classifies the distance from "to" until "from". The result
// is overdue when "to" falls after "from".
func (h *RemainingHandler) HandleBetween(c *gin.Context) {
	var req betweenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	classifier, ok := h.classifierFor(c, req.Timezone)
	if !ok {
		return
	}

	from, to := req.From.value(), req.To.value()
	c.JSON(http.StatusOK, betweenResponse{
		Result:   classifier.Between(from, to),
		From:     remaining.FormatTimestamp(from, classifier.Location()),
		To:       remaining.FormatTimestamp(to, classifier.Location()),
		Timezone: classifier.Location().String(),
	})
}

func (h *RemainingHandler) classifierFor(c *gin.Context, timezone string) (*remaining.Classifier, bool) {
	if timezone == "" {
		return h.classifier, true
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "unknown timezone: "+timezone)
		return nil, false
	}
	return h.classifier.WithLocation(loc), true
}
