package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
	"github.com/KasumiMercury/primind-deadline/internal/service/label"
)

func newLabelRouter(t *testing.T) (*gin.Engine, *domain.MockLabelRepository) {
	t.Helper()

	repo := domain.NewMockLabelRepository(gomock.NewController(t))
	router := gin.New()
	NewLabelHandler(label.NewService(repo)).Register(router.Group("/api/v1"))
	return router, repo
}

func TestLabelHandler_GetLabels(t *testing.T) {
	router, repo := newLabelRouter(t)
	repo.EXPECT().GetLabels(gomock.Any(), "user-1").Return([]domain.Label{}, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/users/user-1/labels", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"labels":[]}`, w.Body.String())
}

func TestLabelHandler_PutLabels(t *testing.T) {
	router, repo := newLabelRouter(t)
	want := []domain.Label{
		{Name: "work", Color: "#1e90ff"},
		{Name: "home", Color: "#22c55e80"},
	}
	repo.EXPECT().SaveLabels(gomock.Any(), "user-1", want).Return(nil)

	w := doJSON(t, router, http.MethodPut, "/api/v1/users/user-1/labels",
		`{"labels":[{"name":"work","color":"#1e90ff"},{"name":"home","color":"#22c55e80"}]}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp labelsBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Labels, 2)
	assert.Equal(t, "home", resp.Labels[1].Name)
}

func TestLabelHandler_PutLabelsRejectsInvalidColor(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "too short", body: `{"labels":[{"name":"work","color":"#1"}]}`},
		{name: "too long", body: `{"labels":[{"name":"work","color":"#1e90ff8000"}]}`},
		{name: "empty", body: `{"labels":[{"name":"work","color":""}]}`},
		{name: "not hex", body: `{"labels":[{"name":"work","color":"#zzzzzz"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newLabelRouter(t)

			w := doJSON(t, router, http.MethodPut, "/api/v1/users/user-1/labels", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation_error")
		})
	}
}

func TestLabelHandler_AddLabel(t *testing.T) {
	router, repo := newLabelRouter(t)
	existing := []domain.Label{{Name: "work", Color: "#1e90ff"}}
	repo.EXPECT().GetLabels(gomock.Any(), "user-1").Return(existing, nil)
	repo.EXPECT().SaveLabels(gomock.Any(), "user-1", gomock.Len(2)).Return(nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/users/user-1/labels", `{"name":"home","color":"#abc"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp labelsBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Labels, 2)
	assert.Equal(t, labelBody{Name: "home", Color: "#abc"}, resp.Labels[1])
}

func TestLabelHandler_AddLabelRejectsMalformedBody(t *testing.T) {
	router, _ := newLabelRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/users/user-1/labels", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}
