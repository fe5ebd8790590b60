package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
	"github.com/KasumiMercury/primind-deadline/internal/service/remaining"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRemainingRouter() *gin.Engine {
	r := gin.New()
	NewRemainingHandler(remaining.NewClassifier(time.UTC, remaining.PluralizeByCount)).Register(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRemainingHandler_HandleRemaining(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantMessage  string
		wantSeverity domain.Severity
		wantOverdue  bool
		wantTarget   string
		wantTimezone string
	}{
		{
			name:         "rfc3339 timestamps",
			body:         `{"target":"2024-01-01T00:30:00Z","reference":"2024-01-01T00:00:00Z"}`,
			wantMessage:  "30 minutes remaining",
			wantSeverity: domain.SeverityDanger,
			wantTarget:   "1/1/2024 12:30 AM UTC",
			wantTimezone: "UTC",
		},
		{
			name:         "stored seconds and nanoseconds",
			body:         `{"target":{"seconds":1704066000,"nanoseconds":0},"reference":"2024-01-01T00:00:00Z"}`,
			wantMessage:  "20 minutes overdue",
			wantSeverity: domain.SeverityError,
			wantOverdue:  true,
			wantTarget:   "12/31/2023 11:40 PM UTC",
			wantTimezone: "UTC",
		},
		{
			name:         "timezone override formats in that zone",
			body:         `{"target":"2024-01-01T00:30:00Z","reference":"2024-01-01T00:00:00Z","timezone":"Asia/Seoul"}`,
			wantMessage:  "30 minutes remaining",
			wantSeverity: domain.SeverityDanger,
			wantTarget:   "1/1/2024 9:30 AM KST",
			wantTimezone: "Asia/Seoul",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, newRemainingRouter(), http.MethodPost, "/api/v1/remaining", tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp remainingResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			assert.Equal(t, tt.wantMessage, resp.Result.Message)
			assert.Equal(t, tt.wantSeverity, resp.Result.Severity)
			assert.Equal(t, tt.wantOverdue, resp.Result.Overdue)
			assert.Equal(t, tt.wantTarget, resp.Target)
			assert.Equal(t, tt.wantTimezone, resp.Timezone)
		})
	}
}

func TestRemainingHandler_DefaultsReferenceToNow(t *testing.T) {
	target := time.Now().Add(3 * 24 * time.Hour).Add(time.Hour).UTC().Format(time.RFC3339)

	w := doJSON(t, newRemainingRouter(), http.MethodPost, "/api/v1/remaining", `{"target":"`+target+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp remainingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.UnitDay, resp.Result.Unit)
	assert.False(t, resp.Result.Overdue)
}

func TestRemainingHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing target", `{"reference":"2024-01-01T00:00:00Z"}`},
		{"nanoseconds out of range", `{"target":{"seconds":1704067200,"nanoseconds":1000000000}}`},
		{"unparseable string", `{"target":"yesterday"}`},
		{"unknown timezone", `{"target":"2024-01-01T00:30:00Z","timezone":"Mars/Olympus"}`},
		{"malformed body", `{"target":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, newRemainingRouter(), http.MethodPost, "/api/v1/remaining", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestRemainingHandler_HandleBetween(t *testing.T) {
	body := `{"from":"2024-01-03T00:00:00Z","to":"2024-01-01T00:00:00Z"}`

	w := doJSON(t, newRemainingRouter(), http.MethodPost, "/api/v1/remaining/between", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp betweenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2 days remaining", resp.Result.Message)
	assert.Equal(t, domain.SeverityDanger, resp.Result.Severity)
	assert.Equal(t, "1/3/2024 12:00 AM UTC", resp.From)
	assert.Equal(t, "1/1/2024 12:00 AM UTC", resp.To)
}

func TestRemainingHandler_HandleBetweenRequiresBothEnds(t *testing.T) {
	w := doJSON(t, newRemainingRouter(), http.MethodPost, "/api/v1/remaining/between", `{"from":"2024-01-03T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
