package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ticketfront/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
}

func newTestEngine(svc Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	SetupHistoryRoutes(engine.Group("/api/v1"), NewController(svc), fakeAuth(userID))
	return engine
}

func TestControllerListAndCancel(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo, &fakeReservations{}, &recordingPublisher{}, nil)
	require.NoError(t, svc.Record(context.Background(), paidInput("u1", 501)))
	engine := newTestEngine(svc, "u1")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/me/reservations?page=1&limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string       `json:"status"`
		Data   ListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, int64(1), body.Data.TotalCount)
	assert.Equal(t, 5, body.Data.Limit)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/me/reservations/501", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/me/reservations/501", nil))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/me/reservations/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/me/reservations?status=UNKNOWN", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
