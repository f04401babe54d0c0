package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ticketfront/internal/seats"
	"ticketfront/internal/shared/middleware"
	"ticketfront/internal/upstream"
	"ticketfront/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAuth(c *gin.Context) {
	userID := c.GetHeader("X-Test-User")
	if userID == "" {
		userID = "user-1"
	}
	c.Set(middleware.ContextUserID, userID)
	c.Request = c.Request.WithContext(upstream.WithToken(c.Request.Context(), "token-"+userID))
	c.Next()
}

func newTestEngine(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewManager(f.deps, NewCacheStore(cache.NewMemory(), time.Minute), nil, time.Minute)
	engine := gin.New()
	SetupBookingRoutes(engine.Group("/api/v1"), NewController(m), fakeAuth)
	return engine
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func call(t *testing.T, engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func sessionFrom(t *testing.T, env envelope) SessionResponse {
	t.Helper()
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp
}

func startSession(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	w, env := call(t, engine, http.MethodPost, "/api/v1/booking/sessions", `{"eventId":7,"date":"2026-11-20","time":"19:30"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	return sessionFrom(t, env).ID
}

func TestControllerBookingFlow(t *testing.T) {
	f := newFixture([]seats.Seat{
		seat(1, 50000, seats.StatusAvailable),
		seat(2, 80000, seats.StatusAvailable),
	})
	engine := newTestEngine(f)
	id := startSession(t, engine)
	base := "/api/v1/booking/sessions/" + id

	w, env := call(t, engine, http.MethodPost, base+"/seats/1/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	w, env = call(t, engine, http.MethodPost, base+"/seats/2/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	view := sessionFrom(t, env)
	assert.Equal(t, 2, view.SelectedCount)
	assert.Equal(t, int64(130000), view.Total)
	assert.Equal(t, 6, view.MaxSeats)

	w, env = call(t, engine, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusCreated, w.Code)
	view = sessionFrom(t, env)
	assert.Equal(t, PhaseReserved, view.Phase)
	require.NotNil(t, view.Reservation)
	assert.Equal(t, int64(130000), view.Reservation.Total)

	w, env = call(t, engine, http.MethodPost, base+"/pay", `{"paymentMethod":"PAYPAL"}`)
	require.Equal(t, http.StatusOK, w.Code)
	view = sessionFrom(t, env)
	assert.Equal(t, PhasePaid, view.Phase)
	assert.Equal(t, "PAYPAL", view.Reservation.PaymentMethod)

	w, _ = call(t, engine, http.MethodPost, base+"/seats/1/toggle", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = call(t, engine, http.MethodGet, base, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, PhasePaid, sessionFrom(t, env).Phase)
}

func TestControllerSubmitConflict(t *testing.T) {
	second := openHouse(3)
	second[2].Status = seats.StatusReserved
	f := newFixture(openHouse(3), second)
	engine := newTestEngine(f)
	base := "/api/v1/booking/sessions/" + startSession(t, engine)

	call(t, engine, http.MethodPost, base+"/seats/3/toggle", "")
	w, env := call(t, engine, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusConflict, w.Code)

	var details ConflictDetails
	require.NoError(t, json.Unmarshal(env.Errors, &details))
	assert.Equal(t, []int64{3}, details.ConflictSeatIDs)
	require.NotNil(t, details.Session)
	assert.Equal(t, PhaseSelecting, details.Session.Phase)
	assert.Equal(t, 0, details.Session.SelectedCount)
	assert.Equal(t, seats.StatusReserved, details.Session.Seats[2].Status)
}

func TestControllerErrorMapping(t *testing.T) {
	f := newFixture(openHouse(3))
	f.deps.MaxSeats = 1
	engine := newTestEngine(f)
	base := "/api/v1/booking/sessions/" + startSession(t, engine)

	w, _ := call(t, engine, http.MethodPost, "/api/v1/booking/sessions", `{"date":"2026-11-20"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(t, engine, http.MethodPost, base+"/submit", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty selection")

	w, _ = call(t, engine, http.MethodPost, base+"/seats/x/toggle", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	call(t, engine, http.MethodPost, base+"/seats/1/toggle", "")
	w, env := call(t, engine, http.MethodPost, base+"/seats/2/toggle", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"maxSeats":1}`, string(env.Errors))

	w, _ = call(t, engine, http.MethodPost, base+"/pay", "")
	assert.Equal(t, http.StatusConflict, w.Code, "pay before submit")

	w, _ = call(t, engine, http.MethodGet, "/api/v1/booking/sessions/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodGet, base, nil)
	req.Header.Set("X-Test-User", "someone-else")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	w, _ = call(t, engine, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = call(t, engine, http.MethodPost, base+"/pay", `{"paymentMethod":"CASH"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestControllerUpstreamFailure(t *testing.T) {
	f := newFixture(openHouse(2))
	f.inventory.err = &upstream.Error{Method: http.MethodGet, Path: "/reservations/reservation/7"}
	engine := newTestEngine(f)

	w, env := call(t, engine, http.MethodPost, "/api/v1/booking/sessions", `{"eventId":7,"date":"2026-11-20","time":"19:30"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Seat map could not be loaded", env.Message)
	assert.JSONEq(t, `{"retryable":true}`, string(env.Errors))
}

func TestControllerRefresh(t *testing.T) {
	f := newFixture(openHouse(3))
	engine := newTestEngine(f)
	base := "/api/v1/booking/sessions/" + startSession(t, engine)

	call(t, engine, http.MethodPost, base+"/seats/2/toggle", "")
	w, env := call(t, engine, http.MethodPost, base+"/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp RefreshResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.Len(t, resp.Dropped, 1)
	assert.Equal(t, int64(2), resp.Dropped[0].ID)
	assert.Equal(t, 0, resp.Session.SelectedCount)
}
