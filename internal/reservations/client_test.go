package reservations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticketfront/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/reservations", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body CreateReservationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(7), body.EventID)
		require.Len(t, body.Seats, 1)
		assert.Equal(t, "SELECTED", body.Seats[0].Status)

		_, _ = w.Write([]byte(`{"id":501}`))
	}))
	defer srv.Close()

	c := NewClient(upstream.NewClient(srv.URL, time.Second))
	ctx := upstream.WithToken(context.Background(), "tok")

	resp, err := c.Create(ctx, CreateReservationRequest{
		EventID: 7,
		Seats:   []SeatRequest{{ID: 1, RowName: "A", SeatNumber: 1, SeatSection: "VIP", Price: 50000, Status: "SELECTED"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(501), resp.ID)
}

func TestCreateReservationValidation(t *testing.T) {
	c := NewClient(upstream.NewClient("http://127.0.0.1:0", time.Second))

	_, err := c.Create(context.Background(), CreateReservationRequest{EventID: 7})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateReservationRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"seat already locked"}`))
	}))
	defer srv.Close()

	c := NewClient(upstream.NewClient(srv.URL, time.Second))
	_, err := c.Create(context.Background(), CreateReservationRequest{
		EventID: 7,
		Seats:   []SeatRequest{{ID: 1, Status: "SELECTED"}},
	})

	assert.ErrorIs(t, err, ErrCreateFailed)
	assert.Equal(t, "seat already locked", upstream.ServerMessage(err))
}

func TestCancelReservation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/reservations/reservation/501", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(upstream.NewClient(srv.URL, time.Second))
	require.NoError(t, c.Cancel(context.Background(), 501))
	assert.ErrorIs(t, c.Cancel(context.Background(), 0), ErrInvalidRequest)
}
