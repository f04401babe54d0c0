package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientForwardsTokenAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/things", r.URL.Path)
		assert.Equal(t, "2025-06-01", r.URL.Query().Get("date"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]int{"id": 3})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/v1/", time.Second)
	ctx := WithToken(context.Background(), "tok-1")

	var out struct {
		ID int `json:"id"`
	}
	require.NoError(t, c.Get(ctx, "/things", url.Values{"date": {"2025-06-01"}}, &out))
	assert.Equal(t, 3, out.ID)
}

func TestClientNon2xxCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"seat already taken"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.Post(context.Background(), "/reservations", map[string]int{"eventId": 1}, nil)

	var upErr *Error
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusConflict, upErr.StatusCode)
	assert.Equal(t, "seat already taken", ServerMessage(err))
	assert.False(t, upErr.Transport())
	assert.False(t, IsRetryable(err))
}

func TestClientTransportFailureIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.Get(context.Background(), "/things", nil, nil)

	var upErr *Error
	require.True(t, errors.As(err, &upErr))
	assert.True(t, upErr.Transport())
	assert.True(t, IsRetryable(err))
}

func TestClientNoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL, time.Second).Delete(context.Background(), "/x", nil))
}

func TestClientCircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second).WithCircuitBreaker(2, time.Minute)

	for i := 0; i < 2; i++ {
		err := c.Get(context.Background(), "/things", nil, nil)
		assert.False(t, errors.Is(err, ErrUnavailable))
	}

	err := c.Get(context.Background(), "/things", nil, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, int32(2), calls.Load(), "an open breaker does not reach the server")
}

func TestClientCircuitBreakerIgnoresRejections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second).WithCircuitBreaker(1, time.Minute)

	for i := 0; i < 3; i++ {
		err := c.Post(context.Background(), "/reservations", map[string]int{"eventId": 1}, nil)
		var upErr *Error
		require.ErrorAs(t, err, &upErr)
		assert.Equal(t, http.StatusConflict, upErr.StatusCode)
	}
}
