package payments

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

func captureServer(t *testing.T, status int, got *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		w.WriteHeader(status)
		if status >= 300 {
			_, _ = w.Write([]byte(`{"message":"card declined"}`))
		}
	}))
}

func TestPaySendsSuccessStatus(t *testing.T) {
	var body map[string]interface{}
	srv := captureServer(t, http.StatusOK, &body)
	defer srv.Close()

	c := NewClient(upstream.NewClient(srv.URL, time.Second))
	require.NoError(t, c.Pay(context.Background(), 501, MethodCreditCard))

	assert.Equal(t, float64(501), body["reservationId"])
	assert.Equal(t, "CREDIT_CARD", body["paymentMethod"])
	assert.Equal(t, "SUCCESS", body["paymentStatus"])
	assert.NotContains(t, body, "price")
}

func TestCancelSendsTotal(t *testing.T) {
	var body map[string]interface{}
	srv := captureServer(t, http.StatusOK, &body)
	defer srv.Close()

	c := NewClient(upstream.NewClient(srv.URL, time.Second))
	require.NoError(t, c.Cancel(context.Background(), 501, MethodPaypal, 130000))

	assert.Equal(t, "CANCELED", body["paymentStatus"])
	assert.Equal(t, float64(130000), body["price"])
}

func TestPayRejected(t *testing.T) {
	var body map[string]interface{}
	srv := captureServer(t, http.StatusPaymentRequired, &body)
	defer srv.Close()

	c := NewClient(upstream.NewClient(srv.URL, time.Second))
	err := c.Pay(context.Background(), 501, MethodDebitCard)

	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "card declined", upstream.ServerMessage(err))
}

func TestPayValidatesMethod(t *testing.T) {
	c := NewClient(upstream.NewClient("http://127.0.0.1:0", time.Second))

	err := c.Pay(context.Background(), 501, Method("CASH"))
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.False(t, Method("CASH").IsValid())
}
