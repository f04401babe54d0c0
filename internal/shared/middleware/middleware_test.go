package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticketfront/internal/shared/config"
	"ticketfront/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestParseUserID(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	id, err := ParseUserID(signed(t, jwt.MapClaims{"user_id": float64(12), "exp": future}, "other"), "")
	require.NoError(t, err)
	assert.Equal(t, "12", id)

	id, err = ParseUserID(signed(t, jwt.MapClaims{"user_id": float64(1234567), "exp": future}, "other"), "")
	require.NoError(t, err)
	assert.Equal(t, "1234567", id)

	id, err = ParseUserID(signed(t, jwt.MapClaims{"user_id": 98765432109, "exp": future}, "other"), "")
	require.NoError(t, err)
	assert.Equal(t, "98765432109", id)

	id, err = ParseUserID(signed(t, jwt.MapClaims{"sub": "alice", "exp": future}, "s3cret"), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", id)

	_, err = ParseUserID(signed(t, jwt.MapClaims{"sub": "alice", "exp": future}, "wrong"), "s3cret")
	assert.Error(t, err)

	_, err = ParseUserID(signed(t, jwt.MapClaims{"sub": "alice", "exp": past}, "x"), "")
	assert.Error(t, err)

	_, err = ParseUserID(signed(t, jwt.MapClaims{"exp": future}, "x"), "")
	assert.ErrorIs(t, err, errNoSubject)

	_, err = ParseUserID("not-a-token", "")
	assert.Error(t, err)
}

func TestBearerAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	token := signed(t, jwt.MapClaims{"user_id": "7", "exp": time.Now().Add(time.Hour).Unix()}, "k")

	engine := gin.New()
	engine.GET("/me", BearerAuth(cfg), func(c *gin.Context) {
		id, ok := GetUserID(c)
		assert.True(t, ok)
		c.String(http.StatusOK, id+"|"+upstream.TokenFromContext(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7|"+token, w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(HeaderRequestID))
}
