package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"ticketfront/internal/shared/config"
	"ticketfront/internal/shared/utils/response"
	"ticketfront/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	ContextUserID    = "user_id"
	ContextRequestID = "request_id"

	HeaderRequestID = "X-Request-ID"
)

var errNoSubject = errors.New("token carries no user id")

// BearerAuth requires an access token issued by the reservation API. The
// token is forwarded on every upstream call made while serving the request.
func BearerAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		userID, err := ParseUserID(tokenString, cfg.JWT.Secret)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Request = c.Request.WithContext(upstream.WithToken(c.Request.Context(), tokenString))

		c.Next()
	}
}

// ParseUserID reads the user id from an access token. With an empty secret
// the signature is not checked but expiry still is.
func ParseUserID(tokenString, secret string) (string, error) {
	claims := jwt.MapClaims{}

	if secret != "" {
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return "", fmt.Errorf("invalid token: %w", err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return "", fmt.Errorf("malformed token: %w", err)
		}
		if err := claims.Valid(); err != nil {
			return "", fmt.Errorf("invalid token: %w", err)
		}
	}

	for _, key := range []string{"user_id", "sub"} {
		if id := claimString(claims[key]); id != "" {
			return id, nil
		}
	}
	return "", errNoSubject
}

// claimString formats a claim value. JSON numbers decode as float64 and must
// not come out in exponent form.
func claimString(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprint(id)
	}
}

// GetUserID returns the authenticated user id set by BearerAuth
func GetUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// RequestID tags every request with an id, reusing the caller's when present
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
