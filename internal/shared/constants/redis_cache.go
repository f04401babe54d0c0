package constants

import (
	"fmt"
	"strings"
	"time"
)

// Redis Cache Configuration
// Pattern: ticketfront:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_SESSION_DEFAULT = 30 * time.Minute // booking session when REDIS_SESSION_TTL is unset
	TTL_DYNAMIC_SHORT   = 5 * time.Minute  // 5 minutes - for reservation history pages
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "ticketfront"
)

// ================== BOOKING MODULE ==================

const (
	CACHE_KEY_BOOKING_SESSION = CACHE_PREFIX + ":booking:session:" // + session-id
)

// ================== HISTORY MODULE ==================

const (
	CACHE_KEY_USER_RESERVATIONS = CACHE_PREFIX + ":history:user:" // + user-id + :page:X:limit:Y
)

const (
	TTL_USER_RESERVATIONS = TTL_DYNAMIC_SHORT
)

// ================== RATE LIMIT MODULE ==================

const (
	CACHE_KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit:" // + ip:type
)

// ================== KEY BUILDERS ==================

func BuildBookingSessionKey(sessionID string) string {
	return CACHE_KEY_BOOKING_SESSION + sessionID
}

func BuildUserReservationsKey(userID string, page, limit int) string {
	return fmt.Sprintf("%s%s:page:%d:limit:%d", CACHE_KEY_USER_RESERVATIONS, userID, page, limit)
}

// BuildUserReservationsPattern matches every cached history page of a user.
// The user id comes from the token and is escaped so it matches literally.
func BuildUserReservationsPattern(userID string) string {
	return CACHE_KEY_USER_RESERVATIONS + globEscaper.Replace(userID) + ":*"
}

var globEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
)

func BuildRateLimitKey(clientIP, limitType string) string {
	return CACHE_KEY_RATE_LIMIT + clientIP + ":" + limitType
}
