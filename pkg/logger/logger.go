package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// NewWithWriter creates a logger writing to w at the given level
func NewWithWriter(w io.Writer, levelStr string) *Logger {
	level := getLogLevel(levelStr)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// Discard returns a logger that drops everything, used by tests
func Discard() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithSessionID adds the booking session ID to logger context
func (l *Logger) WithSessionID(sessionID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("session_id", sessionID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("request_id", c.GetString("request_id")),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogUpstreamCall logs a call made to the reservation API
func (l *Logger) LogUpstreamCall(ctx context.Context, method, path string, status int, duration time.Duration, err error) {
	if err != nil {
		l.Logger.WarnContext(ctx,
			"Upstream Call Failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()),
		)
		return
	}
	l.Logger.DebugContext(ctx,
		"Upstream Call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("duration", duration),
	)
}

// Booking flow logging methods

// LogSessionStarted logs when a booking session is opened for a show
func (l *Logger) LogSessionStarted(ctx context.Context, sessionID string, eventID int64, date, showTime string, seats int) {
	l.Logger.InfoContext(ctx,
		"Booking Session Started",
		slog.String("session_id", sessionID),
		slog.Int64("event_id", eventID),
		slog.String("date", date),
		slog.String("time", showTime),
		slog.Int("seats", seats),
	)
}

// LogConflictDetected logs seats that were taken between fetch and submit
func (l *Logger) LogConflictDetected(ctx context.Context, sessionID string, seatIDs []int64) {
	l.Logger.WarnContext(ctx,
		"Seat Conflict Detected",
		slog.String("session_id", sessionID),
		slog.Any("seat_ids", seatIDs),
	)
}

// LogReservationCreated logs when the reservation API accepted a selection
func (l *Logger) LogReservationCreated(ctx context.Context, sessionID string, reservationID int64, seats int, total int64) {
	l.Logger.InfoContext(ctx,
		"Reservation Created",
		slog.String("session_id", sessionID),
		slog.Int64("reservation_id", reservationID),
		slog.Int("seats", seats),
		slog.Int64("total", total),
	)
}

// LogPaymentCompleted logs a successful payment
func (l *Logger) LogPaymentCompleted(ctx context.Context, sessionID string, reservationID int64, method string) {
	l.Logger.InfoContext(ctx,
		"Payment Completed",
		slog.String("session_id", sessionID),
		slog.Int64("reservation_id", reservationID),
		slog.String("payment_method", method),
	)
}

// LogPaymentCancelled logs a cancelled payment
func (l *Logger) LogPaymentCancelled(ctx context.Context, sessionID string, reservationID int64, total int64) {
	l.Logger.InfoContext(ctx,
		"Payment Cancelled",
		slog.String("session_id", sessionID),
		slog.Int64("reservation_id", reservationID),
		slog.Int64("total", total),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
