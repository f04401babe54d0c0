package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrSessionNotFound      = errors.New("booking session not found")
	ErrSessionClosed        = errors.New("booking session has ended")
	ErrStaleSession         = errors.New("booking session was changed since this state was taken")
	ErrOperationInProgress  = errors.New("another operation is in progress")
	ErrInvalidPhase         = errors.New("operation not allowed in current phase")
	ErrEmptySelection       = errors.New("no seats selected")
	ErrUnauthenticated      = errors.New("login required")
	ErrConflict             = errors.New("selected seats are no longer available")
	ErrReservationFailed    = errors.New("reservation failed")
	ErrPaymentFailed        = errors.New("payment failed")
	ErrCancelFailed         = errors.New("payment cancellation failed")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// isRejection reports whether an operation was refused before it changed the session
func isRejection(err error) bool {
	return errors.Is(err, ErrOperationInProgress) ||
		errors.Is(err, ErrInvalidPhase) ||
		errors.Is(err, ErrSessionClosed)
}

// ConflictError lists selected seats that someone else took since the last fetch
type ConflictError struct {
	SeatIDs []int64
}

func (e *ConflictError) Error() string {
	ids := make([]string, len(e.SeatIDs))
	for i, id := range e.SeatIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("seats %s are no longer available", strings.Join(ids, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
