package notifications

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeSessionStarted     EventType = "BOOKING_SESSION_STARTED"
	EventTypeConflictDetected   EventType = "BOOKING_CONFLICT_DETECTED"
	EventTypeReservationCreated EventType = "RESERVATION_CREATED"
	EventTypeReservationFailed  EventType = "RESERVATION_FAILED"
	EventTypePaymentCompleted   EventType = "PAYMENT_COMPLETED"
	EventTypePaymentFailed      EventType = "PAYMENT_FAILED"
	EventTypePaymentCancelled   EventType = "PAYMENT_CANCELLED"
	EventTypeReservationRevoked EventType = "RESERVATION_REVOKED"
)

// BookingEvent is one step of a booking session published for downstream consumers
type BookingEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`

	// Show context
	EventID  int64  `json:"event_id"`
	ShowDate string `json:"show_date,omitempty"`
	ShowTime string `json:"show_time,omitempty"`

	// Booking context
	ReservationID   int64   `json:"reservation_id,omitempty"`
	SeatIDs         []int64 `json:"seat_ids,omitempty"`
	ConflictSeatIDs []int64 `json:"conflict_seat_ids,omitempty"`
	Total           int64   `json:"total,omitempty"`
	PaymentMethod   string  `json:"payment_method,omitempty"`
	Reason          string  `json:"reason,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

// EventBuilder provides a fluent interface for building booking events
type EventBuilder struct {
	event *BookingEvent
}

func NewEventBuilder(eventType EventType, sessionID, userID string) *EventBuilder {
	return &EventBuilder{
		event: &BookingEvent{
			ID:         uuid.New(),
			Type:       eventType,
			SessionID:  sessionID,
			UserID:     userID,
			OccurredAt: time.Now().UTC(),
		},
	}
}

func (b *EventBuilder) WithShow(eventID int64, date, showTime string) *EventBuilder {
	b.event.EventID = eventID
	b.event.ShowDate = date
	b.event.ShowTime = showTime
	return b
}

func (b *EventBuilder) WithReservation(reservationID int64) *EventBuilder {
	b.event.ReservationID = reservationID
	return b
}

func (b *EventBuilder) WithSeats(seatIDs []int64, total int64) *EventBuilder {
	b.event.SeatIDs = seatIDs
	b.event.Total = total
	return b
}

func (b *EventBuilder) WithConflicts(seatIDs []int64) *EventBuilder {
	b.event.ConflictSeatIDs = seatIDs
	return b
}

func (b *EventBuilder) WithPaymentMethod(method string) *EventBuilder {
	b.event.PaymentMethod = method
	return b
}

func (b *EventBuilder) WithReason(err error) *EventBuilder {
	if err != nil {
		b.event.Reason = err.Error()
	}
	return b
}

func (b *EventBuilder) Build() *BookingEvent {
	return b.event
}

// GetPartitionKey keeps every event of one show on the same partition
func (e *BookingEvent) GetPartitionKey() string {
	return strconv.FormatInt(e.EventID, 10)
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
