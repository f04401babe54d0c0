package booking

import (
	"time"

	"ticketfront/internal/seats"
)

type ReservationResponse struct {
	ID            int64        `json:"id"`
	Seats         []seats.Seat `json:"seats"`
	Total         int64        `json:"total"`
	PaymentMethod string       `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

type SessionResponse struct {
	ID            string               `json:"id"`
	EventID       int64                `json:"eventId"`
	Date          string               `json:"date"`
	Time          string               `json:"time"`
	Phase         Phase                `json:"phase"`
	Seats         []seats.Seat         `json:"seats"`
	Selection     []seats.Seat         `json:"selection"`
	SelectedCount int                  `json:"selectedCount"`
	MaxSeats      int                  `json:"maxSeats"`
	Total         int64                `json:"total"`
	Reservation   *ReservationResponse `json:"reservation,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

type RefreshResponse struct {
	Session *SessionResponse `json:"session"`
	Dropped []seats.Seat     `json:"dropped"`
}

// ConflictDetails is the error payload of a rejected submit
type ConflictDetails struct {
	ConflictSeatIDs []int64          `json:"conflictSeatIds"`
	Session         *SessionResponse `json:"session"`
}

func toSessionResponse(v View) *SessionResponse {
	resp := &SessionResponse{
		ID:            v.ID,
		EventID:       v.Show.EventID,
		Date:          v.Show.Date,
		Time:          v.Show.Time,
		Phase:         v.Phase,
		Seats:         v.Seats,
		Selection:     v.Selection,
		SelectedCount: len(v.Selection),
		MaxSeats:      v.MaxSeats,
		Total:         v.Total,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	if r := v.Reservation; r != nil {
		resp.Reservation = &ReservationResponse{
			ID:            r.ID,
			Seats:         r.Seats,
			Total:         r.Total,
			PaymentMethod: r.PaymentMethod.String(),
			CreatedAt:     r.CreatedAt,
		}
	}
	if resp.Seats == nil {
		resp.Seats = []seats.Seat{}
	}
	if resp.Selection == nil {
		resp.Selection = []seats.Seat{}
	}
	return resp
}
