package history

import "time"

type RecordResponse struct {
	ReservationID int64      `json:"reservationId"`
	EventID       int64      `json:"eventId"`
	ShowDate      string     `json:"date"`
	ShowTime      string     `json:"time"`
	Seats         []SeatLine `json:"seats"`
	SeatCount     int        `json:"seatCount"`
	Total         int64      `json:"total"`
	PaymentMethod string     `json:"paymentMethod"`
	Status        Status     `json:"status"`
	BookedAt      time.Time  `json:"bookedAt"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
}

type ListResponse struct {
	Reservations []RecordResponse `json:"reservations"`
	TotalCount   int64            `json:"totalCount"`
	Page         int              `json:"page"`
	Limit        int              `json:"limit"`
}

func toRecordResponse(r *ReservationRecord) RecordResponse {
	return RecordResponse{
		ReservationID: r.ReservationID,
		EventID:       r.EventID,
		ShowDate:      r.ShowDate,
		ShowTime:      r.ShowTime,
		Seats:         r.Seats,
		SeatCount:     r.SeatCount,
		Total:         r.Total,
		PaymentMethod: r.PaymentMethod,
		Status:        r.Status,
		BookedAt:      r.CreatedAt,
		CancelledAt:   r.CancelledAt,
	}
}
