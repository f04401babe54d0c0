package reservations

// SeatRequest is one seat of a reservation as the reservation API expects it
type SeatRequest struct {
	ID          int64  `json:"id" validate:"required,gt=0"`
	RowName     string `json:"rowName"`
	SeatNumber  int    `json:"seatNumber"`
	SeatSection string `json:"seatSection"`
	Price       int64  `json:"price" validate:"gte=0"`
	Status      string `json:"status" validate:"required"`
}

type CreateReservationRequest struct {
	EventID int64         `json:"eventId" validate:"required,gt=0"`
	Seats   []SeatRequest `json:"seats" validate:"required,min=1,dive"`
}
