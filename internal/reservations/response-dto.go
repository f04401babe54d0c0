package reservations

type CreateReservationResponse struct {
	ID int64 `json:"id"`
}
