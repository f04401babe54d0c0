package history

// RecordInput describes a booking session that reached a terminal phase
type RecordInput struct {
	UserID        string
	SessionID     string
	ReservationID int64
	EventID       int64
	ShowDate      string
	ShowTime      string
	Seats         []SeatLine
	Total         int64
	PaymentMethod string
	Status        Status
}

type ListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=PAID PAYMENT_CANCELLED CANCELLED"`
}
