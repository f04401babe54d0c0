package booking

type StartSessionRequest struct {
	EventID int64  `json:"eventId" binding:"required,gt=0"`
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
}

type PayRequest struct {
	// Empty means CREDIT_CARD
	PaymentMethod string `json:"paymentMethod"`
}
