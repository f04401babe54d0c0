package payments

type PaymentRequest struct {
	ReservationID int64  `json:"reservationId" validate:"required,gt=0"`
	PaymentMethod Method `json:"paymentMethod" validate:"required,oneof=CREDIT_CARD DEBIT_CARD PAYPAL BANK_TRANSFER"`
	PaymentStatus Status `json:"paymentStatus" validate:"required,oneof=SUCCESS CANCELED FAILED"`
	Price         *int64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}
