package history

type Status string

const (
	StatusPaid             Status = "PAID"
	StatusPaymentCancelled Status = "PAYMENT_CANCELLED"
	StatusCancelled        Status = "CANCELLED"
)

// IsValid checks if the record status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPaid, StatusPaymentCancelled, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanBeCancelled checks if a reservation with this status can still be cancelled
func (s Status) CanBeCancelled() bool {
	return s == StatusPaid
}
