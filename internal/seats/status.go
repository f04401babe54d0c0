package seats

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusReserved  Status = "RESERVED"
	StatusWaiting   Status = "WAITING"
	StatusSelected  Status = "SELECTED"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTaken reports whether someone else holds the seat
func (s Status) IsTaken() bool {
	return s == StatusReserved || s == StatusWaiting
}
