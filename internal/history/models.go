package history

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatLine is a seat as shown in the reservation history
type SeatLine struct {
	ID          int64  `json:"id"`
	RowName     string `json:"rowName"`
	SeatNumber  int    `json:"seatNumber"`
	SeatSection string `json:"seatSection"`
	Floor       string `json:"floor,omitempty"`
	Price       int64  `json:"price"`
}

// ReservationRecord is the local ledger entry of a finished booking session
type ReservationRecord struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string     `gorm:"type:varchar(64);index;not null" json:"user_id"`
	SessionID     string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_id"`
	ReservationID int64      `gorm:"index;not null" json:"reservation_id"`
	EventID       int64      `gorm:"index;not null" json:"event_id"`
	ShowDate      string     `gorm:"type:varchar(32)" json:"show_date"`
	ShowTime      string     `gorm:"type:varchar(16)" json:"show_time"`
	Seats         []SeatLine `gorm:"serializer:json;type:text" json:"seats"`
	SeatCount     int        `gorm:"not null" json:"seat_count"`
	Total         int64      `gorm:"not null" json:"total"`
	PaymentMethod string     `gorm:"type:varchar(32)" json:"payment_method"`
	Status        Status     `gorm:"type:varchar(20);check:status IN ('PAID', 'PAYMENT_CANCELLED', 'CANCELLED');index" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

// TableName sets the table name for ReservationRecord
func (ReservationRecord) TableName() string {
	return "reservation_records"
}

func (r *ReservationRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
