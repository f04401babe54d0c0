package seats

import (
	"net/url"
	"strconv"
)

// Seat is one bookable seat of a show as reported by the reservation API
type Seat struct {
	ID          int64  `json:"id"`
	RowName     string `json:"rowName"`
	SeatNumber  int    `json:"seatNumber"`
	SeatSection string `json:"seatSection"`
	Floor       string `json:"floor"`
	Price       int64  `json:"price"`
	Status      Status `json:"status"`
}

// IsAvailable checks if the seat can be picked
func (s Seat) IsAvailable() bool {
	return s.Status == StatusAvailable
}

// ShowKey identifies one show instance of an event
type ShowKey struct {
	EventID int64  `json:"eventId"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

func (k ShowKey) query() url.Values {
	return url.Values{
		"date": {k.Date},
		"time": {k.Time},
	}
}

func (k ShowKey) inventoryPath() string {
	return "/reservations/reservation/" + strconv.FormatInt(k.EventID, 10)
}
