// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// ReservationConfirmedEvent is published after a reservation commits.
// It carries enough information for downstream consumers to log,
// notify or feed analytics without querying the primary database.
type ReservationConfirmedEvent struct {
	EventID        string   `json:"event_id"`
	ReservationID  uint64   `json:"reservation_id"`
	UserID         uint64   `json:"user_id"`
	HotelID        uint64   `json:"hotel_id"`
	FloorID        uint64   `json:"floor_id"`
	CustomerName   string   `json:"customer_name"`
	CustomerMobile string   `json:"customer_mobile"`
	DiningDate     string   `json:"dining_date"`
	StartTime      string   `json:"start_time"`
	SeatIDs        []uint64 `json:"seat_ids"`
	ConfirmedAt    string   `json:"confirmed_at"`
}

// ReservationCancelledEvent is published after a cancellation commits,
// for both partial and full cancellations. SeatIDs lists only the
// seats released by this event.
type ReservationCancelledEvent struct {
	EventID       string   `json:"event_id"`
	ReservationID uint64   `json:"reservation_id"`
	HotelID       uint64   `json:"hotel_id"`
	Partial       bool     `json:"partial"`
	SeatIDs       []uint64 `json:"seat_ids"`
	CancelledAt   string   `json:"cancelled_at"`
}
