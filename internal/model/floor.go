package model

import "time"

// Floor represents a single floor within a hotel.  Floors exist to
// group tables; the (hotel, floor number) pair is unique.
//
// Fields:
//  ID          – primary key identifier.
//  HotelID     – hotel the floor belongs to.
//  FloorNumber – 1-based position of the floor within the hotel.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Floor struct {
	ID          uint64    // floors.id
	HotelID     uint64    // floors.hotel_id
	FloorNumber uint32    // floors.floor_number
	CreatedAt   time.Time // floors.created_at
	UpdatedAt   time.Time // floors.updated_at
}
