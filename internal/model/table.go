package model

import "time"

// Table represents a dining table on a hotel floor.  The table number
// is unique within its hotel.  Seats attached to the table carry the
// actual availability state; the table itself holds no booking flag.
//
// Fields:
//  ID          – primary key identifier.
//  HotelID     – hotel the table belongs to.
//  FloorID     – floor the table is placed on.
//  TableNumber – table number unique per hotel.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Table struct {
	ID          uint64    // tables.id
	HotelID     uint64    // tables.hotel_id
	FloorID     uint64    // tables.floor_id
	TableNumber uint32    // tables.table_number
	CreatedAt   time.Time // tables.created_at
	UpdatedAt   time.Time // tables.updated_at
}
