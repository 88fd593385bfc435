package model

import "time"

// Hotel represents a venue made up of floors, tables and seats.
// This struct corresponds to a row in the `hotels` table.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – hotel name.
//  LocationID – ID of the location the hotel belongs to (nil if unassigned).
//  Address    – street address of the hotel.
//  FloorCount – number of floors declared for the hotel.
//  CreatedAt  – timestamp when the hotel was created.
//  UpdatedAt  – timestamp of last update.
type Hotel struct {
	ID         uint64    // hotels.id
	Name       string    // hotels.name
	LocationID *uint64   // hotels.location_id (nullable)
	Address    string    // hotels.address
	FloorCount uint32    // hotels.floor_count
	CreatedAt  time.Time // hotels.created_at
	UpdatedAt  time.Time // hotels.updated_at
}

// Location is a named area used to group hotels for browse filters.
type Location struct {
	ID   uint64 // locations.id
	Name string // locations.name
}
