package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
)

// HotelRepo provides read access to the hotel catalog. Provisioning is
// owned by an external admin tool; this service only consumes the
// catalog for existence checks and browse views.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the given DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

// GetByID retrieves a hotel by its id.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = `SELECT id, name, location_id, address, floor_count, created_at, updated_at
	           FROM hotels WHERE id = ?`
	var (
		h     model.Hotel
		locID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&h.ID, &h.Name, &locID, &h.Address, &h.FloorCount, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	if locID.Valid {
		id := uint64(locID.Int64)
		h.LocationID = &id
	}
	return &h, nil
}

// HotelSummary is a hotel row enriched with catalog counts for the
// browse listing.
type HotelSummary struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	LocationID *uint64 `json:"location_id,omitempty"`
	Address    string  `json:"address"`
	FloorCount uint32  `json:"floor_count"`
	TableCount uint32  `json:"table_count"`
	SeatCount  uint32  `json:"seat_count"`
}

// List returns hotels matching the optional search term, which is
// matched against the hotel name and the location name.
func (r *HotelRepo) List(ctx context.Context, term string) ([]HotelSummary, error) {
	q := `SELECT h.id, h.name, h.location_id, h.address, h.floor_count,
	             (SELECT COUNT(*) FROM tables t WHERE t.hotel_id = h.id),
	             (SELECT COUNT(*) FROM seats s JOIN tables t ON t.id = s.table_id WHERE t.hotel_id = h.id)
	      FROM hotels h
	      LEFT JOIN locations l ON l.id = h.location_id`
	args := []interface{}{}
	if term != "" {
		q += ` WHERE h.name LIKE ? OR l.name LIKE ?`
		like := "%" + term + "%"
		args = append(args, like, like)
	}
	q += ` ORDER BY h.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]HotelSummary, 0)
	for rows.Next() {
		var (
			s     HotelSummary
			locID sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.Name, &locID, &s.Address, &s.FloorCount, &s.TableCount, &s.SeatCount); err != nil {
			return nil, err
		}
		if locID.Valid {
			id := uint64(locID.Int64)
			s.LocationID = &id
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
