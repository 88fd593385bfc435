package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
)

// FloorRepo provides read access to floors and their availability
// rollups.
type FloorRepo struct {
	db *sql.DB
}

// NewFloorRepo constructs a FloorRepo with the given DB handle.
func NewFloorRepo(db *sql.DB) *FloorRepo {
	return &FloorRepo{db: db}
}

// GetByID retrieves a floor by its id.
func (r *FloorRepo) GetByID(ctx context.Context, id uint64) (*model.Floor, error) {
	const q = `SELECT id, hotel_id, floor_number, created_at, updated_at FROM floors WHERE id = ?`
	var f model.Floor
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&f.ID, &f.HotelID, &f.FloorNumber, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrFloorNotFound
		}
		return nil, err
	}
	return &f, nil
}

// ExistsInHotel reports whether the floor belongs to the given hotel.
func (r *FloorRepo) ExistsInHotel(ctx context.Context, floorID, hotelID uint64) (bool, error) {
	const q = `SELECT 1 FROM floors WHERE id = ? AND hotel_id = ?`
	var one int
	err := r.db.QueryRowContext(ctx, q, floorID, hotelID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FloorAvailability summarizes seat availability per floor for the
// hotel browse view: total seats, seats currently AVAILABLE and the
// number of tables with at least one free seat.
type FloorAvailability struct {
	FloorID         uint64 `json:"floor_id"`
	FloorNumber     uint32 `json:"floor_number"`
	TotalSeats      uint32 `json:"total_seats"`
	AvailableSeats  uint32 `json:"available_seats"`
	AvailableTables uint32 `json:"available_tables"`
}

// AvailabilityByHotel computes the per-floor availability rollup in a
// single query. Floors without tables still appear with zero counts.
func (r *FloorRepo) AvailabilityByHotel(ctx context.Context, hotelID uint64) ([]FloorAvailability, error) {
	const q = `SELECT f.id, f.floor_number,
	                  COUNT(s.id),
	                  COALESCE(SUM(s.status = ?), 0),
	                  COUNT(DISTINCT CASE WHEN s.status = ? THEN t.id END)
	           FROM floors f
	           LEFT JOIN tables t ON t.floor_id = f.id
	           LEFT JOIN seats s ON s.table_id = t.id
	           WHERE f.hotel_id = ?
	           GROUP BY f.id, f.floor_number
	           ORDER BY f.floor_number`
	rows, err := r.db.QueryContext(ctx, q, model.SeatAvailable, model.SeatAvailable, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]FloorAvailability, 0)
	for rows.Next() {
		var fa FloorAvailability
		if err := rows.Scan(&fa.FloorID, &fa.FloorNumber, &fa.TotalSeats, &fa.AvailableSeats, &fa.AvailableTables); err != nil {
			return nil, err
		}
		result = append(result, fa)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
