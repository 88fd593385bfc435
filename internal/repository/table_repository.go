package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
)

// TableRepo provides read access to dining tables.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo constructs a TableRepo with the given DB handle.
func NewTableRepo(db *sql.DB) *TableRepo {
	return &TableRepo{db: db}
}

// GetByID retrieves a table by its id.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	const q = `SELECT id, hotel_id, floor_id, table_number, created_at, updated_at
	           FROM tables WHERE id = ?`
	var t model.Table
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&t.ID, &t.HotelID, &t.FloorID, &t.TableNumber, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByFloor retrieves all tables of a floor ordered by table number.
func (r *TableRepo) ListByFloor(ctx context.Context, floorID uint64) ([]model.Table, error) {
	const q = `SELECT id, hotel_id, floor_id, table_number, created_at, updated_at
	           FROM tables
	           WHERE floor_id = ?
	           ORDER BY table_number`
	rows, err := r.db.QueryContext(ctx, q, floorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.HotelID, &t.FloorID, &t.TableNumber, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// NextSeatNumber returns the seat number to assign when adding seats
// to a table (one past the current maximum, or 1 for an empty table).
func (r *TableRepo) NextSeatNumber(ctx context.Context, tableID uint64) (uint32, error) {
	const q = `SELECT COALESCE(MAX(seat_number), 0) FROM seats WHERE table_id = ?`
	var max uint32
	if err := r.db.QueryRowContext(ctx, q, tableID).Scan(&max); err != nil {
		return 0, err
	}
	return max + 1, nil
}
