package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
	"github.com/iliyamo/hotel-table-reservation/internal/utils"
)

// UserRepo persists application users. Customers are identified by
// mobile number and created lazily on first OTP verification; staff
// accounts are email+password.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// ErrMobileExists is returned when registering an already-known mobile number.
var ErrMobileExists = errors.New("mobile number already registered")

const userColumns = `id, name, email, mobile, password_hash, role, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (model.User, error) {
	var (
		u           model.User
		name, email sql.NullString
		hash        sql.NullString
	)
	err := row.Scan(&u.ID, &name, &email, &u.Mobile, &hash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.Name = name.String
	u.Email = email.String
	u.PasswordHash = hash.String
	return u, nil
}

// EnsureByMobile returns the user with the given mobile number,
// creating a CUSTOMER row when none exists yet (OTP login
// auto-registers).
func (r *UserRepo) EnsureByMobile(ctx context.Context, mobile string) (model.User, error) {
	mobile = strings.TrimSpace(mobile)
	u, err := r.GetByMobile(ctx, mobile)
	if err == nil {
		return u, nil
	}
	if err != sql.ErrNoRows {
		return model.User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (mobile, role) VALUES (?, 'CUSTOMER')", mobile)
	if err != nil {
		// Lost a race with a concurrent first login for the same number.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return r.GetByMobile(ctx, mobile)
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// CreateStaff inserts a staff user with a bcrypt-hashed password and
// returns its ID.
func (r *UserRepo) CreateStaff(ctx context.Context, name, email, mobile, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, mobile, password_hash, role) VALUES (?,?,?,?,'STAFF')",
		name, email, strings.TrimSpace(mobile), hash)
	if err != nil {
		// Duplicate-key message names the violated unique index.
		if msg := strings.ToLower(err.Error()); strings.Contains(msg, "1062") {
			if strings.Contains(msg, "mobile") {
				return 0, ErrMobileExists
			}
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByMobile fetches a user by mobile number.
func (r *UserRepo) GetByMobile(ctx context.Context, mobile string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE mobile=? LIMIT 1", strings.TrimSpace(mobile)))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}
