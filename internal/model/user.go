package model

import "time"

// Role values stored in users.role.
const (
	RoleCustomer = "CUSTOMER"
	RoleStaff    = "STAFF"
)

// User represents an application user as stored in the `users` table.
// Customers sign in with an OTP against their mobile number and have
// no password; staff accounts carry a bcrypt hash.  The json tags are
// omitted because these structs are used by the repository layer;
// handlers define their own response types.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name (may be empty for OTP-created users).
//  Email        – email address, unique when set.
//  Mobile       – mobile number, unique, the OTP login identity.
//  PasswordHash – bcrypt hash for staff logins (empty for customers).
//  Role         – role name (CUSTOMER or STAFF).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	Mobile       string    // users.mobile
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only
// the SHA-256 hash of the issued token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
