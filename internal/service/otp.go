package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrOTPUnavailable is returned when no Redis client is configured, so
// OTP login cannot be offered.
var ErrOTPUnavailable = errors.New("otp store unavailable")

// ErrOTPMismatch is returned when the submitted code does not match
// the issued one or the code has expired.
var ErrOTPMismatch = errors.New("invalid or expired otp")

// OTPStore issues and verifies one-time login codes for mobile
// numbers. Only the SHA-256 hash of a code is stored, under a
// per-mobile key with a TTL; verifying a code consumes it.
type OTPStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewOTPStore constructs an OTPStore. A nil client is allowed and
// makes Issue/Verify fail with ErrOTPUnavailable so the server can run
// without Redis.
func NewOTPStore(rdb *redis.Client, ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OTPStore{rdb: rdb, ttl: ttl}
}

// Issue generates a six-digit code for the mobile number, stores its
// hash and returns the plain code for delivery. Re-issuing replaces
// any previous code for the same number.
func (s *OTPStore) Issue(ctx context.Context, mobile string) (string, error) {
	if s.rdb == nil {
		return "", ErrOTPUnavailable
	}
	code, err := randomCode()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, otpKey(mobile), hashCode(code), s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks the submitted code against the stored hash and deletes
// it on success so a code can be used only once.
func (s *OTPStore) Verify(ctx context.Context, mobile, code string) error {
	if s.rdb == nil {
		return ErrOTPUnavailable
	}
	stored, err := s.rdb.Get(ctx, otpKey(mobile)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrOTPMismatch
		}
		return err
	}
	if stored != hashCode(code) {
		return ErrOTPMismatch
	}
	return s.rdb.Del(ctx, otpKey(mobile)).Err()
}

func otpKey(mobile string) string { return "otp:" + mobile }

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// randomCode returns a cryptographically random six-digit code,
// zero-padded.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
