package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-table-reservation/internal/service"
)

func sha256hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestOTPStore_NilClient(t *testing.T) {
	otp := service.NewOTPStore(nil, time.Minute)

	_, err := otp.Issue(context.Background(), "09120000000")
	assert.ErrorIs(t, err, service.ErrOTPUnavailable)

	err = otp.Verify(context.Background(), "09120000000", "123456")
	assert.ErrorIs(t, err, service.ErrOTPUnavailable)
}

func TestOTPStore_Issue(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	otp := service.NewOTPStore(rdb, 2*time.Minute)

	// Only the SHA-256 hash of the code may reach Redis.
	mock.Regexp().ExpectSet("otp:09121112233", `^[0-9a-f]{64}$`, 2*time.Minute).SetVal("OK")

	code, err := otp.Issue(context.Background(), "09121112233")
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOTPStore_VerifyConsumesCode(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	otp := service.NewOTPStore(rdb, time.Minute)

	mock.ExpectGet("otp:09121112233").SetVal(sha256hex("123456"))
	mock.ExpectDel("otp:09121112233").SetVal(1)

	require.NoError(t, otp.Verify(context.Background(), "09121112233", "123456"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOTPStore_VerifyMismatch(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	otp := service.NewOTPStore(rdb, time.Minute)

	mock.ExpectGet("otp:09121112233").SetVal(sha256hex("123456"))
	err := otp.Verify(context.Background(), "09121112233", "654321")
	assert.ErrorIs(t, err, service.ErrOTPMismatch)

	// Expired or never-issued codes surface as a mismatch, not a
	// storage error.
	mock.ExpectGet("otp:09120000000").RedisNil()
	err = otp.Verify(context.Background(), "09120000000", "123456")
	assert.ErrorIs(t, err, service.ErrOTPMismatch)
}
