package utils_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-table-reservation/internal/utils"
)

func TestNewAccessToken_Claims(t *testing.T) {
	const secret = "test-secret"
	access, err := utils.NewAccessToken(secret, 42, "STAFF", 15)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)

	tok, err := jwt.Parse(access.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "STAFF", claims["role"])
	assert.EqualValues(t, access.Exp.Unix(), claims["exp"])
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
	access, err := utils.NewAccessToken("right", 1, "CUSTOMER", 5)
	require.NoError(t, err)

	_, err = jwt.Parse(access.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
	a, err := utils.NewRefreshToken(30)
	require.NoError(t, err)
	b, err := utils.NewRefreshToken(30)
	require.NoError(t, err)

	assert.Len(t, a.Raw, 96)
	assert.NotEqual(t, a.Raw, b.Raw)
	assert.True(t, a.Exp.After(a.Exp.AddDate(0, 0, -1)))
}

func TestHashRefreshRaw(t *testing.T) {
	h1 := utils.HashRefreshRaw("token")
	h2 := utils.HashRefreshRaw("token")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, utils.HashRefreshRaw("other"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, utils.VerifyPassword(hash, "wrong"))
}
