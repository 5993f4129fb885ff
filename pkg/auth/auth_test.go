package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, key string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	SetSecret("test-secret")

	token := sign(t, "test-secret", Claims{
		UserID:   7,
		Username: "counter",
		UserType: "cashier",
		Pages:    []string{"sells", "customers"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.True(t, claims.CanAccess("sells"))
	assert.False(t, claims.CanAccess("cash-management"))
}

func TestValidateTokenRejectsBadTokens(t *testing.T) {
	SetSecret("test-secret")

	_, err := ValidateToken(sign(t, "other-secret", Claims{Username: "x"}))
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := sign(t, "test-secret", Claims{
		Username: "x",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	_, err = ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	SetSecret("")
	_, err = ValidateToken("anything")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	SetSecret("test-secret")

	token, err := GenerateToken(3, "owner", "admin", []string{"dashboard", "users"}, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 3, claims.UserID)
	assert.Equal(t, "admin", claims.UserType)
	assert.True(t, claims.CanAccess("users"))
	assert.False(t, claims.CanAccess("sells"))

	expired, err := GenerateToken(3, "owner", "admin", nil, -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
