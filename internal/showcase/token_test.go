package showcase

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenMaker_RoundTrip(t *testing.T) {
	tm := NewTokenMaker("secret-secret-secret-secret-secret")

	tok, err := tm.New("s_123", time.Minute)
	require.NoError(t, err)

	id, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "s_123", id)
}

func TestTokenMaker_Rejects(t *testing.T) {
	tm := NewTokenMaker("secret-secret-secret-secret-secret")

	expired, err := tm.New("s_123", -time.Minute)
	require.NoError(t, err)
	_, err = tm.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := NewTokenMaker("other-other-other-other-other-other").New("s_123", time.Minute)
	require.NoError(t, err)
	_, err = tm.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "s_123",
		Issuer:  "product-showcase",
	}).SignedString([]byte("secret-secret-secret-secret-secret"))
	require.NoError(t, err)
	_, err = tm.Parse(noExpiry)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestStars(t *testing.T) {
	assert.Equal(t, []bool{true, true, true, true, false}, stars(4.8))
	assert.Equal(t, []bool{true, true, true, true, true}, stars(5))
	assert.Equal(t, []bool{false, false, false, false, false}, stars(0.9))
}
