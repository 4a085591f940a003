package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-api/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenManagerRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue(42)
	require.NoError(t, err)

	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.ID)
}

func TestTokenManagerExpiry(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager("secret", DefaultTokenTTL).WithClock(fixedClock(issued))

	token, err := m.Issue(7)
	require.NoError(t, err)

	_, err = m.WithClock(fixedClock(issued.Add(DefaultTokenTTL - time.Second))).Verify(token)
	assert.NoError(t, err)

	_, err = m.WithClock(fixedClock(issued.Add(DefaultTokenTTL + time.Second))).Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenManagerWithClockLeavesReceiverUntouched(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	stale := m.WithClock(fixedClock(time.Now().Add(-2 * time.Hour)))
	require.NotSame(t, m, stale)

	token, err := stale.Issue(3)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "token issued two hours ago is expired for the real clock")

	fresh, err := m.Issue(3)
	require.NoError(t, err)
	id, err := m.Verify(fresh)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id.ID)
}

func TestTokenManagerRejectsForeignTokens(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("another-secret", time.Hour)

	token, err := other.Issue(1)
	require.NoError(t, err)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = m.Verify("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, accessClaims{
		User: domain.Identity{ID: 1},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Verify(unsigned)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]any{"id": 1},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Verify(noExpiry)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
