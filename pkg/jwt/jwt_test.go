package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, claims, err := m.GenerateSessionToken(7, "test_user")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	parsed, err := m.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.UserID)
	assert.Equal(t, "test_user", parsed.Username)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestManager_RejectsForeignAndExpiredTokens(t *testing.T) {
	m := NewManager("secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	token, _, err := other.GenerateSessionToken(1, "u")
	require.NoError(t, err)
	_, err = m.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateSessionToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	past := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return past }
	token, _, err = m.GenerateSessionToken(1, "u")
	require.NoError(t, err)
	m.now = time.Now
	_, err = m.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_TokensAreUnique(t *testing.T) {
	m := NewManager("secret", time.Hour)
	_, a, err := m.GenerateSessionToken(1, "u")
	require.NoError(t, err)
	_, b, err := m.GenerateSessionToken(1, "u")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}
