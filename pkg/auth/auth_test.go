package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"

	token, err := NewToken(secret, Identity{UserID: 42, IsAdmin: true}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.UserID)
	assert.True(t, identity.IsAdmin)
}

func TestParseTokenRejects(t *testing.T) {
	const secret = "test-secret"

	expired, err := NewToken(secret, Identity{UserID: 1}, -time.Minute)
	require.NoError(t, err)

	foreign, err := NewToken("another-secret", Identity{UserID: 1}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "expired token", raw: expired},
		{name: "wrong secret", raw: foreign},
		{name: "garbage", raw: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(secret, tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
}
