package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakerRoundTrip(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("client@example.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "client@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestMakerParseErrors(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	t.Run("чужой секрет", func(t *testing.T) {
		other := NewMaker("another-secret", time.Hour)
		token, err := other.GenerateToken("client@example.com", "user")
		require.NoError(t, err)

		_, err = maker.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("просроченный токен", func(t *testing.T) {
		expired := NewMaker("test-secret", -time.Minute)
		token, err := expired.GenerateToken("client@example.com", "user")
		require.NoError(t, err)

		_, err = maker.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("мусор вместо токена", func(t *testing.T) {
		_, err := maker.ParseToken("not.a.token")
		assert.Error(t, err)
	})
}
