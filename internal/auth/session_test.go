package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/serroba/wardrobe-go/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-session-secret-minimum-32-characters"

func TestSessions(t *testing.T) {
	t.Run("round trips the user id", func(t *testing.T) {
		s := auth.NewSessions(testSecret, "wardrobe", time.Hour)

		token, err := s.Issue("user-1")
		require.NoError(t, err)

		userID, err := s.Verify(token)

		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := auth.NewSessions("another-secret-that-is-also-long-enough", "wardrobe", time.Hour)

		token, err := other.Issue("user-1")
		require.NoError(t, err)

		_, err = auth.NewSessions(testSecret, "wardrobe", time.Hour).Verify(token)

		assert.ErrorIs(t, err, auth.ErrInvalidSession)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		s := auth.NewSessions(testSecret, "wardrobe", -time.Minute)

		token, err := s.Issue("user-1")
		require.NoError(t, err)

		_, err = s.Verify(token)

		assert.ErrorIs(t, err, auth.ErrInvalidSession)
	})

	t.Run("rejects a foreign issuer", func(t *testing.T) {
		token, err := auth.NewSessions(testSecret, "someone-else", time.Hour).Issue("user-1")
		require.NoError(t, err)

		_, err = auth.NewSessions(testSecret, "wardrobe", time.Hour).Verify(token)

		assert.ErrorIs(t, err, auth.ErrInvalidSession)
	})

	t.Run("rejects the none algorithm", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "wardrobe",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = auth.NewSessions(testSecret, "wardrobe", time.Hour).Verify(token)

		assert.ErrorIs(t, err, auth.ErrInvalidSession)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := auth.NewSessions(testSecret, "wardrobe", time.Hour).Verify("not-a-token")

		assert.ErrorIs(t, err, auth.ErrInvalidSession)
	})

	t.Run("requires a secret", func(t *testing.T) {
		s := auth.NewSessions("", "wardrobe", time.Hour)

		_, err := s.Issue("user-1")
		require.ErrorIs(t, err, auth.ErrNoSecret)

		_, err = s.Verify("anything")
		assert.ErrorIs(t, err, auth.ErrNoSecret)
	})
}
