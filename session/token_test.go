package session_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/campushub/admission-portal/session"
)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeToken(t *testing.T) {
	t.Run("extracts identity claims without verification", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{
			"user_id":  float64(42),
			"username": "amina",
			"role":     "ETUDIANT",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})

		claims := session.DecodeToken(raw)
		require.NotNil(t, claims)
		require.Equal(t, int64(42), claims.UserID)
		require.Equal(t, "amina", claims.Username)
		require.Equal(t, "ETUDIANT", claims.Role)
	})

	t.Run("malformed token yields nil", func(t *testing.T) {
		require.Nil(t, session.DecodeToken("not-a-token"))
		require.Nil(t, session.DecodeToken("only.two"))
		require.Nil(t, session.DecodeToken("a.b.c.d"))
		require.Nil(t, session.DecodeToken(""))
	})

	t.Run("non-base64 payload yields nil", func(t *testing.T) {
		require.Nil(t, session.DecodeToken("header.!!!not-base64!!!.sig"))
	})
}

func TestIsExpired(t *testing.T) {
	t.Run("future expiry is not expired", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
		require.False(t, session.IsExpired(raw))
	})

	t.Run("past expiry is expired", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
		require.True(t, session.IsExpired(raw))
	})

	t.Run("undecodable token is expired", func(t *testing.T) {
		require.True(t, session.IsExpired("garbage"))
		require.True(t, session.IsExpired(""))
	})

	t.Run("missing exp claim is not expired", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{"username": "amina"})
		require.False(t, session.IsExpired(raw))
	})
}
