package jwtauth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := Issue(secret, "u1", "ana@example.com", "user", time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestParse_Rejects(t *testing.T) {
	secret := []byte("s3cret")

	expired, err := Issue(secret, "u1", "", "user", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = Parse(secret, expired)
	assert.Error(t, err, "expired token")

	other, err := Issue([]byte("other"), "u1", "", "user", time.Hour, time.Now())
	require.NoError(t, err)
	_, err = Parse(secret, other)
	assert.Error(t, err, "wrong secret")

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = Parse(secret, noSub)
	assert.Error(t, err, "missing subject")

	_, err = Parse(nil, "whatever")
	assert.ErrorIs(t, err, ErrSecretMissing)
}
