package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc, err := NewTokenService("secret", 1, false)
	require.NoError(t, err)

	token, err := svc.Issue(Identity{UserID: "u-1", Email: "doc@example.com", Name: "Dr. Test", Role: "doctor"})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID())
	assert.Equal(t, "doc@example.com", claims.Email)
	assert.Equal(t, "doctor", claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	a, _ := NewTokenService("secret-a", 1, false)
	b, _ := NewTokenService("secret-b", 1, false)

	token, err := a.Issue(Identity{UserID: "u-1"})
	require.NoError(t, err)

	_, err = b.Verify(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc, _ := NewTokenService("secret", 1, false)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.Issue(Identity{UserID: "u-1"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	svc, _ := NewTokenService("secret", 1, false)
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc, _ := NewTokenService("secret", 1, false)
	for _, tok := range []string{"", "   ", "a.b", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestNewTokenServiceRequiresSecretInProduction(t *testing.T) {
	_, err := NewTokenService("", 24, true)
	assert.ErrorIs(t, err, ErrMissingSecret)

	svc, err := NewTokenService("", 0, false)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, svc.ttl)
}

func TestIssueRequiresUserID(t *testing.T) {
	svc, _ := NewTokenService("secret", 1, false)
	_, err := svc.Issue(Identity{})
	assert.Error(t, err)
}
