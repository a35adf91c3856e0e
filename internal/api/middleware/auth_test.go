package middleware

import (
	"testing"
	"time"

	"brokerkit/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, memberID string) string {
	t.Helper()
	claims := utils.Claims{
		MemberID: memberID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseClaimsUsesConfiguredSecret(t *testing.T) {
	token := signToken(t, "configured-secret", "member-1")

	m := NewAuthMiddleware("configured-secret")
	claims, err := m.parseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "member-1", claims.MemberID)
}

func TestParseClaimsRejectsWrongSecret(t *testing.T) {
	token := signToken(t, "configured-secret", "member-1")

	m := NewAuthMiddleware("some-other-secret")
	_, err := m.parseClaims(token)
	assert.Error(t, err)
}

func TestParseClaimsRejectsUnsignedToken(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, utils.Claims{MemberID: "member-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	m := NewAuthMiddleware("configured-secret")
	_, err = m.parseClaims(unsigned)
	assert.Error(t, err)
}
