package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/estate-marketplace/internal/domain"
)

func testAccount() *domain.Account {
	return &domain.Account{
		ID:    "acc-123",
		Name:  "Dana Seller",
		Email: "dana@example.com",
		Role:  domain.RoleSeller,
	}
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.Issue(testAccount())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	principal, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "acc-123", principal.SubjectID)
	require.Equal(t, domain.RoleSeller, principal.Role)
	require.Equal(t, "dana@example.com", principal.Email)
	require.WithinDuration(t, exp, principal.ExpiresAt, time.Second)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).Issue(testAccount())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).ParseToken(token)
	require.Error(t, err)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	token, _, err := tm.Issue(testAccount())
	require.NoError(t, err)

	_, err = tm.ParseToken(token + "x")
	require.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	claims := &Claims{
		Role:  string(domain.RoleSeller),
		Email: "dana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acc-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret", 60).ParseToken(signed)
	require.Error(t, err)
}

func TestParseRejectsUnknownRole(t *testing.T) {
	claims := &Claims{
		Role:  "superuser",
		Email: "dana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acc-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret", 60).ParseToken(signed)
	require.Error(t, err)
}

func TestParseRejectsUnexpectedSigningMethod(t *testing.T) {
	claims := jwt.MapClaims{"sub": "acc-123", "role": "seller", "email": "dana@example.com"}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret", 60).ParseToken(unsigned)
	require.Error(t, err)
}
