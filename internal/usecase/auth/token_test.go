package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndVerify(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	token, err := v.Issue("alex@example.com", "user-1", time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", id.Email)
	assert.Equal(t, "user-1", id.Subject)
}

func TestVerifyRejects(t *testing.T) {
	v := NewTokenVerifier(testSecret)

	expired := NewTokenVerifier(testSecret)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue("alex@example.com", "user-1", time.Hour)
	require.NoError(t, err)

	other, err := NewTokenVerifier("ffffffffffffffffffffffffffffffff").Issue("alex@example.com", "user-1", time.Hour)
	require.NoError(t, err)

	noEmail, err := v.Issue("", "user-1", time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Email: "alex@example.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"expired":      old,
		"wrong secret": other,
		"no email":     noEmail,
		"unsigned":     none,
		"garbage":      "not-a-token",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(token)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}

	_, err = v.Verify("  ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken(""))
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), &Identity{Email: "a@example.com"})
	id, ok := IdentityFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "a@example.com", id.Email)
}
