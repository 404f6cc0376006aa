package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewTokenIssuer_ShortSecret(t *testing.T) {
	_, err := NewTokenIssuer("short", time.Hour)
	assert.Error(t, err)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := issuer.Generate("github", "42", "octocat", "The Octocat", "cat@example.com")
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "octocat", claims.Login)
	assert.Equal(t, "github", claims.Provider)
	assert.Equal(t, "github_42", claims.Subject)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	now := time.Now()
	issuer.now = func() time.Time { return now }

	token, err := issuer.Generate("github", "42", "octocat", "", "")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	a, err := NewTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	b, err := NewTokenIssuer(testSecret+"-other", time.Hour)
	require.NoError(t, err)

	token, err := a.Generate("github", "1", "x", "", "")
	require.NoError(t, err)

	_, err = b.Validate(token)
	assert.Error(t, err)
	_, err = a.Validate("not-a-token")
	assert.Error(t, err)
}
