package providers

import (
	"context"

	"golang.org/x/oauth2"
)

// Identity is who a provider says signed in. Login is the handle the editor
// allowlist matches against.
type Identity struct {
	ID            string
	Login         string
	Name          string
	Email         string
	EmailVerified bool
	AvatarURL     string
}

// DisplayName falls back to the login when the profile has no name.
func (i *Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Login
}

// Provider drives one OAuth authorization-code flow.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Identify(ctx context.Context, token *oauth2.Token) (*Identity, error)
}
