package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
)

const githubAPIURL = "https://api.github.com"

type githubUserInfo struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

type GitHubProvider struct {
	config *oauth2.Config
	apiURL string
}

func NewGitHubProvider(config *oauth2.Config) *GitHubProvider {
	return &GitHubProvider{config: config, apiURL: githubAPIURL}
}

func (p *GitHubProvider) Name() string {
	return "github"
}

func (p *GitHubProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	logger := slog.With("provider", "github", "operation", "exchange")
	logger.Debug("Exchanging authorization code for GitHub access token")

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange GitHub authorization code", "error", err)
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	return token, nil
}

// Identify fetches the profile and, when the profile hides it, the primary
// verified email.
func (p *GitHubProvider) Identify(ctx context.Context, token *oauth2.Token) (*Identity, error) {
	client := p.config.Client(ctx, token)
	logger := slog.With("provider", "github", "operation", "identify")

	var info githubUserInfo
	if err := p.getJSON(ctx, client, "/user", &info); err != nil {
		logger.Error("Failed to request user info from GitHub", "error", err)
		return nil, err
	}

	if info.ID == 0 {
		return nil, fmt.Errorf("GitHub user info missing user ID")
	}

	user := &Identity{
		ID:        strconv.Itoa(info.ID),
		Login:     info.Login,
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.AvatarURL,
	}

	var emails []githubEmail
	if err := p.getJSON(ctx, client, "/user/emails", &emails); err != nil {
		logger.Warn("Failed to fetch GitHub user emails", "error", err)
		return user, nil
	}

	if email, ok := pickEmail(emails); ok {
		user.Email = email
		user.EmailVerified = true
	}

	logger.Debug("Successfully retrieved GitHub user info",
		"user_id", user.ID,
		"login", user.Login,
		"email_verified", user.EmailVerified)

	return user, nil
}

func (p *GitHubProvider) getJSON(ctx context.Context, client *http.Client, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to request %s from GitHub: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GitHub API %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode GitHub %s response: %w", path, err)
	}
	return nil
}

// pickEmail prefers the primary verified address over any other verified one.
func pickEmail(emails []githubEmail) (string, bool) {
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, true
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, true
		}
	}
	return "", false
}
