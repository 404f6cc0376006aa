package auth

import (
	"log/slog"

	"galaxy-server/internal/auth/providers"
	"galaxy-server/internal/shared/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

type OAuthConfig struct {
	GitHubProvider   *providers.GitHubProvider
	GitHubConfigured bool
}

func InitOAuth(cfg *config.Config) *OAuthConfig {
	logger := slog.With("component", "oauth", "operation", "init")

	githubConfig := &oauth2.Config{
		ClientID:     cfg.OAuth.GitHub.ClientID,
		ClientSecret: cfg.OAuth.GitHub.ClientSecret,
		RedirectURL:  cfg.OAuth.GitHub.RedirectURL,
		Scopes:       cfg.OAuth.GitHub.Scopes,
		Endpoint:     github.Endpoint,
	}

	githubConfigured := cfg.GitHubOAuthConfigured()

	logger.Info("OAuth configuration completed",
		"github_configured", githubConfigured,
		"github_redirect", githubConfig.RedirectURL,
	)

	if !githubConfigured {
		logger.Warn("GitHub OAuth not configured - missing client credentials")
	}

	return &OAuthConfig{
		GitHubProvider:   providers.NewGitHubProvider(githubConfig),
		GitHubConfigured: githubConfigured,
	}
}
