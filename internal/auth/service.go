package auth

import (
	"log/slog"
	"strings"

	"galaxy-server/internal/auth/providers"
	"galaxy-server/internal/shared/errors"
)

// Service decides who may edit planets and issues their session tokens.
type Service struct {
	tokens  *TokenIssuer
	editors map[string]struct{}
	logger  *slog.Logger
}

func NewService(tokens *TokenIssuer, editorLogins []string, logger *slog.Logger) *Service {
	logger.Debug("Initializing auth service", "editor_count", len(editorLogins))

	editors := make(map[string]struct{}, len(editorLogins))
	for _, login := range editorLogins {
		editors[strings.ToLower(login)] = struct{}{}
	}

	return &Service{
		tokens:  tokens,
		editors: editors,
		logger:  logger,
	}
}

// CanEdit reports whether login is allowed to edit. An empty allowlist
// admits everyone.
func (s *Service) CanEdit(login string) bool {
	if len(s.editors) == 0 {
		return true
	}
	_, ok := s.editors[strings.ToLower(login)]
	return ok
}

// SignIn returns a session token for any provider user with a login.
// Editing is gated per request by CanEdit, not here.
func (s *Service) SignIn(provider string, user *providers.Identity) (string, error) {
	logger := s.logger.With("component", "auth_service", "operation", "sign_in", "provider", provider, "login", user.Login)

	if user.Login == "" {
		return "", errors.Validation("provider returned no login")
	}

	token, err := s.tokens.Generate(provider, user.ID, user.Login, user.DisplayName(), user.Email)
	if err != nil {
		return "", errors.WrapInternal("failed to create authentication token", err)
	}

	logger.Info("User signed in", "can_edit", s.CanEdit(user.Login))
	return token, nil
}

// ValidateToken checks the signature and expiry only; editor rights are
// checked separately by CanEdit.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.tokens.Validate(token)
}
