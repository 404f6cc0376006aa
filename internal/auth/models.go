package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims identifies a signed-in editor.
type Claims struct {
	Login    string `json:"login"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}
