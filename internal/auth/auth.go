package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried in both access and refresh tokens.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator abstracts token issuance so the service can be tested
// without real signing keys.
type TokenGenerator interface {
	GenerateAccessToken(username, role string) (string, error)
	GenerateRefreshToken(username, role string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// AuthTokens is the pair returned on successful login.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
