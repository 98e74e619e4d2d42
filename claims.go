package devconnect

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ClaimsUser is the identity payload carried by a token
type ClaimsUser struct {
	ID string `json:"id"`
}

// JWTClaims asserts {"user":{"id":...}} plus the registered claims
type JWTClaims struct {
	jwt.RegisteredClaims
	User ClaimsUser `json:"user"`
}

// UserID returns the user ID
func (c *JWTClaims) UserID() string {
	if c.User.ID != "" {
		return c.User.ID
	}
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
