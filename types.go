package devconnect

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// CredentialStore persists user credential records. Implementations must
// enforce email uniqueness and return ErrDuplicateUser from Save when it
// is violated.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Save(ctx context.Context, user *User) (*User, error)
}

// ProfileStore persists developer profiles
type ProfileStore interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) (*Profile, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// TokenIssuer signs and verifies auth tokens
type TokenIssuer interface {
	Generate(userID string) (string, error)
	Validate(tokenString string) (*JWTClaims, error)
}

// Options is the immutable process configuration for the auth service.
// It is built once at startup and copied into the services that need it.
type Options struct {
	SigningKey string
	TokenTTL   time.Duration
	Issuer     string
	HashCost   int
	// UseHashid derives user ids from the email instead of random UUIDs
	UseHashid bool
}

// DefaultTokenTTL is one day
const DefaultTokenTTL = 24 * time.Hour

// WithDefaults fills zero values
func (o Options) WithDefaults() Options {
	if o.TokenTTL <= 0 {
		o.TokenTTL = DefaultTokenTTL
	}
	if o.HashCost == 0 {
		o.HashCost = passwordHashCost()
	}
	return o
}
