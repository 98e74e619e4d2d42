package devconnect

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// Auther registers users, authenticates logins and resolves identities
// from tokens. It holds no per request state. Failures are returned, not
// logged: the HTTP error handler writes the single log entry per request.
type Auther struct {
	users    CredentialStore
	profiles ProfileStore
	hasher   PasswordAuthenticator
	tokens   TokenIssuer
	opts     Options
	avatar   func(email string) string
	logger   Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthenticator returns a new Auther
func NewAuthenticator(users CredentialStore, opts Options) *Auther {
	opts = opts.WithDefaults()
	logger := defLogger()

	return &Auther{
		users:  users,
		hasher: NewBcryptHasher(opts.HashCost),
		tokens: NewTokenService(opts, logger),
		opts:   opts,
		avatar: func(email string) string {
			return GravatarURL(email, DefaultAvatarOptions)
		},
		logger: logger,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger == nil {
		return s
	}
	s.logger = logger
	if ts, ok := s.tokens.(*TokenService); ok {
		ts.logger = logger
	}
	return s
}

// WithProfileStore enables the profile operations
func (s *Auther) WithProfileStore(store ProfileStore) *Auther {
	s.profiles = store
	return s
}

// WithTokenService replaces the default HS256 token service
func (s *Auther) WithTokenService(tokens TokenIssuer) *Auther {
	if tokens != nil {
		s.tokens = tokens
	}
	return s
}

// WithPasswordAuthenticator replaces the bcrypt hasher
func (s *Auther) WithPasswordAuthenticator(hasher PasswordAuthenticator) *Auther {
	if hasher != nil {
		s.hasher = hasher
	}
	return s
}

// WithAvatarFunc overrides avatar derivation
func (s *Auther) WithAvatarFunc(fn func(email string) string) *Auther {
	if fn != nil {
		s.avatar = fn
	}
	return s
}

// TokenService returns the token issuer used by this Auther
func (s *Auther) TokenService() TokenIssuer {
	return s.tokens
}

// Register creates a new account and returns a token for it
func (s *Auther) Register(ctx context.Context, msg RegisterUserMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "context cancelled during user registration")
	}

	msg.Email = NormalizeEmail(msg.Email)
	if err := msg.Validate(); err != nil {
		return "", NewValidationError(err)
	}

	email := msg.Email

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !IsUserNotFound(err) {
		return "", err
	}

	if existing != nil {
		return "", ErrDuplicateUser
	}

	hash, err := s.hasher.HashPassword(msg.Password)
	if err != nil {
		return "", err
	}

	now := time.Now()
	user := &User{
		Name:         msg.Name,
		Email:        email,
		Avatar:       s.avatar(email),
		PasswordHash: hash,
		CreatedAt:    &now,
	}

	if s.opts.UseHashid {
		id, err := hashid.NewUUID(email)
		if err != nil {
			s.logger.Warn("hashid user id failed, using a random id", "error", err)
		} else {
			user.ID = id
		}
	}

	user, err = s.users.Save(ctx, user)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Generate(user.ID.String())
	if err != nil {
		return "", err
	}

	s.logger.Info("user registered", "user_id", user.ID.String())

	return token, nil
}

// Login verifies the credentials and returns a token. Unknown emails and
// wrong passwords both produce ErrInvalidCredentials.
func (s *Auther) Login(ctx context.Context, msg LoginMessage) (string, error) {
	msg.Email = NormalizeEmail(msg.Email)
	if err := msg.Validate(); err != nil {
		return "", NewValidationError(err)
	}

	user, err := s.users.FindByEmail(ctx, msg.Email)
	if err != nil {
		if IsUserNotFound(err) {
			// keep the timing of unknown emails close to a real comparison
			_ = s.hasher.ComparePasswordAndHash(msg.Password, s.placeholderHash())
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := s.hasher.ComparePasswordAndHash(msg.Password, user.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID.String())
	if err != nil {
		return "", err
	}

	return token, nil
}

// SessionFromToken validates raw and returns its claims
func (s *Auther) SessionFromToken(raw string) (*JWTClaims, error) {
	claims, err := s.tokens.Validate(raw)
	if err != nil {
		s.logger.Debug("SessionFromToken validation failed", "error", err)
		return nil, err
	}
	return claims, nil
}

// CurrentUser loads the authenticated user, password hash excluded by
// the model's serialization.
func (s *Auther) CurrentUser(ctx context.Context, userID string) (*User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if IsUserNotFound(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}

// CurrentProfile loads the profile of the authenticated user
func (s *Auther) CurrentProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.profiles == nil {
		return nil, ErrProfileNotFound
	}

	profile, err := s.profiles.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile.User = profileUser(user)
	return profile, nil
}

// SaveProfile creates or updates the profile of the authenticated user
func (s *Auther) SaveProfile(ctx context.Context, userID string, msg ProfileMessage) (*Profile, error) {
	if err := msg.Validate(); err != nil {
		return nil, NewValidationError(err)
	}

	if s.profiles == nil {
		return nil, NewStoreError(goerrors.New("profile store not configured", goerrors.CategoryInternal), "failed to save profile")
	}

	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Upsert(ctx, &Profile{
		UserID:         user.ID,
		Company:        msg.Company,
		Website:        msg.Website,
		Location:       msg.Location,
		Status:         msg.Status,
		Skills:         SplitSkills(msg.Skills),
		Bio:            msg.Bio,
		GithubUsername: msg.GithubUsername,
	})
	if err != nil {
		return nil, err
	}

	profile.User = profileUser(user)
	return profile, nil
}

func (s *Auther) placeholderHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.HashPassword(uuid.NewString())
		if err != nil {
			s.logger.Warn("placeholder hash error", "error", err)
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func profileUser(u *User) *ProfileUser {
	return &ProfileUser{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
