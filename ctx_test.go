package devconnect_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-devconnect"
)

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()

	_, ok := devconnect.GetClaims(ctx)
	assert.False(t, ok)

	claims := &devconnect.JWTClaims{User: devconnect.ClaimsUser{ID: uuid.NewString()}}
	ctx = devconnect.WithClaimsContext(ctx, claims)

	got, ok := devconnect.GetClaims(ctx)
	require.True(t, ok)
	assert.Same(t, claims, got)
}

func TestClaimsContextEnricher(t *testing.T) {
	claims := &devconnect.JWTClaims{User: devconnect.ClaimsUser{ID: uuid.NewString()}}

	ctx := devconnect.ClaimsContextEnricher(context.Background(), claims)

	got, ok := devconnect.GetClaims(ctx)
	require.True(t, ok)
	assert.Equal(t, claims.UserID(), got.UserID())
}

func TestJWTValidator(t *testing.T) {
	ts := devconnect.NewTokenService(testOptions(), testLogger())
	validator := devconnect.JWTValidator(ts)

	t.Run("valid token", func(t *testing.T) {
		userID := uuid.NewString()
		token, err := ts.Generate(userID)
		require.NoError(t, err)

		claims, err := validator.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID())
	})

	t.Run("invalid token yields a nil interface", func(t *testing.T) {
		claims, err := validator.Validate("garbage")
		assert.Error(t, err)
		assert.True(t, claims == nil)
	})
}
