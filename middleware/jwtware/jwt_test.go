package jwtware_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-devconnect/middleware/jwtware"
)

const (
	goodToken     = "good-token"
	anonToken     = "anon-token"
	genericDenial = `{"errors":[{"msg":"Not authorized"}]}`
)

type testClaims struct {
	id string
}

func (c testClaims) UserID() string { return c.id }

var errBadToken = errors.New("signature is invalid")

func testValidator() jwtware.TokenValidator {
	return jwtware.TokenValidatorFunc(func(raw string) (jwtware.AuthClaims, error) {
		switch raw {
		case goodToken:
			return testClaims{id: "user-1"}, nil
		case anonToken:
			return testClaims{}, nil
		default:
			return nil, errBadToken
		}
	})
}

type captureLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *captureLogger) Debug(string, ...any) {}

func (l *captureLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

type ctxKey struct{}

func newApp(cfg jwtware.Config) *fiber.App {
	app := fiber.New()
	app.Get("/private", jwtware.New(cfg), func(c *fiber.Ctx) error {
		claims, ok := c.Locals(jwtware.DefaultContextKey).(jwtware.AuthClaims)
		if !ok {
			claims, ok = c.Locals("identity").(jwtware.AuthClaims)
		}
		if !ok {
			return c.SendStatus(http.StatusTeapot)
		}
		if v, ok := c.UserContext().Value(ctxKey{}).(string); ok {
			c.Set("X-Context-User", v)
		}
		return c.SendString(claims.UserID())
	})
	return app
}

func send(t *testing.T, app *fiber.App, target string, headers map[string]string) (int, string, http.Header) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(body), res.Header
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		status  int
		body    string
	}{
		{
			name:    "x-auth-token header",
			headers: map[string]string{"x-auth-token": goodToken},
			status:  http.StatusOK,
			body:    "user-1",
		},
		{
			name:    "bearer authorization header",
			headers: map[string]string{"Authorization": "Bearer " + goodToken},
			status:  http.StatusOK,
			body:    "user-1",
		},
		{
			name:    "bearer scheme is case insensitive",
			headers: map[string]string{"Authorization": "bearer " + goodToken},
			status:  http.StatusOK,
			body:    "user-1",
		},
		{
			name:    "authorization without scheme",
			headers: map[string]string{"Authorization": goodToken},
			status:  http.StatusUnauthorized,
			body:    genericDenial,
		},
		{
			name:    "missing token",
			headers: nil,
			status:  http.StatusUnauthorized,
			body:    genericDenial,
		},
		{
			name:    "invalid token",
			headers: map[string]string{"x-auth-token": "forged"},
			status:  http.StatusUnauthorized,
			body:    genericDenial,
		},
		{
			name:    "claims without a user id",
			headers: map[string]string{"x-auth-token": anonToken},
			status:  http.StatusUnauthorized,
			body:    genericDenial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &captureLogger{}
			app := newApp(jwtware.Config{TokenValidator: testValidator(), Logger: logger})

			status, body, _ := send(t, app, "/private", tt.headers)

			assert.Equal(t, tt.status, status)
			if tt.status == http.StatusUnauthorized {
				assert.JSONEq(t, tt.body, body)
				assert.Len(t, logger.warns, 1)
				return
			}
			assert.Equal(t, tt.body, body)
			assert.Empty(t, logger.warns)
		})
	}
}

func TestJWTMiddleware_Config(t *testing.T) {
	t.Run("custom lookup", func(t *testing.T) {
		app := newApp(jwtware.Config{
			TokenValidator: testValidator(),
			TokenLookup:    "query:token,cookie:jwt",
		})

		status, body, _ := send(t, app, "/private?token="+goodToken, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "user-1", body)

		status, _, _ = send(t, app, "/private", map[string]string{"Cookie": "jwt=" + goodToken})
		assert.Equal(t, http.StatusOK, status)

		status, _, _ = send(t, app, "/private", map[string]string{"x-auth-token": goodToken})
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("custom context key", func(t *testing.T) {
		app := newApp(jwtware.Config{TokenValidator: testValidator(), ContextKey: "identity"})

		status, body, _ := send(t, app, "/private", map[string]string{"x-auth-token": goodToken})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "user-1", body)
	})

	t.Run("filter skips the check", func(t *testing.T) {
		app := newApp(jwtware.Config{
			TokenValidator: testValidator(),
			Filter:         func(c *fiber.Ctx) bool { return true },
		})

		status, _, _ := send(t, app, "/private", nil)
		assert.Equal(t, http.StatusTeapot, status)
	})

	t.Run("context enricher", func(t *testing.T) {
		app := newApp(jwtware.Config{
			TokenValidator: testValidator(),
			ContextEnricher: func(ctx context.Context, claims jwtware.AuthClaims) context.Context {
				return context.WithValue(ctx, ctxKey{}, claims.UserID())
			},
		})

		status, _, headers := send(t, app, "/private", map[string]string{"x-auth-token": goodToken})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "user-1", headers.Get("X-Context-User"))
	})

	t.Run("custom error handler", func(t *testing.T) {
		var got error
		app := newApp(jwtware.Config{
			TokenValidator: testValidator(),
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				got = err
				return c.SendStatus(http.StatusForbidden)
			},
		})

		status, _, _ := send(t, app, "/private", map[string]string{"x-auth-token": "forged"})
		assert.Equal(t, http.StatusForbidden, status)
		assert.ErrorIs(t, got, errBadToken)
	})

	t.Run("validator is required", func(t *testing.T) {
		assert.Panics(t, func() {
			jwtware.New(jwtware.Config{})
		})
	})
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := jwtware.GetDefaultConfig(jwtware.Config{TokenValidator: testValidator()})

	assert.Equal(t, jwtware.DefaultContextKey, cfg.ContextKey)
	assert.Equal(t, "header:x-auth-token,header:Authorization", cfg.TokenLookup)
	assert.Equal(t, "Bearer", cfg.AuthScheme)
	assert.NotNil(t, cfg.SuccessHandler)
	assert.NotNil(t, cfg.ErrorHandler)
}

func TestGetExtractors(t *testing.T) {
	assert.Len(t, jwtware.GetExtractors("header:x-auth-token,header:Authorization"), 2)
	assert.Len(t, jwtware.GetExtractors("header:a, query:b ,param:c,cookie:d"), 4)
	assert.Empty(t, jwtware.GetExtractors("bogus,form:x"))
}
