package devconnect

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-devconnect/middleware/jwtware"
)

var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the claims in the given context
func WithClaimsContext(ctx context.Context, claims *JWTClaims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

// GetClaims extracts the claims from the standard context
func GetClaims(ctx context.Context) (*JWTClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(*JWTClaims)
	return raw, ok && raw != nil
}

// GetRouterClaims extracts the claims stored by the JWT middleware
func GetRouterClaims(c *fiber.Ctx, key string) (*JWTClaims, bool) {
	if key == "" {
		key = jwtware.DefaultContextKey
	}
	raw, ok := c.Locals(key).(*JWTClaims)
	return raw, ok && raw != nil
}

// ClaimsContextEnricher is a jwtware.Config.ContextEnricher storing our claims
func ClaimsContextEnricher(ctx context.Context, claims jwtware.AuthClaims) context.Context {
	if c, ok := claims.(*JWTClaims); ok {
		return WithClaimsContext(ctx, c)
	}
	return ctx
}

// JWTValidator adapts a TokenIssuer to the middleware's validator
func JWTValidator(tokens TokenIssuer) jwtware.TokenValidator {
	return jwtware.TokenValidatorFunc(func(raw string) (jwtware.AuthClaims, error) {
		claims, err := tokens.Validate(raw)
		if err != nil {
			return nil, err
		}
		return claims, nil
	})
}
