package devconnect

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"

	"github.com/goliatone/go-devconnect/middleware/jwtware"
)

// ServerErrorMessage is the opaque body message for unexpected failures
const ServerErrorMessage = "Server error"

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// NewErrorHandler maps error kinds to status codes and writes the one log
// entry for the failed request.
func NewErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger()
	}

	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			logger.Info("request rejected", "status", fe.Code, "error", fe.Message, "path", c.Path())
			return c.Status(fe.Code).JSON(ErrorResponse{
				Errors: []FieldError{{Msg: fe.Message}},
			})
		}

		kind := KindOf(err)
		status := kind.StatusCode()

		switch kind {
		case KindValidation:
			fields := FieldErrorsFrom(err)
			if len(fields) == 0 {
				fields = []FieldError{{Msg: messageOf(err)}}
			}
			logger.Info("request validation failed", "kind", kind.String(), "path", c.Path(), "fields", len(fields))
			return c.Status(status).JSON(ErrorResponse{Errors: fields})

		case KindDuplicateUser, KindInvalidCredentials, KindProfileNotFound:
			logger.Info("request rejected", "kind", kind.String(), "path", c.Path())
			return c.Status(status).JSON(ErrorResponse{
				Errors: []FieldError{{Msg: messageOf(err)}},
			})

		case KindUnauthorized:
			logger.Warn("request unauthorized", "error", err, "path", c.Path())
			return jwtware.DefaultErrorHandler(c, err)

		default:
			logger.Error("request failed",
				"error", err,
				"path", c.Path(),
				"method", c.Method(),
				"details", print.MaybePrettyJSON(metadataOf(err)),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Errors: []FieldError{{Msg: ServerErrorMessage}},
			})
		}
	}
}

func messageOf(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr != nil {
		return richErr.Message
	}
	return err.Error()
}

func metadataOf(err error) map[string]any {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr != nil {
		return richErr.Metadata
	}
	return nil
}

// ProtectedRoute returns the token gate for routes that need an identity
func ProtectedRoute(auther *Auther, logger Logger, contextKey string) fiber.Handler {
	if logger == nil {
		logger = defLogger()
	}
	return jwtware.New(jwtware.Config{
		TokenValidator:  JWTValidator(auther.TokenService()),
		ContextEnricher: ClaimsContextEnricher,
		ContextKey:      contextKey,
		Logger:          logger,
	})
}
