package devconnect

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeValidation         = "VALIDATION_FAILED"
	TextCodeUserExists         = "USER_EXISTS"
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeUnauthorized       = "UNAUTHORIZED"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeTokenSigning       = "TOKEN_SIGNING"
	TextCodeProfileNotFound    = "PROFILE_NOT_FOUND"
	TextCodeStore              = "STORE_ERROR"
)

// ErrDuplicateUser is returned when registering an email that already exists
var ErrDuplicateUser = goerrors.New("User already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeUserExists).
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidCredentials covers both unknown emails and wrong passwords
var ErrInvalidCredentials = goerrors.New("Invalid credentials", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeBadRequest)

// ErrUnauthorized is the generic rejection for protected routes
var ErrUnauthorized = goerrors.New("Not authorized", goerrors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired token exp claim is in the past
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed token could not be parsed or verified
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenSigning signing failed, usually a misconfigured key
var ErrTokenSigning = goerrors.New("failed to sign token", goerrors.CategoryInternal).
	WithTextCode(TextCodeTokenSigning).
	WithCode(goerrors.CodeInternal)

// ErrProfileNotFound the authenticated user has no profile yet
var ErrProfileNotFound = goerrors.New("There is no profile for this user", goerrors.CategoryNotFound).
	WithTextCode(TextCodeProfileNotFound).
	WithCode(goerrors.CodeBadRequest)

// ErrNoEmptyString empty password given to the hasher
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryBadInput).
	WithTextCode(TextCodeValidation).
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword password does not match the stored hash
var ErrMismatchedHashAndPassword = goerrors.New("password does not match hash", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeBadRequest)

// ErrorKind is the closed set of outcomes the HTTP boundary maps to a status
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindDuplicateUser
	KindInvalidCredentials
	KindUnauthorized
	KindProfileNotFound
	KindStore
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindDuplicateUser:
		return "duplicate_user"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthorized:
		return "unauthorized"
	case KindProfileNotFound:
		return "profile_not_found"
	default:
		return "store"
	}
}

// StatusCode returns the HTTP status for the kind
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindNone:
		return http.StatusOK
	case KindValidation, KindDuplicateUser, KindInvalidCredentials, KindProfileNotFound:
		return goerrors.CodeBadRequest
	case KindUnauthorized:
		return goerrors.CodeUnauthorized
	default:
		return goerrors.CodeInternal
	}
}

// KindOf classifies err. Anything that is not one of the expected
// outcomes is KindStore.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	switch textCode(err) {
	case TextCodeValidation:
		return KindValidation
	case TextCodeUserExists:
		return KindDuplicateUser
	case TextCodeInvalidCredentials:
		return KindInvalidCredentials
	case TextCodeUnauthorized, TextCodeTokenExpired, TextCodeTokenMalformed:
		return KindUnauthorized
	case TextCodeProfileNotFound:
		return KindProfileNotFound
	default:
		return KindStore
	}
}

func textCode(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr != nil {
		return richErr.TextCode
	}
	return ""
}

// NewStoreError wraps a persistence failure. The message is kept for logs,
// clients only ever see "Server error".
func NewStoreError(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithTextCode(TextCodeStore).
		WithCode(goerrors.CodeInternal)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if textCode(err) == TextCodeTokenExpired {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if textCode(err) == TextCodeTokenMalformed {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
