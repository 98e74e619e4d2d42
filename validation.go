package devconnect

import (
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

// MinPasswordLength for new accounts
const MinPasswordLength = 6

// FieldError is a single violated field as returned to clients
type FieldError struct {
	Param string `json:"param,omitempty"`
	Msg   string `json:"msg"`
}

// RegisterUserMessage is the registration payload
type RegisterUserMessage struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (r RegisterUserMessage) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("Name is required")),
		validation.Field(&r.Email,
			validation.Required.Error("Please include a valid email"),
			is.Email.Error("Please include a valid email"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Please enter a password with 6 or more characters"),
			validation.Length(MinPasswordLength, 0).Error("Please enter a password with 6 or more characters"),
		),
	)
}

// LoginMessage is the login payload
type LoginMessage struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (r LoginMessage) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("Please include a valid email"),
			is.Email.Error("Please include a valid email"),
		),
		validation.Field(&r.Password, validation.Required.Error("Password is required")),
	)
}

// ProfileMessage creates or updates the caller's profile
type ProfileMessage struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
}

// Validate will validate the payload
func (r ProfileMessage) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required.Error("Status is required")),
		validation.Field(&r.Skills, validation.Required.Error("Skills is required")),
		validation.Field(&r.Website, is.URL.Error("Website must be a valid URL")),
	)
}

// NewValidationError converts ozzo validation output into a rich error
// carrying every violated field under the "fields" metadata key.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}

	fields := FormatValidationErrors(err)
	return goerrors.New("Validation failed", goerrors.CategoryValidation).
		WithTextCode(TextCodeValidation).
		WithCode(goerrors.CodeBadRequest).
		WithMetadata(map[string]any{"fields": fields})
}

// FormatValidationErrors flattens validation.Errors into a stable list
func FormatValidationErrors(err error) []FieldError {
	verrs, ok := err.(validation.Errors)
	if !ok {
		return []FieldError{{Msg: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		out = append(out, FieldError{Param: field, Msg: ferr.Error()})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Param < out[j].Param })
	return out
}

// FieldErrorsFrom returns the field list attached by NewValidationError
func FieldErrorsFrom(err error) []FieldError {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) || richErr == nil || richErr.Metadata == nil {
		return nil
	}
	fields, _ := richErr.Metadata["fields"].([]FieldError)
	return fields
}
