package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// MaxRequestBodyBytes caps the size of a decoded JSON body.
const MaxRequestBodyBytes = 1 << 20

// Validate is the shared validator used for all request structs.
// Field names in errors are the JSON names, not the Go names.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// letterdigit requires at least one letter and one digit.
	if err := v.RegisterValidation("letterdigit", func(fl validator.FieldLevel) bool {
		var hasLetter, hasDigit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasLetter && hasDigit
	}); err != nil {
		panic(fmt.Sprintf("register letterdigit validation: %v", err))
	}

	return v
}

// DecodeJSON decodes the request body into v.
// Bodies larger than MaxRequestBodyBytes are rejected.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return io.EOF
	}
	return json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodyBytes)).Decode(v)
}

// ValidateRequest runs the struct tags of v through the shared validator.
// The first failing field is reported as a *domain.ValidationError.
func ValidateRequest(v interface{}) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return domain.NewValidationError("", "invalid request", domain.ErrValidation)
	}

	fe := validationErrs[0]
	return domain.NewValidationError(fe.Field(), tagMessage(fe), fieldSentinel(fe.Field()))
}

func fieldSentinel(field string) error {
	switch field {
	case "username":
		return domain.ErrInvalidUsername
	case "password":
		return domain.ErrInvalidPassword
	case "status":
		return domain.ErrInvalidTaskStatus
	default:
		return domain.ErrValidation
	}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "alphanum":
		return "must contain only letters and digits"
	case "letterdigit":
		return "must contain at least one letter and one number"
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return "is invalid"
	}
}
