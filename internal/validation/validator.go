// package validation provides helper functions for request data validation.
// It uses the go-playground/validator library and includes custom validation rules.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/civictrack/issue-reporter/internal/apperrors"
	"github.com/civictrack/issue-reporter/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()

	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// init registers custom validation rules with the validator instance.
func init() {
	// Report errors with the JSON name of the field.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	rules := map[string]validator.Func{
		"username": func(fl validator.FieldLevel) bool {
			// Empty strings are left to the 'required' tag.
			return fl.Field().String() == "" || usernameRe.MatchString(fl.Field().String())
		},
		"issue_category": func(fl validator.FieldLevel) bool {
			return fl.Field().String() == "" || domain.IssueCategory(fl.Field().String()).Valid()
		},
		"issue_status": func(fl validator.FieldLevel) bool {
			return fl.Field().String() == "" || domain.IssueStatus(fl.Field().String()).Valid()
		},
		"user_role": func(fl validator.FieldLevel) bool {
			return fl.Field().String() == "" || domain.Role(fl.Field().String()).Valid()
		},
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register custom validation %q: %v", tag, err))
		}
	}
}

// ValidationError is a custom error type that holds a slice of validation error messages.
type ValidationError struct {
	Errors []string
}

// Error returns a single string concatenating all validation error messages.
func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

func (v *ValidationError) Is(target error) bool { return target == apperrors.ErrValidation }

// ValidateStruct performs validation on a given struct based on its validation tags.
// If validation fails, it returns a *ValidationError with user-friendly messages.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("failed to validate struct: %w", err)
	}

	messages := make([]string, 0, len(fieldErrors))

	for _, fe := range fieldErrors {
		messages = append(messages, message(fe))
	}

	return &ValidationError{Errors: messages}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", fe.Field())
	case "username":
		return fmt.Sprintf("field '%s' must contain only letters, numbers, dots, hyphens, and underscores", fe.Field())
	case "issue_category":
		return fmt.Sprintf("field '%s' must be one of ROADS, WATER, ELECTRICITY, WASTE, OTHER", fe.Field())
	case "issue_status":
		return fmt.Sprintf("field '%s' must be one of REPORTED, IN_PROGRESS, RESOLVED, HIDDEN", fe.Field())
	case "user_role":
		return fmt.Sprintf("field '%s' must be one of USER, ADMIN", fe.Field())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
	}
}
