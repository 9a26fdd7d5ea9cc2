package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")

	ErrRateLimited = errors.New("rate limit exceeded")
)

type IssueNotFoundError struct{ IssueID int64 }

func (e *IssueNotFoundError) Error() string {
	return fmt.Sprintf("issue '%d' not found", e.IssueID)
}
func (e *IssueNotFoundError) Is(target error) bool { return target == ErrNotFound }

type UserNotFoundError struct{ UserID int64 }

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user '%d' not found", e.UserID)
}
func (e *UserNotFoundError) Is(target error) bool { return target == ErrNotFound }

type UserAlreadyExistsError struct{ Username string }

func (e *UserAlreadyExistsError) Error() string {
	return fmt.Sprintf("user '%s' already exists", e.Username)
}
func (e *UserAlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

// TooManyPhotosError is returned when a report carries more photos than allowed.
type TooManyPhotosError struct {
	Count int
	Max   int
}

func (e *TooManyPhotosError) Error() string {
	return fmt.Sprintf("too many photos: got %d, maximum %d allowed", e.Count, e.Max)
}
func (e *TooManyPhotosError) Is(target error) bool { return target == ErrValidation }

// FieldError marks a single invalid field of a domain object.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field '%s' %s", e.Field, e.Reason)
}
func (e *FieldError) Is(target error) bool { return target == ErrValidation }
