package services

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrNotFoundOrDenied         = errors.New("not found or access denied")
	ErrReferenceNotFound        = &scopedError{parent: ErrNotFoundOrDenied, text: "referenced record not found"}
	ErrAccessDenied             = &scopedError{parent: ErrNotFoundOrDenied, text: "record belongs to another user"}
	ErrEmailTaken               = errors.New("email address already exists")
	ErrUnderage                 = errors.New("user is younger than the minimum age")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrIncorrectPassword        = errors.New("current password is incorrect")
	ErrPasswordUnchanged        = errors.New("new password matches the current one")
	ErrMedicationAlreadyStopped = errors.New("medication already stopped")
	ErrPersistence              = errors.New("persistence failure")
	ErrValidation               = errors.New("validation failed")
)

// scopedError is a sentinel that also matches its parent with errors.Is, so
// callers that only care about "not found" do not need to know why.
type scopedError struct {
	parent error
	text   string
}

func (err *scopedError) Error() string { return err.text }

func (err *scopedError) Unwrap() error { return err.parent }

// ValidationError lists the payload fields that were missing or out of range.
type ValidationError struct {
	Message string
	Fields  []string
}

func (err *ValidationError) Error() string { return err.Message }

func (err *ValidationError) Is(target error) bool { return target == ErrValidation }

func missingFieldsError(fields ...string) *ValidationError {
	return &ValidationError{Message: "Missing " + strings.Join(fields, ", "), Fields: fields}
}

func invalidFieldsError(fields ...string) *ValidationError {
	return &ValidationError{Message: "Invalid " + strings.Join(fields, ", "), Fields: fields}
}

func invalidInputError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}
