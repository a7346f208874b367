package error

import (
	"fmt"
	"strings"

	"github.com/0xsj/overwatch-pkg/errors"
)

// Domain error codes
const (
	// Command errors
	CodeCommandRequired    errors.Code = "COMMAND_REQUIRED"
	CodeRepositoryRequired errors.Code = "REPOSITORY_REQUIRED"
	CodeValidatorRequired  errors.Code = "VALIDATOR_REQUIRED"
	CodeMapperRequired     errors.Code = "MAPPER_REQUIRED"
	CodeValidationFailed   errors.Code = "VALIDATION_FAILED"

	// User errors
	CodeUserNotFound               errors.Code = "USER_NOT_FOUND"
	CodeUserAlreadyExists          errors.Code = "USER_ALREADY_EXISTS"
	CodeUserIDRequired             errors.Code = "USER_ID_REQUIRED"
	CodeUserDIDRequired            errors.Code = "USER_DID_REQUIRED"
	CodeUserAlreadyActive          errors.Code = "USER_ALREADY_ACTIVE"
	CodeUserAlreadySuspended       errors.Code = "USER_ALREADY_SUSPENDED"
	CodeUserConcurrentModification errors.Code = "USER_CONCURRENT_MODIFICATION"
)

// Command errors
var (
	ErrCommandRequired = errors.New(errors.KindValidation, CodeCommandRequired, "command is required")

	ErrRepositoryRequired = errors.New(errors.KindValidation, CodeRepositoryRequired, "repository is required")

	ErrValidatorRequired = errors.New(errors.KindValidation, CodeValidatorRequired, "validator is required")

	ErrMapperRequired = errors.New(errors.KindValidation, CodeMapperRequired, "mapper is required")
)

// User errors
var (
	ErrUserNotFound = errors.New(errors.KindNotFound, CodeUserNotFound, "user not found")

	ErrUserAlreadyExists = errors.New(errors.KindConflict, CodeUserAlreadyExists, "user with this DID already exists")

	ErrUserIDRequired = errors.New(errors.KindValidation, CodeUserIDRequired, "user ID is required")

	ErrUserDIDRequired = errors.New(errors.KindValidation, CodeUserDIDRequired, "user DID is required")

	ErrUserAlreadyActive = errors.New(errors.KindDomain, CodeUserAlreadyActive, "user is already active")

	ErrUserAlreadySuspended = errors.New(errors.KindDomain, CodeUserAlreadySuspended, "user is already suspended")

	ErrUserConcurrentModification = errors.New(errors.KindConflict, CodeUserConcurrentModification, "user was modified concurrently")
)

// Violation is a single broken validation rule.
type Violation struct {
	Field   string
	Rule    string
	Message string
}

func (v Violation) String() string {
	if v.Message != "" {
		return fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return fmt.Sprintf("%s: failed %q", v.Field, v.Rule)
}

// ValidationError is returned by validators when an aggregate breaks one or
// more rules. It always carries at least one violation.
type ValidationError struct {
	Violations []Violation
}

// NewValidationError creates a ValidationError from the given violations.
func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Code returns the domain code for validation failures.
func (e *ValidationError) Code() errors.Code {
	return CodeValidationFailed
}

// Fields returns the names of the offending fields in order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}
