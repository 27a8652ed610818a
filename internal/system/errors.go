package system

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NotFoundError reports a lookup miss for a named aggregate. The message
// format is stable and machine-diagnosable; callers match it with IsNotFound.
type NotFoundError struct {
	Kind string
	ID   any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find %s with Id %v :(", e.Kind, e.ID)
}

// NotFound constructs a NotFoundError for the given aggregate kind and id.
func NotFound(kind string, id any) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError carries all field violations at once instead of failing on
// the first bad field.
type ValidationError struct {
	FieldErrors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "Provided arguments are invalid, see data for details: " + strings.Join(fields, ", ")
}

// Validation constructs a ValidationError from a field -> reason map.
func Validation(fieldErrors map[string]string) error {
	return &ValidationError{FieldErrors: fieldErrors}
}

// AsValidation extracts a ValidationError if err is (or wraps) one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
