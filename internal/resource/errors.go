package resource

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches any ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNetwork matches any NetworkError.
	ErrNetwork = errors.New("remote call failed")
	// ErrNotFound matches any NotFoundError.
	ErrNotFound = errors.New("entity not found")
)

// FieldError names one rejected draft field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports a draft rejected locally. No request was sent.
type ValidationError struct {
	Resource string
	Fields   []FieldError
}

// Require adds a "required" field error when value is blank.
func (e *ValidationError) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "is required")
	}
}

// Add records a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Err returns e when it holds at least one field error, nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	prefix := "invalid draft"
	if e.Resource != "" {
		prefix = e.Resource + ": " + prefix
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NetworkError reports a transport failure or a non-success status.
type NetworkError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Method != "" {
		fmt.Fprintf(&b, " %s %s", e.Method, e.URL)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// NotFoundError reports an id missing from the local collection.
type NotFoundError struct {
	Resource string
	ID       ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no local entity with id %q", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AsNetworkError wraps err as a NetworkError unless it already is one or is
// a ValidationError raised by the remote before sending.
func AsNetworkError(op string, err error) error {
	if err == nil {
		return nil
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) || errors.Is(err, ErrValidation) {
		return err
	}
	return &NetworkError{Op: op, Err: err}
}
