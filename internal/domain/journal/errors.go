package journal

import "errors"

// ErrInvalidInput indicates an invalid journal entry.
var ErrInvalidInput = errors.New("invalid journal input")
