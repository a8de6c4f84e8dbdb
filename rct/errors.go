package rct

import "errors"

// Failure classes for the marshaling layer. Construction paths wrap these
// with fmt.Errorf and %w so callers can test with errors.Is.
var (
	// ErrInvalidFieldLength marks a fixed-width field supplied with a length
	// other than its required size (32 bytes for keys, 8 for amounts).
	ErrInvalidFieldLength = errors.New("invalid field length")

	// ErrShapeMismatch marks parallel sequences with unequal lengths for a
	// logically paired construct (L/R vectors, ring rows vs spend indices).
	ErrShapeMismatch = errors.New("shape mismatch")
)
