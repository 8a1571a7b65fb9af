package ocr

import (
	"errors"
	"fmt"
)

// Error wraps an extraction failure with the operation that produced it.
type Error struct {
	Op      string
	Err     error
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap wraps err as an *Error unless it already is one.
func Wrap(op string, err error, details string) error {
	if err == nil {
		return nil
	}
	var oerr *Error
	if errors.As(err, &oerr) {
		return err
	}
	return &Error{Op: op, Err: err, Details: details}
}
