package invoice

import "errors"

var (
	ErrUnknownElement     = errors.New("unknown visibility element")
	ErrInvalidCustomField = errors.New("invalid custom field")
	ErrCustomFieldMissing = errors.New("custom field not found")
	ErrDuplicateID        = errors.New("duplicate id")
)
