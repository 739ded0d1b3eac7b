package inventory

import (
	"errors"
)

var (
	ErrClosed        = errors.New("inventory coordinator closed")
	ErrUnknownField  = errors.New("unknown sort field")
	ErrAlreadySaved  = errors.New("record already has an id")
	ErrMissingRecord = errors.New("record id is required")
)
