package beer

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("beer not found")
	ErrInvalidData  = errors.New("invalid beer data")
	ErrOwnerMissing = errors.New("beer owner is required")
)
