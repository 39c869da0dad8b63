package domain

import "errors"

// Sentinel errors shared across services, repositories, and the delivery layer.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDeadlinePassed = errors.New("response deadline has passed")
	ErrDuplicateSlug  = errors.New("slug already in use")
)
