package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownUser       = errors.New("user does not exist")
	ErrNoMatch           = errors.New("no metadata match")
	ErrLookupUnavailable = errors.New("metadata lookup unavailable")
)
