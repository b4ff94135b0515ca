package domain

import "errors"

var (
	// ErrInvalidArgument marks a contract violation by the caller, e.g. an activity
	// whose destination stream type the pipeline does not support.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("resource not found")
)
