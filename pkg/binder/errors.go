package binder

import "errors"

// Common binding errors
var (
	ErrInvalidTarget       = errors.New("binding target must be a non-nil pointer to struct")
	ErrFailedToParseJSON   = errors.New("failed to parse JSON request body")
	ErrFailedToParseBody   = errors.New("failed to parse request body")
	ErrFailedToParseQuery  = errors.New("failed to parse query parameters")
	ErrFailedToParseParams = errors.New("failed to parse request parameters")
	ErrFailedToParsePath   = errors.New("failed to parse path parameters")
	ErrFailedToBindFiles   = errors.New("failed to bind uploaded files")
)
