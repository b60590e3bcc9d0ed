package svc

import "errors"

var (
	// ErrConfiguration is returned when a model or policy is constructed
	// with invalid parameters. No partial object is produced.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUsage is returned when an operation is called outside its valid
	// model state. The failing call mutates nothing.
	ErrUsage = errors.New("invalid usage")
)
