package service

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every error caused by a rejected input.
var ErrValidation = errors.New("validation error")

var (
	ErrEmptyService   = fmt.Errorf("%w: service name cannot be empty", ErrValidation)
	ErrMissingMessage = fmt.Errorf("%w: log message cannot be null", ErrValidation)
	ErrMissingStart   = fmt.Errorf("%w: start time cannot be null", ErrValidation)
	ErrMissingEnd     = fmt.Errorf("%w: end time cannot be null", ErrValidation)
	ErrStartAfterEnd  = fmt.Errorf("%w: start time cannot be after end time", ErrValidation)
)

var (
	ErrCannotCreateLog = fmt.Errorf("cannot create log")
	ErrCannotGetLogs   = fmt.Errorf("cannot get logs")
	ErrCannotGetStats  = fmt.Errorf("cannot get stats")
)
