package godedupcleaner

import "errors"

var (
	// ErrInvalidConfig is returned when the configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidPattern is returned when the duplicate name pattern does not compile
	ErrInvalidPattern = errors.New("invalid name pattern")

	// ErrSourceUnavailable is returned when the root directory is missing,
	// unreadable, or contains no regular files
	ErrSourceUnavailable = errors.New("source directory unavailable")

	// ErrNoPlan is returned when Execute is called without a cleaning plan
	ErrNoPlan = errors.New("no cleaning plan")

	// ErrPlanConsumed is returned when an already executed plan is executed again
	ErrPlanConsumed = errors.New("cleaning plan already executed")
)
