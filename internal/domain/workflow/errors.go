package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a trigger is not permitted from the current status
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrGuardFailed is returned when every guarded transition rejected the trigger
	ErrGuardFailed = errors.New("guard condition failed")
)
