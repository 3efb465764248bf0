package skill

import "errors"

// Domain errors for the skill package.
var (
	// ErrUnrecognizedNamespace is returned by Handle when no handler serves
	// the directive's namespace. No response is produced.
	ErrUnrecognizedNamespace = errors.New("skill: unrecognized namespace")

	// ErrNoController is returned by New when Options.Controller is nil.
	ErrNoController = errors.New("skill: controller is required")
)
