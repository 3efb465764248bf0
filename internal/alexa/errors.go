package alexa

import "errors"

// Domain errors for the alexa package.
var (
	// ErrMalformedDirective is returned when a directive body is not valid
	// JSON or does not have the directive envelope shape.
	ErrMalformedDirective = errors.New("alexa: malformed directive")
)

// Normalized error response names. These are delivered to the voice
// platform as ordinary responses, not as invocation failures.
const (
	ErrorInvalidAccessToken            = "InvalidAccessTokenError"
	ErrorUnexpectedInformationReceived = "UnexpectedInformationReceivedError"
	ErrorTargetOffline                 = "TargetOfflineError"
	ErrorUnsupportedOperation          = "UnsupportedOperationError"
	ErrorUnsupportedTarget             = "UnsupportedTargetError"
	ErrorDependentServiceUnavailable   = "DependentServiceUnavailableError"
)
