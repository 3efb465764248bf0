// Package skill turns smart-home directives into Cortex controller commands
// and the controller's replies back into responses.
//
// Service.Handle is the single entry point. It routes each directive by
// namespace:
//
//	Alexa.Discovery                        -> discovery
//	Alexa.PowerController,
//	Alexa.BrightnessController,
//	Alexa.ThermostatController             -> control
//	Alexa                                  -> query (ReportState)
//
// Any other namespace fails the invocation with ErrUnrecognizedNamespace
// and produces no response. Everything else, including validation and
// controller failures, produces exactly one response:
//
//	missing or rejected token          InvalidAccessTokenError
//	missing endpoint or payload value  UnexpectedInformationReceivedError
//	endpoint unreachable               TargetOfflineError
//	unknown directive name             UnsupportedOperationError
//	unknown controller object type     UnsupportedTargetError
//	controller unreachable/unparseable DependentServiceUnavailableError
//
// Validation happens before any controller call. Each directive is handled
// independently; the Service keeps no state between calls.
package skill
