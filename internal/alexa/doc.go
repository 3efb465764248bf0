// Package alexa defines the smart-home message shapes exchanged with the
// voice platform.
//
// Inbound, a JSON directive is decoded into a Request and then narrowed to
// one Operation variant (Discover, TurnOn, SetBrightness, ReportState, ...).
// Outbound, handlers build a Response: either a bare header+payload for
// discovery results and normalized errors, or a context+event pair for
// control confirmations and state reports.
//
// Every outbound header gets a fresh UUID v4 message ID. Correlation
// tokens from the directive are echoed on events but never reused as IDs.
//
// The package performs no I/O.
package alexa
