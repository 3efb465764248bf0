// Package api implements the HTTP invocation boundary and live event feed
// for the Cortex voice bridge.
//
// This package provides:
//   - POST /api/v1/directives: one directive in, one normalized response out
//   - GET /api/v1/health and GET /api/v1/metrics for monitoring
//   - GET /api/v1/ws: WebSocket feed of every produced response
//   - Middleware stack (request ID, logging, recovery, body size limit)
//   - TLS support for deployments reachable from outside the LAN
//
// # Invocation Contract
//
// Every directive the service can route gets HTTP 200 with the response
// body, including normalized error responses such as TargetOfflineError.
// Only invocation-level failures (malformed JSON, a namespace no handler
// serves) return HTTP 400 with {status, code, message}.
//
// # Security
//
// Directives carry their own bearer token, validated by the skill service.
// The WebSocket feed requires a token query parameter checked by the same
// auth.Validator.
package api
