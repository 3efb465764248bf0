// Package logging provides structured logging for the Cortex voice bridge.
//
// It wraps log/slog so every component logs with the same handler,
// level filter and default fields (service, version).
//
// Configuration comes from the logging section of config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Usage:
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("directive handled", "namespace", ns, "name", name)
//
// Bearer tokens and controller passwords must never be logged in full.
// Use Redact for anything that identifies a caller:
//
//	logger.Debug("token accepted", "token", logging.Redact(token))
package logging
