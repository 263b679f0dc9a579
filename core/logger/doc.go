// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports development and
// production presets and integrates with the Fiber web framework.
//
// # Context Awareness
//
// WithRayID extracts the RayID set by the rayid middleware from a Fiber
// context and attaches it to the log entry, so every line of one request can
// be correlated. WithUser does the same for the acting user.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
