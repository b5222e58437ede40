// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber based preview API.
//
// # Context Awareness
//
// WithKind tags every entry of a kind run with the kind name, so the output of
// concurrently processed kinds stays readable. WithRayID extracts the RayID
// from a Fiber context so that all logs of one preview request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Processing resource types", zap.Strings("kinds", kinds))
package logger
