// Package logging constructs the application logger for a given runtime
// environment.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// InitLogger builds a zap logger: production config for production-like
// environments, development config (human-readable, debug level) otherwise.
func InitLogger(env string) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	switch env {
	case "production", "prod":
		logger, err = zap.NewProduction()
	default:
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}
