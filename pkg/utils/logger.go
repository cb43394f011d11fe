// Package utils provides shared logging helpers.
package utils

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewLogger returns a zap logger. When debug is true, uses development config
// (human-readable, debug level); otherwise uses production config (JSON, info level).
// Both write to stderr, leaving stdout to confirmation lines.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewRunLogger returns NewLogger(debug) tagged with a fresh run_id, and the id itself.
func NewRunLogger(debug bool) (*zap.Logger, string, error) {
	logger, err := NewLogger(debug)
	if err != nil {
		return nil, "", err
	}
	runID := uuid.New().String()
	return logger.With(zap.String("run_id", runID)), runID, nil
}
