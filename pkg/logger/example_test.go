package logger_test

import (
	"errors"

	"github.com/wonny/rostercast/pkg/config"
	"github.com/wonny/rostercast/pkg/logger"
)

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"session_id": "4f1c",
		"player":     "Nikola Jokić",
		"roster":     6,
	}).Info("Player added")

	log.WithError(errors.New("player not found")).
		WithField("input", "Luka Doncic").
		Warn("Lookup failed")
}
