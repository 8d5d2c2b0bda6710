// Package providers contains dependency injection providers for the LitNotes server.
package providers

import (
	"io"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/litnotes/litnotes/internal/config"
	"github.com/litnotes/litnotes/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// LoggerHandle wraps the structured logger and its optional log file.
type LoggerHandle struct {
	*slog.Logger
	file io.Closer
}

// Shutdown implements do.Shutdownable.
func (h *LoggerHandle) Shutdown() error {
	return h.file.Close()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*LoggerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log, file := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
		File:        cfg.Logger.File,
	})

	log.Info("Starting LitNotes",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"storage", cfg.Storage.Backend,
		"data_path", cfg.Storage.DataPath,
	)

	return &LoggerHandle{Logger: log, file: file}, nil
}
