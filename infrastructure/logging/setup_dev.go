//go:build !prod

package logging

import (
	"log/slog"
	"os"
)

// Setup installs a stdout text logger as the global logger.
// Development builds have nothing to close.
func Setup(cfg *Config) (*slog.Logger, func() error, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	})

	logger := slog.New(handler)
	setGlobal(logger)

	return logger, func() error { return nil }, nil
}
