package initializers

import (
	"log/slog"
	"os"
)

// NewLogger installs a JSON logger in production and a text logger
// elsewhere as the default slog logger.
func NewLogger(cfg *Config) *slog.Logger {
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	logger := slog.New(handler).With("app", "novastore-api")
	slog.SetDefault(logger)
	return logger
}
