package config

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds the application logger writing to w at the configured
// level.
func NewLogger(cfg Config, w io.Writer) (*log.Logger, error) {
	level := log.InfoLevel
	if cfg.Debug.LogLevel != "" {
		l, err := log.ParseLevel(cfg.Debug.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("config: log level %q: %w", cfg.Debug.LogLevel, err)
		}
		level = l
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          cfg.Window.Title,
		Level:           level,
	}), nil
}
