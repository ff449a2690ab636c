package config

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a production or development logger at the configured
// level, writing to LogFile when set.
func (c *Config) NewLogger() (*zap.Logger, error) {
	var cfg zap.Config
	if c.Logging != nil && c.Logging.Development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	if c.Logging != nil && c.Logging.Level != "" {
		level, err := zapcore.ParseLevel(c.Logging.Level)
		if err != nil {
			return nil, errors.Wrap(err, "new logger")
		}

		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	if c.LogFile != "" {
		cfg.OutputPaths = []string{c.LogFile}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "new logger")
	}

	return logger, nil
}
