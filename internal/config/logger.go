package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. LOG_FORMAT=json selects the JSON
// formatter; anything else logs text.
func NewLogger(cfg *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if cfg.LogFormat == "json" || cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// LogError records err with the component and operation it came from.
func LogError(logger *logrus.Entry, funcName string, data any, err error) {
	fields := logrus.Fields{"funcName": funcName}
	if data != nil {
		fields["data"] = data
	}
	logger.WithFields(fields).Error(err.Error())
}
