package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{AppEnv: "production", LogLevel: "warn"})
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger = NewLogger(&Config{AppEnv: "development", LogLevel: "loud"})
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	LogError(logrus.NewEntry(logger), "ArchivePDF", "ECS/25-26/00001", errors.New("bucket missing"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ArchivePDF", entry["funcName"])
	assert.Equal(t, "ECS/25-26/00001", entry["data"])
	assert.Equal(t, "bucket missing", entry["msg"])
	assert.Equal(t, "error", entry["level"])
}
