package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug", "text").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("nonsense", "json").GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, New("warn", "json").Formatter)
	assert.IsType(t, &logrus.TextFormatter{}, New("warn", "TEXT").Formatter)
}
