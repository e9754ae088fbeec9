package logger_test

import (
	"testing"

	"go-hiring-sync/pkg/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewZap(t *testing.T) {
	t.Run("Should log debug outside production", func(t *testing.T) {
		log := logger.NewZap("hiring-sync", "development")
		assert.True(t, log.Core().Enabled(zap.DebugLevel))
	})

	t.Run("Should start at info in production", func(t *testing.T) {
		log := logger.NewZap("hiring-sync", "production")
		assert.False(t, log.Core().Enabled(zap.DebugLevel))
		assert.True(t, log.Core().Enabled(zap.InfoLevel))
	})
}

func TestInit(t *testing.T) {
	logger.Init()
	assert.NotNil(t, logger.Log)
}
