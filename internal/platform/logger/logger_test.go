package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	log := New(Config{Level: "warn", Format: "json"})
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	log = New(Config{Level: "debug", Format: "console"})
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := New(Config{Level: "loud"})
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}
