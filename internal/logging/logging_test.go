package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelForVerbosity(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"negative is warn", -1, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLevel, LevelForVerbosity(tt.verbosity))

			logger := SetupLogger(tt.verbosity, &bytes.Buffer{})
			assert.Equal(t, tt.wantLevel, logger.GetLevel())
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestSetupLogger_Output(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(0, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	// Buffers are not terminals, so no escape codes.
	assert.NotContains(t, out, "\x1b[")
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetupLogger(1, &buf)

	logger := GetLogger("solve")
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "component=solve")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(2, &buf)

	done := LogOperationStart(logger, "parse")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, "operation=parse")
}
