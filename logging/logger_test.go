package logging

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "INFO", LogLevelInfo.String())
	assert.Equal(t, "WARN", LogLevelWarn.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}

func TestOrNoOp(t *testing.T) {
	assert.IsType(t, NoOpLogger{}, OrNoOp(nil))

	l := NewDefaultSlogLogger()
	assert.Equal(t, l, OrNoOp(l))
}

func TestGaussLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelWarn, Format: "text", Output: &buf})

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	out := buf.String()
	assert.NotContains(t, out, "msg=d")
	assert.NotContains(t, out, "msg=i")
	assert.Contains(t, out, "msg=w")
	assert.Contains(t, out, "msg=e")
}

func TestGaussLoggerComponentAttr(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: "json", Output: &buf})

	l.WithComponent("team").LogTeamRun("review", "sequential", 2, time.Millisecond, nil)

	out := buf.String()
	assert.Contains(t, out, `"component":"team"`)
	assert.Contains(t, out, `"team":"review"`)
	assert.Contains(t, out, `"strategy":"sequential"`)
	assert.Contains(t, out, `"success":true`)
}

func TestGaussLoggerDomainHelpersOnError(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelError, Format: "json", Output: &buf})

	// Successful runs stay below the configured level.
	l.LogWorkflowRun(3, 3, time.Millisecond, nil)
	assert.Empty(t, buf.String())

	l.LogWorkflowRun(3, 1, time.Millisecond, errors.New("step failed"))
	assert.Contains(t, buf.String(), "Workflow run failed")

	buf.Reset()
	l.LogPluginInit("telemetry", "0.1.0", errors.New("boom"))
	assert.Contains(t, buf.String(), "Plugin initialization failed")

	buf.Reset()
	l.LogModelCall("gpt-4o-mini", 128, time.Millisecond, errors.New("timeout"))
	assert.Contains(t, buf.String(), "Model call failed")
}
