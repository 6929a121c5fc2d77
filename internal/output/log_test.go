package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogging_VerboseEnablesDebugLevel(t *testing.T) {
	SetupLogging(LogConfig{Verbose: true, Writer: &bytes.Buffer{}})
	assert.Equal(t, log.DebugLevel, logger.GetLevel(), "verbose should set debug level")
}

func TestSetupLogging_DefaultInfoLevel(t *testing.T) {
	SetupLogging(LogConfig{Writer: &bytes.Buffer{}})
	assert.Equal(t, log.InfoLevel, logger.GetLevel(), "default should be info level")
}

func TestSetupLogging_TimestampExplicitlyDisabled(t *testing.T) {
	var buf bytes.Buffer
	SetupLogging(LogConfig{Timestamps: BoolPtr(false), Writer: &buf})
	Info("hello")
	assert.NotRegexp(t, `^\d{1,2}:\d{2}:\d{2}`, strings.TrimSpace(buf.String()),
		"output should not start with a timestamp")
}

func TestSetupLogging_VerboseForcesTimestampsOn(t *testing.T) {
	var buf bytes.Buffer
	SetupLogging(LogConfig{Verbose: true, Timestamps: BoolPtr(false), Writer: &buf})
	Debug("verbose-msg")
	out := buf.String()
	assert.Contains(t, out, "verbose-msg", "debug message should appear in verbose mode")
	assert.Regexp(t, `\d{2}:\d{2}:\d{2}`, out, "verbose should force timestamps on")
}

func TestStepLogger_TagsStep(t *testing.T) {
	var buf bytes.Buffer
	SetupLogging(LogConfig{Timestamps: BoolPtr(false), Writer: &buf})
	StepLogger("fetch").Info("downloading")
	assert.Contains(t, buf.String(), "step=fetch")
	assert.Contains(t, buf.String(), "downloading")
}

func TestBoolPtr(t *testing.T) {
	assert.True(t, *BoolPtr(true))
	assert.False(t, *BoolPtr(false))
}
