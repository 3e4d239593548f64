package applog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golift.io/applog"
)

func TestLevelString(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal("ERROR", applog.LevelError.String())
	assert.Equal("WARN", applog.LevelWarn.String())
	assert.Equal("INFO", applog.LevelInfo.String())
	assert.Equal("DEBUG", applog.LevelDebug.String())
	assert.Equal("VERBOSE", applog.LevelVerbose.String())
	assert.Equal("LEVEL(9)", applog.Level(9).String())
}

func TestLevelOrder(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Less(applog.LevelError, applog.LevelWarn)
	assert.Less(applog.LevelWarn, applog.LevelInfo)
	assert.Less(applog.LevelInfo, applog.LevelDebug)
	assert.Less(applog.LevelDebug, applog.LevelVerbose)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]applog.Level{
		"error":   applog.LevelError,
		"WARN":    applog.LevelWarn,
		"warning": applog.LevelWarn,
		" Info ":  applog.LevelInfo,
		"debug":   applog.LevelDebug,
		"verbose": applog.LevelVerbose,
		"0":       applog.LevelError,
		"4":       applog.LevelVerbose,
	}

	for input, expect := range tests {
		level, err := applog.ParseLevel(input)
		assert.NoError(t, err, input)
		assert.Equal(t, expect, level, input)
	}

	for _, input := range []string{"", "5", "-1", "trace", "300"} {
		level, err := applog.ParseLevel(input)
		assert.ErrorIs(t, err, applog.ErrUnknownLevel, input)
		assert.Equal(t, applog.DefaultLevel, level, input)
	}
}

func TestLevelText(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var level applog.Level

	assert.NoError(level.UnmarshalText([]byte("debug")))
	assert.Equal(applog.LevelDebug, level)
	assert.ErrorIs(level.UnmarshalText([]byte("nope")), applog.ErrUnknownLevel)
	assert.Equal(applog.LevelDebug, level, "a bad value must not change the level")

	text, err := applog.LevelWarn.MarshalText()
	assert.NoError(err)
	assert.Equal("WARN", string(text))
}
