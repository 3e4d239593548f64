package applog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Level is a message severity. Lower values are more important.
type Level uint8

// Levels, most important first. LevelError always passes the threshold.
const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelVerbose
)

// DefaultLevel is the threshold used by config files that do not set one.
const DefaultLevel = LevelInfo

// ErrUnknownLevel is returned by ParseLevel.
var ErrUnknownLevel = errors.New("unknown log level")

// String returns the upper case level name used in log files.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelVerbose:
		return "VERBOSE"
	default:
		return "LEVEL(" + strconv.Itoa(int(l)) + ")"
	}
}

// ParseLevel turns a name (error, warn, warning, info, debug, verbose; any case)
// or a number from 0 (error) to 4 (verbose) into a Level.
func ParseLevel(s string) (Level, error) {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "verbose":
		return LevelVerbose, nil
	}

	if num, err := strconv.ParseUint(s, 10, 8); err == nil && Level(num) <= LevelVerbose {
		return Level(num), nil
	}

	return DefaultLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// MarshalText satisfies encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText satisfies encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(data []byte) error {
	level, err := ParseLevel(string(data))
	if err != nil {
		return err
	}

	*l = level

	return nil
}
