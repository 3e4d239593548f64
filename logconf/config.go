// Package logconf loads applog settings from a YAML or JSON file and can watch
// that file for changes. Example YAML:
//
//	level: debug          # error, warn, info, debug, verbose or 0-4
//	dir: /var/log/service # default ./logs
//	file_name: app.log
//	file_size: 1048576    # bytes
//	file_count: 50
//	check_interval: 1s    # Go duration, negative checks every write
//
// Missing keys keep their defaults. The level defaults to info.
package logconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"golift.io/applog"
)

// Format is a config file encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Keys read from the config file.
const (
	KeyLevel     = "level"
	KeyDir       = "dir"
	KeyFileName  = "file_name"
	KeyFileSize  = "file_size"
	KeyFileCount = "file_count"
	KeyInterval  = "check_interval"
)

// Errors returned by this package. They are wrapped, use errors.Is.
var (
	ErrEmptyPath         = errors.New("empty config path")
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrLoad              = errors.New("reading config file")
	ErrParse             = errors.New("parsing config")
	ErrNilCallback       = errors.New("nil change callback provided")
	ErrWatch             = errors.New("watching config file")
)

// DetectFormat returns the Format for a file name by its extension.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

// Load reads a config file and returns a Logger config with defaults applied.
// Console, ErrOut and the other runtime members are left for the caller.
func Load(path string) (*applog.Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return Parse(data, format)
}

// Parse is like Load, but for data already in memory. Empty data is valid.
func Parse(data []byte, format Format) (*applog.Config, error) {
	var parser koanf.Parser

	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	k := koanf.New(".")

	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
	}

	return toConfig(k)
}

func toConfig(k *koanf.Koanf) (*applog.Config, error) {
	config := &applog.Config{
		Dir:       k.String(KeyDir),
		FileName:  k.String(KeyFileName),
		FileSize:  k.Int64(KeyFileSize),
		FileCount: k.Int(KeyFileCount),
		Level:     applog.DefaultLevel,
	}

	if config.Dir == "" {
		config.Dir = applog.DefaultDir
	}

	if k.Exists(KeyLevel) {
		level, err := applog.ParseLevel(k.String(KeyLevel))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, KeyLevel, err)
		}

		config.Level = level
	}

	if k.Exists(KeyInterval) {
		interval, err := time.ParseDuration(k.String(KeyInterval))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, KeyInterval, err)
		}

		config.Interval = interval
	}

	if config.FileSize < 0 || config.FileCount < 0 {
		return nil, fmt.Errorf("%w: %s and %s may not be negative", ErrParse, KeyFileSize, KeyFileCount)
	}

	return config, nil
}
