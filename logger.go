package applog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/metric"
	"golift.io/applog/introtator"
	"golift.io/applog/rotator"
)

// These defaults are used when the matching Config members are omitted.
const (
	DefaultDir      = "./logs"
	DefaultFileName = "app.log"
)

// ErrNilConfig is returned by New when it gets no Config.
var ErrNilConfig = errors.New("nil applog config provided")

// Config is the data needed to create a new Logger.
type Config struct {
	Dir           string               // Log file folder. Default ./logs
	FileName      string               // Active log file name. Default app.log
	Level         Level                // Threshold. The zero value, LevelError, logs only errors.
	FileSize      int64                // Rotate once the file reaches this many bytes. Default 1MB.
	FileCount     int                  // Number of backups to keep. Default 50.
	Interval      time.Duration        // Minimum time between file size checks. Default 1s.
	FileMode      os.FileMode          // POSIX mode for new log files.
	DirMode       os.FileMode          // POSIX mode for new log folders.
	Console       io.Writer            // Bare messages go here. Default os.Stdout.
	ErrOut        io.Writer            // Sink and rotation failures go here. Default os.Stderr.
	MeterProvider metric.MeterProvider // Optional: count rotations and failures.
	Sinks         []Sink               // Extra sinks, called after the console and file.
	Clock         func() time.Time     // Record time stamps. Default time.Now.
}

// Logger filters messages by level and hands them to its sinks.
// All methods are safe for concurrent use.
type Logger struct {
	level  atomic.Uint32
	sinks  []Sink
	file   *RotatingFile
	errOut io.Writer
	errMu  sync.Mutex
	clock  func() time.Time

	writerMu sync.Mutex
	writers  []*lineWriter
}

// New builds the console and rotating file sinks and returns a Logger.
// An error is returned if the log folder cannot be created.
func New(config *Config) (*Logger, error) {
	if config == nil {
		return nil, ErrNilConfig
	}

	logger := newLogger(config)

	metrics, err := rotator.NewMetrics(config.MeterProvider)
	if err != nil {
		return nil, fmt.Errorf("creating rotation metrics: %w", err)
	}

	file, err := rotator.New(logger.rotatorConfig(config, metrics))
	if err != nil {
		return nil, fmt.Errorf("creating log file: %w", err)
	}

	logger.addSinks(config, file)

	return logger, nil
}

// NewMust is like New, except errors are printed to ErrOut instead of returned.
// The log folder is created again on the first write if it failed here.
func NewMust(config *Config) *Logger {
	if config == nil {
		config = &Config{}
	}

	logger := newLogger(config)

	metrics, err := rotator.NewMetrics(config.MeterProvider)
	if err != nil {
		logger.report(fmt.Errorf("creating rotation metrics: %w", err))
	}

	logger.addSinks(config, rotator.NewMust(logger.rotatorConfig(config, metrics)))

	return logger
}

func newLogger(config *Config) *Logger {
	logger := &Logger{errOut: config.ErrOut, clock: config.Clock}
	if logger.errOut == nil {
		logger.errOut = os.Stderr
	}

	if logger.clock == nil {
		logger.clock = time.Now
	}

	logger.SetLevel(config.Level)

	return logger
}

func (l *Logger) rotatorConfig(config *Config, metrics *rotator.Metrics) *rotator.Config {
	dir, name := config.Dir, config.FileName
	if dir == "" {
		dir = DefaultDir
	}

	if name == "" {
		name = DefaultFileName
	}

	return &rotator.Config{
		Filepath: filepath.Join(dir, name),
		FileSize: config.FileSize,
		Interval: config.Interval,
		FileMode: config.FileMode,
		DirMode:  config.DirMode,
		Metrics:  metrics,
		OnError: func(err error) {
			l.printf("Failed to rotate log file: %v\n", err)
		},
		Rotatorr: &introtator.Layout{FileCount: config.FileCount},
	}
}

// addSinks puts the console first, then the file, then anything extra.
func (l *Logger) addSinks(config *Config, file *rotator.Logger) {
	l.file = NewRotatingFile(file)
	l.sinks = append(make([]Sink, 0, len(config.Sinks)+2), NewConsole(config.Console), l.file) //nolint:mnd
	l.sinks = append(l.sinks, config.Sinks...)
}

// SetLevel changes the threshold. Messages less important than level are dropped.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(uint32(level))
}

// Level returns the current threshold.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// Enabled reports whether a message at level would be emitted.
func (l *Logger) Enabled(level Level) bool {
	return level <= l.Level()
}

// Filepath returns the path of the active log file.
func (l *Logger) Filepath() string {
	return l.file.Filepath()
}

// Emit sends message to every sink if level passes the threshold.
// Nothing is returned; sink failures are printed to ErrOut.
func (l *Logger) Emit(level Level, message string) {
	if !l.Enabled(level) {
		return
	}

	rec := Record{Level: level, Message: message, Time: l.clock()}

	for _, sink := range l.sinks {
		if err := sink.WriteRecord(rec); err != nil {
			l.report(err)
		}
	}
}

// Error logs message at LevelError. Errors are never filtered.
func (l *Logger) Error(message string) { l.Emit(LevelError, message) }

// Warn logs message at LevelWarn.
func (l *Logger) Warn(message string) { l.Emit(LevelWarn, message) }

// Info logs message at LevelInfo.
func (l *Logger) Info(message string) { l.Emit(LevelInfo, message) }

// Debug logs message at LevelDebug.
func (l *Logger) Debug(message string) { l.Emit(LevelDebug, message) }

// Verbose logs message at LevelVerbose.
func (l *Logger) Verbose(message string) { l.Emit(LevelVerbose, message) }

// Errorf formats and logs a message at LevelError.
func (l *Logger) Errorf(format string, v ...any) { l.emitf(LevelError, format, v...) }

// Warnf formats and logs a message at LevelWarn.
func (l *Logger) Warnf(format string, v ...any) { l.emitf(LevelWarn, format, v...) }

// Infof formats and logs a message at LevelInfo.
func (l *Logger) Infof(format string, v ...any) { l.emitf(LevelInfo, format, v...) }

// Debugf formats and logs a message at LevelDebug.
func (l *Logger) Debugf(format string, v ...any) { l.emitf(LevelDebug, format, v...) }

// Verbosef formats and logs a message at LevelVerbose.
func (l *Logger) Verbosef(format string, v ...any) { l.emitf(LevelVerbose, format, v...) }

// emitf skips the Sprintf when the message would be dropped anyway.
func (l *Logger) emitf(level Level, format string, v ...any) {
	if l.Enabled(level) {
		l.Emit(level, fmt.Sprintf(format, v...))
	}
}

// Rotate forces the log file to rotate now, like on a SIGHUP.
func (l *Logger) Rotate() error {
	return l.file.Rotate()
}

// Close emits partial lines held by Writers, then closes every sink that is
// also an io.Closer. Messages emitted after Close produce errors on ErrOut.
func (l *Logger) Close() error {
	l.writerMu.Lock()
	writers := l.writers
	l.writers = nil
	l.writerMu.Unlock()

	for _, writer := range writers {
		writer.flush()
	}

	var errs []error

	for _, sink := range l.sinks {
		if closer, ok := sink.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

func (l *Logger) report(err error) {
	l.printf("applog: %v\n", err)
}

// printf writes to ErrOut, never to a sink.
func (l *Logger) printf(format string, v ...any) {
	l.errMu.Lock()
	defer l.errMu.Unlock()

	fmt.Fprintf(l.errOut, format, v...)
}
