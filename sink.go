package applog

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golift.io/applog/rotator"
)

// TimeFormat is the time stamp at the start of each log file line.
const TimeFormat = "2006-01-02 15:04:05"

// FormatLine returns rec the way it is written to log files:
// time stamp, upper case level in brackets, message, newline.
func FormatLine(rec Record) string {
	return rec.Time.Format(TimeFormat) + " [" + rec.Level.String() + "] " + rec.Message + "\n"
}

// Console writes bare messages, one per line, to an io.Writer.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole returns a console sink. A nil out means os.Stdout.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}

	return &Console{out: out}
}

// WriteRecord prints the message with no time stamp or level.
func (c *Console) WriteRecord(rec Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := io.WriteString(c.out, rec.Message+"\n"); err != nil {
		return fmt.Errorf("writing console: %w", err)
	}

	return nil
}

// RotatingFile writes formatted lines to a size-rotated file.
type RotatingFile struct {
	file *rotator.Logger
}

// NewRotatingFile wraps an existing rotator.
func NewRotatingFile(file *rotator.Logger) *RotatingFile {
	return &RotatingFile{file: file}
}

// WriteRecord formats rec with FormatLine and appends it to the file.
// The rotator checks the file size before the line is written.
func (f *RotatingFile) WriteRecord(rec Record) error {
	if _, err := f.file.Write([]byte(FormatLine(rec))); err != nil {
		return fmt.Errorf("writing log file: %w", err)
	}

	return nil
}

// Filepath returns the active log file path.
func (f *RotatingFile) Filepath() string {
	return f.file.Filepath()
}

// Rotate forces a rotation now.
func (f *RotatingFile) Rotate() error {
	if _, err := f.file.Rotate(); err != nil {
		return fmt.Errorf("rotating log file: %w", err)
	}

	return nil
}

// Close closes the file and stops its go routine.
func (f *RotatingFile) Close() error {
	return f.file.Close() //nolint:wrapcheck
}

// Our sinks must satisfy the Sink interface.
var (
	_ Sink      = (*Console)(nil)
	_ Sink      = (*RotatingFile)(nil)
	_ io.Closer = (*RotatingFile)(nil)
)
