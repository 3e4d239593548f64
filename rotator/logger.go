package rotator

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"golift.io/applog/filer"
)

// These are the default directory and log file POSIX modes.
const (
	FileMode os.FileMode = 0o600
	DirMode  os.FileMode = 0o750
)

// These defaults are used when the matching Config members are omitted.
const (
	DefaultMaxSize  = 1024 * 1024 // 1 megabyte.
	DefaultInterval = time.Second
)

// openRetryInterval is how long to wait before retrying openLog after a failure.
// Prevents a storm of syscalls when the log file has permission or other persistent errors.
const openRetryInterval = 10 * time.Second

// Custom errors returned by this package.
var (
	ErrNilInterface = errors.New("nil Rotatorr interface provided")
	ErrClosed       = errors.New("rotator is closed")
)

// Config is the data needed to create a new rotating Logger.
type Config struct {
	Rotatorr Rotatorr         // REQUIRED: Custom log Rotatorr. Use your own or introtator.
	Filepath string           // Full path to log file. Set this, the default is lousy.
	FileMode os.FileMode      // POSIX mode for new files.
	DirMode  os.FileMode      // POSIX mode for new folders.
	FileSize int64            // Rotate once the file reaches this many bytes. Default 1MB.
	Interval time.Duration    // Minimum time between file size checks. Negative checks every write.
	OnError  func(err error)  // Receives rotation failures. Must not write to this Logger.
	Metrics  *Metrics         // Optional rotation counters.
	Filer    filer.Filer      // Overridable file system procedures.
	Clock    func() time.Time // Overridable clock, default is time.Now.
}

// State is what the Logger remembers between size checks.
type State struct {
	Size    int64     // active file size at the last check.
	Checked time.Time // when the active file was last checked.
}

// Logger is what you get in return for providing a Config. Use this to set log output.
// You must obtain a Logger by calling one of the New() procedures.
type Logger struct {
	config      *Config       // incoming configurtation.
	requests    chan *request // incoming requests passed across go routines.
	done        chan struct{} // closed when the go routine exits.
	once        sync.Once     // guards Close.
	state       State         // only touched by the go routine.
	file        *os.File      // the active open file, nil until the next write.
	Interface   Rotatorr      // copied from config for brevity.
	filer.Filer               // overridable file system procedures.
	lastOpenErr error         // last error from openLog; used to avoid retry storm.
	lastOpened  time.Time     // when openLog was last attempted (for backoff).
}

type operation uint8

const (
	opWrite operation = iota
	opRotate
	opClose
)

// request is one unit of work for the go routine. Each carries its own reply channel.
type request struct {
	op    operation
	data  []byte
	reply chan *resp
}

// resp is used to send responses back across our go routines.
type resp struct {
	size int64
	err  error
}

// New takes in your configuration and returns a Logger you can use with
// log.SetOutput(). The provided logger handles log rotation and dispatching
// post-rotate actions.
func New(config *Config) (*Logger, error) {
	if config == nil || config.Rotatorr == nil {
		return nil, ErrNilInterface
	}

	logger := newLogger(config)
	if err := logger.setConfigDefaults(); err != nil {
		return nil, err
	}

	logger.start()

	return logger, nil
}

// NewMust takes in your configuration and returns a Logger you can use with
// log.SetOutput(). If an error occurs making log directories it is reported
// to OnError (and retried on the first write). Do not pass a Nil Rotatorr.
func NewMust(config *Config) *Logger {
	if config == nil || config.Rotatorr == nil {
		panic(ErrNilInterface)
	}

	logger := newLogger(config)
	if err := logger.setConfigDefaults(); err != nil {
		logger.config.OnError(err)
	}

	logger.start()

	return logger
}

func newLogger(config *Config) *Logger {
	logger := &Logger{config: config, Interface: config.Rotatorr, Filer: config.Filer}
	if logger.Filer == nil {
		logger.Filer = filer.Default()
	}

	return logger
}

// setConfigDefaults does exactly what it says. Sets missing values.
func (l *Logger) setConfigDefaults() error {
	if l.config.Filepath == "" {
		l.config.Filepath = filepath.Join(os.TempDir(),
			filepath.Base(os.Args[0])+"-"+path.Base(reflect.TypeFor[Logger]().PkgPath())+".log")
	}

	if l.config.FileSize <= 0 {
		l.config.FileSize = DefaultMaxSize
	}

	if l.config.Interval == 0 {
		l.config.Interval = DefaultInterval
	}

	if l.config.DirMode == 0 {
		l.config.DirMode = DirMode
	}

	if l.config.FileMode == 0 {
		l.config.FileMode = FileMode
	}

	if l.config.Clock == nil {
		l.config.Clock = time.Now
	}

	if l.config.OnError == nil {
		l.config.OnError = func(err error) {
			// Straight to stderr. The log file is the thing that's broken.
			fmt.Fprintf(os.Stderr, "Failed to rotate log file: %v\n", err)
		}
	}

	dirs, err := l.Interface.Dirs(l.config.Filepath)
	if err != nil {
		return fmt.Errorf("validating Rotatorr: %w", err)
	}

	for _, dir := range dirs {
		err := l.MkdirAll(dir, l.config.DirMode)
		if err != nil {
			return fmt.Errorf("making directories for logfiles: %w", err)
		}
	}

	return nil
}

func (l *Logger) start() {
	l.requests = make(chan *request)
	l.done = make(chan struct{})

	go l.processRequests()
}

// processRequests runs in a go routine and reads the incoming requests channel.
// Writes are dispatched to the write method and replies are sent back on the
// request's own channel. This also handles log rotation and routine shutdown.
// Everything that touches the file or the rotation state happens in this one go routine.
func (l *Logger) processRequests() {
	for req := range l.requests {
		switch req.op {
		case opWrite:
			size, err := l.write(req.data)
			req.reply <- &resp{int64(size), err}
		case opRotate:
			size, err := l.forceRotate()
			req.reply <- &resp{size, err}
		case opClose:
			err := l.close()
			close(l.done)
			req.reply <- &resp{err: err}

			return
		}
	}
}

// send hands a request to the go routine and waits for the reply.
func (l *Logger) send(req *request) *resp {
	req.reply = make(chan *resp, 1)

	select {
	case l.requests <- req:
		return <-req.reply
	case <-l.done:
		return &resp{err: ErrClosed}
	}
}

// Filepath returns the path of the active log file.
func (l *Logger) Filepath() string {
	return l.config.Filepath
}

// Write sends data to the file. This satisfies the io.Writer interface.
// A failed rotation does not fail the write; only open and write errors are returned.
func (l *Logger) Write(b []byte) (int, error) {
	resp := l.send(&request{op: opWrite, data: b})

	return int(resp.size), resp.err
}

// write sends a message into the log file after everything checks out - from a channel message.
func (l *Logger) write(b []byte) (int, error) {
	l.checkAndRotate()

	if l.file == nil {
		if err := l.reopen(); err != nil {
			return 0, err
		}
	}

	size, err := l.file.Write(b)
	if err != nil {
		return size, fmt.Errorf("error writing log msg: %w", err)
	}

	return size, nil
}

// reopen opens the active file. When the log file cannot be opened (e.g. permission
// denied), retries are backed off to avoid a storm of syscalls that can cause high CPU and IO.
func (l *Logger) reopen() error {
	if l.lastOpenErr != nil && l.config.Clock().Sub(l.lastOpened) < openRetryInterval {
		return l.lastOpenErr
	}

	l.lastOpened = l.config.Clock()
	l.lastOpenErr = l.openLog()

	return l.lastOpenErr
}

// openLog opens the log file for appending, creating it and its folder if needed.
func (l *Logger) openLog() error {
	err := l.MkdirAll(filepath.Dir(l.config.Filepath), l.config.DirMode)
	if err != nil {
		return fmt.Errorf("making directories for logfiles: %w", err)
	}

	l.file, err = l.OpenFile(l.config.Filepath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, l.config.FileMode)
	if err != nil {
		l.file = nil
		return fmt.Errorf("error with new logfile: %w", err)
	}

	return nil
}

// Rotate forces the log to rotate immediately. Returns the size of the rotated log.
func (l *Logger) Rotate() (int64, error) {
	resp := l.send(&request{op: opRotate})

	return resp.size, resp.err
}

// forceRotate refreshes the file size and rotates - from a channel message.
// A missing active file is not an error and rotates nothing.
func (l *Logger) forceRotate() (int64, error) {
	l.state.Checked = l.config.Clock()

	info, err := l.Stat(l.config.Filepath)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Nothing to rotate; the backups stay where they are.
		l.state.Size = 0
		return 0, l.close()
	case err == nil:
		l.state.Size = info.Size()
	}

	return l.rotate()
}

// Close stops the go routine and closes the active log file.
// Write and Rotate return ErrClosed afterward, as does another Close.
func (l *Logger) Close() error {
	err := ErrClosed

	l.once.Do(func() {
		err = l.send(&request{op: opClose}).err
	})

	return err
}

// close closes the active log file - from a channel message.
func (l *Logger) close() error {
	if l.file == nil {
		return nil
	}

	err := l.file.Close()
	l.file = nil

	if err != nil {
		return fmt.Errorf("closing log file %s: %w", l.config.Filepath, err)
	}

	return nil
}

// Our interface must satify an io.WriteCloser.
var _ io.WriteCloser = (*Logger)(nil)
