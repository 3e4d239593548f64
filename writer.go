package applog

import (
	"bytes"
	"io"
	"sync"
)

// MaxLineSize is the most a Writer holds while waiting for a newline.
// Longer text is emitted in pieces of this size.
const MaxLineSize = 64 * 1024

// lineWriter turns a byte stream into one Emit per line.
type lineWriter struct {
	mu     sync.Mutex
	logger *Logger
	level  Level
	buf    []byte
}

// Writer returns an io.Writer that emits each line written to it at level.
// Use it to capture output from code that prints instead of logging:
//
//	log.SetOutput(logger.Writer(applog.LevelInfo))
//
// Text after the last newline is held until the next newline arrives, it passes
// MaxLineSize, or the Logger is closed.
func (l *Logger) Writer(level Level) io.Writer {
	writer := &lineWriter{logger: l, level: level}

	l.writerMu.Lock()
	defer l.writerMu.Unlock()

	l.writers = append(l.writers, writer)

	return writer
}

// Write never fails. Lines are emitted as they complete.
func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)

	for {
		idx := bytes.IndexByte(w.buf, '\n')
		if idx < 0 {
			break
		}

		w.logger.Emit(w.level, string(bytes.TrimSuffix(w.buf[:idx], []byte{'\r'})))
		w.buf = w.buf[idx+1:]
	}

	for len(w.buf) >= MaxLineSize {
		w.logger.Emit(w.level, string(w.buf[:MaxLineSize]))
		w.buf = w.buf[MaxLineSize:]
	}

	if len(w.buf) == 0 {
		w.buf = nil
	}

	return len(p), nil
}

// flush emits any held partial line.
func (w *lineWriter) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.logger.Emit(w.level, string(bytes.TrimSuffix(w.buf, []byte{'\r'})))
		w.buf = nil
	}
}
