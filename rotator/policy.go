package rotator

import (
	"errors"
	"fmt"
	"io/fs"
)

// Stages passed to Metrics when something fails.
const (
	stageCheck  = "check"
	stageRotate = "rotate"
)

// checkAndRotate decides if the active file is too large and rotates it if so.
// Runs before every write. Between checks the last known size is trusted, so the
// file system is only consulted once per Interval unless the file was already
// too large. Nothing here returns an error; failures go to OnError.
func (l *Logger) checkAndRotate() {
	now := l.config.Clock()
	if now.Sub(l.state.Checked) < l.config.Interval && l.state.Size < l.config.FileSize {
		return
	}

	l.state.Checked = now

	info, err := l.Stat(l.config.Filepath)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Nothing to rotate. If the file went away under an open handle, let the next write recreate it.
		l.state.Size = 0

		if err := l.close(); err != nil {
			l.fail(stageCheck, err)
		}

		return
	case err != nil:
		l.fail(stageCheck, fmt.Errorf("checking log file size: %w", err))
		return
	}

	if l.state.Size = info.Size(); l.state.Size < l.config.FileSize {
		return
	}

	if _, err := l.rotate(); err != nil {
		l.fail(stageRotate, err)
	}
}

// rotate closes the active file and renames it through the Rotatorr.
// The active file is not reopened here; the next write creates it.
func (l *Logger) rotate() (int64, error) {
	size := l.state.Size

	if err := l.close(); err != nil {
		l.config.Metrics.failed(l.config.Filepath, stageRotate)
		return size, err
	}

	fpath, err := l.Interface.Rotate(l.config.Filepath)
	if fpath != "" {
		defer l.Interface.Post(l.config.Filepath, fpath)
	}

	if err != nil {
		l.config.Metrics.failed(l.config.Filepath, stageRotate)
		return size, fmt.Errorf("error rotating: %w", err)
	}

	l.state.Size = 0

	if fpath != "" {
		l.config.Metrics.rotated(l.config.Filepath)
	}

	return size, nil
}

// fail reports a problem that must not reach the writer.
func (l *Logger) fail(stage string, err error) {
	if stage == stageCheck {
		l.config.Metrics.failed(l.config.Filepath, stage)
	}

	l.config.OnError(err)
}
