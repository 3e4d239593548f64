// Package introtator provides an interface for rotator that renames backup
// log files with an incrementing integer appended to the name.
// Rotated log files are named: app.log.1, app.log.2, ... app.log.FileCount.
//
// The current file is always rotated to `.1`, and every backup in the way
// is shifted up by one first, highest integer first. The backup at FileCount
// is deleted before anything moves, so no more than FileCount backups exist.
package introtator

import (
	"path/filepath"
	"strconv"

	"golift.io/applog/filer"
	"golift.io/applog/rotator"
)

// DefaultFileCount is used when Layout.FileCount is less than 1.
const DefaultFileCount = 50

// Joiner joins the log file name with the integer.
const Joiner = "."

// Layout defines how integer-stamped backup logs have their file names decided.
// This also sets how many files are kept. Every rotation renames every backup
// file, so keep FileCount reasonable.
type Layout struct {
	ArchiveDir string // Location where rotated backup logs are moved to.
	FileCount  int    // Maximum number of rotated log files.
	PostRotate func(fileName, newFile string)
	filer.Filer
}

// Dirs checks our config and returns the folder for the rotator library to create them.
func (l *Layout) Dirs(fileName string) ([]string, error) {
	if l.Filer == nil {
		l.Filer = filer.Default()
	}

	if l.FileCount < 1 {
		l.FileCount = DefaultFileCount
	}

	switch fpath := filepath.Dir(fileName); {
	case l.ArchiveDir == "" || fpath == l.ArchiveDir:
		return []string{fpath}, nil
	default:
		return []string{fpath, l.ArchiveDir}, nil
	}
}

// Post satisfies the Rotatorr interface.
func (l *Layout) Post(fileName, newFile string) {
	if l.PostRotate != nil {
		l.PostRotate(fileName, newFile)
	}
}

// Backup returns the path of backup number idx for fileName.
// Backup 1 is the most recent.
func (l *Layout) Backup(fileName string, idx int) string {
	return filepath.Join(l.getArchiveDir(fileName), filepath.Base(fileName)+Joiner+strconv.Itoa(idx))
}

// getArchiveDir returns the archive directory if one is set,
// otherwise the directory the log file is in.
func (l *Layout) getArchiveDir(fileName string) string {
	if l.ArchiveDir != "" {
		return l.ArchiveDir
	}

	return filepath.Dir(fileName)
}

func (l *Layout) fileCount() int {
	if l.FileCount < 1 {
		return DefaultFileCount
	}

	return l.FileCount
}

func (l *Layout) getFiler() filer.Filer {
	if l.Filer == nil {
		return filer.Default()
	}

	return l.Filer
}

// Our interface must satify a rotator.Rotatorr.
var _ rotator.Rotatorr = (*Layout)(nil)
