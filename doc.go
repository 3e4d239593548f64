// Package applog is a leveled logger that prints every accepted message to the
// console and persists it to a size-rotated log file. It is the single logging
// entry point for an application.
//
// Messages at or above the configured severity reach two sinks: the console gets
// the bare message, exactly as the caller formatted it, and the file gets a
// time stamped, leveled line:
//
//	2006-01-02 15:04:05 [INFO] message
//
// The file is <dir>/app.log. When it passes 1MB it is renamed to app.log.1,
// and older backups shift up one integer, keeping at most 50. See the rotator
// and introtator packages for the details.
//
// Logging never fails the caller. Sink errors are printed to stderr.
//
// To capture output from code that prints instead of logs, pass Logger.Writer
// to that code (or to log.SetOutput).
package applog
