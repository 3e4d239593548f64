// Package rotator is the size-triggered log file writer. It provides an
// io.WriteCloser that checks the active file's size before each write and
// hands the file to a Rotatorr (see introtator) when it grows too large.
//
// Size checks are rate limited: the file is stat'ed at most once per
// Config.Interval while the last known size is below Config.FileSize. Under
// steady load this bounds stat calls to one per interval, at the cost of up to
// one interval's worth of writes past the limit.
//
// Rotation failures never fail a Write. They are handed to Config.OnError
// (os.Stderr by default) and counted by Metrics, and the write continues into
// the oversized file. Every check, rotation and write for one Logger runs in
// a single go routine, so they never interleave.
package rotator
