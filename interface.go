package applog

//go:generate mockgen -destination=mocks/sink.go -package=mocks golift.io/applog Sink

import "time"

// Record is one log message on its way to the sinks.
type Record struct {
	Level   Level
	Message string
	Time    time.Time
}

// Sink receives every Record that passes the Logger's threshold.
// The Console and RotatingFile sinks are included. Sinks that also
// satisfy io.Closer are closed by Logger.Close.
type Sink interface {
	WriteRecord(rec Record) error
}
