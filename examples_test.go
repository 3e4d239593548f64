package applog_test

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golift.io/applog"
)

func ExampleNew() {
	logger, err := applog.New(&applog.Config{
		Dir:   "/var/log/service",
		Level: applog.LevelInfo,
	})
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("service started")         // console and file.
	logger.Debug("not shown at LevelInfo") // dropped.
	logger.Errorf("lost %d widgets", 3)    // errors always pass.
}

// This example shows all of the Config members.
func Example_config() {
	logger := applog.NewMust(&applog.Config{
		Dir:           "/var/log/service",
		FileName:      "app.log",
		Level:         applog.LevelDebug,
		FileSize:      10 * 1024 * 1024, // 10 megabytes.
		FileCount:     10,               // app.log.1 through app.log.10
		Interval:      time.Second,      // stat the file at most once a second.
		FileMode:      0o640,
		DirMode:       0o750,
		Console:       os.Stdout,
		ErrOut:        os.Stderr,
		MeterProvider: nil, // see otel.GetMeterProvider.
		Sinks:         nil, // add your own Sink implementations.
		Clock:         nil, // use default: time.Now
	})
	defer logger.Close()

	logger.Verbose("not shown at LevelDebug")
}

// Capture output from the standard log package.
func ExampleLogger_Writer() {
	logger := applog.NewMust(&applog.Config{Dir: "/var/log/service", Level: applog.LevelInfo})
	defer logger.Close()

	log.SetFlags(0)
	log.SetOutput(logger.Writer(applog.LevelInfo))
	log.Println("this line is written to the console and app.log")
}

// Rotate the log file on SIGHUP signal.
func ExampleLogger_Rotate() {
	logger := applog.NewMust(&applog.Config{Dir: "/var/log/service", Level: applog.LevelInfo})

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGHUP)

	go func() {
		<-sigc

		if err := logger.Rotate(); err != nil {
			logger.Errorf("rotating: %v", err)
		}
	}()
}
