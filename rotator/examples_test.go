package rotator_test

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golift.io/applog/introtator"
	"golift.io/applog/rotator"
)

func ExampleNew() {
	rotate, err := rotator.New(&rotator.Config{
		Filepath: "/var/log/service/app.log",
		Rotatorr: &introtator.Layout{FileCount: 10},
	})
	if err != nil {
		panic(err)
	}

	log.SetOutput(rotate)
}

// This example shows all of the Config members.
func Example_config() {
	log.SetOutput(rotator.NewMust(&rotator.Config{
		Filepath: "/var/log/service/app.log",
		FileSize: rotator.DefaultMaxSize,  // 1 megabyte.
		Interval: rotator.DefaultInterval, // stat the file at most once a second.
		FileMode: rotator.FileMode,        // default: 0600
		DirMode:  rotator.DirMode,         // default: 0750
		OnError: func(err error) {
			// Do not write to the same Logger from here.
			fmt.Fprintln(os.Stderr, "rotation:", err)
		},
		Metrics: nil, // see NewMetrics.
		Filer:   nil, // use default: os procedures.
		Clock:   nil, // use default: time.Now
		Rotatorr: &introtator.Layout{
			FileCount:  introtator.DefaultFileCount,
			ArchiveDir: "/var/log/service/archives",
			PostRotate: func(fileName, newFile string) {
				fmt.Fprintln(os.Stderr, "rotated", fileName, "->", newFile)
			},
		},
	}))
}

// Rotate a log on SIGHUP signal.
func ExampleLogger_Rotate() {
	rotate := rotator.NewMust(&rotator.Config{
		Filepath: "/var/log/service/app.log",
		Rotatorr: &introtator.Layout{},
	})
	log.SetOutput(rotate)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGHUP)

	go func() {
		<-sigc

		_, err := rotate.Rotate()
		if err != nil {
			panic(err)
		}
	}()
}
