// Package main is a simple example app to write logs to see log rotation in action.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel"
	"golift.io/applog"
	"golift.io/applog/logconf"
)

// ///////////////////////////////////////////////////////////////////////// //

/* This is a simple example app to write logs to see log rotation in action. */

// Usage, small files so rotation happens quickly:
//   go run ./cmd/exampleapp --dir /tmp/myfolder --file-size 1048576 --file-count 10
//
// Usage, reload the level when the config file changes:
//   go run ./cmd/exampleapp --config /tmp/myfolder/log.yaml
//
// Send SIGHUP to rotate now: kill -HUP <pid>

const (
	bytesPerLogLine = 5000
	timeBetweenLogs = time.Millisecond * 5
)

// ///////////////////////////////////////////////////////////////////////// //

func main() {
	if err := createApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "exampleapp:", err)
		os.Exit(1)
	}
}

func createApp() *cli.Command {
	return &cli.Command{
		Name:  "exampleapp",
		Usage: "write fake logs to watch log rotation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML or JSON log config file; the level is reloaded when it changes",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "log file folder",
				Value: applog.DefaultDir,
			},
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Usage:   "error, warn, info, debug or verbose",
				Value:   applog.DefaultLevel.String(),
			},
			&cli.Int64Flag{
				Name:  "file-size",
				Usage: "rotate after this many bytes",
			},
			&cli.IntFlag{
				Name:  "file-count",
				Usage: "backup files to keep",
			},
			&cli.IntFlag{
				Name:  "line-size",
				Usage: "bytes per fake log line",
				Value: bytesPerLogLine,
			},
			&cli.DurationFlag{
				Name:  "every",
				Usage: "time between fake log lines",
				Value: timeBetweenLogs,
			},
			&cli.BoolFlag{
				Name:  "console",
				Usage: "print log lines instead of dots",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	config, err := getConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := applog.New(config)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Close()

	if path := cmd.String("config"); path != "" {
		watcher, err := watchConfig(path, logger)
		if err != nil {
			return err
		}
		defer watcher.Stop() //nolint:errcheck
	}

	log.SetFlags(0)
	log.SetOutput(logger.Writer(applog.LevelInfo))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	logger.Infof("writing logs to %s at level %s", logger.Filepath(), logger.Level())

	return makeLogs(ctx, logger, hup, cmd.Int("line-size"), cmd.Duration("every"), !cmd.Bool("console"))
}

// getConfig reads the config file, if any, then applies flags that were set.
func getConfig(cmd *cli.Command) (*applog.Config, error) {
	config := &applog.Config{Dir: applog.DefaultDir, Level: applog.DefaultLevel}

	if path := cmd.String("config"); path != "" {
		var err error
		if config, err = logconf.Load(path); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if cmd.IsSet("dir") || config.Dir == "" {
		config.Dir = cmd.String("dir")
	}

	if cmd.IsSet("level") || cmd.String("config") == "" {
		level, err := applog.ParseLevel(cmd.String("level"))
		if err != nil {
			return nil, err
		}

		config.Level = level
	}

	if cmd.IsSet("file-size") {
		config.FileSize = cmd.Int64("file-size")
	}

	if cmd.IsSet("file-count") {
		config.FileCount = cmd.Int("file-count")
	}

	config.Console = os.Stdout
	if !cmd.Bool("console") {
		config.Console = io.Discard
	}

	config.MeterProvider = otel.GetMeterProvider()

	return config, nil
}

// watchConfig applies new levels from the config file. Other changes need a restart.
func watchConfig(path string, logger *applog.Logger) (*logconf.Watcher, error) {
	watcher, err := logconf.Watch(path,
		func(config *applog.Config) {
			if config.Level != logger.Level() {
				logger.SetLevel(config.Level)
				logger.Warnf("log level changed to %s", config.Level)
			}
		},
		func(err error) { logger.Errorf("reloading %s: %v", path, err) },
	)
	if err != nil {
		return nil, fmt.Errorf("watching config: %w", err)
	}

	watcher.Start()

	return watcher, nil
}

// Write fake logs!
func makeLogs(ctx context.Context, logger *applog.Logger, hup <-chan os.Signal,
	size int, every time.Duration, dots bool,
) error {
	logLine := string(bytes.Repeat([]byte{'_'}, size))

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("exiting")
			return nil
		case <-hup:
			if err := logger.Rotate(); err != nil {
				logger.Errorf("rotating on SIGHUP: %v", err)
			} else {
				logger.Warn("rotated on SIGHUP")
			}
		case <-ticker.C:
			if dots {
				fmt.Print(".")
			}

			log.Print(logLine)
		}
	}
}
