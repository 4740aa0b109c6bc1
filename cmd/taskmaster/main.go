package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/akaash02/TaskMaster/adapter/cli"
	"github.com/akaash02/TaskMaster/adapter/cli/event"
	"github.com/akaash02/TaskMaster/adapter/cli/schedule"
	"github.com/akaash02/TaskMaster/adapter/cli/slot"
	"github.com/akaash02/TaskMaster/adapter/cli/task"
	"github.com/akaash02/TaskMaster/internal/app"
	"github.com/akaash02/TaskMaster/pkg/config"
	"github.com/akaash02/TaskMaster/pkg/observability"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	logger := observability.NewLogger(observability.LogConfig{
		Level:  "warn",
		Output: os.Stderr,
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = observability.NewLogger(observability.LogConfig{
		Level:          cfg.LogLevel,
		Format:         observability.LogFormat(cfg.LogFormat),
		Output:         os.Stderr,
		ServiceName:    "taskmaster",
		ServiceVersion: version,
	})
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}

	cli.SetApp(cli.NewApp(container))

	cli.AddCommand(task.Cmd)
	cli.AddCommand(slot.Cmd)
	cli.AddCommand(event.Cmd)
	cli.AddCommand(schedule.Cmd)

	code := 0
	if err := cli.Run(ctx); err != nil {
		code = 1
	}
	container.Close()
	os.Exit(code)
}
