// Command preprocess applies one preprocessing operation to a CSV file.
//
//	preprocess <file_path> <operation> [method]
//
// The transformed table is written next to the input with an
// operation-specific suffix. A JSON envelope describing the result is printed
// on standard output, or an error envelope on standard error.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"tabprep/internal/app"
	"tabprep/internal/config"
	"tabprep/internal/envelope"
	"tabprep/internal/infrastructure"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = config.Default()
	}

	logCfg := cfg.Logging
	logCfg.FilePath = cfg.ResolveLogPath()
	logger, err := infrastructure.InitializeLogger(logCfg, stderr)
	if err != nil {
		logger = infrastructure.DiscardLogger()
	}
	defer infrastructure.CloseLogFile()

	if cfgErr != nil {
		logger.Warn("Failed to load config, using defaults", slog.String("error", cfgErr.Error()))
	}

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("Failed to initialize telemetry, continuing without it", slog.String("error", err.Error()))
		telemetry = infrastructure.NoopTelemetry()
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := telemetry.Shutdown(ctx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	dispatcher := app.NewDispatcher(cfg, logger, telemetry)
	outcome := dispatcher.Run(context.Background(), args)

	if err := envelope.Emit(stdout, stderr, outcome.Envelope); err != nil {
		logger.Error("Failed to emit envelope", slog.String("error", err.Error()))
		return config.ExitFailure
	}
	return outcome.ExitCode
}
