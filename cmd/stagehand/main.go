package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/specialistvlad/stagehandgo/internal/app"
	"github.com/specialistvlad/stagehandgo/internal/cli"
)

// main is the entrypoint for the stagehand binary.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// An optional .env file supplies defaults for the STAGEHAND_* variables
	// the flag layer reads.
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded.", "error", err)
	}

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Startup failures panic inside app.NewApp; they are recovered
// here and surfaced as ordinary errors.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked | %v", r)
		}
	}()

	stagehandApp := app.NewApp(outW, appConfig)
	return stagehandApp.Run(context.Background())
}
