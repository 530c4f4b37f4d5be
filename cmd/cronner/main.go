package main

import (
	"log/slog"
	"os"

	"github.com/orangeswim/cronner/internal/cli"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if err := cli.NewRoot(cli.Options{Logger: logger, Level: level}).Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
