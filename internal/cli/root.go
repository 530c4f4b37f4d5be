// Package cli implements the cronner command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orangeswim/cronner"
)

const defaultVersion = "0.1.0"

// ErrNotFound is returned by commands whose rule never fires again within
// the search bound.
var ErrNotFound = errors.New("no occurrence found")

// Options configures the command tree. Zero fields get defaults: a discarding
// logger, the system clock and the built-in version string.
type Options struct {
	Logger *slog.Logger
	// Level, when set, is adjusted by --log-level.
	Level   *slog.LevelVar
	Clock   cronner.Clock
	Version string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Clock == nil {
		o.Clock = cronner.RealClock{}
	}
	if o.Version == "" {
		o.Version = defaultVersion
	}
	return o
}

func NewRoot(opts Options) *cobra.Command {
	opts = opts.withDefaults()

	var logLevel string
	root := &cobra.Command{
		Use:           "cronner",
		Short:         "Compile cron rules and find when they fire next",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyLogLevel(opts.Level, logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(newNextCommand(opts))
	root.AddCommand(newCheckCommand(opts))
	root.AddCommand(newFileCommand(opts))
	root.AddCommand(newVersionCommand(opts.Version))

	return root
}

func applyLogLevel(level *slog.LevelVar, value string) error {
	var parsed slog.Level
	if err := parsed.UnmarshalText([]byte(value)); err != nil {
		return fmt.Errorf("invalid --log-level %q", value)
	}
	if level != nil {
		level.Set(parsed)
	}
	return nil
}

// newCompiler returns the compiler shared by the commands. Exhausted searches
// are reported through the command logger.
func newCompiler(logger *slog.Logger, maxIterations int) cronner.Compiler {
	return cronner.NewCompiler().
		WithMaxIterations(maxIterations).
		WithLogger(cronner.NewSlogLogger(logger))
}

// ruleText joins the arguments so that rules may be passed unquoted.
func ruleText(args []string) string {
	return strings.Join(args, " ")
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print CLI version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	}
}
