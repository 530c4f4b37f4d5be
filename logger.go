package cronner

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"
)

// DefaultLogger writes errors to stderr with a "cronner: " prefix.
var DefaultLogger = PrintfLogger(log.New(os.Stderr, "cronner: ", log.LstdFlags))

// DiscardLogger drops every message. Compilers use it unless told otherwise.
var DiscardLogger Logger = discardLogger{}

// Logger is the logging interface of this package, a subset of
// github.com/go-logr/logr so that any backend can be plugged in.
type Logger interface {
	// Info logs routine events, such as a search that found nothing.
	Info(msg string, keysAndValues ...any)
	// Error logs an error condition.
	Error(err error, msg string, keysAndValues ...any)
}

type discardLogger struct{}

func (discardLogger) Info(string, ...any)         {}
func (discardLogger) Error(error, string, ...any) {}

// Printfer is satisfied by *log.Logger.
type Printfer interface {
	Printf(format string, v ...any)
}

// PrintfLogger adapts a Printf-style logger, logging errors only.
func PrintfLogger(l Printfer) Logger {
	return printfLogger{out: l}
}

// VerbosePrintfLogger adapts a Printf-style logger, logging everything.
func VerbosePrintfLogger(l Printfer) Logger {
	return printfLogger{out: l, verbose: true}
}

type printfLogger struct {
	out     Printfer
	verbose bool
}

func (pl printfLogger) Info(msg string, keysAndValues ...any) {
	if pl.verbose {
		pl.out.Printf("%s", logfmt(msg, keysAndValues))
	}
}

func (pl printfLogger) Error(err error, msg string, keysAndValues ...any) {
	pl.out.Printf("%s", logfmt(msg, append([]any{"error", err}, keysAndValues...)))
}

// logfmt renders msg followed by key=value pairs. Times are RFC3339 and a
// trailing key without a value is dropped.
func logfmt(msg string, keysAndValues []any) string {
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		value := keysAndValues[i+1]
		if t, ok := value.(time.Time); ok {
			value = t.Format(time.RFC3339)
		}
		fmt.Fprintf(&sb, ", %v=%v", keysAndValues[i], value)
	}
	return sb.String()
}

// SlogLogger adapts a *slog.Logger to Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger returns a Logger writing to l, or to slog.Default if l is nil.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

// Info logs at slog.LevelInfo.
func (s *SlogLogger) Info(msg string, keysAndValues ...any) {
	s.logger.Info(msg, keysAndValues...)
}

// Error logs at slog.LevelError with the error under the "error" key.
func (s *SlogLogger) Error(err error, msg string, keysAndValues ...any) {
	s.logger.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
