package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"codeberg.org/mutker/nvstat/internal/errors"
)

var log zerolog.Logger

type LogLevel int8

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

type LogEvent struct {
	*zerolog.Event
}

func (e *LogEvent) Msg(msg string) {
	e.Event.Msg(msg)
}

func (e *LogEvent) Send() {
	e.Event.Send()
}

// Init initializes the logger. Log output goes to stderr; stdout carries the
// rendered dashboard and must stay clean.
func Init(level string, noColor bool) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor || !term.IsTerminal(int(os.Stderr.Fd())),
	}

	log = zerolog.New(output).With().Timestamp().Logger()

	SetLogLevel(parsed)

	return nil
}

// ParseLevel maps a level name from configuration to a LogLevel
func ParseLevel(level string) (LogLevel, error) {
	switch level {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return WarnLevel, errors.New().WithData(errors.ErrInvalidLogLevel, level)
	}
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(zerolog.Level(level))
}

// Debug logs a debug message
func Debug() *LogEvent {
	return &LogEvent{log.Debug()}
}

// Info logs an info message
func Info() *LogEvent {
	return &LogEvent{log.Info()}
}

// Warn logs a warning message
func Warn() *LogEvent {
	return &LogEvent{log.Warn()}
}

// Error logs an error message
func Error() *LogEvent {
	return &LogEvent{log.Error()}
}

// ErrorWithCode logs an error message, attaching the domain error code and
// cause when err carries them.
func ErrorWithCode(err error) *LogEvent {
	return withCode(log.Error(), err)
}

// Fatal logs a fatal message and exits the program
func Fatal() *LogEvent {
	return &LogEvent{log.Fatal()}
}

// FatalWithCode logs a fatal message with the domain error code and exits
// the program.
func FatalWithCode(err error) *LogEvent {
	return withCode(log.Fatal(), err)
}

func withCode(event *zerolog.Event, err error) *LogEvent {
	var coded errors.Error
	if errors.As(err, &coded) {
		return &LogEvent{event.
			Str("error_code", string(coded.Code())).
			Str("error_message", coded.Error()).
			AnErr("error", coded.Unwrap())}
	}

	return &LogEvent{event.Err(err)}
}
