package notify

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Level represents event severity
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Event represents a single outcome reported by a migration stage
type Event struct {
	Level   Level  `yaml:"level"`
	File    string `yaml:"file,omitempty"`
	Message string `yaml:"message"`
}

// String returns the event message prefixed with the file it relates to
func (e *Event) String() string {
	if e.File == "" {
		return e.Message
	}
	return e.File + ": " + e.Message
}

// Notifier represents a one-way host notification sink
type Notifier interface {
	Info(message string)
	Warning(message string)
	Error(message string)
}

// Publish sends events to a notifier in order
func Publish(notifier Notifier, events ...*Event) {
	for _, event := range events {
		switch event.Level {
		case LevelError:
			notifier.Error(event.String())
		case LevelWarning:
			notifier.Warning(event.String())
		default:
			notifier.Info(event.String())
		}
	}
}

// Logger sends notifications to a zap logger
type Logger struct {
	log *zap.Logger
}

func (l *Logger) Info(message string)    { l.log.Info(message) }
func (l *Logger) Warning(message string) { l.log.Warn(message) }
func (l *Logger) Error(message string)   { l.log.Error(message) }

// NewLogger creates a zap backed notifier
func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

// Console writes coloured notifications
type Console struct {
	writer  io.Writer
	info    *color.Color
	warning *color.Color
	failure *color.Color
}

func (c *Console) Info(message string) {
	c.info.Fprintln(c.writer, message)
}

func (c *Console) Warning(message string) {
	c.warning.Fprintln(c.writer, "warning: "+message)
}

func (c *Console) Error(message string) {
	c.failure.Fprintln(c.writer, "error: "+message)
}

// NewConsole creates a console notifier, noColor disables escape sequences
func NewConsole(writer io.Writer, noColor bool) *Console {
	ret := &Console{
		writer:  writer,
		info:    color.New(color.FgCyan),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
	}
	if noColor {
		ret.info.DisableColor()
		ret.warning.DisableColor()
		ret.failure.DisableColor()
	}
	return ret
}

// Multi fans notifications out to several notifiers
type Multi []Notifier

func (m Multi) Info(message string) {
	for _, n := range m {
		n.Info(message)
	}
}

func (m Multi) Warning(message string) {
	for _, n := range m {
		n.Warning(message)
	}
}

func (m Multi) Error(message string) {
	for _, n := range m {
		n.Error(message)
	}
}

// Infof formats and sends an info notification
func Infof(notifier Notifier, format string, args ...interface{}) {
	notifier.Info(fmt.Sprintf(format, args...))
}
