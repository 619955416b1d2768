// Package logging provides the compiler's leveled logger. Messages go to
// stderr through logrus, tagged with the component that produced them.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// DebugEnv enables debug output when set to "true".
const DebugEnv = "MATHSEQDEBUG"

type counters struct {
	mu     sync.Mutex
	errors int
	warns  int
}

// Logger counts the warnings and errors it writes. Loggers derived with
// With share their parent's counts.
type Logger struct {
	entry *logrus.Entry
	n     *counters
}

// New returns a logger writing to stderr at Info level, or Debug level when
// debug is set or DebugEnv is "true".
func New(component string, debug bool) *Logger {
	return NewWithOutput(component, debug, os.Stderr)
}

func NewWithOutput(component string, debug bool, w io.Writer) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	base.SetLevel(logrus.InfoLevel)
	if debug || strings.EqualFold(os.Getenv(DebugEnv), "true") {
		base.SetLevel(logrus.DebugLevel)
	}
	return &Logger{entry: base.WithField("component", component), n: &counters{}}
}

// Discard returns a logger that drops everything but still counts.
func Discard() *Logger {
	return NewWithOutput("", false, io.Discard)
}

// With returns a logger for a sub-component sharing the same output.
func (l *Logger) With(component string) *Logger {
	return &Logger{entry: l.entry.WithField("component", component), n: l.n}
}

func (l *Logger) Debug(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l *Logger) Warning(format string, args ...any) {
	l.entry.Warnf(format, args...)
	l.n.mu.Lock()
	l.n.warns++
	l.n.mu.Unlock()
}

func (l *Logger) Error(format string, args ...any) {
	l.entry.Errorf(format, args...)
	l.n.mu.Lock()
	l.n.errors++
	l.n.mu.Unlock()
}

func (l *Logger) HasErrors() bool { return l.ErrorCount() > 0 }

func (l *Logger) ErrorCount() int {
	l.n.mu.Lock()
	defer l.n.mu.Unlock()
	return l.n.errors
}

func (l *Logger) WarningCount() int {
	l.n.mu.Lock()
	defer l.n.mu.Unlock()
	return l.n.warns
}

// PrintSummary writes the counters if any are nonzero.
func (l *Logger) PrintSummary(w io.Writer) {
	errs, warns := l.ErrorCount(), l.WarningCount()
	if errs == 0 && warns == 0 {
		return
	}
	fmt.Fprintf(w, "%d error(s), %d warning(s)\n", errs, warns)
}
