// Package diag collects analyzer diagnostics in report order.
package diag

import (
	"fmt"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one message. Line is 0 when unknown.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
}

// String renders "Semantic Error at line N: msg" or the warning form,
// omitting the line segment when Line <= 0.
func (d Diagnostic) String() string {
	kind := "Error"
	if d.Severity == SeverityWarning {
		kind = "Warning"
	}
	if d.Line <= 0 {
		return fmt.Sprintf("Semantic %s: %s", kind, d.Message)
	}
	return fmt.Sprintf("Semantic %s at line %d: %s", kind, d.Line, d.Message)
}

// Engine accumulates diagnostics and never aborts.
type Engine struct {
	diagnostics []Diagnostic
	errorCount  int
	warnCount   int
}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Error(line int, format string, args ...any) {
	e.diagnostics = append(e.diagnostics, Diagnostic{SeverityError, fmt.Sprintf(format, args...), line})
	e.errorCount++
}

func (e *Engine) Warning(line int, format string, args ...any) {
	e.diagnostics = append(e.diagnostics, Diagnostic{SeverityWarning, fmt.Sprintf(format, args...), line})
	e.warnCount++
}

func (e *Engine) HasErrors() bool   { return e.errorCount > 0 }
func (e *Engine) ErrorCount() int   { return e.errorCount }
func (e *Engine) WarningCount() int { return e.warnCount }

// All returns every diagnostic in report order.
func (e *Engine) All() []Diagnostic { return e.diagnostics }

// Errors returns the rendered error strings in report order.
func (e *Engine) Errors() []string { return e.render(SeverityError) }

// Warnings returns the rendered warning strings in report order.
func (e *Engine) Warnings() []string { return e.render(SeverityWarning) }

func (e *Engine) render(sev Severity) []string {
	var out []string
	for _, d := range e.diagnostics {
		if d.Severity == sev {
			out = append(out, d.String())
		}
	}
	return out
}

// Reporter receives rendered diagnostics.
type Reporter interface {
	Warning(format string, args ...any)
	Error(format string, args ...any)
}

// Report passes warnings, then errors, to r.
func (e *Engine) Report(r Reporter) {
	for _, s := range e.Warnings() {
		r.Warning("%s", s)
	}
	for _, s := range e.Errors() {
		r.Error("%s", s)
	}
}
