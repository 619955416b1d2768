package diag

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRendering(t *testing.T) {
	e := NewEngine()
	e.Warning(3, "Variable '%s' may be uninitialized", "x")
	e.Error(7, "Undefined variable '%s'", "y")
	e.Error(0, "no line")
	e.Warning(-1, "also no line")

	if !e.HasErrors() || e.ErrorCount() != 2 || e.WarningCount() != 2 {
		t.Fatalf("counts: errors=%d warnings=%d", e.ErrorCount(), e.WarningCount())
	}
	wantErrs := []string{
		"Semantic Error at line 7: Undefined variable 'y'",
		"Semantic Error: no line",
	}
	if diff := cmp.Diff(wantErrs, e.Errors()); diff != "" {
		t.Fatalf("errors (-want +got):\n%s", diff)
	}
	wantWarns := []string{
		"Semantic Warning at line 3: Variable 'x' may be uninitialized",
		"Semantic Warning: also no line",
	}
	if diff := cmp.Diff(wantWarns, e.Warnings()); diff != "" {
		t.Fatalf("warnings (-want +got):\n%s", diff)
	}

	var r recorder
	e.Report(&r)
	want := []string{
		"W Semantic Warning at line 3: Variable 'x' may be uninitialized",
		"W Semantic Warning: also no line",
		"E Semantic Error at line 7: Undefined variable 'y'",
		"E Semantic Error: no line",
	}
	if diff := cmp.Diff(want, r.lines); diff != "" {
		t.Fatalf("Report (-want +got):\n%s", diff)
	}
}

type recorder struct{ lines []string }

func (r *recorder) Warning(format string, args ...any) {
	r.lines = append(r.lines, "W "+fmt.Sprintf(format, args...))
}

func (r *recorder) Error(format string, args ...any) {
	r.lines = append(r.lines, "E "+fmt.Sprintf(format, args...))
}

func TestEmptyEngine(t *testing.T) {
	e := NewEngine()
	if e.HasErrors() || len(e.Errors()) != 0 || len(e.All()) != 0 {
		t.Fatal("fresh engine is not empty")
	}
}
