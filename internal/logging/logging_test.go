package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsAndCounters(t *testing.T) {
	t.Setenv(DebugEnv, "")
	var buf bytes.Buffer
	l := NewWithOutput("driver", false, &buf)
	l.Debug("hidden %d", 1)
	l.Info("phase %s", "parse")
	l.Warning("careful")
	l.Error("broken")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level:\n%s", out)
	}
	for _, want := range []string{"phase parse", "careful", "broken", "component=driver"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !l.HasErrors() || l.ErrorCount() != 1 || l.WarningCount() != 1 {
		t.Fatalf("counts: %d errors, %d warnings", l.ErrorCount(), l.WarningCount())
	}

	var sum bytes.Buffer
	l.PrintSummary(&sum)
	if sum.String() != "1 error(s), 1 warning(s)\n" {
		t.Fatalf("summary = %q", sum.String())
	}
}

func TestSummarySilentWhenClean(t *testing.T) {
	var sum bytes.Buffer
	Discard().PrintSummary(&sum)
	if sum.Len() != 0 {
		t.Fatalf("summary = %q", sum.String())
	}
}

func TestDebugFromEnvironment(t *testing.T) {
	t.Setenv(DebugEnv, "true")
	var buf bytes.Buffer
	l := NewWithOutput("ir", false, &buf)
	l.Debug("pass %s", "fold")
	if !strings.Contains(buf.String(), "pass fold") {
		t.Fatalf("debug line missing:\n%s", buf.String())
	}
	sub := l.With("opt")
	sub.Debug("nested")
	if !strings.Contains(buf.String(), "component=opt") {
		t.Fatalf("sub-component missing:\n%s", buf.String())
	}
}

func TestWithSharesCounters(t *testing.T) {
	parent := Discard()
	child := parent.With("sema")
	child.Error("bad %s", "thing")
	child.Warning("odd")
	parent.Warning("odd again")
	if parent.ErrorCount() != 1 || parent.WarningCount() != 2 {
		t.Fatalf("parent counts: %d errors, %d warnings", parent.ErrorCount(), parent.WarningCount())
	}
	if !child.HasErrors() || child.WarningCount() != 2 {
		t.Fatal("child does not see parent counts")
	}
}
