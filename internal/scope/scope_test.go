package scope

import (
	"testing"

	"github.com/tinyrange/mathseq/internal/types"
)

func TestDeclareSameScopeFails(t *testing.T) {
	m := New()
	if !m.Declare("x", types.Int, false, false) {
		t.Fatal("first declare failed")
	}
	if m.Declare("x", types.Float, false, false) {
		t.Fatal("redeclare in same scope succeeded")
	}
	sym, _ := m.Lookup("x")
	if sym.Type != types.Int {
		t.Fatalf("failed redeclare changed type to %v", sym.Type)
	}
}

func TestShadowing(t *testing.T) {
	m := New()
	m.Declare("x", types.Int, true, false)
	m.EnterScope()
	if !m.Declare("x", types.Bool, false, false) {
		t.Fatal("shadowing declare failed")
	}
	sym, ok := m.Lookup("x")
	if !ok || sym.Type != types.Bool || sym.ScopeDepth != 1 {
		t.Fatalf("inner lookup = %+v", sym)
	}
	m.ExitScope()
	sym, _ = m.Lookup("x")
	if sym.Type != types.Int || sym.ScopeDepth != 0 {
		t.Fatalf("outer lookup = %+v", sym)
	}
}

func TestDepthAndRootGuard(t *testing.T) {
	m := New()
	m.ExitScope()
	if m.Depth() != 0 {
		t.Fatalf("depth after root exit = %d", m.Depth())
	}
	m.EnterScope()
	m.EnterScope()
	if m.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.Depth())
	}
	m.ExitScope()
	m.ExitScope()
	m.ExitScope()
	if m.Depth() != 0 {
		t.Fatalf("depth = %d, want 0", m.Depth())
	}
}

func TestMarkInitializedNearest(t *testing.T) {
	m := New()
	m.Declare("x", types.Int, false, false)
	m.EnterScope()
	m.Declare("x", types.Int, false, false)
	if !m.MarkInitialized("x") {
		t.Fatal("MarkInitialized failed")
	}
	inner, _ := m.LookupLocal("x")
	if !inner.Initialized {
		t.Fatal("inner not initialized")
	}
	m.ExitScope()
	outer, _ := m.Lookup("x")
	if outer.Initialized {
		t.Fatal("outer initialized through shadow")
	}
	if m.MarkInitialized("missing") {
		t.Fatal("MarkInitialized on undeclared name succeeded")
	}
}
