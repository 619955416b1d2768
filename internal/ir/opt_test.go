package ir

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFoldedDeclaration(t *testing.T) {
	code := Optimize(generate(t, `
func main() -> int {
    let x: int = 2 + 3
    return x
}`))
	wantListing(t, code,
		"main:",
		"x = 5",
		"return 5",
	)
}

func TestPassesRunOnce(t *testing.T) {
	// 4 * 1 appears only after propagation and is simplified, not folded
	// again; the copies through temporaries stay.
	code := Optimize(generate(t, `
func main() -> int {
    let a: int = 4
    let b: int = a * 1
    let c: int = 0 + b
    let d: int = a - 0
    return 0
}`))
	wantListing(t, code,
		"main:",
		"a = 4",
		"t0 = 4",
		"b = t0",
		"t1 = b",
		"c = t1",
		"t2 = 4",
		"d = t2",
		"return 0",
	)
}

func TestPropagationStopsAtLabels(t *testing.T) {
	code := Optimize(generate(t, `
func main() -> int {
    let x: int = 1
    while x < 10 { x = x * 2 }
    return x
}`))
	wantListing(t, code,
		"main:",
		"x = 1",
		"goto L1",
		"L0:",
		"t0 = x * 2",
		"x = t0",
		"L1:",
		"t1 = x < 10",
		"if t1 goto L0",
		"L2:",
		"return x",
	)
}

func TestPropagationIntoCallsAndStores(t *testing.T) {
	code := Optimize(generate(t, `
func main() -> int {
    let s: sequence = [1, 2 * 3]
    let n: int = 7
    print("a, b", n, length(s))
    return 0
}`))
	wantListing(t, code,
		"main:",
		"t0 = []",
		"t0[0] = 1",
		"t0[1] = 6",
		"s = t0",
		"n = 7",
		`param "a, b"`,
		"param 7",
		"param s",
		"t3 = call length, s",
		"param t3",
		`t2 = call print, "a, b", 7, t3`,
		"return 0",
	)
}

func TestDivisionByZeroNotFolded(t *testing.T) {
	code := Optimize(generate(t, `
func main() -> int {
    let z: int = 1 / 0
    return z
}`))
	wantListing(t, code,
		"main:",
		"t0 = 1 / 0",
		"z = t0",
		"return z",
	)
}

func TestFoldArithmetic(t *testing.T) {
	cases := []struct {
		op   Op
		a, b string
		want string
	}{
		{OpAdd, "2", "3", "5"},
		{OpSub, "2", "7", "-5"},
		{OpMul, "-4", "6", "-24"},
		{OpDiv, "7", "2", "3"},
		{OpDiv, "-7", "2", "-3"},
	}
	for _, c := range cases {
		got := constFold([]Instr{{Op: c.op, Arg1: c.a, Arg2: c.b, Result: "t0"}})
		want := []Instr{{Op: OpAssign, Arg1: c.want, Result: "t0"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s %s %s (-want +got):\n%s", c.a, c.op, c.b, diff)
		}
	}
	// only integer literals fold
	in := []Instr{{Op: OpAdd, Arg1: "1.5", Arg2: "2", Result: "t0"}, {Op: "%", Arg1: "7", Arg2: "2", Result: "t1"}}
	if diff := cmp.Diff(in, constFold(append([]Instr(nil), in...))); diff != "" {
		t.Errorf("non-foldable rewritten:\n%s", diff)
	}
}

func TestAlgebraicSimplify(t *testing.T) {
	cases := []struct {
		in   Instr
		want Instr
	}{
		{Instr{Op: OpAdd, Arg1: "x", Arg2: "0", Result: "t0"}, Instr{Op: OpAssign, Arg1: "x", Result: "t0"}},
		{Instr{Op: OpSub, Arg1: "x", Arg2: "0", Result: "t0"}, Instr{Op: OpAssign, Arg1: "x", Result: "t0"}},
		{Instr{Op: OpMul, Arg1: "x", Arg2: "1", Result: "t0"}, Instr{Op: OpAssign, Arg1: "x", Result: "t0"}},
		{Instr{Op: OpMul, Arg1: "x", Arg2: "0", Result: "t0"}, Instr{Op: OpAssign, Arg1: "0", Result: "t0"}},
		{Instr{Op: OpMul, Arg1: "0", Arg2: "x", Result: "t0"}, Instr{Op: OpAssign, Arg1: "0", Result: "t0"}},
		{Instr{Op: OpAdd, Arg1: "0", Arg2: "x", Result: "t0"}, Instr{Op: OpAssign, Arg1: "x", Result: "t0"}},
		{Instr{Op: OpMul, Arg1: "1", Arg2: "x", Result: "t0"}, Instr{Op: OpAssign, Arg1: "x", Result: "t0"}},
		{Instr{Op: OpSub, Arg1: "0", Arg2: "x", Result: "t0"}, Instr{Op: OpSub, Arg1: "0", Arg2: "x", Result: "t0"}},
		{Instr{Op: OpSub, Arg1: "0", Result: "t0"}, Instr{Op: OpSub, Arg1: "0", Result: "t0"}},
	}
	for _, c := range cases {
		got := algebraicSimplify([]Instr{c.in})
		if diff := cmp.Diff([]Instr{c.want}, got); diff != "" {
			t.Errorf("%v (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestRemoveSelfAssign(t *testing.T) {
	in := []Instr{
		{Op: OpAssign, Arg1: "x", Result: "x"},
		{Op: OpAssign, Arg1: "y", Result: "x"},
		{Op: OpAdd, Arg1: "x", Arg2: "x", Result: "x"},
	}
	want := []Instr{in[1], in[2]}
	if diff := cmp.Diff(want, removeSelfAssign(append([]Instr(nil), in...))); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestDCEKeepsNamedVariables(t *testing.T) {
	in := []Instr{
		{Op: OpAssign, Arg1: "1", Result: "t5"},
		{Op: OpAssign, Arg1: "2", Result: "unused"},
		{Op: OpAssign, Arg1: "3", Result: "temp"},
		{Op: OpAssign, Arg1: "[]", Result: "t6"},
		{Op: OpStore, Arg1: "1", Arg2: "0", Result: "t6"},
		{Op: OpAssign, Arg1: "4", Result: "t7"},
		{Op: OpCall, Arg1: "print", Arg2: "t7", Result: "t8"},
	}
	want := []Instr{in[1], in[2], in[3], in[4], in[5], in[6]}
	if diff := cmp.Diff(want, dce(append([]Instr(nil), in...))); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

type recordingTracer struct{ lines []string }

func (r *recordingTracer) Debug(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func TestOptimizeWithStats(t *testing.T) {
	raw := generate(t, "func main() -> int {\n let x: int = 2 + 3\n return x }")
	before := Format(raw)
	tr := &recordingTracer{}
	out, stats := OptimizeWith(raw, tr)
	if Format(raw) != before {
		t.Fatal("input listing was modified")
	}
	if len(stats) != 5 || len(tr.lines) != 5 {
		t.Fatalf("got %d stats, %d trace lines", len(stats), len(tr.lines))
	}
	last := stats[len(stats)-1]
	if last.Name != "dead code elimination" || last.Before != 4 || last.After != len(out) || last.After != 3 {
		t.Fatalf("last stats = %+v", last)
	}
}
