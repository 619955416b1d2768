package ir

import (
	"strconv"
)

// Tracer receives per-pass progress from OptimizeWith.
type Tracer interface {
	Debug(format string, args ...any)
}

// PassStats records the instruction count around one pass.
type PassStats struct {
	Name   string
	Before int
	After  int
}

type pass struct {
	name string
	run  func([]Instr) []Instr
}

// The passes run once each, in this order. A folding opportunity exposed
// by a later pass is not revisited.
var passes = []pass{
	{"constant folding", constFold},
	{"constant propagation", constProp},
	{"algebraic simplification", algebraicSimplify},
	{"redundant assignment removal", removeSelfAssign},
	{"dead code elimination", dce},
}

// Optimize returns an optimized copy of code.
func Optimize(code []Instr) []Instr {
	out, _ := OptimizeWith(code, nil)
	return out
}

// OptimizeWith is Optimize with per-pass statistics. tr may be nil.
func OptimizeWith(code []Instr, tr Tracer) ([]Instr, []PassStats) {
	cur := append([]Instr(nil), code...)
	stats := make([]PassStats, 0, len(passes))
	for _, p := range passes {
		before := len(cur)
		cur = p.run(cur)
		stats = append(stats, PassStats{Name: p.name, Before: before, After: len(cur)})
		if tr != nil {
			tr.Debug("optimizer: %s: %d -> %d instructions", p.name, before, len(cur))
		}
	}
	return cur, stats
}

func isFoldable(op Op) bool {
	return op == OpAdd || op == OpSub || op == OpMul || op == OpDiv
}

func constFold(code []Instr) []Instr {
	for i, in := range code {
		if !isFoldable(in.Op) || !isIntLiteral(in.Arg1) || !isIntLiteral(in.Arg2) {
			continue
		}
		a, _ := strconv.ParseInt(in.Arg1, 10, 64)
		b, _ := strconv.ParseInt(in.Arg2, 10, 64)
		var k int64
		switch in.Op {
		case OpAdd:
			k = a + b
		case OpSub:
			k = a - b
		case OpMul:
			k = a * b
		case OpDiv:
			// keep the runtime fault
			if b == 0 {
				continue
			}
			k = a / b
		}
		code[i] = Instr{Op: OpAssign, Arg1: strconv.FormatInt(k, 10), Result: in.Result, Line: in.Line}
	}
	return code
}

// defines reports whether in writes a value to in.Result.
func defines(in Instr) bool {
	switch in.Op {
	case OpLabel, OpGoto, OpIf, OpIfFalse, OpParam, OpReturn, OpStore:
		return false
	}
	return in.Result != ""
}

func constProp(code []Instr) []Instr {
	known := make(map[string]string)
	subst := func(s string) string {
		if v, ok := known[s]; ok {
			return v
		}
		return s
	}
	for i := range code {
		in := &code[i]
		if in.Op == OpLabel {
			// join point: values from other predecessors are unknown
			clear(known)
			continue
		}
		if in.Op == OpCall {
			args := CallArgs(in.Arg2)
			for j, a := range args {
				args[j] = subst(a)
			}
			in.Arg2 = joinArgs(args)
		} else {
			in.Arg1 = subst(in.Arg1)
			in.Arg2 = subst(in.Arg2)
		}
		if !defines(*in) {
			continue
		}
		if in.Op == OpAssign && isIntLiteral(in.Arg1) {
			known[in.Result] = in.Arg1
		} else {
			delete(known, in.Result)
		}
	}
	return code
}

func algebraicSimplify(code []Instr) []Instr {
	for i, in := range code {
		if in.IsUnary() {
			continue
		}
		switch {
		case in.Op == OpAdd && in.Arg2 == "0",
			in.Op == OpSub && in.Arg2 == "0",
			in.Op == OpMul && in.Arg2 == "1":
			code[i] = Instr{Op: OpAssign, Arg1: in.Arg1, Result: in.Result, Line: in.Line}
		case in.Op == OpMul && (in.Arg1 == "0" || in.Arg2 == "0"):
			code[i] = Instr{Op: OpAssign, Arg1: "0", Result: in.Result, Line: in.Line}
		case in.Op == OpAdd && in.Arg1 == "0",
			in.Op == OpMul && in.Arg1 == "1":
			code[i] = Instr{Op: OpAssign, Arg1: in.Arg2, Result: in.Result, Line: in.Line}
		}
	}
	return code
}

func removeSelfAssign(code []Instr) []Instr {
	out := code[:0]
	for _, in := range code {
		if in.Op == OpAssign && in.Arg1 == in.Result {
			continue
		}
		out = append(out, in)
	}
	return out
}

// dce drops assignments to temporaries that are never read. Named
// variables are always kept.
func dce(code []Instr) []Instr {
	used := make(map[string]bool)
	for _, in := range code {
		used[in.Arg1] = true
		if in.Op == OpCall {
			for _, a := range CallArgs(in.Arg2) {
				used[a] = true
			}
		} else {
			used[in.Arg2] = true
		}
		if in.Op == OpStore {
			used[in.Result] = true
		}
	}
	out := code[:0]
	for _, in := range code {
		if in.Op == OpAssign && IsTemp(in.Result) && !used[in.Result] {
			continue
		}
		out = append(out, in)
	}
	return out
}
