// Package ir holds the three-address code form of a program, the generator
// that lowers the syntax tree into it, and the optimizer passes over it.
package ir

import (
	"regexp"
	"strconv"
	"strings"
)

type Op string

const (
	OpAssign  Op = "ASSIGN"
	OpLabel   Op = "LABEL"
	OpGoto    Op = "GOTO"
	OpIf      Op = "IF"
	OpIfFalse Op = "IF_FALSE"
	OpParam   Op = "PARAM"
	OpCall    Op = "CALL"
	OpReturn  Op = "RETURN"
	OpStore   Op = "STORE"

	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
	OpNot Op = "!"
)

// Instr is one quadruple. Unused fields are empty strings. For CALL, Arg1
// is the callee and Arg2 the comma separated argument list. For STORE,
// Arg1 is the element, Arg2 its index and Result the target sequence. A
// "-" with an empty Arg2 is a negation.
type Instr struct {
	Op     Op
	Arg1   string
	Arg2   string
	Result string
	Line   int
}

func (in Instr) IsUnary() bool {
	return in.Op == OpNot || (in.Op == OpSub && in.Arg2 == "")
}

func (in Instr) String() string {
	switch in.Op {
	case OpLabel:
		return in.Result + ":"
	case OpGoto:
		return "goto " + in.Result
	case OpIfFalse:
		return "ifFalse " + in.Arg1 + " goto " + in.Result
	case OpIf:
		return "if " + in.Arg1 + " goto " + in.Result
	case OpParam:
		return "param " + in.Arg1
	case OpCall:
		if in.Arg2 == "" {
			return in.Result + " = call " + in.Arg1
		}
		return in.Result + " = call " + in.Arg1 + ", " + in.Arg2
	case OpReturn:
		if in.Arg1 == "" {
			return "return"
		}
		return "return " + in.Arg1
	case OpAssign:
		return in.Result + " = " + in.Arg1
	case OpStore:
		return in.Result + "[" + in.Arg2 + "] = " + in.Arg1
	}
	if in.IsUnary() {
		return in.Result + " = " + string(in.Op) + in.Arg1
	}
	return in.Result + " = " + in.Arg1 + " " + string(in.Op) + " " + in.Arg2
}

// Format renders one instruction per line.
func Format(code []Instr) string {
	var b strings.Builder
	for _, in := range code {
		b.WriteString(in.String())
		b.WriteByte('\n')
	}
	return b.String()
}

var tempRe = regexp.MustCompile(`^t[0-9]+$`)

// IsTemp reports whether name was allocated by the generator.
func IsTemp(name string) bool { return tempRe.MatchString(name) }

func isIntLiteral(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// CallArgs splits a CALL argument list. Commas inside quoted string
// operands do not separate arguments.
func CallArgs(list string) []string {
	if list == "" {
		return nil
	}
	var (
		args    []string
		start   int
		inQuote bool
	)
	for i := 0; i < len(list); i++ {
		switch c := list[i]; {
		case inQuote && c == '\\':
			i++
		case c == '"':
			inQuote = !inQuote
		case !inQuote && c == ',' && i+1 < len(list) && list[i+1] == ' ':
			args = append(args, list[start:i])
			start = i + 2
			i++
		}
	}
	return append(args, list[start:])
}

func joinArgs(args []string) string { return strings.Join(args, ", ") }
