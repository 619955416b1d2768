package interp

import (
	"errors"
	"io"
	"strings"

	"github.com/tinyrange/mathseq/internal/ast"
)

type builtin func(ip *Interpreter, c *ast.CallExpr) (Value, error)

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"print":    builtinPrint,
		"length":   builtinLength,
		"get":      builtinGet,
		"map":      builtinMap,
		"filter":   builtinFilter,
		"generate": builtinGenerate,
		"input":    builtinInput,
	}
}

func builtinPrint(ip *Interpreter, c *ast.CallExpr) (Value, error) {
	args, err := ip.evalArgs(c.Args)
	if err != nil {
		return Void, err
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	ip.out = append(ip.out, strings.Join(parts, " "))
	return Void, nil
}

func builtinLength(ip *Interpreter, c *ast.CallExpr) (Value, error) {
	if len(c.Args) != 1 {
		return Void, ip.errorf(c.Line, "length expects 1 argument")
	}
	s, err := ip.eval(c.Args[0])
	if err != nil {
		return Void, err
	}
	if s.Tag != VTSeq {
		return Void, ip.errorf(c.Line, "length expects a sequence")
	}
	return Int(int64(len(s.seq()))), nil
}

func builtinGet(ip *Interpreter, c *ast.CallExpr) (Value, error) {
	if len(c.Args) != 2 {
		return Void, ip.errorf(c.Line, "get expects 2 arguments")
	}
	args, err := ip.evalArgs(c.Args)
	if err != nil {
		return Void, err
	}
	s, idx := args[0], args[1]
	if s.Tag != VTSeq {
		return Void, ip.errorf(c.Line, "get expects a sequence as the first argument")
	}
	i, ok := idx.asInt()
	if !ok {
		return Void, ip.errorf(c.Line, "value is not an integer")
	}
	if i < 0 || i >= int64(len(s.seq())) {
		return Void, ip.errorf(c.Line, "sequence index out of range")
	}
	return s.seq()[i], nil
}

// higherOrder evaluates the sequence argument of map or filter and resolves
// the function named by the second argument.
func higherOrder(ip *Interpreter, c *ast.CallExpr) ([]Value, string, error) {
	if len(c.Args) != 2 {
		return nil, "", ip.errorf(c.Line, "%s expects 2 arguments", c.Name)
	}
	s, err := ip.eval(c.Args[0])
	if err != nil {
		return nil, "", err
	}
	if s.Tag != VTSeq {
		return nil, "", ip.errorf(c.Line, "%s expects a sequence as the first argument", c.Name)
	}
	id, ok := c.Args[1].(*ast.Ident)
	if !ok {
		return nil, "", ip.errorf(c.Line, "expected function identifier")
	}
	return s.seq(), id.Name, nil
}

func builtinMap(ip *Interpreter, c *ast.CallExpr) (Value, error) {
	xs, fn, err := higherOrder(ip, c)
	if err != nil {
		return Void, err
	}
	out := make([]Value, 0, len(xs))
	for _, x := range xs {
		v, err := ip.callUser(fn, []Value{x}, c.Line)
		if err != nil {
			return Void, err
		}
		out = append(out, v)
	}
	return Seq(out), nil
}

func builtinFilter(ip *Interpreter, c *ast.CallExpr) (Value, error) {
	xs, fn, err := higherOrder(ip, c)
	if err != nil {
		return Void, err
	}
	var out []Value
	for _, x := range xs {
		keep, err := ip.callUser(fn, []Value{x}, c.Line)
		if err != nil {
			return Void, err
		}
		if keep.Truthy() {
			out = append(out, x)
		}
	}
	return Seq(out), nil
}

// builtinGenerate evaluates its arguments for their effects and returns an
// empty sequence.
func builtinGenerate(ip *Interpreter, c *ast.CallExpr) (Value, error) {
	if _, err := ip.evalArgs(c.Args); err != nil {
		return Void, err
	}
	return Seq([]Value{}), nil
}

func builtinInput(ip *Interpreter, c *ast.CallExpr) (Value, error) {
	if len(c.Args) > 1 {
		return Void, ip.errorf(c.Line, "input expects at most 1 argument")
	}
	prompt := "> "
	if len(c.Args) == 1 {
		p, err := ip.eval(c.Args[0])
		if err != nil {
			return Void, err
		}
		if text := p.String(); text != "" {
			prompt = text + " > "
		}
	}
	if ip.in == nil {
		return Int(0), nil
	}
	line, err := ip.in.ReadLine(prompt)
	if errors.Is(err, io.EOF) {
		return Int(0), nil
	}
	if err != nil {
		return Void, ip.errorf(c.Line, "input: %v", err)
	}
	return Int(parseInputLine(line)), nil
}
