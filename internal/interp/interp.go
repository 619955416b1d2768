// Package interp evaluates a program directly from its syntax tree. Its
// output is the reference the generated code is checked against.
package interp

import (
	"fmt"
	"strconv"

	"github.com/tinyrange/mathseq/internal/ast"
)

// RuntimeError aborts a run. Output printed before it is kept.
type RuntimeError struct {
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("Runtime error: %s at line %d", e.Msg, e.Line)
	}
	return "Runtime error: " + e.Msg
}

// maxCallDepth bounds recursion so runaway programs fail cleanly.
const maxCallDepth = 10000

// Result is the outcome of Run. Err is nil or a *RuntimeError; Output holds
// every printed line either way.
type Result struct {
	Output   []string
	ExitCode int
	Err      error
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithInput sets the source for the input built-in. Without it input
// behaves as if the stream were empty.
func WithInput(r LineReader) Option {
	return func(ip *Interpreter) { ip.in = r }
}

type Interpreter struct {
	funcs map[string]*ast.FuncDecl
	in    LineReader

	// frames is the lexical frame stack; frames[base:] belong to the
	// running function.
	frames []map[string]Value
	base   int
	depth  int
	out    []string
}

func New(p *ast.Program, opts ...Option) *Interpreter {
	ip := &Interpreter{funcs: make(map[string]*ast.FuncDecl)}
	for _, f := range p.Funcs {
		if _, dup := ip.funcs[f.Name]; !dup {
			ip.funcs[f.Name] = f
		}
	}
	for _, o := range opts {
		o(ip)
	}
	return ip
}

// flow is the result of executing a statement.
type flow struct {
	returning bool
	value     Value
}

var normal = flow{}

func (ip *Interpreter) errorf(line int, format string, args ...any) error {
	return &RuntimeError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Run calls main with no arguments. Its return value becomes the exit code.
func (ip *Interpreter) Run() Result {
	ip.frames, ip.base, ip.depth, ip.out = nil, 0, 0, nil
	main, ok := ip.funcs["main"]
	if !ok {
		return Result{Err: &RuntimeError{Msg: "No 'main' function found"}}
	}
	v, err := ip.call(main, nil, main.Line)
	if err != nil {
		return Result{Output: ip.out, Err: err}
	}
	res := Result{Output: ip.out}
	if v.Tag == VTVoid {
		return res
	}
	code, ok := v.asInt()
	if !ok {
		res.Err = ip.errorf(main.Line, "value is not an integer")
		return res
	}
	res.ExitCode = int(code)
	return res
}

func (ip *Interpreter) push() { ip.frames = append(ip.frames, make(map[string]Value)) }
func (ip *Interpreter) pop()  { ip.frames = ip.frames[:len(ip.frames)-1] }

func (ip *Interpreter) define(name string, v Value) {
	ip.frames[len(ip.frames)-1][name] = v.Clone()
}

func (ip *Interpreter) lookup(name string) (Value, bool) {
	for i := len(ip.frames) - 1; i >= ip.base; i-- {
		if v, ok := ip.frames[i][name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

func (ip *Interpreter) assign(name string, v Value) bool {
	for i := len(ip.frames) - 1; i >= ip.base; i-- {
		if _, ok := ip.frames[i][name]; ok {
			ip.frames[i][name] = v.Clone()
			return true
		}
	}
	return false
}

func (ip *Interpreter) call(f *ast.FuncDecl, args []Value, line int) (Value, error) {
	if len(args) != len(f.Params) {
		return Void, ip.errorf(line, "function '%s' expects %d arguments but got %d", f.Name, len(f.Params), len(args))
	}
	if ip.depth >= maxCallDepth {
		return Void, ip.errorf(line, "maximum call depth exceeded in '%s'", f.Name)
	}
	savedBase := ip.base
	ip.depth++
	ip.base = len(ip.frames)
	ip.push()
	defer func() {
		ip.pop()
		ip.base = savedBase
		ip.depth--
	}()

	for i, prm := range f.Params {
		ip.define(prm.Name, args[i])
	}
	fl, err := ip.execStmts(f.Body)
	if err != nil {
		return Void, err
	}
	if fl.returning {
		return fl.value, nil
	}
	return Void, nil
}

func (ip *Interpreter) callUser(name string, args []Value, line int) (Value, error) {
	f, ok := ip.funcs[name]
	if !ok {
		return Void, ip.errorf(line, "Undefined function '%s'", name)
	}
	return ip.call(f, args, line)
}

func (ip *Interpreter) execStmts(ss []ast.Stmt) (flow, error) {
	for _, s := range ss {
		fl, err := ip.exec(s)
		if err != nil || fl.returning {
			return fl, err
		}
	}
	return normal, nil
}

// execBlock runs ss in a fresh frame.
func (ip *Interpreter) execBlock(ss []ast.Stmt) (flow, error) {
	ip.push()
	defer ip.pop()
	return ip.execStmts(ss)
}

func (ip *Interpreter) exec(s ast.Stmt) (flow, error) {
	switch s := s.(type) {
	case *ast.DeclStmt:
		v := Void
		if s.Init != nil {
			var err error
			if v, err = ip.eval(s.Init); err != nil {
				return normal, err
			}
		}
		ip.define(s.Name, v)
		return normal, nil
	case *ast.AssignStmt:
		v, err := ip.eval(s.Value)
		if err != nil {
			return normal, err
		}
		if !ip.assign(s.Name, v) {
			return normal, ip.errorf(s.Line, "Undefined variable '%s'", s.Name)
		}
		return normal, nil
	case *ast.IfStmt:
		c, err := ip.eval(s.Cond)
		if err != nil {
			return normal, err
		}
		if c.Truthy() {
			return ip.execBlock(s.Then)
		}
		if len(s.Else) > 0 {
			return ip.execBlock(s.Else)
		}
		return normal, nil
	case *ast.WhileStmt:
		for {
			c, err := ip.eval(s.Cond)
			if err != nil {
				return normal, err
			}
			if !c.Truthy() {
				return normal, nil
			}
			fl, err := ip.execBlock(s.Body)
			if err != nil || fl.returning {
				return fl, err
			}
		}
	case *ast.ReturnStmt:
		v := Void
		if s.Value != nil {
			var err error
			if v, err = ip.eval(s.Value); err != nil {
				return normal, err
			}
		}
		return flow{returning: true, value: v}, nil
	case *ast.ExprStmt:
		_, err := ip.eval(s.X)
		return normal, err
	case *ast.BlockStmt:
		return ip.execBlock(s.Stmts)
	}
	return normal, ip.errorf(s.Pos(), "unsupported statement %T", s)
}

func (ip *Interpreter) eval(e ast.Expr) (Value, error) {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		l, err := ip.eval(e.Left)
		if err != nil {
			return Void, err
		}
		r, err := ip.eval(e.Right)
		if err != nil {
			return Void, err
		}
		return ip.binary(e, l, r)
	case *ast.UnaryExpr:
		x, err := ip.eval(e.X)
		if err != nil {
			return Void, err
		}
		if e.Op == ast.OpNot {
			return Bool(!x.Truthy()), nil
		}
		switch x.Tag {
		case VTInt:
			return Int(-x.Data.(int64)), nil
		case VTFloat:
			return Float(-x.Data.(float64)), nil
		}
		return Void, ip.errorf(e.Line, "operator '-' requires numeric operands")
	case *ast.Literal:
		return ip.literal(e)
	case *ast.Ident:
		v, ok := ip.lookup(e.Name)
		if !ok {
			return Void, ip.errorf(e.Line, "Undefined variable '%s'", e.Name)
		}
		return v, nil
	case *ast.CallExpr:
		if b, ok := builtins[e.Name]; ok {
			return b(ip, e)
		}
		args, err := ip.evalArgs(e.Args)
		if err != nil {
			return Void, err
		}
		return ip.callUser(e.Name, args, e.Line)
	case *ast.SequenceExpr:
		xs, err := ip.evalArgs(e.Elems)
		if err != nil {
			return Void, err
		}
		return Seq(xs), nil
	}
	return Void, ip.errorf(e.Pos(), "unsupported expression %T", e)
}

func (ip *Interpreter) evalArgs(xs []ast.Expr) ([]Value, error) {
	vals := make([]Value, 0, len(xs))
	for _, x := range xs {
		v, err := ip.eval(x)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func (ip *Interpreter) literal(e *ast.Literal) (Value, error) {
	switch e.Kind {
	case ast.LitInt:
		n, err := strconv.ParseInt(e.Text, 10, 64)
		if err != nil {
			return Void, ip.errorf(e.Line, "invalid integer literal %s", e.Text)
		}
		return Int(n), nil
	case ast.LitFloat:
		f, err := strconv.ParseFloat(e.Text, 64)
		if err != nil {
			return Void, ip.errorf(e.Line, "invalid float literal %s", e.Text)
		}
		return Float(f), nil
	case ast.LitBool:
		return Bool(e.Text == "true"), nil
	}
	return Str(e.Text), nil
}

func (ip *Interpreter) binary(e *ast.BinaryExpr, l, r Value) (Value, error) {
	switch e.Op {
	case ast.OpAdd:
		if l.Tag == VTSeq && r.Tag == VTSeq {
			out := make([]Value, 0, len(l.seq())+len(r.seq()))
			out = append(out, l.seq()...)
			return Seq(append(out, r.seq()...)), nil
		}
		if l.Tag == VTStr && r.Tag == VTStr {
			return Str(l.Data.(string) + r.Data.(string)), nil
		}
		return ip.arith(e, l, r)
	case ast.OpSub, ast.OpMul, ast.OpDiv:
		return ip.arith(e, l, r)
	case ast.OpMod:
		if l.Tag != VTInt || r.Tag != VTInt {
			return Void, ip.errorf(e.Line, "operator '%%' requires integer operands")
		}
		d := r.Data.(int64)
		if d == 0 {
			return Void, ip.errorf(e.Line, "division by zero")
		}
		return Int(l.Data.(int64) % d), nil
	case ast.OpEq:
		return Bool(l.String() == r.String()), nil
	case ast.OpNe:
		return Bool(l.String() != r.String()), nil
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		a, okA := l.asFloat()
		b, okB := r.asFloat()
		if !okA || !okB {
			return Void, ip.errorf(e.Line, "value is not numeric")
		}
		switch e.Op {
		case ast.OpLt:
			return Bool(a < b), nil
		case ast.OpLe:
			return Bool(a <= b), nil
		case ast.OpGt:
			return Bool(a > b), nil
		}
		return Bool(a >= b), nil
	case ast.OpLAnd:
		return Bool(l.Truthy() && r.Truthy()), nil
	case ast.OpLOr:
		return Bool(l.Truthy() || r.Truthy()), nil
	}
	return Void, ip.errorf(e.Line, "unsupported operator '%s'", e.Op)
}

// arith evaluates + - * / on numbers. Two ints stay int; a float operand
// makes the result float.
func (ip *Interpreter) arith(e *ast.BinaryExpr, l, r Value) (Value, error) {
	if !l.IsNumeric() || !r.IsNumeric() {
		return Void, ip.errorf(e.Line, "operator '%s' requires numeric operands", e.Op)
	}
	if l.Tag == VTInt && r.Tag == VTInt {
		a, b := l.Data.(int64), r.Data.(int64)
		switch e.Op {
		case ast.OpAdd:
			return Int(a + b), nil
		case ast.OpSub:
			return Int(a - b), nil
		case ast.OpMul:
			return Int(a * b), nil
		}
		if b == 0 {
			return Void, ip.errorf(e.Line, "division by zero")
		}
		return Int(a / b), nil
	}
	a, _ := l.asFloat()
	b, _ := r.asFloat()
	switch e.Op {
	case ast.OpAdd:
		return Float(a + b), nil
	case ast.OpSub:
		return Float(a - b), nil
	case ast.OpMul:
		return Float(a * b), nil
	}
	return Float(a / b), nil
}
