package ir

import (
	"fmt"
	"strconv"

	"github.com/tinyrange/mathseq/internal/ast"
	"github.com/tinyrange/mathseq/internal/scope"
	"github.com/tinyrange/mathseq/internal/types"
)

// GenError reports an internal inconsistency found while lowering. It does
// not occur for programs the analyzer accepted.
type GenError struct {
	Func string
	Line int
	Msg  string
}

func (e *GenError) Error() string {
	return fmt.Sprintf("codegen: internal error in %s at line %d: %s", e.Func, e.Line, e.Msg)
}

// Generator lowers a program to TAC. Counters and scopes are reset on every
// Generate call.
type Generator struct {
	code   []Instr
	scopes *scope.Manager
	temps  int
	labels int
	fn     string
	// irNames holds the variable names already used in the current
	// function.
	irNames map[string]bool
}

func NewGenerator() *Generator { return &Generator{} }

// Generate lowers p with a fresh Generator.
func Generate(p *ast.Program) ([]Instr, error) {
	return NewGenerator().Generate(p)
}

func (g *Generator) Generate(p *ast.Program) ([]Instr, error) {
	g.code = nil
	g.scopes = scope.New()
	g.temps, g.labels = 0, 0
	for _, f := range p.Funcs {
		if g.scopes.Declare(f.Name, f.Ret, true, true) {
			sym, _ := g.scopes.LookupLocal(f.Name)
			sym.IRName = f.Name
		}
	}
	for _, f := range p.Funcs {
		if err := g.buildFunc(f); err != nil {
			return nil, err
		}
	}
	return g.code, nil
}

func (g *Generator) newTemp() string {
	t := "t" + strconv.Itoa(g.temps)
	g.temps++
	return t
}

func (g *Generator) newLabel() string {
	l := "L" + strconv.Itoa(g.labels)
	g.labels++
	return l
}

// declare binds name in the current scope and returns the variable it is
// stored under. A name keeps its spelling the first time it is bound in a
// function; a shadowing binding, or a name shaped like a temporary, gets a
// numeric suffix.
func (g *Generator) declare(name string, typ types.DataType, initialized bool) string {
	irName := name
	for i := 1; IsTemp(irName) || g.irNames[irName]; i++ {
		irName = name + "_" + strconv.Itoa(i)
	}
	g.irNames[irName] = true
	g.scopes.Declare(name, typ, initialized, false)
	if sym, ok := g.scopes.LookupLocal(name); ok {
		sym.IRName = irName
	}
	return irName
}

// resolve returns the variable the nearest binding of name is stored under.
func (g *Generator) resolve(name string, line int) (string, error) {
	sym, ok := g.scopes.Lookup(name)
	if !ok || sym.IRName == "" {
		return "", g.errorf(line, "reference to undeclared name %q", name)
	}
	return sym.IRName, nil
}

func (g *Generator) emit(op Op, arg1, arg2, result string, line int) {
	g.code = append(g.code, Instr{Op: op, Arg1: arg1, Arg2: arg2, Result: result, Line: line})
}

func (g *Generator) errorf(line int, format string, args ...any) error {
	return &GenError{Func: g.fn, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (g *Generator) buildFunc(f *ast.FuncDecl) error {
	g.fn = f.Name
	g.irNames = make(map[string]bool)
	start := len(g.code)
	g.emit(OpLabel, "", "", f.Name, f.Line)
	g.scopes.EnterScope()
	for _, prm := range f.Params {
		v := g.declare(prm.Name, prm.Typ, true)
		g.emit(OpAssign, "param_"+prm.Name, "", v, prm.Line)
	}
	if err := g.buildStmts(f.Body); err != nil {
		return err
	}
	g.scopes.ExitScope()
	if f.Ret == types.Void && !endsInReturn(f.Body) {
		g.emit(OpReturn, "", "", "", f.Line)
	}
	if err := VerifyLabels(g.code[start:]); err != nil {
		return g.errorf(f.Line, "%v", err)
	}
	return nil
}

func endsInReturn(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*ast.ReturnStmt)
	return ok
}

func (g *Generator) buildStmts(ss []ast.Stmt) error {
	for _, s := range ss {
		if err := g.buildStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// buildScoped lowers ss inside a child scope.
func (g *Generator) buildScoped(ss []ast.Stmt) error {
	g.scopes.EnterScope()
	defer g.scopes.ExitScope()
	return g.buildStmts(ss)
}

func (g *Generator) buildStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.DeclStmt:
		var v string
		if s.Init != nil {
			var err error
			if v, err = g.buildExpr(s.Init); err != nil {
				return err
			}
		}
		name := g.declare(s.Name, s.Typ, s.Init != nil)
		if s.Init != nil {
			g.emit(OpAssign, v, "", name, s.Line)
		}
		return nil
	case *ast.AssignStmt:
		name, err := g.resolve(s.Name, s.Line)
		if err != nil {
			return err
		}
		v, err := g.buildExpr(s.Value)
		if err != nil {
			return err
		}
		g.emit(OpAssign, v, "", name, s.Line)
		g.scopes.MarkInitialized(s.Name)
		return nil
	case *ast.IfStmt:
		return g.buildIf(s)
	case *ast.WhileStmt:
		return g.buildWhile(s)
	case *ast.ReturnStmt:
		if s.Value == nil {
			g.emit(OpReturn, "", "", "", s.Line)
			return nil
		}
		v, err := g.buildExpr(s.Value)
		if err != nil {
			return err
		}
		g.emit(OpReturn, v, "", "", s.Line)
		return nil
	case *ast.ExprStmt:
		_, err := g.buildExpr(s.X)
		return err
	case *ast.BlockStmt:
		return g.buildScoped(s.Stmts)
	}
	return g.errorf(s.Pos(), "unsupported statement %T", s)
}

func (g *Generator) buildIf(s *ast.IfStmt) error {
	cond, err := g.buildExpr(s.Cond)
	if err != nil {
		return err
	}
	elseL := g.newLabel()
	endL := g.newLabel()
	g.emit(OpIfFalse, cond, "", elseL, s.Line)
	if err := g.buildScoped(s.Then); err != nil {
		return err
	}
	g.emit(OpGoto, "", "", endL, s.Line)
	g.emit(OpLabel, "", "", elseL, s.Line)
	if err := g.buildScoped(s.Else); err != nil {
		return err
	}
	g.emit(OpLabel, "", "", endL, s.Line)
	return nil
}

// buildWhile places the condition after the body, entered through an
// initial jump, so it is lowered once.
func (g *Generator) buildWhile(s *ast.WhileStmt) error {
	startL := g.newLabel()
	condL := g.newLabel()
	endL := g.newLabel()
	g.emit(OpGoto, "", "", condL, s.Line)
	g.emit(OpLabel, "", "", startL, s.Line)
	if err := g.buildScoped(s.Body); err != nil {
		return err
	}
	g.emit(OpLabel, "", "", condL, s.Line)
	cond, err := g.buildExpr(s.Cond)
	if err != nil {
		return err
	}
	g.emit(OpIf, cond, "", startL, s.Line)
	g.emit(OpLabel, "", "", endL, s.Line)
	return nil
}

// buildExpr returns the operand holding the value of e.
func (g *Generator) buildExpr(e ast.Expr) (string, error) {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		l, err := g.buildExpr(e.Left)
		if err != nil {
			return "", err
		}
		r, err := g.buildExpr(e.Right)
		if err != nil {
			return "", err
		}
		t := g.newTemp()
		g.emit(Op(e.Op.String()), l, r, t, e.Line)
		return t, nil
	case *ast.UnaryExpr:
		x, err := g.buildExpr(e.X)
		if err != nil {
			return "", err
		}
		t := g.newTemp()
		g.emit(Op(e.Op.String()), x, "", t, e.Line)
		return t, nil
	case *ast.Literal:
		if e.Kind == ast.LitString {
			return strconv.Quote(e.Text), nil
		}
		return e.Text, nil
	case *ast.Ident:
		return g.resolve(e.Name, e.Line)
	case *ast.CallExpr:
		t := g.newTemp()
		args := make([]string, 0, len(e.Args))
		for _, a := range e.Args {
			v, err := g.buildExpr(a)
			if err != nil {
				return "", err
			}
			g.emit(OpParam, v, "", "", e.Line)
			args = append(args, v)
		}
		g.emit(OpCall, e.Name, joinArgs(args), t, e.Line)
		return t, nil
	case *ast.SequenceExpr:
		t := g.newTemp()
		g.emit(OpAssign, "[]", "", t, e.Line)
		for i, el := range e.Elems {
			v, err := g.buildExpr(el)
			if err != nil {
				return "", err
			}
			g.emit(OpStore, v, strconv.Itoa(i), t, e.Line)
		}
		return t, nil
	}
	return "", g.errorf(e.Pos(), "unsupported expression %T", e)
}
