// Package sema type checks a program and resolves its names. It reports
// every defect it finds in one run instead of stopping at the first.
package sema

import (
	"github.com/tinyrange/mathseq/internal/ast"
	"github.com/tinyrange/mathseq/internal/diag"
	"github.com/tinyrange/mathseq/internal/scope"
	"github.com/tinyrange/mathseq/internal/types"
)

type Analyzer struct {
	scopes *scope.Manager
	diags  *diag.Engine
	funcs  map[string]*ast.FuncDecl
	types  map[ast.Expr]types.DataType

	inFunc    bool
	curRet    types.DataType
	sawReturn bool
}

func New() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) reset() {
	a.scopes = scope.New()
	a.diags = diag.NewEngine()
	a.funcs = make(map[string]*ast.FuncDecl)
	a.types = make(map[ast.Expr]types.DataType)
	a.inFunc = false
	a.curRet = types.Void
	a.sawReturn = false
}

// Analyze checks p and returns true when no errors were reported. State
// from a previous run is discarded.
func (a *Analyzer) Analyze(p *ast.Program) bool {
	a.reset()
	for _, f := range p.Funcs {
		if IsBuiltin(f.Name) {
			a.diags.Error(f.Line, msgFuncIsBuiltin, f.Name)
			continue
		}
		if !a.scopes.Declare(f.Name, f.Ret, true, true) {
			a.diags.Error(f.Line, msgFuncRedeclared, f.Name)
			continue
		}
		a.funcs[f.Name] = f
	}
	for _, f := range p.Funcs {
		a.function(f)
	}
	if !hasMain(p) {
		a.diags.Warning(0, msgNoMain)
	}
	return !a.diags.HasErrors()
}

func (a *Analyzer) Diagnostics() *diag.Engine { return a.diags }
func (a *Analyzer) Errors() []string         { return a.diags.Errors() }
func (a *Analyzer) Warnings() []string       { return a.diags.Warnings() }

// TypeOf returns the type computed for e during the last run.
func (a *Analyzer) TypeOf(e ast.Expr) types.DataType {
	if t, ok := a.types[e]; ok {
		return t
	}
	return types.Unknown
}

func hasMain(p *ast.Program) bool {
	for _, f := range p.Funcs {
		if f.Name == "main" && f.Ret == types.Int && len(f.Params) == 0 {
			return true
		}
	}
	return false
}

func (a *Analyzer) function(f *ast.FuncDecl) {
	a.scopes.EnterScope()
	defer a.scopes.ExitScope()
	a.inFunc, a.curRet, a.sawReturn = true, f.Ret, false

	for _, prm := range f.Params {
		if !a.scopes.Declare(prm.Name, prm.Typ, true, false) {
			a.diags.Error(prm.Line, msgParamRedeclared, prm.Name)
		}
	}
	a.stmts(f.Body)
	if f.Ret != types.Void && !a.sawReturn {
		a.diags.Warning(f.Line, msgMayNotReturn, f.Name)
	}
	a.inFunc = false
}

func (a *Analyzer) stmts(ss []ast.Stmt) {
	for _, s := range ss {
		a.stmt(s)
	}
}

func (a *Analyzer) block(ss []ast.Stmt) {
	a.scopes.EnterScope()
	a.stmts(ss)
	a.scopes.ExitScope()
}

func (a *Analyzer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.DeclStmt:
		var init types.DataType
		if s.Init != nil {
			init = a.expr(s.Init)
		}
		if !a.scopes.Declare(s.Name, s.Typ, false, false) {
			a.diags.Error(s.Line, msgVarRedeclared, s.Name)
			return
		}
		if s.Init == nil {
			return
		}
		if !types.Assignable(s.Typ, init) {
			a.diags.Error(s.Line, msgInitMismatch, s.Name, s.Typ, init)
			return
		}
		a.scopes.MarkInitialized(s.Name)
	case *ast.AssignStmt:
		sym, ok := a.scopes.Lookup(s.Name)
		if !ok {
			a.diags.Error(s.Line, msgUndefinedVar, s.Name)
			a.expr(s.Value)
			return
		}
		if sym.Constant {
			a.diags.Error(s.Line, msgAssignConst, s.Name)
			a.expr(s.Value)
			return
		}
		v := a.expr(s.Value)
		if !types.Assignable(sym.Type, v) {
			a.diags.Error(s.Line, msgAssignMismatch, s.Name, sym.Type, v)
			return
		}
		sym.Initialized = true
	case *ast.IfStmt:
		a.condition(s.Cond, s.Line)
		a.block(s.Then)
		if len(s.Else) > 0 {
			a.block(s.Else)
		}
	case *ast.WhileStmt:
		a.condition(s.Cond, s.Line)
		a.block(s.Body)
	case *ast.ReturnStmt:
		a.ret(s)
	case *ast.ExprStmt:
		a.expr(s.X)
	case *ast.BlockStmt:
		a.block(s.Stmts)
	}
}

func (a *Analyzer) condition(cond ast.Expr, line int) {
	if t := a.expr(cond); t != types.Bool && t != types.Unknown {
		a.diags.Error(line, msgCondNotBool)
	}
}

func (a *Analyzer) ret(s *ast.ReturnStmt) {
	if !a.inFunc {
		a.diags.Error(s.Line, msgReturnOutside)
		return
	}
	a.sawReturn = true
	if s.Value == nil {
		if a.curRet != types.Void {
			a.diags.Error(s.Line, msgReturnMissingValue, a.curRet)
		}
		return
	}
	if t := a.expr(s.Value); !types.Assignable(a.curRet, t) {
		a.diags.Error(s.Line, msgReturnMismatch, a.curRet, t)
	}
}

func (a *Analyzer) exprs(xs []ast.Expr) {
	for _, x := range xs {
		a.expr(x)
	}
}

// expr computes and records the type of e.
func (a *Analyzer) expr(e ast.Expr) types.DataType {
	t := a.exprType(e)
	a.types[e] = t
	return t
}

func (a *Analyzer) exprType(e ast.Expr) types.DataType {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		return a.binary(e)
	case *ast.UnaryExpr:
		x := a.expr(e.X)
		if e.Op == ast.OpNot {
			if x != types.Bool && x != types.Unknown {
				a.diags.Error(e.Line, msgUnaryInvalid, e.Op, x)
			}
			return types.Bool
		}
		if !x.IsNumeric() && x != types.Unknown {
			a.diags.Error(e.Line, msgUnaryInvalid, e.Op, x)
			return types.Unknown
		}
		return x
	case *ast.Literal:
		switch e.Kind {
		case ast.LitInt:
			return types.Int
		case ast.LitFloat:
			return types.Float
		case ast.LitBool:
			return types.Bool
		case ast.LitString:
			return types.Sequence
		}
	case *ast.Ident:
		sym, ok := a.scopes.Lookup(e.Name)
		if !ok {
			a.diags.Error(e.Line, msgUndefinedVar, e.Name)
			return types.Unknown
		}
		if sym.Constant {
			a.diags.Error(e.Line, msgFuncAsValue, e.Name)
			return types.Unknown
		}
		if !sym.Initialized {
			a.diags.Warning(e.Line, msgMaybeUninit, e.Name)
		}
		return sym.Type
	case *ast.CallExpr:
		return a.call(e)
	case *ast.SequenceExpr:
		if len(e.Elems) == 0 {
			return types.Sequence
		}
		first := a.expr(e.Elems[0])
		for _, el := range e.Elems[1:] {
			t := a.expr(el)
			if first != types.Unknown && t != types.Unknown && !types.Assignable(first, t) {
				a.diags.Warning(el.Pos(), msgSeqInconsistent)
			}
		}
		return types.Sequence
	}
	return types.Unknown
}

func (a *Analyzer) binary(e *ast.BinaryExpr) types.DataType {
	l := a.expr(e.Left)
	r := a.expr(e.Right)
	res, ok := binaryResult(e.Op, l, r)
	if ok {
		return res
	}
	if l == r {
		a.diags.Error(e.Line, msgBinaryInvalid, e.Op, l)
	} else {
		a.diags.Error(e.Line, msgBinaryMismatch, e.Op, l, r)
	}
	return types.Unknown
}

// binaryResult applies the operator typing table. Unknown operands are
// accepted so one defect is reported once.
func binaryResult(op ast.BinOp, l, r types.DataType) (types.DataType, bool) {
	unknown := l == types.Unknown || r == types.Unknown
	switch {
	case op == ast.OpAdd && (l == types.Sequence || r == types.Sequence) && (l == r || unknown):
		return types.Sequence, true
	case op.IsArith():
		if unknown || (l.IsNumeric() && r.IsNumeric()) {
			return types.Arith(l, r), true
		}
	case op == ast.OpMod:
		if (l == types.Int || l == types.Unknown) && (r == types.Int || r == types.Unknown) {
			return types.Int, true
		}
	case op.IsCompare():
		if unknown || l == r || (l.IsNumeric() && r.IsNumeric()) {
			return types.Bool, true
		}
	case op == ast.OpLAnd || op == ast.OpLOr:
		if (l == types.Bool || l == types.Unknown) && (r == types.Bool || r == types.Unknown) {
			return types.Bool, true
		}
	}
	return types.Unknown, false
}

func (a *Analyzer) call(c *ast.CallExpr) types.DataType {
	if check, ok := builtins[c.Name]; ok {
		return check(a, c)
	}
	fn, ok := a.funcs[c.Name]
	if !ok {
		if sym, found := a.scopes.Lookup(c.Name); found && !sym.Constant {
			a.diags.Error(c.Line, msgNotAFunction, c.Name)
		} else {
			a.diags.Error(c.Line, msgUndefinedFunc, c.Name)
		}
		a.exprs(c.Args)
		return types.Unknown
	}
	argTypes := make([]types.DataType, len(c.Args))
	for i, arg := range c.Args {
		argTypes[i] = a.expr(arg)
	}
	if len(c.Args) != len(fn.Params) {
		a.diags.Error(c.Line, msgCallArity, c.Name, len(fn.Params), len(c.Args))
		return fn.Ret
	}
	for i, prm := range fn.Params {
		if !types.Assignable(prm.Typ, argTypes[i]) {
			a.diags.Error(c.Line, msgCallArgMismatch, i+1, c.Name, prm.Typ, argTypes[i])
		}
	}
	return fn.Ret
}
