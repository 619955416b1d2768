package sema

import (
	"github.com/tinyrange/mathseq/internal/ast"
	"github.com/tinyrange/mathseq/internal/types"
)

// builtin checks a call by name and returns its result type.
type builtin func(a *Analyzer, c *ast.CallExpr) types.DataType

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"print":    checkVariadic(types.Void),
		"generate": checkVariadic(types.Sequence),
		"length":   checkLength,
		"get":      checkGet,
		"map":      checkHigherOrder,
		"filter":   checkHigherOrder,
		"input":    checkInput,
	}
}

// IsBuiltin reports whether name is resolved as a built-in call.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func checkVariadic(ret types.DataType) builtin {
	return func(a *Analyzer, c *ast.CallExpr) types.DataType {
		for _, arg := range c.Args {
			a.expr(arg)
		}
		return ret
	}
}

func checkLength(a *Analyzer, c *ast.CallExpr) types.DataType {
	if len(c.Args) != 1 {
		a.diags.Error(c.Line, msgLengthArity)
		a.exprs(c.Args)
		return types.Int
	}
	if t := a.expr(c.Args[0]); t != types.Sequence && t != types.Unknown {
		a.diags.Error(c.Line, msgLengthArg)
	}
	return types.Int
}

func checkGet(a *Analyzer, c *ast.CallExpr) types.DataType {
	if len(c.Args) != 2 {
		a.diags.Error(c.Line, msgGetArity)
		a.exprs(c.Args)
		return types.Int
	}
	if t := a.expr(c.Args[0]); t != types.Sequence && t != types.Unknown {
		a.diags.Error(c.Line, msgGetNotSeq)
	}
	if t := a.expr(c.Args[1]); t != types.Int && t != types.Unknown {
		a.diags.Error(c.Line, msgGetIndex)
	}
	return types.Int
}

// checkHigherOrder covers map and filter. The second argument names a user
// function and is not evaluated as a value.
func checkHigherOrder(a *Analyzer, c *ast.CallExpr) types.DataType {
	if len(c.Args) != 2 {
		a.diags.Error(c.Line, msgHigherArity, c.Name)
		a.exprs(c.Args)
		return types.Sequence
	}
	if t := a.expr(c.Args[0]); t != types.Sequence && t != types.Unknown {
		a.diags.Error(c.Line, msgHigherSeq, c.Name)
	}
	id, ok := c.Args[1].(*ast.Ident)
	if !ok {
		a.diags.Error(c.Line, msgHigherFuncName, c.Name)
		return types.Sequence
	}
	fn, ok := a.funcs[id.Name]
	if !ok {
		a.diags.Error(id.Line, msgUndefinedFunc, id.Name)
		return types.Sequence
	}
	if len(fn.Params) != 1 {
		a.diags.Error(id.Line, msgHigherFuncArity, id.Name, c.Name)
	}
	return types.Sequence
}

func checkInput(a *Analyzer, c *ast.CallExpr) types.DataType {
	switch len(c.Args) {
	case 0:
	case 1:
		if t := a.expr(c.Args[0]); t != types.Sequence && t != types.Unknown {
			a.diags.Error(c.Line, msgInputPrompt)
		}
	default:
		a.diags.Error(c.Line, msgInputArity)
		a.exprs(c.Args)
	}
	return types.Int
}
