package ast

import (
	"fmt"
	"strings"
)

// Dump renders the program as an indented tree for debugging output.
func Dump(p *Program) string {
	var b strings.Builder
	b.WriteString("Program\n")
	for _, f := range p.Funcs {
		params := make([]string, len(f.Params))
		for i, prm := range f.Params {
			params[i] = prm.Name + ": " + prm.Typ.String()
		}
		fmt.Fprintf(&b, "  Func %s(%s) -> %s\n", f.Name, strings.Join(params, ", "), f.Ret)
		dumpStmts(&b, f.Body, 2)
	}
	return b.String()
}

func dumpStmts(b *strings.Builder, stmts []Stmt, depth int) {
	for _, s := range stmts {
		dumpStmt(b, s, depth)
	}
}

func dumpStmt(b *strings.Builder, s Stmt, depth int) {
	pad := strings.Repeat("  ", depth)
	switch s := s.(type) {
	case *DeclStmt:
		if s.Init != nil {
			fmt.Fprintf(b, "%sLet %s: %s = %s\n", pad, s.Name, s.Typ, ExprString(s.Init))
		} else {
			fmt.Fprintf(b, "%sLet %s: %s\n", pad, s.Name, s.Typ)
		}
	case *AssignStmt:
		fmt.Fprintf(b, "%sAssign %s = %s\n", pad, s.Name, ExprString(s.Value))
	case *IfStmt:
		fmt.Fprintf(b, "%sIf %s\n", pad, ExprString(s.Cond))
		dumpStmts(b, s.Then, depth+1)
		if len(s.Else) > 0 {
			fmt.Fprintf(b, "%sElse\n", pad)
			dumpStmts(b, s.Else, depth+1)
		}
	case *WhileStmt:
		fmt.Fprintf(b, "%sWhile %s\n", pad, ExprString(s.Cond))
		dumpStmts(b, s.Body, depth+1)
	case *ReturnStmt:
		if s.Value != nil {
			fmt.Fprintf(b, "%sReturn %s\n", pad, ExprString(s.Value))
		} else {
			fmt.Fprintf(b, "%sReturn\n", pad)
		}
	case *ExprStmt:
		fmt.Fprintf(b, "%sExpr %s\n", pad, ExprString(s.X))
	case *BlockStmt:
		fmt.Fprintf(b, "%sBlock\n", pad)
		dumpStmts(b, s.Stmts, depth+1)
	}
}

// ExprString renders an expression in fully parenthesized form.
func ExprString(e Expr) string {
	switch e := e.(type) {
	case *BinaryExpr:
		return "(" + ExprString(e.Left) + " " + e.Op.String() + " " + ExprString(e.Right) + ")"
	case *UnaryExpr:
		return "(" + e.Op.String() + ExprString(e.X) + ")"
	case *Literal:
		if e.Kind == LitString {
			return fmt.Sprintf("%q", e.Text)
		}
		return e.Text
	case *Ident:
		return e.Name
	case *CallExpr:
		return e.Name + "(" + joinExprs(e.Args) + ")"
	case *SequenceExpr:
		return "[" + joinExprs(e.Elems) + "]"
	}
	return "?"
}

func joinExprs(xs []Expr) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = ExprString(x)
	}
	return strings.Join(parts, ", ")
}
