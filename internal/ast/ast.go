// Package ast defines the syntax tree shared by the analyzer, the code
// generator and the interpreter. Trees are built once by the parser and are
// never mutated afterwards.
package ast

import "github.com/tinyrange/mathseq/internal/types"

// Node is implemented by every tree node. Line is the 1-based source line,
// or 0 when unknown.
type Node interface{ Pos() int }

type Program struct {
	Funcs []*FuncDecl
}

type FuncDecl struct {
	Name   string
	Params []Param
	Ret    types.DataType
	Body   []Stmt
	Line   int
}

func (f *FuncDecl) Pos() int { return f.Line }

type Param struct {
	Name string
	Typ  types.DataType
	Line int
}

// Stmt is the closed set of statements. Only types in this package can
// implement it.
type Stmt interface {
	Node
	isStmt()
}

type DeclStmt struct {
	Name string
	Typ  types.DataType
	Init Expr // may be nil
	Line int
}

type AssignStmt struct {
	Name  string
	Value Expr
	Line  int
}

type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt // empty when there is no else branch
	Line int
}

type WhileStmt struct {
	Cond Expr
	Body []Stmt
	Line int
}

type ReturnStmt struct {
	Value Expr // nil for a bare return
	Line  int
}

type ExprStmt struct {
	X    Expr
	Line int
}

type BlockStmt struct {
	Stmts []Stmt
	Line  int
}

func (*DeclStmt) isStmt()   {}
func (*AssignStmt) isStmt() {}
func (*IfStmt) isStmt()     {}
func (*WhileStmt) isStmt()  {}
func (*ReturnStmt) isStmt() {}
func (*ExprStmt) isStmt()   {}
func (*BlockStmt) isStmt()  {}

func (s *DeclStmt) Pos() int   { return s.Line }
func (s *AssignStmt) Pos() int { return s.Line }
func (s *IfStmt) Pos() int     { return s.Line }
func (s *WhileStmt) Pos() int  { return s.Line }
func (s *ReturnStmt) Pos() int { return s.Line }
func (s *ExprStmt) Pos() int   { return s.Line }
func (s *BlockStmt) Pos() int  { return s.Line }

// Expr is the closed set of expressions.
type Expr interface {
	Node
	isExpr()
}

type BinaryExpr struct {
	Op          BinOp
	Left, Right Expr
	Line        int
}

type UnaryExpr struct {
	Op   UnOp
	X    Expr
	Line int
}

// Literal keeps the literal's source text; the parser guarantees it is
// well formed for its Kind.
type Literal struct {
	Kind LitKind
	Text string
	Line int
}

type Ident struct {
	Name string
	Line int
}

type CallExpr struct {
	Name string
	Args []Expr
	Line int
}

type SequenceExpr struct {
	Elems []Expr
	Line  int
}

func (*BinaryExpr) isExpr()   {}
func (*UnaryExpr) isExpr()    {}
func (*Literal) isExpr()      {}
func (*Ident) isExpr()        {}
func (*CallExpr) isExpr()     {}
func (*SequenceExpr) isExpr() {}

func (e *BinaryExpr) Pos() int   { return e.Line }
func (e *UnaryExpr) Pos() int    { return e.Line }
func (e *Literal) Pos() int      { return e.Line }
func (e *Ident) Pos() int        { return e.Line }
func (e *CallExpr) Pos() int     { return e.Line }
func (e *SequenceExpr) Pos() int { return e.Line }

type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitString
)

type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLAnd
	OpLOr
)

var binOpText = [...]string{
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpMod:  "%",
	OpEq:   "==",
	OpNe:   "!=",
	OpLt:   "<",
	OpLe:   "<=",
	OpGt:   ">",
	OpGe:   ">=",
	OpLAnd: "&&",
	OpLOr:  "||",
}

// String returns the operator's symbol, which is also its TAC opcode.
func (op BinOp) String() string { return binOpText[op] }

// IsArith is true for + - * /.
func (op BinOp) IsArith() bool { return op <= OpDiv }

// IsCompare is true for the six relational operators.
func (op BinOp) IsCompare() bool { return op >= OpEq && op <= OpGe }

type UnOp int

const (
	OpNeg UnOp = iota
	OpNot
)

func (op UnOp) String() string {
	if op == OpNot {
		return "!"
	}
	return "-"
}
