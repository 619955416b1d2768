package parser

import (
	"fmt"
	"strconv"

	"github.com/tinyrange/mathseq/internal/ast"
	"github.com/tinyrange/mathseq/internal/lexer"
	"github.com/tinyrange/mathseq/internal/types"
)

// ParseError aborts parsing at the first malformed construct.
type ParseError struct {
	Line, Col int
	Msg       string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

type Parser struct {
	lx    *lexer.Lexer
	tok   lexer.Token
	ahead lexer.Token
}

// Parse builds the program tree for src.
func Parse(src string) (*ast.Program, error) {
	p := &Parser{lx: lexer.New(src)}
	p.ahead = p.lx.Next()
	p.next()
	prog := &ast.Program{}
	for p.tok.Type != lexer.EOF {
		f, err := p.parseFunc()
		if err != nil {
			return nil, err
		}
		prog.Funcs = append(prog.Funcs, f)
	}
	return prog, nil
}

func (p *Parser) next() {
	p.tok = p.ahead
	if p.ahead.Type != lexer.EOF && p.ahead.Type != lexer.ILLEGAL {
		p.ahead = p.lx.Next()
	}
}

func (p *Parser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if p.tok.Type == lexer.ILLEGAL {
		msg = fmt.Sprintf("illegal token %q", p.tok.Lex)
	}
	return &ParseError{Line: p.tok.Line, Col: p.tok.Col, Msg: msg}
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.tok.Type != tt {
		return lexer.Token{}, p.errorf("expected %v, got %v", tt, describe(p.tok))
	}
	t := p.tok
	p.next()
	return t, nil
}

func describe(t lexer.Token) string {
	switch t.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.IDENT, lexer.INT, lexer.FLOAT:
		return fmt.Sprintf("%q", t.Lex)
	case lexer.STRING:
		return "string literal"
	}
	return t.Type.String()
}

// skipSemi consumes an optional statement terminator.
func (p *Parser) skipSemi() {
	if p.tok.Type == lexer.SEMI {
		p.next()
	}
}

func (p *Parser) parseFunc() (*ast.FuncDecl, error) {
	funcTok, err := p.expect(lexer.KW_FUNC)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err = p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDecl{Name: nameTok.Lex, Params: params, Ret: ret, Body: body, Line: funcTok.Line}, nil
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param
	if p.tok.Type == lexer.RPAREN {
		return params, nil
	}
	for {
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: nameTok.Lex, Typ: typ, Line: nameTok.Line})
		if p.tok.Type == lexer.COMMA {
			p.next()
			continue
		}
		break
	}
	return params, nil
}

func (p *Parser) parseType() (types.DataType, error) {
	t, ok := types.FromName(p.tok.Lex)
	if !ok || p.tok.Type == lexer.STRING {
		return types.Unknown, p.errorf("expected type, got %s", describe(p.tok))
	}
	p.next()
	return t, nil
}

func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for p.tok.Type != lexer.RBRACE && p.tok.Type != lexer.EOF {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	line := p.tok.Line
	switch p.tok.Type {
	case lexer.KW_LET:
		p.next()
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		var init ast.Expr
		if p.tok.Type == lexer.ASSIGN {
			p.next()
			if init, err = p.parseExpr(); err != nil {
				return nil, err
			}
		}
		p.skipSemi()
		return &ast.DeclStmt{Name: nameTok.Lex, Typ: typ, Init: init, Line: line}, nil
	case lexer.KW_IF:
		return p.parseIf()
	case lexer.KW_WHILE:
		p.next()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Cond: cond, Body: body, Line: line}, nil
	case lexer.KW_RETURN:
		p.next()
		var v ast.Expr
		if p.tok.Type != lexer.SEMI && p.tok.Type != lexer.RBRACE && p.tok.Type != lexer.EOF {
			var err error
			if v, err = p.parseExpr(); err != nil {
				return nil, err
			}
		}
		p.skipSemi()
		return &ast.ReturnStmt{Value: v, Line: line}, nil
	case lexer.LBRACE:
		stmts, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Stmts: stmts, Line: line}, nil
	case lexer.IDENT:
		if p.ahead.Type == lexer.ASSIGN {
			name := p.tok.Lex
			p.next()
			p.next()
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			p.skipSemi()
			return &ast.AssignStmt{Name: name, Value: v, Line: line}, nil
		}
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSemi()
	return &ast.ExprStmt{X: e, Line: line}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	line := p.tok.Line
	p.next()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	s := &ast.IfStmt{Cond: cond, Then: then, Line: line}
	if p.tok.Type != lexer.KW_ELSE {
		return s, nil
	}
	p.next()
	if p.tok.Type == lexer.KW_IF {
		nested, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		s.Else = []ast.Stmt{nested}
		return s, nil
	}
	if s.Else, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return s, nil
}

// Expr grammar, lowest precedence first:
// or, and, equality, comparison, additive, multiplicative, unary, primary.
var binaryLevels = [][]struct {
	tok lexer.TokenType
	op  ast.BinOp
}{
	{{lexer.OROR, ast.OpLOr}, {lexer.KW_OR, ast.OpLOr}},
	{{lexer.ANDAND, ast.OpLAnd}, {lexer.KW_AND, ast.OpLAnd}},
	{{lexer.EQEQ, ast.OpEq}, {lexer.NEQ, ast.OpNe}},
	{{lexer.LT, ast.OpLt}, {lexer.LE, ast.OpLe}, {lexer.GT, ast.OpGt}, {lexer.GE, ast.OpGe}},
	{{lexer.PLUS, ast.OpAdd}, {lexer.MINUS, ast.OpSub}},
	{{lexer.STAR, ast.OpMul}, {lexer.SLASH, ast.OpDiv}, {lexer.PERCENT, ast.OpMod}},
}

func (p *Parser) parseExpr() (ast.Expr, error) { return p.parseLevel(0) }

func (p *Parser) parseLevel(level int) (ast.Expr, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}
	left, err := p.parseLevel(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binOpFromToken(level, p.tok.Type)
		if !ok {
			return left, nil
		}
		line := p.tok.Line
		p.next()
		right, err := p.parseLevel(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Line: line}
	}
}

func binOpFromToken(level int, t lexer.TokenType) (ast.BinOp, bool) {
	for _, e := range binaryLevels[level] {
		if e.tok == t {
			return e.op, true
		}
	}
	return 0, false
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	line := p.tok.Line
	var op ast.UnOp
	switch p.tok.Type {
	case lexer.MINUS:
		op = ast.OpNeg
	case lexer.BANG, lexer.KW_NOT:
		op = ast.OpNot
	default:
		return p.parsePrimary()
	}
	p.next()
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: op, X: x, Line: line}, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	t := p.tok
	switch t.Type {
	case lexer.INT:
		if _, err := strconv.ParseInt(t.Lex, 10, 64); err != nil {
			return nil, p.errorf("integer literal %s out of range", t.Lex)
		}
		p.next()
		return &ast.Literal{Kind: ast.LitInt, Text: t.Lex, Line: t.Line}, nil
	case lexer.FLOAT:
		p.next()
		return &ast.Literal{Kind: ast.LitFloat, Text: t.Lex, Line: t.Line}, nil
	case lexer.STRING:
		p.next()
		return &ast.Literal{Kind: ast.LitString, Text: t.Lex, Line: t.Line}, nil
	case lexer.KW_TRUE, lexer.KW_FALSE:
		p.next()
		return &ast.Literal{Kind: ast.LitBool, Text: t.Lex, Line: t.Line}, nil
	case lexer.IDENT:
		p.next()
		switch p.tok.Type {
		case lexer.LPAREN:
			p.next()
			args, err := p.parseList(lexer.RPAREN)
			if err != nil {
				return nil, err
			}
			return &ast.CallExpr{Name: t.Lex, Args: args, Line: t.Line}, nil
		case lexer.LBRACK:
			p.next()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACK); err != nil {
				return nil, err
			}
			args := []ast.Expr{&ast.Ident{Name: t.Lex, Line: t.Line}, idx}
			return &ast.CallExpr{Name: "get", Args: args, Line: t.Line}, nil
		}
		return &ast.Ident{Name: t.Lex, Line: t.Line}, nil
	case lexer.LPAREN:
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.LBRACK:
		p.next()
		elems, err := p.parseList(lexer.RBRACK)
		if err != nil {
			return nil, err
		}
		return &ast.SequenceExpr{Elems: elems, Line: t.Line}, nil
	}
	return nil, p.errorf("expected expression, got %s", describe(t))
}

// parseList parses comma separated expressions up to and including end.
func (p *Parser) parseList(end lexer.TokenType) ([]ast.Expr, error) {
	var xs []ast.Expr
	for p.tok.Type != end {
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		xs = append(xs, x)
		if p.tok.Type != lexer.COMMA {
			break
		}
		p.next()
	}
	if _, err := p.expect(end); err != nil {
		return nil, err
	}
	return xs, nil
}
