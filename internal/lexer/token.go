package lexer

type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Identifiers + literals
	IDENT
	INT
	FLOAT
	STRING

	// Keywords
	KW_FUNC
	KW_LET
	KW_IF
	KW_ELSE
	KW_WHILE
	KW_RETURN
	KW_TRUE
	KW_FALSE
	KW_AND
	KW_OR
	KW_NOT
	KW_INT
	KW_FLOAT
	KW_BOOL
	KW_SEQUENCE
	KW_PATTERN
	KW_VOID

	// Symbols
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	LBRACK // [
	RBRACK // ]
	SEMI   // ;
	COMMA  // ,
	COLON  // :
	ARROW  // ->
	ASSIGN // =

	// Arithmetic
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %

	// Logical
	ANDAND // &&
	OROR   // ||
	BANG   // !

	// Comparison
	EQEQ // ==
	NEQ  // !=
	LT   // <
	LE   // <=
	GT   // >
	GE   // >=
)

var tokenNames = [...]string{
	EOF:         "EOF",
	ILLEGAL:     "ILLEGAL",
	IDENT:       "IDENT",
	INT:         "INT",
	FLOAT:       "FLOAT",
	STRING:      "STRING",
	KW_FUNC:     "func",
	KW_LET:      "let",
	KW_IF:       "if",
	KW_ELSE:     "else",
	KW_WHILE:    "while",
	KW_RETURN:   "return",
	KW_TRUE:     "true",
	KW_FALSE:    "false",
	KW_AND:      "and",
	KW_OR:       "or",
	KW_NOT:      "not",
	KW_INT:      "int",
	KW_FLOAT:    "float",
	KW_BOOL:     "bool",
	KW_SEQUENCE: "sequence",
	KW_PATTERN:  "pattern",
	KW_VOID:     "void",
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACE:      "{",
	RBRACE:      "}",
	LBRACK:      "[",
	RBRACK:      "]",
	SEMI:        ";",
	COMMA:       ",",
	COLON:       ":",
	ARROW:       "->",
	ASSIGN:      "=",
	PLUS:        "+",
	MINUS:       "-",
	STAR:        "*",
	SLASH:       "/",
	PERCENT:     "%",
	ANDAND:      "&&",
	OROR:        "||",
	BANG:        "!",
	EQEQ:        "==",
	NEQ:         "!=",
	LT:          "<",
	LE:          "<=",
	GT:          ">",
	GE:          ">=",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "?"
}

// keywords is read-only after package initialization.
var keywords = map[string]TokenType{
	"func":     KW_FUNC,
	"let":      KW_LET,
	"if":       KW_IF,
	"else":     KW_ELSE,
	"while":    KW_WHILE,
	"return":   KW_RETURN,
	"true":     KW_TRUE,
	"false":    KW_FALSE,
	"and":      KW_AND,
	"or":       KW_OR,
	"not":      KW_NOT,
	"int":      KW_INT,
	"float":    KW_FLOAT,
	"bool":     KW_BOOL,
	"sequence": KW_SEQUENCE,
	"pattern":  KW_PATTERN,
	"void":     KW_VOID,
}

type Token struct {
	Type TokenType
	Lex  string
	Line int
	Col  int
}

func (t Token) Is(op TokenType) bool { return t.Type == op }
