package lexer

import (
	"unicode"
)

type Lexer struct {
	src  []rune
	i    int
	ch   rune
	line int
	col  int
}

func New(src string) *Lexer {
	l := &Lexer{src: []rune(src), line: 1}
	l.read()
	return l
}

// read advances to the next rune; line and col always describe l.ch.
func (l *Lexer) read() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.i >= len(l.src) {
		l.ch = 0
		l.col++
		return
	}
	l.ch = l.src[l.i]
	l.i++
	l.col++
}

func (l *Lexer) peek() rune {
	if l.i >= len(l.src) {
		return 0
	}
	return l.src[l.i]
}

// Tokenize lexes the whole input. The result always ends with EOF, or with
// the first ILLEGAL token.
func Tokenize(src string) []Token {
	l := New(src)
	var toks []Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Type == EOF || t.Type == ILLEGAL {
			return toks
		}
	}
}

func (l *Lexer) Next() Token {
	// skip spaces and comments
	for {
		for unicode.IsSpace(l.ch) {
			l.read()
		}
		if l.ch == '#' {
			for l.ch != 0 && l.ch != '\n' {
				l.read()
			}
			continue
		}
		break
	}
	tok := Token{Line: l.line, Col: l.col}
	two := func(next rune, long, short TokenType) {
		l.read()
		if l.ch == next {
			l.read()
			tok.Type, tok.Lex = long, long.String()
			return
		}
		tok.Type, tok.Lex = short, short.String()
	}
	switch ch := l.ch; ch {
	case 0:
		tok.Type = EOF
	case '(':
		tok.Type, tok.Lex = LPAREN, string(ch)
		l.read()
	case ')':
		tok.Type, tok.Lex = RPAREN, string(ch)
		l.read()
	case '{':
		tok.Type, tok.Lex = LBRACE, string(ch)
		l.read()
	case '}':
		tok.Type, tok.Lex = RBRACE, string(ch)
		l.read()
	case '[':
		tok.Type, tok.Lex = LBRACK, string(ch)
		l.read()
	case ']':
		tok.Type, tok.Lex = RBRACK, string(ch)
		l.read()
	case ';':
		tok.Type, tok.Lex = SEMI, string(ch)
		l.read()
	case ',':
		tok.Type, tok.Lex = COMMA, string(ch)
		l.read()
	case ':':
		tok.Type, tok.Lex = COLON, string(ch)
		l.read()
	case '+':
		tok.Type, tok.Lex = PLUS, string(ch)
		l.read()
	case '-':
		two('>', ARROW, MINUS)
	case '*':
		tok.Type, tok.Lex = STAR, string(ch)
		l.read()
	case '/':
		tok.Type, tok.Lex = SLASH, string(ch)
		l.read()
	case '%':
		tok.Type, tok.Lex = PERCENT, string(ch)
		l.read()
	case '=':
		two('=', EQEQ, ASSIGN)
	case '!':
		two('=', NEQ, BANG)
	case '<':
		two('=', LE, LT)
	case '>':
		two('=', GE, GT)
	case '&':
		l.read()
		if l.ch != '&' {
			tok.Type, tok.Lex = ILLEGAL, "&"
			break
		}
		l.read()
		tok.Type, tok.Lex = ANDAND, "&&"
	case '|':
		l.read()
		if l.ch != '|' {
			tok.Type, tok.Lex = ILLEGAL, "|"
			break
		}
		l.read()
		tok.Type, tok.Lex = OROR, "||"
	case '"':
		l.read()
		var s []rune
		for l.ch != '"' {
			if l.ch == 0 {
				tok.Type, tok.Lex = ILLEGAL, "unterminated string"
				return tok
			}
			s = append(s, l.ch)
			l.read()
		}
		l.read()
		tok.Type, tok.Lex = STRING, string(s)
	default:
		if unicode.IsLetter(ch) || ch == '_' {
			ident := []rune{ch}
			l.read()
			for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' {
				ident = append(ident, l.ch)
				l.read()
			}
			lex := string(ident)
			tok.Type = IDENT
			if kw, ok := keywords[lex]; ok {
				tok.Type = kw
			}
			tok.Lex = lex
		} else if unicode.IsDigit(ch) {
			num := []rune{ch}
			isFloat := false
			l.read()
			for unicode.IsDigit(l.ch) || (l.ch == '.' && !isFloat && unicode.IsDigit(l.peek())) {
				if l.ch == '.' {
					isFloat = true
				}
				num = append(num, l.ch)
				l.read()
			}
			tok.Type, tok.Lex = INT, string(num)
			if isFloat {
				tok.Type = FLOAT
			}
		} else {
			tok.Type, tok.Lex = ILLEGAL, string(ch)
			l.read()
		}
	}
	return tok
}
