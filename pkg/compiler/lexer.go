package compiler

import (
	"unicode"
)

// keywords maps source words to their fixed TokenType.
var keywords = map[string]TokenType{
	"label":  LABEL,
	"return": RETURN,
	"int":    INT,
	"float":  FLOAT,
	"str":    STR,
	"any":    ANY,
	"=":      ASSIGN,
	"+":      PLUS,
	"-":      MINUS,
	"*":      STAR,
	"/":      SLASH,
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
	col  int // current 1-based column
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

func isPunct(r rune) bool {
	return r == ';' || r == ':'
}

// scanWord collects runes up to the next whitespace or punctuation rune.
func (l *Lexer) scanWord() Token {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if unicode.IsSpace(r) || isPunct(r) {
			break
		}
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt := IDENTIFIER
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	} else if _, ok := toNumber(lexeme); ok {
		tt = NUMBER
	}
	return Token{Type: tt, Lexeme: lexeme, Line: line, Col: col}
}

// nextToken skips whitespace and returns the next Token.
func (l *Lexer) nextToken() Token {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return Token{Type: EOF, Line: l.line, Col: l.col}
	}

	line, col := l.line, l.col
	switch l.peek() {
	case ';':
		l.advance()
		return Token{SEMICOLON, ";", line, col}
	case ':':
		l.advance()
		return Token{COLON, ":", line, col}
	}
	return l.scanWord()
}

// Lex tokenises src and returns all tokens including the final EOF token.
// Whitespace is the only separator apart from ';' and ':', which always
// stand alone. Lexing cannot fail; every word is some kind of token.
func Lex(src string) []Token {
	l := newLexer(src)
	var tokens []Token
	for {
		tok := l.nextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}
