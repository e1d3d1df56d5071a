package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Words
	IDENTIFIER // any word that is not a keyword, operator or number
	NUMBER     // word that coerces to a number

	// Keywords
	LABEL  // "label"
	RETURN // "return"

	// Type keywords
	INT   // "int"
	FLOAT // "float"
	STR   // "str"
	ANY   // "any"

	// Punctuation
	SEMICOLON // ;
	COLON     // :

	// Operators
	ASSIGN // =
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
)

var tokenNames = [...]string{
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	LABEL:      "LABEL",
	RETURN:     "RETURN",
	INT:        "INT",
	FLOAT:      "FLOAT",
	STR:        "STR",
	ANY:        "ANY",
	SEMICOLON:  "SEMICOLON",
	COLON:      "COLON",
	ASSIGN:     "ASSIGN",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// TypeKeyword reports the registry type named by a type keyword token.
func (tt TokenType) TypeKeyword() (Type, bool) {
	switch tt {
	case INT:
		return TypeInt, true
	case FLOAT:
		return TypeFloat, true
	case STR:
		return TypeStr, true
	case ANY:
		return TypeAny, true
	}
	return 0, false
}

// IsPunct reports whether tt is a statement punctuation token.
func (tt TokenType) IsPunct() bool {
	return tt == SEMICOLON || tt == COLON
}

// Token is a single lexical unit produced by Lex.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
	Col    int    // 1-based column, counted in runes
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d:%d", t.Type, t.Lexeme, t.Line, t.Col)
}
