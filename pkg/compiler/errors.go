package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a translation failure. It implements error so that
// callers can test with errors.Is(err, ErrTypeMismatch).
type ErrorKind int

const (
	ErrInvalidDirective ErrorKind = iota + 1
	ErrInvalidLabelName
	ErrUnterminatedLabel
	ErrReturnOutsideLabel
	ErrUnknownType
	ErrTypeMismatch
	ErrInvalidLiteral
	ErrUnknownOperator
	ErrMalformedExpression
	ErrInvalidDeclaration
	ErrUnterminatedStatement
)

var errorKindNames = [...]string{
	ErrInvalidDirective:      "invalid directive",
	ErrInvalidLabelName:      "invalid label name",
	ErrUnterminatedLabel:     "unterminated label",
	ErrReturnOutsideLabel:    "return outside label",
	ErrUnknownType:           "unknown type",
	ErrTypeMismatch:          "type mismatch",
	ErrInvalidLiteral:        "invalid literal",
	ErrUnknownOperator:       "unknown operator",
	ErrMalformedExpression:   "malformed expression",
	ErrInvalidDeclaration:    "invalid declaration",
	ErrUnterminatedStatement: "unterminated statement",
}

func (k ErrorKind) String() string {
	if int(k) > 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) Error() string { return k.String() }

// Error is a positioned translation failure. Line and Col are 1-based;
// zero means the position is unknown.
type Error struct {
	Kind ErrorKind
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Col, e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind ErrorKind, at Token, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: at.Line, Col: at.Col, Msg: fmt.Sprintf(format, args...)}
}

// positioned fills in a missing position on err from tok.
func positioned(err error, tok Token) error {
	var e *Error
	if errors.As(err, &e) && e.Line == 0 {
		e.Line, e.Col = tok.Line, tok.Col
	}
	return err
}

// WrapErrorWithSource returns err augmented with a caret-annotated snippet of
// src. Errors without a position are returned unchanged. name, when set, is
// shown in the header.
func WrapErrorWithSource(err error, name, src string) error {
	var e *Error
	if !errors.As(err, &e) || e.Line == 0 {
		return err
	}

	lines := strings.Split(src, "\n")
	line := min(max(e.Line, 1), len(lines))
	col := max(e.Col, 1)

	var sb strings.Builder
	if name != "" {
		fmt.Fprintf(&sb, "TRANSLATION ERROR in %s at %d:%d: %s\n\n", name, e.Line, e.Col, e.Msg)
	} else {
		fmt.Fprintf(&sb, "TRANSLATION ERROR at %d:%d: %s\n\n", e.Line, e.Col, e.Msg)
	}

	width := len(fmt.Sprint(min(line+1, len(lines))))
	for n := max(line-1, 1); n <= min(line+1, len(lines)); n++ {
		fmt.Fprintf(&sb, "  %*d | %s\n", width, n, strings.TrimRight(lines[n-1], "\r"))
		if n == line {
			fmt.Fprintf(&sb, "  %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", col-1))
		}
	}
	return &snippetError{msg: strings.TrimRight(sb.String(), "\n"), err: err}
}

type snippetError struct {
	msg string
	err error
}

func (s *snippetError) Error() string { return s.msg }
func (s *snippetError) Unwrap() error { return s.err }
