package compiler

import (
	"fmt"
	"strings"
	"unicode"
)

// Banner opens every generated block and records its mode.
const Banner = "Rhein@" + Version + " Compiled code"

// Version of the emitted dialect.
const Version = "2.0"

// labelIndent is how much deeper a label body is indented than its caller.
const labelIndent = 4

// CodeGen consumes a token stream from the front and emits JavaScript.
// Nested labels get their own CodeGen sharing env and mode.
type CodeGen struct {
	env    *Environment
	mode   Mode
	indent int
	label  string  // enclosing label; "" outside any label
	toks   []Token // remaining input, always ending in EOF
	out    strings.Builder
}

func newCodeGen(toks []Token, env *Environment, indent int, label string, mode Mode) *CodeGen {
	return &CodeGen{env: env, mode: mode, indent: indent, label: label, toks: toks}
}

// next pops the front token. Past the end it keeps returning EOF.
func (cg *CodeGen) next() Token {
	tok := cg.toks[0]
	if tok.Type != EOF {
		cg.toks = cg.toks[1:]
	}
	return tok
}

func (cg *CodeGen) line(format string, args ...any) {
	cg.out.WriteString(strings.Repeat(" ", cg.indent))
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

// doc writes the JSDoc header that precedes every emitted statement.
func (cg *CodeGen) doc(name string, native NativeKind) {
	pad := strings.Repeat(" ", cg.indent+1)
	cg.line("/**")
	fmt.Fprintf(&cg.out, "%s* @name %s\n%s* @type %s\n%s*/\n", pad, name, pad, native, pad)
}

// generate runs the statement dispatcher to the end of the stream and
// returns the emitted text with trailing whitespace trimmed.
func (cg *CodeGen) generate() (string, error) {
	cg.line("// %s, isTypeStrict: %s!", Banner, cg.mode)
	for {
		tok := cg.next()
		var err error
		switch {
		case tok.Type == EOF:
			return strings.TrimRightFunc(cg.out.String(), unicode.IsSpace), nil
		case tok.Type == LABEL:
			err = cg.genLabel(tok)
		case tok.Type == RETURN:
			err = cg.genReturn(tok)
		case !cg.mode.Strict:
			err = cg.genDecl(tok, tok, TypeAny)
		default:
			if t, ok := tok.Type.TypeKeyword(); ok {
				err = cg.genDecl(tok, cg.next(), t)
			}
			// Any other leading word is skipped without output.
		}
		if err != nil {
			return "", err
		}
	}
}

// statement cuts the tokens up to the next ';' off the stream.
func (cg *CodeGen) statement(head Token) ([]Token, error) {
	expr, rest, ok := ScanUntil(cg.toks, ";")
	if !ok {
		return nil, newError(ErrUnterminatedStatement, head, "missing ';' after %q", head.Lexeme)
	}
	cg.toks = rest
	return expr, nil
}

// genDecl handles "[TYPE] name = expr ;". In permissive mode head is the
// name itself and t is TypeAny.
func (cg *CodeGen) genDecl(head, name Token, t Type) error {
	eq := cg.next()
	if eq.Type != ASSIGN {
		at := eq
		if eq.Type == EOF {
			at = head
		}
		return newError(ErrInvalidDeclaration, at, "invalid declaration: expected '=' after %q, got %q", name.Lexeme, eq.Lexeme)
	}
	expr, err := cg.statement(head)
	if err != nil {
		return err
	}
	value, err := Evaluate(expr, cg.env, t)
	if err != nil {
		return positioned(err, eq)
	}

	cg.doc(name.Lexeme, t.Desc().Native)
	cg.line("let %s = %s;", MangledName(t, name.Lexeme), value)
	cg.env.Define(name.Lexeme, t, value)
	return nil
}

// genReturn handles "return [TYPE] expr ;" inside a label body.
func (cg *CodeGen) genReturn(kw Token) error {
	if cg.label == "" {
		return newError(ErrReturnOutsideLabel, kw, "invalid return statement: not inside a label")
	}
	t := TypeAny
	if cg.mode.Strict {
		tt := cg.next()
		var ok bool
		if t, ok = LookupType(tt.Lexeme); !ok {
			at := tt
			if tt.Type == EOF {
				at = kw
			}
			msg := fmt.Sprintf("invalid return type %q", tt.Lexeme)
			if hint := suggestType(tt.Lexeme); hint != "" {
				msg += fmt.Sprintf(" (did you mean %q?)", hint)
			}
			return newError(ErrUnknownType, at, "%s", msg)
		}
	}
	expr, err := cg.statement(kw)
	if err != nil {
		return err
	}
	value, err := Evaluate(expr, cg.env, t)
	if err != nil {
		return positioned(err, kw)
	}

	cg.doc(cg.label+" return value", t.Desc().Native)
	cg.line("return %s;", value)
	return nil
}

// genLabel handles "label name : ... label name ;". The closing marker is
// found by literal search, so a nested label reusing name closes the outer
// one early.
func (cg *CodeGen) genLabel(kw Token) error {
	name := cg.next()
	colon := cg.next()
	if name.Type == EOF || name.Type.IsPunct() || colon.Type != COLON {
		return newError(ErrInvalidLabelName, kw, "invalid label statement: expected 'label <name>:'")
	}

	body, rest, ok := ScanUntil(cg.toks, "label", name.Lexeme, ";")
	if !ok {
		return newError(ErrUnterminatedLabel, name, "cannot find closing label for %s", name.Lexeme)
	}
	// The first later opener and closer of the same name are consumed too.
	rest = removeFirst(rest, "label", name.Lexeme, ":")
	cg.toks = removeFirst(rest, "label", name.Lexeme, ";")

	eof := Token{Type: EOF, Line: name.Line, Col: name.Col}
	inner := newCodeGen(append(body, eof), cg.env, cg.indent+labelIndent, name.Lexeme, cg.mode)
	text, err := inner.generate()
	if err != nil {
		return err
	}

	// Function headers and closing braces always start at column 0.
	fmt.Fprintf(&cg.out, "function %s() {\n%s\n}\n", name.Lexeme, text)
	return nil
}
