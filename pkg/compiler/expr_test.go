package compiler

import (
	"errors"
	"testing"
)

// exprTokens lexes s and drops the EOF token.
func exprTokens(s string) []Token {
	toks := Lex(s)
	return toks[:len(toks)-1]
}

func TestEvaluate(t *testing.T) {
	env := NewEnvironment()
	env.Define("hello", TypeInt, "102 + 5")
	env.Define("ratio", TypeFloat, "0.5")
	env.Define("name", TypeStr, "bob")

	tests := []struct {
		name    string
		expr    string
		typ     Type
		want    string
		wantErr error
	}{
		{name: "Literal", expr: "102", typ: TypeInt, want: "102"},
		{name: "Chain", expr: "102 + 5", typ: TypeInt, want: "102 + 5"},
		{name: "Variable", expr: "hello + 5", typ: TypeInt, want: "int_hello + 5"},
		{name: "Flat No Precedence", expr: "1 + 2 * 3 - 4 / 5", typ: TypeInt, want: "1 + 2 * 3 - 4 / 5"},
		{name: "Coerced Literal", expr: "0x10 * hello", typ: TypeInt, want: "16 * int_hello"},
		{name: "Float Variable", expr: "ratio / 2.50", typ: TypeFloat, want: "float_ratio / 2.5"},
		{name: "Textual", expr: "name + world", typ: TypeStr, want: "str_name + world"},
		{name: "Wildcard Raw", expr: "x + 0x10", typ: TypeAny, want: "x + 0x10"},
		{name: "Mismatch First", expr: "hello", typ: TypeFloat, wantErr: ErrTypeMismatch},
		{name: "Mismatch Later", expr: "1.5 + hello", typ: TypeFloat, wantErr: ErrTypeMismatch},
		{name: "Invalid Literal", expr: "abc", typ: TypeInt, wantErr: ErrInvalidLiteral},
		{name: "Int Overflow", expr: "2147483648", typ: TypeInt, wantErr: ErrInvalidLiteral},
		{name: "Int Max", expr: "2147483647", typ: TypeInt, want: "2147483647"},
		{name: "Unknown Operator", expr: "1 % 2", typ: TypeInt, wantErr: ErrUnknownOperator},
		{name: "Adjacent Operands", expr: "1 2", typ: TypeInt, wantErr: ErrUnknownOperator},
		{name: "Trailing Operator", expr: "1 +", typ: TypeInt, wantErr: ErrMalformedExpression},
		{name: "Trailing Operator Textual", expr: "a +", typ: TypeStr, wantErr: ErrMalformedExpression},
		{name: "Empty", expr: "", typ: TypeInt, wantErr: ErrMalformedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(exprTokens(tt.expr), env, tt.typ)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Evaluate(%q) error = %v, want %v", tt.expr, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate(%q) failed: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluateOperandCount(t *testing.T) {
	// k operators always give k+1 operands joined without grouping.
	exprs := []string{"1", "1 + 2", "1 - 2 * 3", "1 / 2 / 3 + 4", "9 * 8 - 7 + 6 / 5"}
	env := NewEnvironment()
	for k, expr := range exprs {
		got, err := Evaluate(exprTokens(expr), env, TypeInt)
		if err != nil {
			t.Fatalf("Evaluate(%q) failed: %v", expr, err)
		}
		if got != expr {
			t.Errorf("Evaluate(%q) = %q", expr, got)
		}
		if n := len(exprTokens(got)); n != 2*k+1 {
			t.Errorf("%q: %d tokens, want %d", got, n, 2*k+1)
		}
	}
}

func TestEvaluateErrorPosition(t *testing.T) {
	_, err := Evaluate(exprTokens("1 + abc"), NewEnvironment(), TypeInt)
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Line != 1 || e.Col != 5 {
		t.Errorf("position = %d:%d, want 1:5", e.Line, e.Col)
	}
}
