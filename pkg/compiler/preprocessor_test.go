package compiler

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		raw    string
		strict bool
		text   string
	}{
		{"true", true, "true"},
		{"yes", true, "true"},
		{"false", false, "false"},
		{"no", false, "false"},
		{"TRUE", true, "TRUE"},
		{"maybe", true, "maybe"},
		{"", false, ""},
	}
	for _, tt := range tests {
		m := ParseMode(tt.raw)
		if m.Strict != tt.strict || m.String() != tt.text {
			t.Errorf("ParseMode(%q) = {%v %q}, want {%v %q}", tt.raw, m.Strict, m.String(), tt.strict, tt.text)
		}
	}
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		mode     Mode
		expected string
		wantMode Mode
	}{
		{
			name:     "No Directive",
			src:      "int x = 1;",
			mode:     Strict,
			expected: "int x = 1;",
			wantMode: Strict,
		},
		{
			name:     "Disable",
			src:      "@typeStrict=false;\nx = 1;",
			mode:     Strict,
			expected: "                  \nx = 1;",
			wantMode: Permissive,
		},
		{
			name:     "Leading Whitespace",
			src:      "\n  @typeStrict=yes; int x = 1;",
			mode:     Permissive,
			expected: "\n                   int x = 1;",
			wantMode: Strict,
		},
		{
			name:     "Pass Through",
			src:      "@typeStrict=maybe;",
			mode:     Permissive,
			expected: "                  ",
			wantMode: Mode{Strict: true, Text: "maybe", Raw: true},
		},
		{
			name:     "Empty Value",
			src:      "@typeStrict=;",
			mode:     Strict,
			expected: "             ",
			wantMode: Mode{Text: "", Raw: true},
		},
		{
			name:     "Not At Start",
			src:      "int x = 1; @typeStrict=false;",
			mode:     Strict,
			expected: "int x = 1; @typeStrict=false;",
			wantMode: Strict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, mode, err := Preprocess(tt.src, tt.mode)
			if err != nil {
				t.Fatalf("Preprocess failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("source = %q, want %q", got, tt.expected)
			}
			if mode != tt.wantMode {
				t.Errorf("mode = %+v, want %+v", mode, tt.wantMode)
			}
		})
	}
}

func TestPreprocessKeepsPositions(t *testing.T) {
	src, _, err := Preprocess("@typeStrict=true;\nint x = 1;", Permissive)
	if err != nil {
		t.Fatal(err)
	}
	toks := Lex(src)
	if toks[0].Type != INT || toks[0].Line != 2 || toks[0].Col != 1 {
		t.Errorf("first token = %v, want INT at 2:1", toks[0])
	}
}

func TestPreprocessMissingTerminator(t *testing.T) {
	_, _, err := Preprocess("\n@typeStrict=true", Strict)
	if !errors.Is(err, ErrInvalidDirective) {
		t.Fatalf("expected ErrInvalidDirective, got %v", err)
	}
	var e *Error
	if errors.As(err, &e) && (e.Line != 2 || e.Col != 1) {
		t.Errorf("position = %d:%d, want 2:1", e.Line, e.Col)
	}
}
