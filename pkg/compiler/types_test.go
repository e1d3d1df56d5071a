package compiler

import (
	"math"
	"testing"
)

func TestTypeValidity(t *testing.T) {
	tests := []struct {
		typ   Type
		raw   string
		valid bool
	}{
		{TypeInt, "0", true},
		{TypeInt, "2147483647", true},
		{TypeInt, "-2147483648", true},
		{TypeInt, "2147483648", false},
		{TypeInt, "-2147483649", false},
		{TypeInt, "1.5", false},
		{TypeInt, "1e3", true},
		{TypeInt, "0x10", true},
		{TypeInt, "Infinity", false},
		{TypeInt, "abc", false},
		{TypeFloat, "1.5", true},
		{TypeFloat, ".5", true},
		{TypeFloat, "5.", true},
		{TypeFloat, "-1e-7", true},
		{TypeFloat, "Infinity", true},
		{TypeFloat, "abc", false},
		{TypeFloat, "1_000", false},
		{TypeFloat, "0x", false},
		{TypeFloat, "--1", false},
		{TypeFloat, "1e", false},
		{TypeFloat, "-0x10", false},
		{TypeStr, "anything", true},
		{TypeAny, "+", true},
	}
	for _, tt := range tests {
		if got := tt.typ.Desc().Valid(tt.raw); got != tt.valid {
			t.Errorf("%s.Valid(%q) = %v, want %v", tt.typ, tt.raw, got, tt.valid)
		}
	}
}

func TestTypeLiteral(t *testing.T) {
	tests := []struct {
		typ  Type
		raw  string
		want string
	}{
		{TypeInt, "102", "102"},
		{TypeInt, "0x10", "16"},
		{TypeInt, "1e3", "1000"},
		{TypeInt, "-0", "0"},
		{TypeInt, "0b101", "5"},
		{TypeInt, "0o17", "15"},
		{TypeFloat, "1.50", "1.5"},
		{TypeFloat, "0.1", "0.1"},
		{TypeFloat, "1e21", "1e+21"},
		{TypeFloat, "1e-7", "1e-7"},
		{TypeFloat, "0.000001", "0.000001"},
		{TypeFloat, "1.5e300", "1.5e+300"},
		{TypeFloat, "123456789012345678901", "123456789012345680000"},
		{TypeFloat, "-Infinity", "-Infinity"},
		{TypeFloat, "1e400", "Infinity"},
		{TypeStr, "hello", "hello"},
		{TypeAny, "102", "102"},
	}
	for _, tt := range tests {
		got, ok := tt.typ.Desc().Literal(tt.raw)
		if !ok {
			t.Errorf("%s.Literal(%q) rejected", tt.typ, tt.raw)
			continue
		}
		if got != tt.want {
			t.Errorf("%s.Literal(%q) = %q, want %q", tt.typ, tt.raw, got, tt.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		native  NativeKind
		nativeS string
		def     string
	}{
		{"int", TypeInt, NativeNumber, "number", "0"},
		{"float", TypeFloat, NativeNumber, "number", "0"},
		{"str", TypeStr, NativeString, "string", `""`},
		{"any", TypeAny, NativeAny, "Symbol", `""`},
	}
	for _, tt := range tests {
		typ, ok := LookupType(tt.name)
		if !ok || typ != tt.typ {
			t.Errorf("LookupType(%q) = %v, %v", tt.name, typ, ok)
			continue
		}
		d := typ.Desc()
		if d.Native != tt.native || d.Native.String() != tt.nativeS || d.Default != tt.def {
			t.Errorf("%s: got native %v (%s), default %s", tt.name, d.Native, d.Native, d.Default)
		}
	}
	if _, ok := LookupType("number"); ok {
		t.Error("LookupType(number) should fail")
	}
	if got := len(Types()); got != 4 {
		t.Errorf("Types() has %d entries, want 4", got)
	}
}

func TestSuggestType(t *testing.T) {
	tests := map[string]string{
		"i":      "int",
		"INT":    "int",
		"flot":   "float",
		"intt":   "int",
		"s":      "str",
		"zzzzzz": "",
	}
	for in, want := range tests {
		if got := suggestType(in); got != want {
			t.Errorf("suggestType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToNumber(t *testing.T) {
	if f, ok := toNumber(""); !ok || f != 0 {
		t.Errorf("toNumber(\"\") = %v, %v", f, ok)
	}
	if f, ok := toNumber("+Infinity"); !ok || !math.IsInf(f, 1) {
		t.Errorf("toNumber(+Infinity) = %v, %v", f, ok)
	}
	if _, ok := toNumber("inf"); ok {
		t.Error("toNumber(inf) should be NaN")
	}
	if _, ok := toNumber("0x1p3"); ok {
		t.Error("toNumber(0x1p3) should be NaN")
	}
}
