package compiler

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Type is one of the fixed value kinds of the source language.
type Type int

const (
	TypeInt Type = iota
	TypeFloat
	TypeStr
	TypeAny
)

// NativeKind is the JavaScript storage kind a Type maps to.
type NativeKind int

const (
	NativeNumber NativeKind = iota
	NativeString
	NativeAny
)

func (k NativeKind) String() string {
	switch k {
	case NativeNumber:
		return "number"
	case NativeString:
		return "string"
	default:
		return "Symbol"
	}
}

// TypeDesc describes a registered type: its native representation, literal
// validity rule and default literal.
type TypeDesc struct {
	Name    string
	Native  NativeKind
	Default string
	valid   func(raw string) bool
}

// registry is indexed by Type and never mutated.
var registry = [...]TypeDesc{
	TypeInt: {
		Name:    "int",
		Native:  NativeNumber,
		Default: "0",
		valid: func(raw string) bool {
			f, ok := toNumber(raw)
			return ok && f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32
		},
	},
	TypeFloat: {
		Name:    "float",
		Native:  NativeNumber,
		Default: "0",
		valid: func(raw string) bool {
			_, ok := toNumber(raw)
			return ok
		},
	},
	TypeStr: {
		Name:    "str",
		Native:  NativeString,
		Default: `""`,
		valid:   func(string) bool { return true },
	},
	TypeAny: {
		Name:    "any",
		Native:  NativeAny,
		Default: `""`,
		valid:   func(string) bool { return true },
	},
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(registry))
	for i, d := range registry {
		m[d.Name] = Type(i)
	}
	return m
}()

// Types returns every registered type in declaration order.
func Types() []Type {
	out := make([]Type, len(registry))
	for i := range registry {
		out[i] = Type(i)
	}
	return out
}

// LookupType returns the type registered under name.
func LookupType(name string) (Type, bool) {
	t, ok := typesByName[name]
	return t, ok
}

// Desc returns the registry entry for t.
func (t Type) Desc() TypeDesc {
	if int(t) < 0 || int(t) >= len(registry) {
		return registry[TypeAny]
	}
	return registry[t]
}

func (t Type) String() string { return t.Desc().Name }

// MarshalText lets environments serialise types by name.
func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Valid runs the type's validity rule over a raw token.
func (d TypeDesc) Valid(raw string) bool { return d.valid(raw) }

// Literal coerces raw to the native kind and checks validity. Numeric
// literals come back in canonical JavaScript number formatting; textual and
// wildcard literals pass through untouched.
func (d TypeDesc) Literal(raw string) (string, bool) {
	if !d.valid(raw) {
		return "", false
	}
	if d.Native != NativeNumber {
		return raw, true
	}
	f, _ := toNumber(raw)
	return formatNumber(f), true
}

// suggestType finds the registered type name closest to name, or "".
func suggestType(name string) string {
	names := make([]string, len(registry))
	for i, d := range registry {
		names[i] = d.Name
	}
	if ranks := fuzzy.RankFindFold(name, names); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", 3
	for _, n := range names {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(name), n); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// toNumber follows JavaScript's Number(string): decimal with optional sign,
// fraction and exponent; unsigned 0x/0o/0b integers; signed Infinity; and
// the empty string as 0. It reports false where JavaScript yields NaN.
func toNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0, true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return parseRadix(s[2:], base)
		}
	}

	if !isDecimalLiteral(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ErrRange still carries ±Inf or 0, which is what JavaScript produces.
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return 0, false
		}
	}
	return f, true
}

func parseRadix(digits string, base int) (float64, bool) {
	var v float64
	for _, r := range digits {
		d := digitValue(r)
		if d < 0 || d >= base {
			return 0, false
		}
		v = v*float64(base) + float64(d)
	}
	return v, true
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}

// isDecimalLiteral matches [+-] (digits [. digits?] | . digits) [(e|E) [+-] digits].
func isDecimalLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// formatNumber renders f the way JavaScript's Number.prototype.toString does.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// Shortest round-trip digits and their decimal exponent.
	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	digits := strings.Replace(mant, ".", "", 1)
	e, _ := strconv.Atoi(exp)
	k, n := len(digits), e+1

	var out string
	switch {
	case k <= n && n <= 21:
		out = digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		out = digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		out = "0." + strings.Repeat("0", -n) + digits
	default:
		out = digits[:1]
		if k > 1 {
			out += "." + digits[1:]
		}
		if n-1 >= 0 {
			out += "e+" + strconv.Itoa(n-1)
		} else {
			out += "e-" + strconv.Itoa(1-n)
		}
	}
	return sign + out
}
