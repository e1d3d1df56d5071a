package compiler

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// directivePrefix opens the mode directive, which is only recognised at the
// very start of a program.
const directivePrefix = "@typeStrict="

// Mode is the compilation mode of one translation run. Text is what the
// banner reports; it differs from Strict only for pass-through directive
// values.
type Mode struct {
	Strict bool
	Text   string
	Raw    bool // Text is a directive value kept verbatim, possibly empty
}

var (
	Strict     = Mode{Strict: true, Text: "true"}
	Permissive = Mode{Strict: false, Text: "false"}
)

// ParseMode interprets a directive value. "true" and "yes" enable strict
// mode, "false" and "no" disable it; matching is case-sensitive. Any other
// non-empty value is kept verbatim and behaves as strict. The empty value
// is kept too and is permissive.
func ParseMode(raw string) Mode {
	switch raw {
	case "true", "yes":
		return Strict
	case "false", "no":
		return Permissive
	}
	return Mode{Strict: raw != "", Text: raw, Raw: true}
}

func (m Mode) String() string {
	if m.Raw || m.Text != "" {
		return m.Text
	}
	return strconv.FormatBool(m.Strict)
}

// Preprocess extracts a leading "@typeStrict=<value>;" directive from src.
// The directive text is blanked with spaces, keeping newlines, so that token
// positions in the returned source still match the original. Without a
// directive src and mode come back unchanged.
func Preprocess(src string, mode Mode) (string, Mode, error) {
	trimmed := strings.TrimLeftFunc(src, unicode.IsSpace)
	if !strings.HasPrefix(trimmed, directivePrefix) {
		return src, mode, nil
	}

	start := len(src) - len(trimmed)
	rest := trimmed[len(directivePrefix):]
	stop := strings.IndexByte(rest, ';')
	if stop < 0 {
		line, col := positionAt(src, start)
		return "", mode, &Error{Kind: ErrInvalidDirective, Line: line, Col: col, Msg: "invalid typeStrict statement: missing ';'"}
	}

	raw := strings.ReplaceAll(rest[:stop], "\n", " ")
	end := start + len(directivePrefix) + stop + 1

	var sb strings.Builder
	sb.Grow(len(src))
	sb.WriteString(src[:start])
	for _, r := range src[start:end] {
		if r == '\n' {
			sb.WriteRune('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteString(src[end:])
	return sb.String(), ParseMode(raw), nil
}

// positionAt converts a byte offset into a 1-based line and rune column.
func positionAt(src string, offset int) (line, col int) {
	before := src[:offset]
	line = strings.Count(before, "\n") + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	return line, utf8.RuneCountInString(before) + 1
}
