package compiler

// ScanUntil finds the first run of consecutive tokens whose lexemes equal
// marker. It returns the tokens before the run and the tokens after it, with
// the run itself dropped. The search is literal: it does not track nesting.
func ScanUntil(toks []Token, marker ...string) (body, rest []Token, ok bool) {
	i := indexOf(toks, marker)
	if i < 0 {
		return nil, toks, false
	}
	return toks[:i:i], toks[i+len(marker):], true
}

// removeFirst drops the first run of tokens matching marker, if any.
func removeFirst(toks []Token, marker ...string) []Token {
	i := indexOf(toks, marker)
	if i < 0 {
		return toks
	}
	out := make([]Token, 0, len(toks)-len(marker))
	out = append(out, toks[:i]...)
	return append(out, toks[i+len(marker):]...)
}

func indexOf(toks []Token, marker []string) int {
	if len(marker) == 0 {
		return -1
	}
outer:
	for i := 0; i+len(marker) <= len(toks); i++ {
		for j, m := range marker {
			if toks[i+j].Type == EOF || toks[i+j].Lexeme != m {
				continue outer
			}
		}
		return i
	}
	return -1
}
