package compiler

// Translate converts src into JavaScript. env is shared with and mutated by
// the run; nil starts from an empty environment. indent is the column of
// top-level output. label, when set, names the enclosing label so that
// return is legal at the top level. A leading directive overrides mode.
func Translate(src string, env *Environment, indent int, label string, mode Mode) (string, error) {
	if env == nil {
		env = NewEnvironment()
	}
	indent = max(indent, 0)

	src, mode, err := Preprocess(src, mode)
	if err != nil {
		return "", err
	}
	return newCodeGen(Lex(src), env, indent, label, mode).generate()
}

// Compile translates a complete program in strict mode.
func Compile(src string) (string, error) {
	return Translate(src, nil, 0, "", Strict)
}
