package compiler

// operators maps each binary operator token to its textual combiner. There is
// no precedence: a chain folds left to right exactly as written.
var operators = map[TokenType]func(a, b string) string{
	PLUS:  func(a, b string) string { return a + " + " + b },
	MINUS: func(a, b string) string { return a + " - " + b },
	STAR:  func(a, b string) string { return a + " * " + b },
	SLASH: func(a, b string) string { return a + " / " + b },
}

// Evaluate resolves a flat operand/operator chain into a JavaScript
// expression of type t. Bound variables must carry exactly type t; any
// other operand must be a valid literal of t.
func Evaluate(expr []Token, env *Environment, t Type) (string, error) {
	if len(expr) == 0 {
		return "", &Error{Kind: ErrMalformedExpression, Msg: "empty expression"}
	}

	acc, err := resolveOperand(expr[0], env, t)
	if err != nil {
		return "", err
	}
	for i := 1; i < len(expr); i += 2 {
		op := expr[i]
		combine, ok := operators[op.Type]
		if !ok {
			return "", newError(ErrUnknownOperator, op, "unexpected value %q, expected one of + - * /", op.Lexeme)
		}
		if i+1 >= len(expr) {
			return "", newError(ErrMalformedExpression, op, "operator %q is missing its right operand", op.Lexeme)
		}
		rhs, err := resolveOperand(expr[i+1], env, t)
		if err != nil {
			return "", err
		}
		acc = combine(acc, rhs)
	}
	return acc, nil
}

func resolveOperand(tok Token, env *Environment, t Type) (string, error) {
	if v, ok := env.Lookup(tok.Lexeme); ok {
		if v.Type != t {
			return "", newError(ErrTypeMismatch, tok, "cannot operate a(n) %s (%s) to a(n) %s", v.Type, tok.Lexeme, t)
		}
		return v.Target, nil
	}
	lit, ok := t.Desc().Literal(tok.Lexeme)
	if !ok {
		return "", newError(ErrInvalidLiteral, tok, "value %s is not of type %s", tok.Lexeme, t)
	}
	return lit, nil
}
