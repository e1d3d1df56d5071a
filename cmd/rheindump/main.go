// Command rheindump prints every stage of a translation: the preprocessed
// source, the resolved mode, the tokens, the generated JavaScript and the
// final environment as YAML.
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rhein/pkg/compiler"
)

const testSource = `int x = 10;
int y = x + 20;
label main:
    return y;
label main;
`

type dump struct {
	Mode      string               `yaml:"mode"`
	Variables []*compiler.Variable `yaml:"variables"`
}

func main() {
	src := testSource
	name := "<builtin>"
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = string(data)
		name = os.Args[1]
	}

	// Preprocess
	pre, mode, err := compiler.Preprocess(src, compiler.Strict)
	if err != nil {
		fmt.Fprintln(os.Stderr, compiler.WrapErrorWithSource(err, name, src))
		os.Exit(1)
	}

	fmt.Printf("Source:\n%s\n", pre)
	fmt.Printf("Mode: %s\n\n", mode)

	// Lex
	tokens := compiler.Lex(pre)
	fmt.Printf("Tokens (%d)\n", len(tokens))
	for _, tok := range tokens {
		fmt.Println(" ", tok)
	}
	fmt.Println()

	// Generate
	env := compiler.NewEnvironment()
	code, err := compiler.Translate(src, env, 0, "", compiler.Strict)
	if err != nil {
		fmt.Fprintln(os.Stderr, compiler.WrapErrorWithSource(err, name, src))
		os.Exit(1)
	}

	fmt.Println("Generated JavaScript")
	fmt.Println(code)
	fmt.Println()

	out, err := yaml.Marshal(dump{Mode: mode.String(), Variables: env.Variables()})
	if err != nil {
		fmt.Fprintln(os.Stderr, "yaml error:", err)
		os.Exit(1)
	}
	fmt.Println("Environment")
	fmt.Print(string(out))
}
