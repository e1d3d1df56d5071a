// Command rhein-repl translates Rhein interactively. Bindings persist from one
// input to the next; an input that fails to translate leaves them untouched.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"rhein/pkg/compiler"
)

const (
	banner      = "Rhein " + compiler.Version + " (type :help for commands)"
	promptMain  = "rhein> "
	promptCont  = "   ... "
	historyFile = ".rhein_history"
)

// session holds the state carried between inputs.
type session struct {
	env  *compiler.Environment
	mode compiler.Mode
}

func newSession() *session {
	return &session{env: compiler.NewEnvironment(), mode: compiler.Strict}
}

// translate runs src against a copy of the environment and keeps the copy
// only when the translation succeeds.
func (s *session) translate(src string) (string, error) {
	env := s.env.Clone()
	code, err := compiler.Translate(src, env, 0, "", s.mode)
	if err != nil {
		return "", err
	}
	s.env = env
	return code, nil
}

// incomplete reports whether err means more input could still complete src.
func incomplete(err error) bool {
	return errors.Is(err, compiler.ErrUnterminatedStatement) || errors.Is(err, compiler.ErrUnterminatedLabel)
}

// command executes a ":" command and reports whether the REPL should exit.
func (s *session) command(line string, w io.Writer) (quit bool) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(w, ":env          show bindings")
		fmt.Fprintln(w, ":types        show registered types")
		fmt.Fprintln(w, ":mode [value] show or set the mode (true, false, yes, no)")
		fmt.Fprintln(w, ":reset        drop all bindings")
		fmt.Fprintln(w, ":quit         exit")
	case ":env":
		fmt.Fprint(w, s.env)
	case ":types":
		for _, t := range compiler.Types() {
			d := t.Desc()
			fmt.Fprintf(w, "  %-6s %-7s default %s\n", d.Name, d.Native, d.Default)
		}
	case ":mode":
		if len(fields) > 1 {
			s.mode = compiler.ParseMode(fields[1])
		}
		fmt.Fprintf(w, "isTypeStrict: %s\n", s.mode)
	case ":reset":
		s.env = compiler.NewEnvironment()
		fmt.Fprintln(w, "environment cleared")
	default:
		fmt.Fprintln(w, "unknown command. Type :help for a list.")
	}
	return false
}

func main() {
	s := newSession()
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		os.Exit(batch(s, os.Stdin, os.Stdout, os.Stderr))
	}
	os.Exit(repl(s))
}

// batch translates everything on r as one input.
func batch(s *session, r io.Reader, stdout, stderr io.Writer) int {
	src, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintln(stderr, "read error:", err)
		return 1
	}
	code, err := s.translate(string(src))
	if err != nil {
		fmt.Fprintln(stderr, compiler.WrapErrorWithSource(err, "<stdin>", string(src)))
		return 1
	}
	fmt.Fprintln(stdout, code)
	return 0
}

func repl(s *session) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		src, ok := readInput(ln, s)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if s.command(trimmed, os.Stdout) {
				return 0
			}
			continue
		}

		code, err := s.translate(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, compiler.WrapErrorWithSource(err, "", src))
			continue
		}
		fmt.Println(code)
	}
}

// readInput reads lines until they form a complete input. A blank line
// while continuing submits what has been typed so far.
func readInput(ln *liner.State, s *session) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 && strings.TrimSpace(line) == "" {
			return b.String(), true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := compiler.Translate(src, s.env.Clone(), 0, "", s.mode); err != nil && incomplete(err) {
			continue
		}
		return src, true
	}
}
