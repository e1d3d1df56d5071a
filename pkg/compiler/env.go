package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// Variable is a bound source name.
type Variable struct {
	Name   string `yaml:"name"`
	Type   Type   `yaml:"type"`
	Target string `yaml:"target"` // mangled JavaScript name, <type>_<name>
	Value  string `yaml:"value"`  // last bound expression text
}

// MangledName returns the JavaScript identifier used for name of type t.
func MangledName(t Type, name string) string {
	return t.String() + "_" + name
}

// Environment maps source names to their bindings. One Environment is shared
// by reference with every nested label of a translation run. Bindings are
// only ever added or replaced; nothing is restored when a label ends.
type Environment struct {
	vars map[string]*Variable
}

func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]*Variable)}
}

// Define binds name, replacing any earlier binding whatever its type.
func (e *Environment) Define(name string, t Type, value string) *Variable {
	v := &Variable{Name: name, Type: t, Target: MangledName(t, name), Value: value}
	e.vars[name] = v
	return v
}

// Lookup returns the binding for name and whether it was found.
func (e *Environment) Lookup(name string) (*Variable, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *Environment) Len() int { return len(e.vars) }

// Clone returns an independent copy of e. Translating against the copy leaves
// e untouched, so a failed run can simply be discarded.
func (e *Environment) Clone() *Environment {
	c := &Environment{vars: make(map[string]*Variable, len(e.vars))}
	for name, v := range e.vars {
		cp := *v
		c.vars[name] = &cp
	}
	return c
}

// Variables returns the bindings sorted by name.
func (e *Environment) Variables() []*Variable {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Variable, len(names))
	for i, name := range names {
		out[i] = e.vars[name]
	}
	return out
}

// String returns a deterministically ordered dump of the environment.
func (e *Environment) String() string {
	if len(e.vars) == 0 {
		return "Variables: (empty)\n"
	}
	var sb strings.Builder
	sb.WriteString("Variables:\n")
	for _, v := range e.Variables() {
		fmt.Fprintf(&sb, "  %-20s  %-6s %-24s = %s\n", v.Name, v.Type, v.Target, v.Value)
	}
	return sb.String()
}
