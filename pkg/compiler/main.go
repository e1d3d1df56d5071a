// Package compiler translates Rhein source text into JavaScript.
//
// Pipeline: source → Preprocess (mode directive) → Lex → CodeGen
// (statement dispatch, label compilation, emission) → JavaScript text.
//
// A translation is synchronous and single-threaded. One Environment is
// shared by reference across every nested label of a run.
package compiler
