// Package config holds the run Configuration handed to the harness entry point
// and the Assembler that folds parsed command-line occurrences into it.
//
// A Configuration is built exactly once per process by Assemble and is
// read-only afterwards. Accessors return copies of the repeatable lists so
// callers cannot mutate the assembled value.
//
// # Limits
//
// Every repeatable flag accepts at most MaxValues values. Assembly is
// fail-fast: the first occurrence past the bound aborts with a
// TooManyValuesError naming the flag, and no truncated list is produced.
//
// # Options Document
//
// Document returns the runtime-neutral shape passed to the entry point:
//
//	{
//	  directory:  "<path>",
//	  module:     "Theorem::Hypothesis",
//	  harness:    "Theorem::Harness",
//	  publishers: [...],
//	  meta:       {include: [...], exclude: [...]},
//	}
//
// The document is checked against the embedded options.cue schema before
// Assemble returns.
package config
