// Package harness calls the test harness entry point inside the script
// runtime and classifies how it ended.
//
// The configured module is resolved from the runtime's global object
// ("Theorem::Hypothesis" and "Theorem.Hypothesis" name the same object) and
// its run function is called once with the options document:
//
//	{
//	  directory:  "/path/to/tests",
//	  module:     "Theorem::Hypothesis",
//	  harness:    "Theorem::Harness",
//	  publishers: [...],
//	  meta:       { include: [...], exclude: [...] }
//	}
//
// The entry point lives on the configured module itself, not on Theorem:
// with -m Tests::World the launcher calls Tests.World.run(options). A harness
// that dispatches from a single Theorem.run must be selected with
// -m Theorem.
//
// An integral return value becomes the process exit code. Anything else,
// including a raised exception or a missing module, is an OutcomeException.
package harness
