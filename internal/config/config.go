package config

import "slices"

// MaxValues is the upper bound on values accepted by each repeatable flag.
const MaxValues = 5

// Defaults for the scalar identifiers.
const (
	DefaultModule  = "Theorem::Hypothesis"
	DefaultHarness = "Theorem::Harness"
)

// Flag names a recognized command-line option by its long name.
type Flag string

const (
	FlagRequire   Flag = "require"
	FlagHarness   Flag = "harness"
	FlagPublisher Flag = "publisher"
	FlagModule    Flag = "module"
	FlagInclude   Flag = "include"
	FlagExclude   Flag = "exclude"
)

// Flags lists every recognized flag in help order.
var Flags = []Flag{FlagRequire, FlagHarness, FlagPublisher, FlagModule, FlagInclude, FlagExclude}

// Shorthand returns the single-letter alias for the flag.
func (f Flag) Shorthand() string {
	switch f {
	case FlagRequire:
		return "r"
	case FlagHarness:
		return "h"
	case FlagPublisher:
		return "p"
	case FlagModule:
		return "m"
	case FlagInclude:
		return "i"
	case FlagExclude:
		return "e"
	}
	return ""
}

// Repeatable reports whether values accumulate (true) or the last one wins.
func (f Flag) Repeatable() bool {
	return f != FlagModule && f != FlagHarness
}

// Occurrence is one flag/value pair in the order it appeared on the command line.
type Occurrence struct {
	Flag  Flag
	Value string
}

// Parsed is the Option Parser's output: every flag occurrence in argv order
// plus the positional directory, if one was given.
type Parsed struct {
	Occurrences []Occurrence
	Directory   string
	HasDir      bool
}

// Meta carries the test selection patterns.
type Meta struct {
	Include []string
	Exclude []string
}

// Configuration is the immutable result of assembling parsed arguments.
type Configuration struct {
	directory  string
	module     string
	harness    string
	requires   []string
	publishers []string
	include    []string
	exclude    []string
}

func (c *Configuration) Directory() string { return c.directory }
func (c *Configuration) Module() string    { return c.module }
func (c *Configuration) Harness() string   { return c.harness }

// Requires returns the preload paths in command-line order.
func (c *Configuration) Requires() []string { return slices.Clone(c.requires) }

// Publishers returns the publisher identifiers in command-line order.
func (c *Configuration) Publishers() []string { return slices.Clone(c.publishers) }

// Meta returns the include/exclude patterns.
func (c *Configuration) Meta() Meta {
	return Meta{Include: slices.Clone(c.include), Exclude: slices.Clone(c.exclude)}
}

// Document builds the options document passed to the harness entry point.
// Lists are always present, empty rather than nil.
func (c *Configuration) Document() map[string]any {
	return map[string]any{
		"directory":  c.directory,
		"module":     c.module,
		"harness":    c.harness,
		"publishers": toAnySlice(c.publishers),
		"meta": map[string]any{
			"include": toAnySlice(c.include),
			"exclude": toAnySlice(c.exclude),
		},
	}
}

func toAnySlice(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
