package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/roach88/theorize/internal/config"
)

// occurrenceValue is a pflag.Value that records every Set, in argv order,
// into a shared Parsed. Long and short spellings share one value.
type occurrenceValue struct {
	flag   config.Flag
	parsed *config.Parsed
}

func (v *occurrenceValue) Set(s string) error {
	v.parsed.Occurrences = append(v.parsed.Occurrences, config.Occurrence{Flag: v.flag, Value: s})
	return nil
}

// String reports the current value; pflag also reads it once at
// registration to derive the default shown in help.
func (v *occurrenceValue) String() string {
	var last string
	var count int
	for _, occ := range v.parsed.Occurrences {
		if occ.Flag == v.flag {
			last = occ.Value
			count++
		}
	}
	if v.flag.Repeatable() {
		if count == 0 {
			return "[]"
		}
		return fmt.Sprintf("[%d values]", count)
	}
	if count == 0 {
		switch v.flag {
		case config.FlagModule:
			return config.DefaultModule
		case config.FlagHarness:
			return config.DefaultHarness
		}
	}
	return last
}

func (v *occurrenceValue) Type() string {
	if v.flag.Repeatable() {
		return "stringArray"
	}
	return "string"
}

var flagUsage = map[config.Flag]string{
	config.FlagRequire:   fmt.Sprintf("script file to load before the harness runs (repeatable, max %d)", config.MaxValues),
	config.FlagHarness:   "harness module that discovers the tests",
	config.FlagPublisher: fmt.Sprintf("publisher module that reports results (repeatable, max %d)", config.MaxValues),
	config.FlagModule:    "module whose entry point runs the suite",
	config.FlagInclude:   fmt.Sprintf("only run tests matching this pattern (repeatable, max %d)", config.MaxValues),
	config.FlagExclude:   fmt.Sprintf("skip tests matching this pattern (repeatable, max %d)", config.MaxValues),
}

// bindOccurrenceFlags registers every recognized flag on fs, recording into parsed.
func bindOccurrenceFlags(fs *pflag.FlagSet, parsed *config.Parsed) {
	for _, f := range config.Flags {
		fs.VarP(&occurrenceValue{flag: f, parsed: parsed}, string(f), f.Shorthand(), flagUsage[f])
	}
}

// setPositional stores the test directory left over after flag parsing. More than one positional is a
// usage error naming the first extra token.
func setPositional(parsed *config.Parsed, args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 1:
		parsed.Directory = args[0]
		parsed.HasDir = true
		return nil
	default:
		return &UsageError{
			Token: args[1],
			Err:   fmt.Errorf("unexpected argument %q: only one test directory is accepted", args[1]),
		}
	}
}

// newFlagError converts a pflag parse error into a UsageError carrying the
// offending token.
func newFlagError(err error) *UsageError {
	return &UsageError{Token: offendingToken(err), Err: err}
}

// offendingToken extracts the argument pflag complained about.
//
//	unknown flag: --bogus
//	unknown shorthand flag: 'x' in -x
//	flag needs an argument: --require
//	flag needs an argument: 'r' in -r
func offendingToken(err error) string {
	if errors.Is(err, pflag.ErrHelp) {
		return "--help"
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, " in "); i >= 0 && strings.Contains(msg, "'") {
		return strings.TrimSpace(msg[i+len(" in "):])
	}
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return strings.TrimSpace(msg[i+2:])
	}
	return ""
}
