package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/theorize/internal/capability"
	"github.com/roach88/theorize/internal/config"
)

// Version is reported by --version.
var Version = "0.1.0"

// RootOptions holds the launcher's own flags. The harness flags are recorded
// separately as occurrences.
type RootOptions struct {
	Verbose  bool
	Format   string // "text" | "json" | "yaml"
	DryRun   bool
	IOToggle bool
}

// NewRootCommand creates the theorize command bound to l.
func NewRootCommand(l *Launcher) *cobra.Command {
	return newRootCommand(l, &RootOptions{}, &config.Parsed{})
}

// newRootCommand records launcher flags into opts and harness flag
// occurrences into parsed.
func newRootCommand(l *Launcher, opts *RootOptions, parsed *config.Parsed) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theorize [flags] <directory>",
		Short: "Run a script-driven test suite",
		Long: `Run a script-driven test suite.

theorize starts a script runtime, registers Theorem.monotonic (and IO#nonblock
when enabled), loads each --require file in order, then calls run(options) on
the configured module. The value run returns becomes the exit status.

Exit codes:
  0   - the entry point returned 0
  N   - the entry point returned N
  1   - usage error, unreadable or failing require file
  255 - the entry point raised (reported as -1)

Examples:
  theorize ./test
  theorize -r test/helpers.js -m Tests::World ./test
  theorize -p Tests::JUnit -i smoke -e slow ./test
  theorize --dry-run --format json ./test`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.DryRun && !slices.Contains(config.ValidFormats, opts.Format) {
				return NewExitError(ExitUsage, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, config.ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setPositional(parsed, args); err != nil {
				return WrapExitError(ExitUsage, "", err)
			}
			return l.Launch(opts, parsed)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, "", newFlagError(err))
	})

	flags := cmd.Flags()
	flags.SortFlags = false
	bindOccurrenceFlags(flags, parsed)

	launcherFlags := pflag.NewFlagSet("launcher", pflag.ContinueOnError)
	launcherFlags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	launcherFlags.StringVar(&opts.Format, "format", config.FormatText, "dry-run output format (text|json|yaml); ignored without --dry-run")
	launcherFlags.BoolVar(&opts.DryRun, "dry-run", false, "print the assembled configuration and exit")
	launcherFlags.BoolVar(&opts.IOToggle, "io-toggle", capability.IOToggleSupported(), "register IO#nonblock for scripts")
	flags.AddFlagSet(launcherFlags)

	return cmd
}
