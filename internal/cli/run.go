package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/theorize/internal/capability"
	"github.com/roach88/theorize/internal/config"
	"github.com/roach88/theorize/internal/harness"
	"github.com/roach88/theorize/internal/preload"
	"github.com/roach88/theorize/internal/script"
)

// Launcher runs the pipeline: assemble, register capabilities, preload,
// invoke, exit. Fields left nil get production defaults.
type Launcher struct {
	Stdout io.Writer
	Stderr io.Writer

	// RunIDs tags log lines. Defaults to UUIDv7Generator.
	RunIDs RunIDGenerator
	// NewRuntime creates the one runtime of the run. Defaults to script.New.
	NewRuntime func() (*script.Runtime, error)
	// Clock backs Theorem.monotonic. Defaults to capability.NewMonotonicClock.
	Clock capability.Clock
	// Streams exposed on IO. Defaults to the process's standard streams with
	// writes going to Stdout and Stderr.
	Streams []capability.Stream
	// EntryPoint called on the configured module. Defaults to harness.DefaultEntryPoint.
	EntryPoint string

	code int
}

// NewLauncher creates a launcher writing to the given streams.
func NewLauncher(stdout, stderr io.Writer) *Launcher {
	return &Launcher{Stdout: stdout, Stderr: stderr}
}

// Execute parses args (without the program name), runs the pipeline and
// returns the process exit code. Diagnostics go to Stderr.
func (l *Launcher) Execute(args []string) int {
	l.code = ExitSuccess

	cmd := NewRootCommand(l)
	cmd.SetArgs(args)
	cmd.SetOut(l.Stdout)
	cmd.SetErr(l.Stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(l.Stderr, err.Error())
		var usage *UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(l.Stderr, "Run 'theorize --help' for usage.")
		}
		return GetExitCode(err)
	}
	return l.code
}

func (l *Launcher) newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(l.Stderr, &slog.HandlerOptions{Level: level}))
}

// Launch runs one suite. A nil return means the entry point returned
// normally and its value is the exit code; every failure is an *ExitError.
func (l *Launcher) Launch(opts *RootOptions, parsed *config.Parsed) error {
	runIDs := l.RunIDs
	if runIDs == nil {
		runIDs = UUIDv7Generator{}
	}
	logger := l.newLogger(opts.Verbose).With("run_id", runIDs.Generate())

	cfg, err := config.Assemble(parsed)
	if err != nil {
		return WrapExitError(ExitUsage, "", &UsageError{Err: err})
	}
	logger.Debug("configuration assembled",
		"directory", cfg.Directory(),
		"module", cfg.Module(),
		"harness", cfg.Harness(),
		"requires", len(cfg.Requires()),
		"publishers", len(cfg.Publishers()),
	)

	if opts.DryRun {
		if err := config.Render(l.Stdout, cfg, opts.Format); err != nil {
			return WrapExitError(ExitUsage, "render configuration", err)
		}
		return nil
	}

	newRuntime := l.NewRuntime
	if newRuntime == nil {
		newRuntime = func() (*script.Runtime, error) { return script.New(), nil }
	}
	rt, err := newRuntime()
	if err != nil {
		return WrapExitError(ExitUsage, "start runtime", err)
	}
	defer rt.Close()

	reg, err := capability.Register(rt, capability.Options{
		IOToggle: opts.IOToggle,
		Clock:    l.Clock,
		Streams:  l.streams(),
		Logger:   logger,
	})
	if err != nil {
		return WrapExitError(ExitUsage, "fatal", err)
	}
	logger.Debug("capabilities ready", "clock", reg.Clock, "io_toggle", reg.IOToggle)

	if _, err := preload.New(rt, logger).Load(cfg.Requires()); err != nil {
		var loadErr *preload.LoadError
		var ex *script.Exception
		if errors.As(err, &loadErr) && errors.As(err, &ex) {
			return NewExitError(ExitUsage, fmt.Sprintf("%s: %s", loadErr.Path, ex.Diagnostic()))
		}
		return WrapExitError(ExitUsage, "", err)
	}

	out := harness.NewInvoker(rt, l.EntryPoint, logger).Invoke(cfg)
	switch out.Kind {
	case harness.OutcomeNormal:
		l.code = out.Code
		logger.Debug("run finished", "exit_code", out.Code)
		return nil
	default:
		return NewExitError(ExitRuntimeException, diagnostic(out.Err))
	}
}

func (l *Launcher) streams() []capability.Stream {
	if l.Streams != nil {
		return l.Streams
	}
	streams := capability.DefaultStreams()
	for i := range streams {
		switch streams[i].Name {
		case "stdout":
			streams[i].Writer = l.Stdout
		case "stderr":
			streams[i].Writer = l.Stderr
		}
	}
	return streams
}

func diagnostic(err error) string {
	var ex *script.Exception
	if errors.As(err, &ex) {
		return ex.Diagnostic()
	}
	return err.Error()
}

