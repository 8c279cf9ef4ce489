package harness

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/dop251/goja"

	"github.com/roach88/theorize/internal/config"
	"github.com/roach88/theorize/internal/script"
)

// DefaultEntryPoint is the function called on the configured module.
const DefaultEntryPoint = "run"

// ErrAlreadyInvoked is returned when Invoke is called a second time.
var ErrAlreadyInvoked = errors.New("harness entry point already invoked")

// Caller is the slice of the runtime the invoker needs.
type Caller interface {
	Call(path, method string, arg any) (goja.Value, error)
}

// OutcomeKind classifies how the invocation ended.
type OutcomeKind int

const (
	// OutcomeNormal means the entry point returned an integer.
	OutcomeNormal OutcomeKind = iota
	// OutcomeException means the entry point raised, could not be found, or
	// returned something that is not an integer.
	OutcomeException
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNormal:
		return "normal"
	case OutcomeException:
		return "exception"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the typed result of one invocation. The caller picks the
// process exit code from it.
type Outcome struct {
	Kind OutcomeKind
	// Code is the entry point's return value (OutcomeNormal only).
	Code int
	// Err is the runtime's exception (OutcomeException only).
	Err error
}

// Invoker calls the harness entry point exactly once.
type Invoker struct {
	caller  Caller
	entry   string
	logger  *slog.Logger
	invoked bool
}

// NewInvoker creates an invoker calling entry (DefaultEntryPoint if empty).
func NewInvoker(caller Caller, entry string, logger *slog.Logger) *Invoker {
	if entry == "" {
		entry = DefaultEntryPoint
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{caller: caller, entry: entry, logger: logger}
}

// Invoke calls <module>.<entry>(options) with the configuration's options
// document and converts the result into an Outcome.
func (inv *Invoker) Invoke(cfg *config.Configuration) Outcome {
	if inv.invoked {
		return Outcome{Kind: OutcomeException, Err: ErrAlreadyInvoked}
	}
	inv.invoked = true

	target := cfg.Module() + "." + inv.entry
	inv.logger.Debug("invoking entry point", "target", target, "harness", cfg.Harness(), "directory", cfg.Directory())

	res, err := inv.caller.Call(cfg.Module(), inv.entry, cfg.Document())
	if err != nil {
		inv.logger.Debug("entry point raised", "target", target, "error", err)
		return Outcome{Kind: OutcomeException, Err: err}
	}

	code, err := exitCode(res)
	if err != nil {
		return Outcome{Kind: OutcomeException, Err: &script.Exception{
			Message: fmt.Sprintf("TypeError: %s returned %v", target, err),
			Err:     err,
		}}
	}

	inv.logger.Debug("entry point returned", "target", target, "code", code)
	return Outcome{Kind: OutcomeNormal, Code: code}
}

// exitCode interprets the entry point's return value as an integer.
func exitCode(v goja.Value) (int, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return 0, errors.New("no value, want an integer")
	}
	switch n := v.Export().(type) {
	case int64:
		return int(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, fmt.Errorf("%v, want an integer", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s, want an integer", v.String())
	}
}
