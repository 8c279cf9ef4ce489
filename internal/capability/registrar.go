package capability

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"github.com/roach88/theorize/internal/script"
)

// Script-visible names.
const (
	Namespace    = "Theorem"
	ClockFunc    = "monotonic"
	IOType       = "IO"
	FilenoMethod = "fileno"
	ToggleMethod = "nonblock"
	WriteMethod  = "write"
	PutsMethod   = "puts"
)

// Stream is a named stream exposed as IO.<Name>. File supplies the
// descriptor for fileno and nonblock; Writer, when set, receives write and
// puts in place of File.
type Stream struct {
	Name   string
	File   *os.File
	Writer io.Writer
}

// DefaultStreams are the process's standard streams.
func DefaultStreams() []Stream {
	return []Stream{
		{Name: "stdin", File: os.Stdin},
		{Name: "stdout", File: os.Stdout},
		{Name: "stderr", File: os.Stderr},
	}
}

// Options selects which capabilities Register installs.
type Options struct {
	// IOToggle adds IO#nonblock to the IO streams. Ignored where unsupported.
	IOToggle bool
	// Clock backs Theorem.monotonic. Defaults to a MonotonicClock.
	Clock Clock
	// Streams exposed on IO. Defaults to DefaultStreams.
	Streams []Stream
	Logger  *slog.Logger
}

// Registered describes what Register installed.
type Registered struct {
	Clock    bool
	IO       bool
	IOToggle bool
}

// RegistrationError reports a capability that could not be installed.
type RegistrationError struct {
	Capability string
	Err        error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register %s: %v", e.Capability, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// IOToggleSupported reports whether this build can register IO#nonblock.
func IOToggleSupported() bool {
	return ioToggleSupported
}

// Register installs the native capabilities into rt.
func Register(rt *script.Runtime, opts Options) (Registered, error) {
	var reg Registered

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := opts.Clock
	if clock == nil {
		clock = NewMonotonicClock()
	}
	err := rt.DefineFunction(Namespace, ClockFunc, func(goja.FunctionCall) goja.Value {
		return rt.ToValue(clock.Seconds())
	})
	if err != nil {
		return reg, &RegistrationError{Capability: Namespace + "." + ClockFunc, Err: err}
	}
	reg.Clock = true
	logger.Debug("capability registered", "name", Namespace+"."+ClockFunc)

	streams := opts.Streams
	if streams == nil {
		streams = DefaultStreams()
	}
	toggle := opts.IOToggle && ioToggleSupported
	if opts.IOToggle && !ioToggleSupported {
		logger.Debug("capability skipped: unsupported on this platform", "name", IOType+"#"+ToggleMethod)
	}
	if err := registerIO(rt, streams, toggle); err != nil {
		return reg, &RegistrationError{Capability: IOType, Err: err}
	}
	reg.IO = true
	reg.IOToggle = toggle
	logger.Debug("capability registered", "name", IOType, "streams", len(streams), "nonblock", toggle)

	return reg, nil
}

// ioStream is the native side of one IO.<name> object. fd is -1 when the
// stream has no file behind it.
type ioStream struct {
	name string
	fd   int
	w    io.Writer
}

// ioStreams tracks the stream behind each script object and the mode each
// toggled descriptor started in.
type ioStreams struct {
	byObject map[*goja.Object]*ioStream
	restored map[int]bool
}

func registerIO(rt *script.Runtime, streams []Stream, toggle bool) error {
	typ, err := rt.DefineType(IOType)
	if err != nil {
		return err
	}

	state := &ioStreams{byObject: make(map[*goja.Object]*ioStream), restored: make(map[int]bool)}

	receiver := func(method string, this *goja.Object) *ioStream {
		s, ok := state.byObject[this]
		if !ok {
			rt.Throw(fmt.Errorf("IO#%s: receiver is not an open stream", method))
		}
		return s
	}
	fileno := func(method string, this *goja.Object) int {
		s := receiver(method, this)
		if s.fd < 0 {
			rt.Throw(fmt.Errorf("IO#%s: %s has no file descriptor", method, s.name))
		}
		return s.fd
	}
	write := func(method string, s *ioStream, text string) int {
		n, err := io.WriteString(s.w, text)
		if err != nil {
			rt.Throw(fmt.Errorf("IO#%s: %s: %w", method, s.name, err))
		}
		return n
	}

	if err := typ.DefineMethod(FilenoMethod, func(this *goja.Object, _ goja.FunctionCall) goja.Value {
		return rt.ToValue(fileno(FilenoMethod, this))
	}); err != nil {
		return err
	}

	if err := typ.DefineMethod(WriteMethod, func(this *goja.Object, call goja.FunctionCall) goja.Value {
		s := receiver(WriteMethod, this)
		var n int
		for _, arg := range call.Arguments {
			n += write(WriteMethod, s, arg.String())
		}
		return rt.ToValue(n)
	}); err != nil {
		return err
	}

	if err := typ.DefineMethod(PutsMethod, func(this *goja.Object, call goja.FunctionCall) goja.Value {
		s := receiver(PutsMethod, this)
		write(PutsMethod, s, putsText(call.Arguments))
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if toggle {
		if err := typ.DefineMethod(ToggleMethod, func(this *goja.Object, _ goja.FunctionCall) goja.Value {
			fd := fileno(ToggleMethod, this)
			if _, seen := state.restored[fd]; !seen {
				was, err := isNonblock(fd)
				if err != nil {
					rt.Throw(fmt.Errorf("IO#nonblock: %w", err))
				}
				state.restored[fd] = was
			}
			if err := setNonblock(fd, true); err != nil {
				rt.Throw(fmt.Errorf("IO#nonblock: %w", err))
			}
			return goja.Undefined()
		}); err != nil {
			return err
		}
	}

	for _, s := range streams {
		native := &ioStream{name: s.Name, fd: -1, w: s.Writer}
		if s.File != nil {
			fd, err := descriptor(s.File)
			if err != nil {
				return fmt.Errorf("stream %s: %w", s.Name, err)
			}
			native.fd = fd
			if native.w == nil {
				native.w = s.File
			}
		}
		if native.w == nil {
			return fmt.Errorf("stream %s: no file or writer", s.Name)
		}
		inst := typ.NewInstance()
		state.byObject[inst] = native
		if err := typ.SetStatic(s.Name, inst); err != nil {
			return err
		}
	}

	// Leave descriptors the way we found them once the runtime is finalized.
	rt.OnClose(func() {
		for fd, wasNonblock := range state.restored {
			if !wasNonblock {
				_ = setNonblock(fd, false)
			}
		}
	})

	return nil
}

// putsText renders puts arguments: one line per value, arrays flattened,
// a newline added only where the value lacks one. No arguments is an empty
// line.
func putsText(args []goja.Value) string {
	if len(args) == 0 {
		return "\n"
	}
	var b strings.Builder
	var add func(v goja.Value)
	add = func(v goja.Value) {
		if obj, ok := v.(*goja.Object); ok && obj.ClassName() == "Array" {
			length := obj.Get("length").ToInteger()
			if length == 0 {
				b.WriteString("\n")
			}
			for i := int64(0); i < length; i++ {
				add(obj.Get(strconv.FormatInt(i, 10)))
			}
			return
		}
		line := v.String()
		b.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			b.WriteString("\n")
		}
	}
	for _, arg := range args {
		add(arg)
	}
	return b.String()
}

// descriptor reads the file's descriptor without File.Fd, which would switch
// the file into blocking mode as a side effect.
func descriptor(f *os.File) (int, error) {
	if f == nil {
		return 0, errors.New("nil file")
	}
	rc, err := f.SyscallConn()
	if err != nil {
		return 0, err
	}
	var fd int
	if err := rc.Control(func(raw uintptr) { fd = int(raw) }); err != nil {
		return 0, err
	}
	return fd, nil
}
