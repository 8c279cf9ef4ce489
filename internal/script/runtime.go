package script

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dop251/goja"
)

// Function is a native function exposed to scripts.
type Function func(call goja.FunctionCall) goja.Value

// Method is a native instance method; this is the receiver object.
type Method func(this *goja.Object, call goja.FunctionCall) goja.Value

// Runtime is the handle to one execution environment.
type Runtime struct {
	vm         *goja.Runtime
	finalizers []func()
	closed     bool
}

// New creates a fresh runtime with only the engine's built-ins defined.
func New() *Runtime {
	return &Runtime{vm: goja.New()}
}

// Load evaluates src in the global scope. name is used in diagnostics.
func (r *Runtime) Load(name string, src []byte) error {
	if r.closed {
		return ErrClosed
	}
	_, err := r.vm.RunScript(name, string(src))
	return toException(err)
}

// Eval evaluates src and returns its completion value.
func (r *Runtime) Eval(name, src string) (goja.Value, error) {
	if r.closed {
		return nil, ErrClosed
	}
	v, err := r.vm.RunScript(name, src)
	return v, toException(err)
}

// Namespace returns the global object called name, creating it when absent.
// An existing global that is not an object is an error.
func (r *Runtime) Namespace(name string) (*goja.Object, error) {
	if r.closed {
		return nil, ErrClosed
	}
	global := r.vm.GlobalObject()
	if global == nil {
		return nil, fmt.Errorf("runtime has no global object")
	}
	if v := global.Get(name); v != nil && !goja.IsUndefined(v) && !goja.IsNull(v) {
		obj, ok := v.(*goja.Object)
		if !ok {
			return nil, fmt.Errorf("global %s is a %s, not a namespace", name, v.ExportType())
		}
		return obj, nil
	}
	obj := r.vm.NewObject()
	if err := global.Set(name, obj); err != nil {
		return nil, fmt.Errorf("define namespace %s: %w", name, err)
	}
	return obj, nil
}

// DefineFunction installs fn as namespace.name.
func (r *Runtime) DefineFunction(namespace, name string, fn Function) error {
	ns, err := r.Namespace(namespace)
	if err != nil {
		return err
	}
	// The engine only recognizes the unnamed native signature.
	native := (func(goja.FunctionCall) goja.Value)(fn)
	if err := ns.Set(name, native); err != nil {
		return fmt.Errorf("define %s.%s: %w", namespace, name, err)
	}
	return nil
}

// DefineType installs a global type object whose instances share a prototype.
func (r *Runtime) DefineType(name string) (*Type, error) {
	obj, err := r.Namespace(name)
	if err != nil {
		return nil, err
	}
	proto := r.vm.NewObject()
	if err := obj.Set("prototype", proto); err != nil {
		return nil, fmt.Errorf("define %s.prototype: %w", name, err)
	}
	return &Type{rt: r, name: name, obj: obj, proto: proto}, nil
}

// Resolve walks a constant path such as "Theorem::Hypothesis" or
// "Theorem.Hypothesis" from the global object.
func (r *Runtime) Resolve(path string) (*goja.Object, error) {
	if r.closed {
		return nil, ErrClosed
	}
	segments := strings.FieldsFunc(strings.ReplaceAll(path, "::", "."), func(c rune) bool { return c == '.' })
	if len(segments) == 0 {
		return nil, nameError(path)
	}
	cur := r.vm.GlobalObject()
	for _, seg := range segments {
		v := cur.Get(seg)
		obj, ok := v.(*goja.Object)
		if !ok {
			return nil, nameError(path)
		}
		cur = obj
	}
	return cur, nil
}

// Call invokes target.method(arg) where target is resolved from path, with
// this bound to the target. arg is converted with NewValue.
func (r *Runtime) Call(path, method string, arg any) (goja.Value, error) {
	target, err := r.Resolve(path)
	if err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(target.Get(method))
	if !ok {
		return nil, &Exception{Message: fmt.Sprintf("NoMethodError: undefined method '%s' for %s", method, path)}
	}
	argVal, err := r.NewValue(arg)
	if err != nil {
		return nil, err
	}
	res, err := fn(target, argVal)
	if err != nil {
		return nil, toException(err)
	}
	return res, nil
}

// NewValue converts a Go document (strings, numbers, bools, []any, []string,
// map[string]any) into plain runtime objects and arrays.
func (r *Runtime) NewValue(v any) (goja.Value, error) {
	switch val := v.(type) {
	case nil:
		return goja.Null(), nil
	case goja.Value:
		return val, nil
	case string, bool, int, int64, float64:
		return r.vm.ToValue(val), nil
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return r.NewValue(items)
	case []any:
		items := make([]any, len(val))
		for i, elem := range val {
			ev, err := r.NewValue(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = ev
		}
		return r.vm.NewArray(items...), nil
	case map[string]any:
		obj := r.vm.NewObject()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			ev, err := r.NewValue(val[k])
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			if err := obj.Set(k, ev); err != nil {
				return nil, err
			}
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// Throw raises err as a script exception from inside a native function.
// It does not return.
func (r *Runtime) Throw(err error) {
	panic(r.vm.NewGoError(err))
}

// ToValue wraps a Go value with the engine's default conversion.
func (r *Runtime) ToValue(v any) goja.Value {
	return r.vm.ToValue(v)
}

// OnClose registers fn to run when the runtime is closed.
func (r *Runtime) OnClose(fn func()) {
	r.finalizers = append(r.finalizers, fn)
}

// Close runs finalizers in reverse registration order and releases the
// engine. Calls after the first are no-ops.
func (r *Runtime) Close() {
	if r.closed {
		return
	}
	r.closed = true
	for i := len(r.finalizers) - 1; i >= 0; i-- {
		r.finalizers[i]()
	}
	r.finalizers = nil
	r.vm = nil
}

// Closed reports whether Close has been called.
func (r *Runtime) Closed() bool {
	return r.closed
}
