package script

import (
	"fmt"

	"github.com/dop251/goja"
)

// Type is a script-visible type: a global object holding a prototype that
// instances are created from.
type Type struct {
	rt    *Runtime
	name  string
	obj   *goja.Object
	proto *goja.Object
}

// Name returns the global name of the type.
func (t *Type) Name() string {
	return t.name
}

// DefineMethod installs fn on the prototype so every instance responds to it.
func (t *Type) DefineMethod(name string, fn Method) error {
	vm := t.rt.vm
	native := func(call goja.FunctionCall) goja.Value {
		this := call.This.ToObject(vm)
		return fn(this, call)
	}
	if err := t.proto.Set(name, native); err != nil {
		return fmt.Errorf("define %s#%s: %w", t.name, name, err)
	}
	return nil
}

// NewInstance creates an object inheriting the type's methods.
func (t *Type) NewInstance() *goja.Object {
	return t.rt.vm.CreateObject(t.proto)
}

// SetStatic installs v as a property of the type object itself.
func (t *Type) SetStatic(name string, v any) error {
	if err := t.obj.Set(name, v); err != nil {
		return fmt.Errorf("define %s.%s: %w", t.name, name, err)
	}
	return nil
}
