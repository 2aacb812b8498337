// Copyright (c) 2017 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Param describes one constructor parameter of a Class.
type Param struct {
	// Name is used in error messages only.
	Name string

	// Type is the declared type identifier. When it names something the
	// container can resolve, the parameter is auto-wired. Leave it empty for
	// primitive or untyped parameters.
	Type string

	// Default is used when the parameter is neither supplied nor
	// auto-wired, provided HasDefault is set.
	Default    interface{}
	HasDefault bool
}

// Typed declares a parameter of the given type identifier. It is auto-wired
// when the container has an entry for typ.
func Typed(name, typ string) Param {
	return Param{Name: name, Type: typ}
}

// Value declares an untyped parameter with a default value.
func Value(name string, def interface{}) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// Required declares an untyped parameter without a default. It must be
// supplied positionally by the definition.
func Required(name string) Param {
	return Param{Name: name}
}

// Optional returns a copy of p that falls back to def when it cannot be
// auto-wired.
func (p Param) Optional(def interface{}) Param {
	p.Default = def
	p.HasDefault = true
	return p
}

// Class is a constructible type known to a Registry.
type Class struct {
	Name   string
	Params []Param

	// Construct builds an instance from an argument list positionally
	// aligned with Params.
	Construct func(args []interface{}) (interface{}, error)

	// Type is the Go type Construct returns. It is used to check Bind
	// contracts and may be nil for classes that are never bound.
	Type reflect.Type
}

// HasDefaultConstructor reports whether the class can be built without
// arguments.
func (c *Class) HasDefaultConstructor() bool {
	return len(c.Params) == 0
}

// Interface is an abstract, interface-like type known to a Registry.
type Interface struct {
	Name string
	Type reflect.Type
}

// ClassOf builds a Class whose constructor returns T.
//
//	reg.MustDefine(container.ClassOf("Printer", func(args []interface{}) (*Printer, error) {
//		text, err := container.Arg[string](args, 0)
//		return &Printer{Text: text}, err
//	}, container.Required("text")))
func ClassOf[T any](name string, ctor func(args []interface{}) (T, error), params ...Param) Class {
	return Class{
		Name:   name,
		Params: params,
		Construct: func(args []interface{}) (interface{}, error) {
			return ctor(args)
		},
		Type: reflect.TypeOf((*T)(nil)).Elem(),
	}
}

// InterfaceOf builds an Interface for the Go interface type T.
func InterfaceOf[T any](name string) Interface {
	return Interface{Name: name, Type: reflect.TypeOf((*T)(nil)).Elem()}
}

// Arg returns args[i] as a T. A nil argument yields the zero value.
func Arg[T any](args []interface{}, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(args) {
		return zero, newError(Invalid, "", "argument %d out of range (%d given)", i, len(args))
	}
	if args[i] == nil {
		return zero, nil
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, newError(Invalid, "", "argument %d is %T, not %s", i, args[i], reflect.TypeOf((*T)(nil)).Elem())
	}
	return v, nil
}

// Registry records the classes and interfaces a container may construct or
// bind. It is safe for concurrent use and may be shared between containers.
type Registry struct {
	mu         sync.RWMutex
	classes    map[string]*Class
	interfaces map[string]*Interface
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		classes:    make(map[string]*Class),
		interfaces: make(map[string]*Interface),
	}
}

// Define adds classes or interfaces to the registry. Each value must be a
// Class or an Interface; names are unique across both kinds.
func (r *Registry) Define(types ...interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range types {
		switch t := t.(type) {
		case Class:
			if err := r.checkName(t.Name); err != nil {
				return err
			}
			if t.Construct == nil {
				return newError(Invalid, t.Name, "class %q has no constructor", t.Name)
			}
			cls := t
			r.classes[t.Name] = &cls
		case Interface:
			if err := r.checkName(t.Name); err != nil {
				return err
			}
			if t.Type == nil || t.Type.Kind() != reflect.Interface {
				return newError(Invalid, t.Name, "%q is not an interface type", t.Name)
			}
			iface := t
			r.interfaces[t.Name] = &iface
		default:
			return newError(Invalid, "", "cannot define %T, want container.Class or container.Interface", t)
		}
	}
	return nil
}

// MustDefine is Define that panics on error. It is meant for package-level
// setup.
func (r *Registry) MustDefine(types ...interface{}) *Registry {
	if err := r.Define(types...); err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) checkName(name string) error {
	if name == "" {
		return newError(Invalid, name, "type name cannot be empty")
	}
	if _, ok := r.classes[name]; ok {
		return newError(AlreadyRegistered, name, "type %q is already defined", name)
	}
	if _, ok := r.interfaces[name]; ok {
		return newError(AlreadyRegistered, name, "type %q is already defined", name)
	}
	return nil
}

// Class returns the class registered under name.
func (r *Registry) Class(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	return c, ok
}

// IsClass reports whether name is a constructible type.
func (r *Registry) IsClass(name string) bool {
	_, ok := r.Class(name)
	return ok
}

// IsInterface reports whether name is an interface-like type.
func (r *Registry) IsInterface(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.interfaces[name]
	return ok
}

// Satisfies reports whether the class concrete implements the interface
// abstract. Unknown names and classes without a Type never satisfy.
func (r *Registry) Satisfies(concrete, abstract string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classes[concrete]
	if !ok || c.Type == nil {
		return false
	}
	i, ok := r.interfaces[abstract]
	if !ok {
		return false
	}
	return c.Type.Implements(i.Type)
}

// Names returns every class and interface name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes)+len(r.interfaces))
	for n := range r.classes {
		names = append(names, n)
	}
	for n := range r.interfaces {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Class) String() string {
	return fmt.Sprintf("class %s(%d params)", c.Name, len(c.Params))
}
