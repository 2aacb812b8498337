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
	"strings"

	"github.com/codesaur-php/container/event"
)

// Get returns the service for name, building it on first use.
//
// name is resolved through one alias hop and one binding hop. The instance
// is built once, from a Factory or from the class's constructor with
// auto-wired arguments, and is then cached under both the resolved name and
// name. Errors returned by factories and constructors are passed through
// unchanged.
func (c *Container) Get(name string) (interface{}, error) {
	inst, _, err := c.get(name)
	return inst, err
}

// get is Get that also reports whether a failure came from the lookup
// itself (missing entry or cycle) rather than from building the service.
func (c *Container) get(name string) (_ interface{}, lookup bool, _ error) {
	s := c.s
	s.mu.Lock()
	resolved := s.resolveLocked(name)
	e, ok := s.definitions[resolved]
	if !ok {
		s.mu.Unlock()
		return nil, true, notFound(name, "entry not found: %s", name)
	}
	if inst, ok := s.instances[resolved]; ok {
		if name != resolved {
			s.instances[name] = inst
		}
		s.mu.Unlock()
		return inst, false, nil
	}
	s.mu.Unlock()

	if err := c.checkCycle(name, resolved); err != nil {
		return nil, true, err
	}

	inst, err, _ := s.flight.Do(resolved, func() (interface{}, error) {
		return c.build(name, resolved, e)
	})
	if err != nil {
		return nil, false, err
	}

	if name != resolved {
		s.mu.Lock()
		if cur, ok := s.definitions[resolved]; ok && cur.gen == e.gen {
			s.instances[name] = inst
		}
		s.mu.Unlock()
	}
	return inst, false, nil
}

// MustGet is Get that panics on error.
func (c *Container) MustGet(name string) interface{} {
	inst, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return inst
}

// Resolve is a generic helper that calls Get and asserts the result to T.
//
//	printer, err := container.Resolve[*Printer](c, "Printer")
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	inst, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	out, ok := inst.(T)
	if !ok {
		return zero, newError(Invalid, name, "%s resolved to %T, not %s", name, inst, reflect.TypeOf((*T)(nil)).Elem())
	}
	return out, nil
}

func (c *Container) checkCycle(name, resolved string) error {
	for i, p := range c.path {
		if p == resolved {
			chain := append(append([]string(nil), c.path[i:]...), resolved)
			return newError(Cycle, name, "dependency cycle detected: %s", strings.Join(chain, " -> "))
		}
	}
	return nil
}

// build constructs resolved inside its flight and caches the result, unless
// the definition was removed or replaced meanwhile.
func (c *Container) build(name, resolved string, e entry) (interface{}, error) {
	s := c.s
	s.mu.Lock()
	if inst, ok := s.instances[resolved]; ok {
		s.mu.Unlock()
		return inst, nil
	}
	s.mu.Unlock()

	start := s.clock.Now()
	inst, err := c.construct(resolved, e.def)
	s.log.LogEvent(&event.Resolved{
		Name:         name,
		ResolvedName: resolved,
		Runtime:      s.clock.Since(start),
		Err:          err,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if cur, ok := s.definitions[resolved]; ok && cur.gen == e.gen {
		s.instances[resolved] = inst
		s.built = append(s.built, resolved)
	}
	s.mu.Unlock()
	return inst, nil
}

func (c *Container) construct(resolved string, def Definition) (interface{}, error) {
	path := make([]string, len(c.path), len(c.path)+1)
	copy(path, c.path)
	view := &Container{s: c.s, path: append(path, resolved)}

	switch d := def.(type) {
	case Factory:
		return d(view)
	case Arguments:
		cls, ok := c.s.registry.Class(resolved)
		if !ok {
			return nil, notFound(resolved, "%s class does not exist", resolved)
		}
		args, err := view.autowire(cls, d)
		if err != nil {
			return nil, err
		}
		return cls.Construct(args)
	default:
		return nil, newError(Invalid, resolved, "unsupported definition %T for %s", def, resolved)
	}
}

// autowire lines up the constructor arguments for cls. Supplied values fill
// parameters positionally; each remaining parameter is resolved from its
// declared type if the container has it, or else takes its default.
// Supplied values beyond the last parameter are passed through.
func (c *Container) autowire(cls *Class, supplied Arguments) ([]interface{}, error) {
	args := make([]interface{}, 0, len(cls.Params))
	next := 0
	for i, p := range cls.Params {
		if next < len(supplied) {
			args = append(args, supplied[next])
			next++
			continue
		}

		if p.Type != "" && c.Has(p.Type) {
			dep, lookup, err := c.get(p.Type)
			if err != nil {
				if lookup {
					return nil, paramError(cls, i, p, err)
				}
				return nil, err
			}
			args = append(args, dep)
			continue
		}

		if p.HasDefault {
			args = append(args, p.Default)
			continue
		}

		return nil, newError(Unresolvable, cls.Name, "unable to resolve %s of %s", describeParam(i, p), cls.Name)
	}
	return append(args, supplied[next:]...), nil
}

// paramError wraps a failed lookup of a parameter's dependency so the
// message shows which parameter needed it.
func paramError(cls *Class, i int, p Param, err error) error {
	wrapped := newError(Unresolvable, cls.Name, "unable to resolve %s of %s", describeParam(i, p), cls.Name)
	wrapped.cause = err
	return wrapped
}

func describeParam(i int, p Param) string {
	name := p.Name
	if name == "" {
		name = fmt.Sprintf("#%d", i)
	}
	if p.Type != "" {
		return fmt.Sprintf("parameter %s (%s)", name, p.Type)
	}
	return "parameter " + name
}
