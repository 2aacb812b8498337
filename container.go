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
	"io"
	"sort"
	"sync"

	"github.com/codesaur-php/container/event"
	"github.com/codesaur-php/container/internal/clock"
	"github.com/codesaur-php/container/internal/reflectutil"
	"go.uber.org/multierr"
	"golang.org/x/sync/singleflight"
)

// Container maps string identifiers to lazily built, shared service
// instances. The zero value is not usable; create one with New.
//
// A Container is safe for concurrent use. Factories and constructors run
// without any container lock held, so they may resolve other services.
type Container struct {
	s *state

	// path holds the resolved names being built by this view, outermost
	// first. It is empty for containers returned by New.
	path []string
}

type state struct {
	mu sync.Mutex

	definitions map[string]entry
	instances   map[string]interface{}
	bindings    map[string]string
	aliases     map[string]string

	// built lists resolved names in construction order for Close.
	built []string
	gen   uint64

	flight   singleflight.Group
	registry *Registry
	log      event.Logger
	clock    clock.Clock
}

// New creates an empty Container.
func New(opts ...Option) *Container {
	s := &state{
		definitions: make(map[string]entry),
		instances:   make(map[string]interface{}),
		bindings:    make(map[string]string),
		aliases:     make(map[string]string),
		log:         event.NopLogger,
		clock:       clock.System,
	}
	for _, opt := range opts {
		opt.apply(s)
	}
	if s.registry == nil {
		s.registry = NewRegistry()
	}
	if s.log == nil {
		s.log = event.NopLogger
	}
	return &Container{s: s}
}

// Registry returns the Registry the container constructs and binds from.
func (c *Container) Registry() *Registry {
	return c.s.registry
}

// resolveLocked follows one alias hop and then one binding hop.
func (s *state) resolveLocked(name string) string {
	if target, ok := s.aliases[name]; ok {
		name = target
	}
	if concrete, ok := s.bindings[name]; ok {
		name = concrete
	}
	return name
}

func (s *state) hasLocked(name string) bool {
	_, ok := s.definitions[s.resolveLocked(name)]
	return ok
}

// Has reports whether name, after alias and binding indirection, has a
// definition.
func (c *Container) Has(name string) bool {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.hasLocked(name)
}

// Set stores the definition used to build name on its first Get. Nothing is
// constructed until then.
//
// A Factory may be stored under any identifier not already present. An
// Arguments definition, including a nil Definition, requires name to be a
// class in the container's Registry.
func (c *Container) Set(name string, def Definition) error {
	if def == nil {
		def = Arguments(nil)
	}

	ev := &event.Registered{Name: name, Caller: reflectutil.Caller()}
	switch d := def.(type) {
	case Factory:
		if d == nil {
			return newError(Invalid, name, "factory for %s is nil", name)
		}
		ev.Kind = event.KindFactory
		ev.Factory = d
	case Arguments:
		if !c.s.registry.IsClass(name) {
			return notFound(name, "%s class does not exist", name)
		}
		ev.Kind = event.KindArguments
		def = append(Arguments(nil), d...)
	default:
		return newError(Invalid, name, "unsupported definition %T for %s", def, name)
	}

	s := c.s
	s.mu.Lock()
	if s.hasLocked(name) {
		s.mu.Unlock()
		return newError(AlreadyRegistered, name, "container already contains entry named [%s]", name)
	}
	s.gen++
	s.definitions[name] = entry{def: def, gen: s.gen}
	s.mu.Unlock()

	s.log.LogEvent(ev)
	return nil
}

// Bind makes abstract resolve to concrete. abstract must be an interface and
// concrete a class implementing it, both known to the Registry.
func (c *Container) Bind(abstract, concrete string) error {
	reg := c.s.registry
	if !reg.IsInterface(abstract) {
		return notFound(abstract, "%s interface does not exist", abstract)
	}
	if !reg.IsClass(concrete) {
		return notFound(concrete, "%s class does not exist", concrete)
	}
	if !reg.Satisfies(concrete, abstract) {
		return newError(Invalid, concrete, "%s does not implement %s", concrete, abstract)
	}

	s := c.s
	s.mu.Lock()
	if current, ok := s.bindings[abstract]; ok {
		s.mu.Unlock()
		return newError(AlreadyRegistered, abstract, "%s is already bound to %s", abstract, current)
	}
	s.bindings[abstract] = concrete
	s.mu.Unlock()

	s.log.LogEvent(&event.Bound{Abstract: abstract, Concrete: concrete})
	return nil
}

// Alias makes alias resolve to the same service as target. target is
// resolved through its own alias and binding first, and that canonical name
// is what the alias points at.
func (c *Container) Alias(alias, target string) error {
	s := c.s
	s.mu.Lock()

	resolved := s.resolveLocked(target)
	if _, ok := s.definitions[resolved]; !ok {
		s.mu.Unlock()
		return notFound(target, "alias target %s not found", target)
	}
	if current, ok := s.aliases[alias]; ok {
		s.mu.Unlock()
		return newError(AlreadyRegistered, alias, "%s is already an alias of %s", alias, current)
	}
	if alias == resolved {
		s.mu.Unlock()
		return newError(Invalid, alias, "[%s] is aliased to itself", alias)
	}
	if _, ok := s.definitions[alias]; ok {
		s.mu.Unlock()
		return newError(AlreadyRegistered, alias, "container already contains entry named [%s]", alias)
	}
	if _, ok := s.bindings[alias]; ok {
		s.mu.Unlock()
		return newError(AlreadyRegistered, alias, "%s is already bound", alias)
	}
	s.aliases[alias] = resolved
	s.mu.Unlock()

	s.log.LogEvent(&event.Aliased{Alias: alias, Target: resolved})
	return nil
}

// Remove deletes name from the container. Removing an alias or a binding
// deletes only that edge and whatever was cached under it; removing anything
// else deletes its definition, cached instance and every alias pointing at
// it. Removing an unknown identifier does nothing.
func (c *Container) Remove(name string) {
	s := c.s
	s.mu.Lock()
	removed := s.removeLocked(name)
	s.mu.Unlock()

	if removed {
		s.log.LogEvent(&event.Removed{Name: name})
	}
}

func (s *state) removeLocked(name string) bool {
	if _, ok := s.aliases[name]; ok {
		delete(s.aliases, name)
		delete(s.instances, name)
		return true
	}
	if _, ok := s.bindings[name]; ok {
		delete(s.bindings, name)
		delete(s.instances, name)
		return true
	}

	final := s.resolveLocked(name)
	_, removed := s.definitions[final]
	for alias, target := range s.aliases {
		if target == final {
			delete(s.aliases, alias)
			delete(s.instances, alias)
			removed = true
		}
	}
	if _, ok := s.bindings[final]; ok {
		delete(s.bindings, final)
		removed = true
	}
	if _, ok := s.instances[final]; ok {
		s.forgetBuiltLocked(final)
	}
	delete(s.definitions, final)
	delete(s.instances, final)
	delete(s.instances, name)
	return removed
}

func (s *state) forgetBuiltLocked(name string) {
	for i, n := range s.built {
		if n == name {
			s.built = append(s.built[:i], s.built[i+1:]...)
			return
		}
	}
}

// Names returns every identifier that has a definition, sorted.
func (c *Container) Names() []string {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	names := make([]string, 0, len(c.s.definitions))
	for n := range c.s.definitions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Close closes every constructed instance that implements io.Closer, most
// recently constructed first, and empties the instance cache. Definitions,
// bindings and aliases are kept, so later Gets construct afresh.
//
// All closers run even if some fail; their errors are combined.
func (c *Container) Close() error {
	s := c.s
	s.mu.Lock()
	built := s.built
	instances := s.instances
	s.built = nil
	s.instances = make(map[string]interface{})
	s.mu.Unlock()

	var err error
	for i := len(built) - 1; i >= 0; i-- {
		closer, ok := instances[built[i]].(io.Closer)
		if !ok {
			continue
		}
		if cerr := closer.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("close %s: %w", built[i], cerr))
		}
	}

	s.log.LogEvent(&event.Closed{Err: err})
	return err
}
