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

package event

import (
	"time"
)

// Event defines an event emitted by a container.
type Event interface {
	event() // Only this package can implement this interface.
}

// Passing events by type to make Event hashable in the future.
func (*Registered) event() {}
func (*Bound) event()      {}
func (*Aliased) event()    {}
func (*Removed) event()    {}
func (*Resolved) event()   {}
func (*Closed) event()     {}

// Kinds of definition reported by Registered.
const (
	KindArguments = "arguments"
	KindFactory   = "factory"
)

// Registered is emitted when a definition is stored with Set.
type Registered struct {
	// Name is the identifier the definition was stored under.
	Name string

	// Kind is KindArguments or KindFactory.
	Kind string

	// Factory is the factory function for KindFactory definitions.
	Factory interface{}

	// Caller is the function that called Set.
	Caller string
}

// Bound is emitted when an abstract identifier is bound to a concrete one.
type Bound struct {
	Abstract string
	Concrete string
}

// Aliased is emitted when an alias is added. Target is the canonical name
// the alias was stored against.
type Aliased struct {
	Alias  string
	Target string
}

// Removed is emitted when Remove deleted at least one entry.
type Removed struct {
	Name string
}

// Resolved is emitted after the container ran a factory or constructor for
// an identifier. Cache hits do not emit it.
type Resolved struct {
	// Name is the identifier passed to Get.
	Name string

	// ResolvedName is Name after alias and binding indirection.
	ResolvedName string

	Runtime time.Duration
	Err     error
}

// Closed is emitted after the container closed its cached instances.
type Closed struct {
	Err error
}
