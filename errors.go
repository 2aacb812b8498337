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

	"github.com/pkg/errors"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrContainer matches every *Error regardless of its Reason.
	ErrContainer = errors.New("container error")

	// ErrAlreadyRegistered matches an *Error raised for a duplicate
	// definition, binding or alias.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrInvalid matches an *Error raised for a self-alias, a concrete type
	// that does not implement its abstract, or a malformed definition.
	ErrInvalid = errors.New("invalid")

	// ErrUnresolvable matches an *Error raised when a constructor parameter
	// can be neither supplied, auto-wired nor defaulted.
	ErrUnresolvable = errors.New("unresolvable")

	// ErrCycle matches an *Error raised when resolving an identifier
	// requires that same identifier further down the resolution path.
	ErrCycle = errors.New("dependency cycle")
)

// Reason classifies an *Error.
type Reason int

const (
	// AlreadyRegistered is a duplicate definition, binding or alias.
	AlreadyRegistered Reason = iota + 1
	// Invalid is a contract or argument violation.
	Invalid
	// Unresolvable is a constructor parameter that could not be filled.
	Unresolvable
	// Cycle is a resolution path that revisits an identifier.
	Cycle
)

func (r Reason) String() string {
	switch r {
	case AlreadyRegistered:
		return "already registered"
	case Invalid:
		return "invalid"
	case Unresolvable:
		return "unresolvable"
	case Cycle:
		return "cycle"
	default:
		return "unknown"
	}
}

func (r Reason) sentinel() error {
	switch r {
	case AlreadyRegistered:
		return ErrAlreadyRegistered
	case Invalid:
		return ErrInvalid
	case Unresolvable:
		return ErrUnresolvable
	case Cycle:
		return ErrCycle
	default:
		return nil
	}
}

// NotFoundError reports that an identifier, class, interface or alias
// target does not exist.
type NotFoundError struct {
	// Name is the identifier the caller asked for.
	Name string

	msg   string
	cause error
}

func notFound(name, format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Name: name, msg: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

// Unwrap returns the underlying cause, if any.
func (e *NotFoundError) Unwrap() error { return e.cause }

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Error is the general container failure: duplicate registration, failed
// contract satisfaction, self-alias, unresolvable parameter or cycle.
type Error struct {
	Reason Reason
	// Name is the identifier the failing operation was called with.
	Name string

	msg   string
	cause error
}

func newError(reason Reason, name, format string, args ...interface{}) *Error {
	return &Error{Reason: reason, Name: name, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is ErrContainer or the sentinel of e.Reason.
func (e *Error) Is(target error) bool {
	return target == ErrContainer || target == e.Reason.sentinel()
}
