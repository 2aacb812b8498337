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
	"github.com/codesaur-php/container/event"
	"github.com/codesaur-php/container/internal/clock"
)

// An Option configures a Container.
type Option interface {
	apply(*state)
}

type optionFunc func(*state)

func (f optionFunc) apply(s *state) { f(s) }

// WithRegistry sets the Registry of classes and interfaces the container
// may construct and bind. Without it the container starts with an empty
// Registry of its own, reachable through Container.Registry.
func WithRegistry(r *Registry) Option {
	return optionFunc(func(s *state) {
		s.registry = r
	})
}

// WithLogger sets the event.Logger that receives the container's events.
// The default discards them.
func WithLogger(l event.Logger) Option {
	return optionFunc(func(s *state) {
		s.log = l
	})
}

func withClock(c clock.Clock) Option {
	return optionFunc(func(s *state) {
		s.clock = c
	})
}
