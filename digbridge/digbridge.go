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

// Package digbridge shares services between a container and a
// go.uber.org/dig container.
//
// Factory exposes a value dig can build as a container service, and Provide
// exposes a container service as a dig constructor:
//
//	dc := dig.New()
//	dc.Provide(NewLogger)
//	c.Set("Logger", digbridge.Factory[*zap.Logger](dc))
//
//	digbridge.Provide[*Printer](dc, c, "Printer")
package digbridge

import (
	"reflect"

	"github.com/codesaur-php/container"
	"github.com/pkg/errors"
	"go.uber.org/dig"
)

// Factory returns a container.Factory that resolves a T from dc. dig
// builds and caches T by its own rules; the container then caches the
// same value under the name it is set with.
func Factory[T any](dc *dig.Container) container.Factory {
	return func(*container.Container) (interface{}, error) {
		var out T
		if err := dc.Invoke(func(v T) { out = v }); err != nil {
			return nil, errors.Wrapf(err, "resolve %v from dig", typeOf[T]())
		}
		return out, nil
	}
}

// Provide registers a dig constructor for T that gets name from c. The
// lookup happens when dig first needs a T.
func Provide[T any](dc *dig.Container, c *container.Container, name string) error {
	err := dc.Provide(func() (T, error) {
		return container.Resolve[T](c, name)
	})
	return errors.Wrapf(err, "provide %s to dig", name)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
