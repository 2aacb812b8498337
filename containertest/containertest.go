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

// Package containertest provides helpers for tests that build containers.
package containertest

import (
	"github.com/codesaur-php/container"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	Errorf(string, ...interface{})
	FailNow()
}

// Container is a container.Container whose registration and lookup
// helpers fail the test instead of returning errors. Events it emits are
// recorded by Spy.
type Container struct {
	*container.Container

	Spy *Spy

	tb TB
}

// New builds a test container. The Spy is installed as its event logger;
// later options take precedence.
func New(tb TB, opts ...container.Option) *Container {
	spy := &Spy{}
	opts = append([]container.Option{container.WithLogger(spy)}, opts...)
	return &Container{
		Container: container.New(opts...),
		Spy:       spy,
		tb:        tb,
	}
}

func (c *Container) must(op string, err error) {
	if err != nil {
		c.tb.Errorf("%s failed: %v", op, err)
		c.tb.FailNow()
	}
}

// MustSet calls Set, failing the test if an error is encountered.
func (c *Container) MustSet(name string, def container.Definition) {
	c.must("Set("+name+")", c.Set(name, def))
}

// MustBind calls Bind, failing the test if an error is encountered.
func (c *Container) MustBind(abstract, concrete string) {
	c.must("Bind("+abstract+", "+concrete+")", c.Bind(abstract, concrete))
}

// MustAlias calls Alias, failing the test if an error is encountered.
func (c *Container) MustAlias(alias, target string) {
	c.must("Alias("+alias+", "+target+")", c.Alias(alias, target))
}

// MustGet calls Get, failing the test if an error is encountered.
func (c *Container) MustGet(name string) interface{} {
	inst, err := c.Get(name)
	c.must("Get("+name+")", err)
	return inst
}

// MustClose calls Close, failing the test if an error is encountered.
func (c *Container) MustClose() {
	c.must("Close", c.Close())
}
