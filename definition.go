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

// Definition is the recipe Get uses to build a service the first time it is
// requested. It is either an Arguments list or a Factory.
type Definition interface {
	definition()
}

// Arguments is an ordered list of constructor arguments for the class named
// by the identifier it is registered under. Arguments fill the class's
// parameters positionally; parameters past the end of the list are
// auto-wired or defaulted.
type Arguments []interface{}

// Args builds an Arguments definition.
func Args(v ...interface{}) Arguments {
	return Arguments(v)
}

// Factory builds a service from the container. The container passed in is
// the one to resolve dependencies from: it tracks the resolution in
// progress, so a dependency cycle is reported instead of blocking.
//
// Resolving through any other *Container, such as one captured in a
// closure when the Factory was created, loses that tracking. A cycle
// reached that way never returns: the Get waits on the build that is
// waiting for it.
type Factory func(c *Container) (interface{}, error)

func (Arguments) definition() {}
func (Factory) definition()   {}

// entry is a stored definition. gen tells apart a definition from one that
// replaced it after a Remove.
type entry struct {
	def Definition
	gen uint64
}
