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

// Package container is a small service container: it maps string
// identifiers to services that are built on first use and shared afterwards.
//
// # Registering services
//
// Classes and interfaces are declared once in a [Registry]. A class carries
// its constructor and the declared type of each parameter.
//
//	reg := container.NewRegistry()
//	reg.MustDefine(
//		container.InterfaceOf[Greeter]("Greeter"),
//		container.ClassOf("English", NewEnglish),
//		container.ClassOf("Welcome", NewWelcome,
//			container.Required("text"),
//			container.Typed("greeter", "Greeter"),
//		),
//	)
//
//	c := container.New(container.WithRegistry(reg))
//	c.Set("English", nil)
//	c.Bind("Greeter", "English")
//	c.Set("Welcome", container.Args("hi"))
//
// A [Factory] can be stored under any identifier:
//
//	c.Set("db", container.Factory(func(c *container.Container) (interface{}, error) {
//		return sql.Open("postgres", dsn)
//	}))
//
// A Factory must resolve its dependencies through the container it is
// given, not one captured from the enclosing scope. Only the given one knows
// what is being built, and a dependency cycle through a captured container
// blocks forever instead of failing with [ErrCycle].
//
// # Resolving services
//
// [Container.Get] resolves an identifier through one alias hop and one
// binding hop, then returns the cached instance or builds it. Arguments
// given to Set fill constructor parameters by position; parameters past them
// are auto-wired from their declared type when the container has it, or take
// their default. [Resolve] is the typed form of Get.
//
//	w, err := container.Resolve[*Welcome](c, "Welcome")
//
// # Aliases and removal
//
//	c.Alias("greeting", "Welcome")
//	c.Remove("greeting") // drops the alias only
//	c.Remove("Welcome")  // drops the definition and every alias to it
//
// # Errors
//
// Failures are either a [*NotFoundError] or an [*Error] whose Reason tells a
// duplicate registration, an invalid request, an unresolvable parameter and
// a dependency cycle apart. Match them with errors.Is against [ErrNotFound],
// [ErrAlreadyRegistered], [ErrInvalid], [ErrUnresolvable] and [ErrCycle].
//
// An auto-wired parameter whose dependency is missing or part of a cycle
// fails as unresolvable, naming the parameter. Errors returned while the
// dependency itself is built come back as they were returned.
package container
