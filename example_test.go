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

package container_test

import (
	"errors"
	"fmt"

	"github.com/codesaur-php/container"
)

// Types used in examples only.
type Printer struct{ Text string }

func (p *Printer) Print() { fmt.Println(p.Text) }

type Calculator struct{}

func (Calculator) Sum(a, b int) int { return a + b }

type Greeter interface{ Greet() string }

type English struct{}

func (*English) Greet() string { return "hello" }

type Welcome struct {
	Greeter Greeter
	Name    string
}

func exampleRegistry() *container.Registry {
	return container.NewRegistry().MustDefine(
		container.ClassOf("Printer", func(args []interface{}) (*Printer, error) {
			text, err := container.Arg[string](args, 0)
			return &Printer{Text: text}, err
		}, container.Required("text")),
		container.ClassOf("Calculator", func([]interface{}) (*Calculator, error) {
			return &Calculator{}, nil
		}),
		container.InterfaceOf[Greeter]("Greeter"),
		container.ClassOf("English", func([]interface{}) (*English, error) {
			return &English{}, nil
		}),
		container.ClassOf("Welcome", func(args []interface{}) (*Welcome, error) {
			g, err := container.Arg[Greeter](args, 0)
			if err != nil {
				return nil, err
			}
			name, err := container.Arg[string](args, 1)
			return &Welcome{Greeter: g, Name: name}, err
		}, container.Typed("greeter", "Greeter"), container.Value("name", "world")),
	)
}

func Example() {
	c := container.New(container.WithRegistry(exampleRegistry()))
	if err := c.Set("Printer", container.Args("hello")); err != nil {
		panic(err)
	}
	if err := c.Set("Calculator", nil); err != nil {
		panic(err)
	}

	calc, err := container.Resolve[*Calculator](c, "Calculator")
	if err != nil {
		panic(err)
	}
	fmt.Printf("%d + %d = %d\n", 16, 7, calc.Sum(16, 7))

	printer, err := container.Resolve[*Printer](c, "Printer")
	if err != nil {
		panic(err)
	}
	printer.Print()
	// Output:
	// 16 + 7 = 23
	// hello
}

func ExampleContainer_Bind() {
	c := container.New(container.WithRegistry(exampleRegistry()))
	_ = c.Set("English", nil)
	_ = c.Bind("Greeter", "English")
	_ = c.Set("Welcome", nil)

	w, _ := container.Resolve[*Welcome](c, "Welcome")
	fmt.Println(w.Greeter.Greet(), w.Name)
	// Output: hello world
}

func ExampleContainer_Alias() {
	c := container.New(container.WithRegistry(exampleRegistry()))
	_ = c.Set("Calculator", nil)
	_ = c.Alias("calc", "Calculator")

	a, _ := c.Get("calc")
	b, _ := c.Get("Calculator")
	fmt.Println(a == b)

	c.Remove("calc")
	fmt.Println(c.Has("calc"), c.Has("Calculator"))
	// Output:
	// true
	// false true
}

func ExampleFactory() {
	c := container.New()
	_ = c.Set("config", container.Factory(func(*container.Container) (interface{}, error) {
		return map[string]string{"env": "test"}, nil
	}))
	_ = c.Set("env", container.Factory(func(c *container.Container) (interface{}, error) {
		cfg, err := container.Resolve[map[string]string](c, "config")
		if err != nil {
			return nil, err
		}
		return cfg["env"], nil
	}))

	env, _ := container.Resolve[string](c, "env")
	fmt.Println(env)
	// Output: test
}

func ExampleNotFoundError() {
	c := container.New()

	_, err := c.Get("missing")
	fmt.Println(err)
	fmt.Println(errors.Is(err, container.ErrNotFound))

	err = c.Set("missing", nil)
	fmt.Println(err)
	// Output:
	// entry not found: missing
	// true
	// missing class does not exist
}
