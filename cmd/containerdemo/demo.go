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

package main

import (
	"fmt"
	"io"

	"github.com/codesaur-php/container"
	"github.com/codesaur-php/container/config"
)

var version = "dev"

// BuildInfo names the running binary.
type BuildInfo struct {
	Name    string
	Version string
}

func newBuildInfo() *BuildInfo {
	return &BuildInfo{Name: "containerdemo", Version: version}
}

func (b *BuildInfo) String() string { return b.Name + " " + b.Version }

// Calculator adds numbers.
type Calculator struct{}

// Sum returns a + b.
func (Calculator) Sum(a, b int) int { return a + b }

// Printer writes its text.
type Printer struct{ Text string }

// Print writes the text and a newline to w.
func (p *Printer) Print(w io.Writer) {
	fmt.Fprintln(w, p.Text)
}

// Greeter greets.
type Greeter interface{ Greet() string }

// English is the Greeter bound by default.
type English struct{}

// Greet implements Greeter.
func (*English) Greet() string { return "hello" }

// Welcome greets a name with whichever Greeter the container provides.
type Welcome struct {
	Greeter Greeter
	Name    string
}

func (w *Welcome) String() string {
	return w.Greeter.Greet() + " " + w.Name
}

func newRegistry() *container.Registry {
	return container.NewRegistry().MustDefine(
		container.ClassOf("Calculator", func([]interface{}) (*Calculator, error) {
			return &Calculator{}, nil
		}),
		container.ClassOf("Printer", func(args []interface{}) (*Printer, error) {
			text, err := container.Arg[string](args, 0)
			return &Printer{Text: text}, err
		}, container.Required("text")),
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

// defaultServices is the manifest used without --config.
func defaultServices(cfg *config.Config, text string) {
	cfg.Services = map[string]config.ServiceSpec{
		"Calculator": {},
		"Printer":    {Args: []interface{}{text}},
		"English":    {},
		"Welcome":    {},
	}
	cfg.Bindings = map[string]string{"Greeter": "English"}
	cfg.Aliases = map[string]string{"calc": "Calculator"}
}
