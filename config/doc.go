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

// Package config loads container manifests.
//
// A manifest is YAML naming the event logger and the services, bindings
// and aliases a container starts with:
//
//	logger:
//	  kind: zap
//	  level: debug
//	services:
//	  Calculator:
//	    args: [16, 7]
//	  English: {}
//	bindings:
//	  Greeter: English
//	aliases:
//	  calc: Calculator
//
// Only argument-list services can be declared this way; factories are set
// in code. The classes and interfaces named must already be defined in the
// container's Registry.
//
//	cfg, err := config.Load("container.yaml")
//	if err != nil {
//		return err
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//	log, err := cfg.Logger.NewLogger(os.Stderr)
//	if err != nil {
//		return err
//	}
//	c := container.New(container.WithRegistry(reg), container.WithLogger(log))
//	if err := config.Apply(c, cfg); err != nil {
//		return err
//	}
package config
