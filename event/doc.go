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

// Package event defines a means of changing how a container logs internal
// events.
//
// # Changing the Logger
//
// By default a container discards its events. Use the container.WithLogger
// option to install an implementation of the [Logger] interface.
//
//	c := container.New(container.WithLogger(&event.ConsoleLogger{W: os.Stderr}))
//
// If you're using Zap inside your application, you can use the [ZapLogger]
// implementation of the interface.
//
//	log, _ := zap.NewProduction()
//	c := container.New(container.WithLogger(&event.ZapLogger{Logger: log}))
//
// Several loggers can be combined with [Tee].
//
// # Implementing a Custom Logger
//
// To implement a custom logger, you need to implement the [Logger] interface.
// The Logger.LogEvent method accepts an [Event] object.
//
// [Event] is a union type that represents all the different events that a
// container can emit. You can use a type switch to handle each event type.
// See 'event.go' for a list of all the possible events.
//
//	func (l *MyLogger) LogEvent(e event.Event) {
//		switch e := e.(type) {
//		case *event.Resolved:
//			// ...
//		// ...
//		}
//	}
package event
