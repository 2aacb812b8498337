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

package event

import (
	"fmt"
	"io"

	"github.com/codesaur-php/container/internal/reflectutil"
)

// ConsoleLogger is an event logger that writes human-readable messages to
// the console.
//
// Use this during development.
type ConsoleLogger struct {
	W io.Writer
}

var _ Logger = (*ConsoleLogger)(nil)

func (l *ConsoleLogger) logf(msg string, args ...interface{}) {
	fmt.Fprintf(l.W, "[Container] "+msg+"\n", args...)
}

// LogEvent logs the given event to the writer.
func (l *ConsoleLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Registered:
		if e.Kind == KindFactory {
			l.logf("SET\t\t%s <= %s", e.Name, reflectutil.FuncName(e.Factory))
		} else {
			l.logf("SET\t\t%s", e.Name)
		}
	case *Bound:
		l.logf("BIND\t\t%s => %s", e.Abstract, e.Concrete)
	case *Aliased:
		l.logf("ALIAS\t\t%s => %s", e.Alias, e.Target)
	case *Removed:
		l.logf("REMOVE\t%s", e.Name)
	case *Resolved:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to resolve %s: %v", e.Name, e.Err)
		} else if e.Name != e.ResolvedName {
			l.logf("GET\t\t%s (as %s) built in %s", e.ResolvedName, e.Name, e.Runtime)
		} else {
			l.logf("GET\t\t%s built in %s", e.Name, e.Runtime)
		}
	case *Closed:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to close cleanly: %v", e.Err)
		} else {
			l.logf("CLOSED")
		}
	}
}
