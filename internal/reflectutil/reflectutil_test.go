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

package reflectutil

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaller(t *testing.T) {
	assert.Equal(t, "github.com/codesaur-php/container/internal/reflectutil.TestCaller", Caller())
}

func someFunc() {}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "github.com/codesaur-php/container/internal/reflectutil.someFunc()", FuncName(someFunc))
	assert.Equal(t, "n/a", FuncName(struct{}{}))

	var nilFunc func()
	assert.Equal(t, "n/a", FuncName(nilFunc))
}

func TestShouldIgnoreFrame(t *testing.T) {
	tests := []struct {
		name     string
		function string
		file     string
		want     bool
	}{
		{"test file", modulePath + ".TestX", "/src/container_test.go", false},
		{"module code", modulePath + ".(*Container).Set", "/src/container.go", true},
		{"module subpackage", modulePath + "/config.Apply", "/src/config/apply.go", true},
		{"runtime", "runtime.goexit", "/go/src/runtime/asm.s", true},
		{"user code", "main.main", "/app/main.go", false},
		{"similar prefix", modulePath + "x.Do", "/src/x.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := frame(tt.function, tt.file)
			assert.Equal(t, tt.want, shouldIgnoreFrame(f))
		})
	}
}

func frame(function, file string) runtime.Frame {
	return runtime.Frame{Function: function, File: file}
}
