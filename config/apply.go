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

package config

import (
	"github.com/codesaur-php/container"
	"github.com/pkg/errors"
)

// Apply sets every service in cfg on c, then adds its bindings and then
// its aliases. Each group is applied in name order. Apply stops at the
// first error; entries applied before it stay in c.
func Apply(c *container.Container, cfg *Config) error {
	for _, name := range sortedKeys(cfg.Services) {
		args := cfg.Services[name].Args
		if err := c.Set(name, container.Args(args...)); err != nil {
			return errors.Wrapf(err, "service %s", name)
		}
	}
	for _, abstract := range sortedKeys(cfg.Bindings) {
		if err := c.Bind(abstract, cfg.Bindings[abstract]); err != nil {
			return errors.Wrapf(err, "binding %s", abstract)
		}
	}
	for _, alias := range sortedKeys(cfg.Aliases) {
		if err := c.Alias(alias, cfg.Aliases[alias]); err != nil {
			return errors.Wrapf(err, "alias %s", alias)
		}
	}
	return nil
}
