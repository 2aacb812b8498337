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
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// Logger kinds accepted in LoggerConfig.Kind.
const (
	LoggerConsole = "console"
	LoggerZap     = "zap"
	LoggerNop     = "nop"
)

// Config describes a container: how it logs and which services, bindings
// and aliases it starts with.
type Config struct {
	Logger LoggerConfig `yaml:"logger"`

	// Services maps class names to the arguments they are set with.
	Services map[string]ServiceSpec `yaml:"services"`

	// Bindings maps interface names to class names.
	Bindings map[string]string `yaml:"bindings"`

	// Aliases maps alias names to their targets.
	Aliases map[string]string `yaml:"aliases"`
}

// LoggerConfig selects the event logger.
type LoggerConfig struct {
	Kind        string `yaml:"kind"`
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ServiceSpec is the argument list a service is set with. An empty spec
// sets the service with no arguments, leaving every parameter to
// auto-wiring and defaults.
type ServiceSpec struct {
	Args []interface{} `yaml:"args"`
}

// Validate reports every problem with c, not just the first.
func (c *Config) Validate() error {
	var err error

	switch c.Logger.Kind {
	case "", LoggerConsole, LoggerZap, LoggerNop:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown logger kind %q", c.Logger.Kind))
	}
	if c.Logger.Level != "" {
		if _, lerr := zapcore.ParseLevel(c.Logger.Level); lerr != nil {
			err = multierr.Append(err, fmt.Errorf("logger level: %w", lerr))
		}
	}

	for _, name := range sortedKeys(c.Services) {
		if strings.TrimSpace(name) == "" {
			err = multierr.Append(err, fmt.Errorf("service name must not be empty"))
		}
	}
	for _, abstract := range sortedKeys(c.Bindings) {
		if c.Bindings[abstract] == "" {
			err = multierr.Append(err, fmt.Errorf("binding %s has no concrete class", abstract))
		}
	}
	for _, alias := range sortedKeys(c.Aliases) {
		switch target := c.Aliases[alias]; target {
		case "":
			err = multierr.Append(err, fmt.Errorf("alias %s has no target", alias))
		case alias:
			err = multierr.Append(err, fmt.Errorf("alias %s points at itself", alias))
		}
	}
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
