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
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	_defaultEnvPrefix = "CONTAINER"

	_logger         = "_LOGGER"
	_logLevel       = "_LOG_LEVEL"
	_logDevelopment = "_LOG_DEVELOPMENT"
)

type lookUpFunc func(string) (string, bool)

// Loader reads a Config from YAML files and the environment.
//
// ${VAR} references in the YAML are expanded before decoding. After the
// files are decoded, PREFIX_LOGGER, PREFIX_LOG_LEVEL and
// PREFIX_LOG_DEVELOPMENT override the logger section.
type Loader struct {
	// EnvPrefix prefixes the override variables. Defaults to CONTAINER.
	EnvPrefix string

	// EnvFiles are dotenv files consulted after the process environment.
	// Variables already set in the process win, as with godotenv.Load.
	EnvFiles []string

	lookUp lookUpFunc
}

// DefaultLoader is used by Load.
var DefaultLoader = &Loader{EnvPrefix: _defaultEnvPrefix}

// Load reads paths with DefaultLoader.
func Load(paths ...string) (*Config, error) {
	return DefaultLoader.Load(paths...)
}

// Load decodes paths in order into a single Config. Later files override
// the keys of earlier ones. Unknown fields are an error.
func (l *Loader) Load(paths ...string) (*Config, error) {
	lookUp, err := l.environment()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := decode(cfg, raw, lookUp); err != nil {
			return nil, errors.Wrapf(err, "decode config %s", path)
		}
	}

	if err := l.override(cfg, lookUp); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) environment() (lookUpFunc, error) {
	base := l.lookUp
	if base == nil {
		base = os.LookupEnv
	}
	if len(l.EnvFiles) == 0 {
		return base, nil
	}

	vars, err := godotenv.Read(l.EnvFiles...)
	if err != nil {
		return nil, errors.Wrap(err, "read env files")
	}
	return func(key string) (string, bool) {
		if v, ok := base(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, nil
}

func decode(cfg *Config, raw []byte, lookUp lookUpFunc) error {
	expanded := os.Expand(string(raw), func(key string) string {
		v, _ := lookUp(key)
		return v
	})

	dec := yaml.NewDecoder(bytes.NewBufferString(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (l *Loader) override(cfg *Config, lookUp lookUpFunc) error {
	prefix := l.EnvPrefix
	if prefix == "" {
		prefix = _defaultEnvPrefix
	}

	if v, ok := lookUp(prefix + _logger); ok {
		cfg.Logger.Kind = v
	}
	if v, ok := lookUp(prefix + _logLevel); ok {
		cfg.Logger.Level = v
	}
	if v, ok := lookUp(prefix + _logDevelopment); ok {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "parse %s", prefix+_logDevelopment)
		}
		cfg.Logger.Development = dev
	}
	return nil
}
