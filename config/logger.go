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
	"io"

	"github.com/codesaur-php/container/event"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the event logger c selects, writing to w. The console
// logger is the default.
func (c LoggerConfig) NewLogger(w io.Writer) (event.Logger, error) {
	switch c.Kind {
	case "", LoggerConsole:
		return &event.ConsoleLogger{W: w}, nil
	case LoggerNop:
		return event.NopLogger, nil
	case LoggerZap:
		log, err := c.newZap(w)
		if err != nil {
			return nil, err
		}
		return &event.ZapLogger{Logger: log}, nil
	default:
		return nil, errors.Errorf("unknown logger kind %q", c.Kind)
	}
}

func (c LoggerConfig) newZap(w io.Writer) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(c.Level); err != nil {
			return nil, errors.Wrap(err, "logger level")
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	var opts []zap.Option
	if c.Development {
		encCfg = zap.NewDevelopmentEncoderConfig()
		opts = append(opts, zap.Development())
	}

	var enc zapcore.Encoder
	if c.Development {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core, opts...), nil
}
