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
	"github.com/codesaur-php/container/internal/reflectutil"
	"go.uber.org/zap"
)

// ZapLogger is an event logger that logs events to Zap.
type ZapLogger struct {
	Logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// LogEvent logs the given event to the provided Zap logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Registered:
		fields := []zap.Field{
			zap.String("name", e.Name),
			zap.String("kind", e.Kind),
			zap.String("caller", e.Caller),
		}
		if e.Kind == KindFactory {
			fields = append(fields, zap.String("factory", reflectutil.FuncName(e.Factory)))
		}
		l.Logger.Info("registered", fields...)
	case *Bound:
		l.Logger.Info("bound",
			zap.String("abstract", e.Abstract),
			zap.String("concrete", e.Concrete),
		)
	case *Aliased:
		l.Logger.Info("aliased",
			zap.String("alias", e.Alias),
			zap.String("target", e.Target),
		)
	case *Removed:
		l.Logger.Info("removed", zap.String("name", e.Name))
	case *Resolved:
		if e.Err != nil {
			l.Logger.Error("resolve failed",
				zap.String("name", e.Name),
				zap.String("resolved", e.ResolvedName),
				zap.Error(e.Err),
			)
		} else {
			l.Logger.Info("resolved",
				zap.String("name", e.Name),
				zap.String("resolved", e.ResolvedName),
				zap.String("runtime", e.Runtime.String()),
			)
		}
	case *Closed:
		if e.Err != nil {
			l.Logger.Error("close failed", zap.Error(e.Err))
		} else {
			l.Logger.Info("closed")
		}
	}
}
