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

// Package metrics exports container events as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/codesaur-php/container/event"
	"github.com/prometheus/client_golang/prometheus"
)

const _namespace = "container"

// Logger is an event.Logger that records container activity in Prometheus
// collectors. Combine it with another logger through event.Tee.
type Logger struct {
	registrations *prometheus.CounterVec
	bindings      prometheus.Counter
	aliases       prometheus.Counter
	removals      prometheus.Counter
	resolutions   *prometheus.CounterVec
	construct     prometheus.Histogram
	closes        *prometheus.CounterVec
}

var _ event.Logger = (*Logger)(nil)

// NewLogger creates a Logger and registers its collectors with reg.
func NewLogger(reg prometheus.Registerer) (*Logger, error) {
	l := &Logger{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "registrations_total",
			Help:      "Definitions stored, by kind.",
		}, []string{"kind"}),
		bindings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "bindings_total",
			Help:      "Interface bindings added.",
		}),
		aliases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "aliases_total",
			Help:      "Aliases added.",
		}),
		removals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "removals_total",
			Help:      "Remove calls that deleted something.",
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "constructions_total",
			Help:      "Factory and constructor runs, by result.",
		}, []string{"result"}),
		construct: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: _namespace,
			Name:      "construct_seconds",
			Help:      "Time spent building instances.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		closes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "closes_total",
			Help:      "Close calls, by result.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{
		l.registrations, l.bindings, l.aliases, l.removals,
		l.resolutions, l.construct, l.closes,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register container metrics: %w", err)
		}
	}
	return l, nil
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// LogEvent updates the collector matching e.
func (l *Logger) LogEvent(e event.Event) {
	switch e := e.(type) {
	case *event.Registered:
		l.registrations.WithLabelValues(e.Kind).Inc()
	case *event.Bound:
		l.bindings.Inc()
	case *event.Aliased:
		l.aliases.Inc()
	case *event.Removed:
		l.removals.Inc()
	case *event.Resolved:
		l.resolutions.WithLabelValues(result(e.Err)).Inc()
		l.construct.Observe(e.Runtime.Seconds())
	case *event.Closed:
		l.closes.WithLabelValues(result(e.Err)).Inc()
	}
}
