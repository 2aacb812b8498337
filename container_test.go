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

package container

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codesaur-php/container/event"
	"github.com/codesaur-php/container/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	t.Parallel()

	t.Run("arguments need a class", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)

		err := c.Set("Nope", Args())
		require.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "Nope class does not exist")

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Nope", nf.Name)
	})

	t.Run("nil definition is an empty argument list", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)

		mustSet(t, c, "Calculator", nil)
		assert.True(t, c.Has("Calculator"))
	})

	t.Run("duplicate arguments", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Calculator", nil)

		err := c.Set("Calculator", Args())
		require.ErrorIs(t, err, ErrAlreadyRegistered)
		assert.ErrorIs(t, err, ErrContainer)
		assert.EqualError(t, err, "container already contains entry named [Calculator]")
	})

	t.Run("factory under any identifier", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)

		mustSet(t, c, "svc", Factory(func(*Container) (interface{}, error) { return 1, nil }))
		assert.True(t, c.Has("svc"))
	})

	t.Run("duplicate factory", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		f := Factory(func(*Container) (interface{}, error) { return 1, nil })
		mustSet(t, c, "svc", f)

		assert.ErrorIs(t, c.Set("svc", f), ErrAlreadyRegistered)
	})

	t.Run("factory under a used alias", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Calculator", nil)
		require.NoError(t, c.Alias("calc", "Calculator"))

		err := c.Set("calc", Factory(func(*Container) (interface{}, error) { return 1, nil }))
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("nil factory", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)

		assert.ErrorIs(t, c.Set("svc", Factory(nil)), ErrInvalid)
		assert.False(t, c.Has("svc"))
	})

	t.Run("arguments are copied", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		args := Args("hello")
		mustSet(t, c, "Printer", args)
		args[0] = "changed"

		p, err := Resolve[*printer](c, "Printer")
		require.NoError(t, err)
		assert.Equal(t, "hello", p.Text)
	})
}

func TestHas(t *testing.T) {
	t.Parallel()

	c, _ := newTestContainer(t)
	assert.False(t, c.Has("Calculator"))

	mustSet(t, c, "Calculator", nil)
	assert.True(t, c.Has("Calculator"))

	require.NoError(t, c.Bind("Greeter", "English"))
	assert.False(t, c.Has("Greeter"), "binding without a definition for the concrete")

	mustSet(t, c, "English", nil)
	assert.True(t, c.Has("Greeter"))

	require.NoError(t, c.Alias("hello", "Greeter"))
	assert.True(t, c.Has("hello"))
}

func TestBind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		abstract string
		concrete string
		wantErr  error
		wantMsg  string
	}{
		{"unknown abstract", "Nope", "English", ErrNotFound, "Nope interface does not exist"},
		{"abstract is a class", "English", "English", ErrNotFound, "English interface does not exist"},
		{"unknown concrete", "Greeter", "Nope", ErrNotFound, "Nope class does not exist"},
		{"does not implement", "Greeter", "Shouter", ErrInvalid, "Shouter does not implement Greeter"},
		{"valid", "Greeter", "English", nil, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, _ := newTestContainer(t)

			err := c.Bind(tt.abstract, tt.concrete)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}

	t.Run("already bound", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		require.NoError(t, c.Bind("Greeter", "English"))

		err := c.Bind("Greeter", "English")
		require.ErrorIs(t, err, ErrAlreadyRegistered)
		assert.EqualError(t, err, "Greeter is already bound to English")
	})

	t.Run("get through binding", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		require.NoError(t, c.Bind("Greeter", "English"))
		mustSet(t, c, "English", nil)

		g, err := c.Get("Greeter")
		require.NoError(t, err)
		require.IsType(t, &english{}, g)
		assert.Equal(t, "hello", g.(greeter).Greet())

		concrete, err := c.Get("English")
		require.NoError(t, err)
		assert.Same(t, g, concrete)
	})

	t.Run("not found names the requested identifier", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		require.NoError(t, c.Bind("Greeter", "English"))

		_, err := c.Get("Greeter")
		require.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "entry not found: Greeter")
	})
}

func TestAlias(t *testing.T) {
	t.Parallel()

	t.Run("transparent", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Counted", nil)
		require.NoError(t, c.Alias("counter", "Counted"))

		a, err := c.Get("counter")
		require.NoError(t, err)
		b, err := c.Get("Counted")
		require.NoError(t, err)
		assert.Same(t, a, b)
	})

	t.Run("unknown target", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)

		err := c.Alias("counter", "Counted")
		require.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "alias target Counted not found")
	})

	t.Run("alias already used", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Counted", nil)
		mustSet(t, c, "Calculator", nil)
		require.NoError(t, c.Alias("x", "Counted"))

		assert.ErrorIs(t, c.Alias("x", "Calculator"), ErrAlreadyRegistered)
		assert.ErrorIs(t, c.Alias("Calculator", "Counted"), ErrAlreadyRegistered)
	})

	t.Run("self alias", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Counted", nil)

		err := c.Alias("Counted", "Counted")
		require.ErrorIs(t, err, ErrInvalid)
		assert.EqualError(t, err, "[Counted] is aliased to itself")
	})

	t.Run("self alias through binding", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "English", nil)
		require.NoError(t, c.Bind("Greeter", "English"))

		assert.ErrorIs(t, c.Alias("English", "Greeter"), ErrInvalid)
	})

	t.Run("alias of alias points at the canonical name", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Counted", nil)
		require.NoError(t, c.Alias("a", "Counted"))
		require.NoError(t, c.Alias("b", "a"))

		c.Remove("a")
		assert.True(t, c.Has("b"))

		v, err := c.Get("b")
		require.NoError(t, err)
		assert.IsType(t, &counted{}, v)
	})
}

func TestLazySingleton(t *testing.T) {
	t.Parallel()

	c, builds := newTestContainer(t)
	mustSet(t, c, "Counted", nil)
	assert.Zero(t, atomic.LoadInt64(builds), "Set must not construct")

	first, err := c.Get("Counted")
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(builds))

	second, err := c.Get("Counted")
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(builds))
	assert.Same(t, first, second)
}

func TestGetConcurrentFirstAccess(t *testing.T) {
	t.Parallel()

	c, _ := newTestContainer(t)
	var calls int64
	mustSet(t, c, "slow", Factory(func(*Container) (interface{}, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return &counted{}, nil
	}))
	require.NoError(t, c.Alias("slow-alias", "slow"))

	const n = 32
	results := make([]interface{}, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "slow"
			if i%2 == 1 {
				name = "slow-alias"
			}
			v, err := c.Get(name)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
	for _, r := range results[1:] {
		assert.Same(t, results[0], r)
	}
}

func TestFactory(t *testing.T) {
	t.Parallel()

	t.Run("receives the container", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Calculator", nil)
		mustSet(t, c, "total", Factory(func(c *Container) (interface{}, error) {
			calc, err := Resolve[calculator](c, "Calculator")
			if err != nil {
				return nil, err
			}
			return calc.Sum(2, 3), nil
		}))

		v, err := Resolve[int](c, "total")
		require.NoError(t, err)
		assert.Equal(t, 5, v)
	})

	t.Run("error propagates unchanged", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		boom := errors.New("great sadness")
		mustSet(t, c, "svc", Factory(func(*Container) (interface{}, error) {
			return nil, boom
		}))

		_, err := c.Get("svc")
		assert.Same(t, boom, err)
		assert.NotErrorIs(t, err, ErrNotFound)

		_, err = c.Get("svc")
		assert.Same(t, boom, err, "failed builds are not cached")
	})

	t.Run("cycle", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "a", Factory(func(c *Container) (interface{}, error) { return c.Get("b") }))
		mustSet(t, c, "b", Factory(func(c *Container) (interface{}, error) { return c.Get("a") }))

		_, err := c.Get("a")
		require.ErrorIs(t, err, ErrCycle)
		assert.EqualError(t, err, "dependency cycle detected: a -> b -> a")
	})
}

func TestAutowire(t *testing.T) {
	t.Parallel()

	t.Run("supplied arguments fill parameters first", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "English", nil)
		require.NoError(t, c.Bind("Greeter", "English"))
		mustSet(t, c, "Welcome", Args("hi"))

		w, err := Resolve[*welcome](c, "Welcome")
		require.NoError(t, err)
		assert.Equal(t, "hi", w.Text)
		require.NotNil(t, w.Greeter)

		g, err := c.Get("Greeter")
		require.NoError(t, err)
		assert.Same(t, g, w.Greeter)
	})

	t.Run("supplied arguments win over auto-wiring", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "English", nil)
		require.NoError(t, c.Bind("Greeter", "English"))
		custom := &english{lang: "custom"}
		mustSet(t, c, "Welcome", Args("hi", custom))

		w, err := Resolve[*welcome](c, "Welcome")
		require.NoError(t, err)
		assert.Same(t, custom, w.Greeter)
	})

	t.Run("unresolvable parameter", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Printer", nil)

		_, err := c.Get("Printer")
		require.ErrorIs(t, err, ErrUnresolvable)
		assert.EqualError(t, err, "unable to resolve parameter text of Printer")
	})

	t.Run("unbound interface is unresolvable", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Welcome", Args("hi"))

		_, err := c.Get("Welcome")
		require.ErrorIs(t, err, ErrUnresolvable)
		assert.EqualError(t, err, "unable to resolve parameter greeter (Greeter) of Welcome")
	})

	t.Run("default value", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry().MustDefine(
			InterfaceOf[greeter]("Greeter"),
			ClassOf("Welcome", func(args []interface{}) (*welcome, error) {
				text, err := Arg[string](args, 0)
				if err != nil {
					return nil, err
				}
				g, err := Arg[greeter](args, 1)
				return &welcome{Text: text, Greeter: g}, err
			}, Value("text", "howdy"), Typed("greeter", "Greeter").Optional(nil)),
		)
		c := New(WithRegistry(reg))
		mustSet(t, c, "Welcome", nil)

		w, err := Resolve[*welcome](c, "Welcome")
		require.NoError(t, err)
		assert.Equal(t, "howdy", w.Text)
		assert.Nil(t, w.Greeter)
	})

	t.Run("constructor error propagates unchanged", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Printer", Args(42))

		_, err := c.Get("Printer")
		require.ErrorIs(t, err, ErrInvalid)
		assert.EqualError(t, err, "argument 0 is int, not string")
	})

	t.Run("dependency factory error propagates unchanged", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		var depErr error
		mustSet(t, c, "Dependency", Factory(func(c *Container) (interface{}, error) {
			_, depErr = c.Get("missing")
			return nil, depErr
		}))
		mustSet(t, c, "Service", nil)

		_, err := c.Get("Service")
		require.Error(t, depErr)
		assert.Same(t, depErr, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrUnresolvable)
		assert.EqualError(t, err, "entry not found: missing")
	})

	t.Run("dependency constructor error propagates unchanged", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Printer", Args(42))
		require.NoError(t, c.Alias("Dependency", "Printer"))
		mustSet(t, c, "Service", nil)

		_, err := c.Get("Service")
		require.ErrorIs(t, err, ErrInvalid)
		assert.NotErrorIs(t, err, ErrUnresolvable)
		assert.EqualError(t, err, "argument 0 is int, not string")
	})

	t.Run("dependency resolved by type", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Dependency", Factory(func(*Container) (interface{}, error) {
			return "dep", nil
		}))
		mustSet(t, c, "Service", nil)

		svc, err := Resolve[*service](c, "Service")
		require.NoError(t, err)
		assert.Equal(t, "dep", svc.Dep)
	})

	t.Run("cycle", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "CycleA", nil)
		mustSet(t, c, "CycleB", nil)

		_, err := c.Get("CycleA")
		require.ErrorIs(t, err, ErrCycle)
		assert.ErrorIs(t, err, ErrUnresolvable)
		assert.Contains(t, err.Error(), "CycleA -> CycleB -> CycleA")
	})
}

func TestRemove(t *testing.T) {
	t.Parallel()

	t.Run("alias only", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "Counted", nil)
		require.NoError(t, c.Alias("counter", "Counted"))
		before, err := c.Get("counter")
		require.NoError(t, err)

		c.Remove("counter")
		assert.False(t, c.Has("counter"))
		assert.True(t, c.Has("Counted"))

		after, err := c.Get("Counted")
		require.NoError(t, err)
		assert.Same(t, before, after)
	})

	t.Run("binding only", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "English", nil)
		require.NoError(t, c.Bind("Greeter", "English"))
		_, err := c.Get("Greeter")
		require.NoError(t, err)

		c.Remove("Greeter")
		assert.False(t, c.Has("Greeter"))
		assert.True(t, c.Has("English"))
		require.NoError(t, c.Bind("Greeter", "English"), "binding can be added again")
	})

	t.Run("rebinding after a cached lookup", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "English", nil)
		require.NoError(t, c.Bind("Greeter", "English"))
		before, err := Resolve[greeter](c, "Greeter")
		require.NoError(t, err)
		require.Equal(t, "hello", before.Greet())

		c.Remove("Greeter")
		require.NoError(t, c.Bind("Greeter", "Spanish"))
		assert.False(t, c.Has("Greeter"), "binding target is not set yet")
		mustSet(t, c, "Spanish", nil)

		after, err := Resolve[greeter](c, "Greeter")
		require.NoError(t, err)
		assert.Equal(t, "hola", after.Greet())

		en, err := c.Get("English")
		require.NoError(t, err)
		assert.Same(t, before, en)
	})

	t.Run("replaced while building", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)
		mustSet(t, c, "svc", Factory(func(c *Container) (interface{}, error) {
			c.Remove("svc")
			if err := c.Set("svc", Factory(func(*Container) (interface{}, error) {
				return "second", nil
			})); err != nil {
				return nil, err
			}
			return "first", nil
		}))

		v, err := c.Get("svc")
		require.NoError(t, err)
		assert.Equal(t, "first", v)

		v, err = c.Get("svc")
		require.NoError(t, err)
		assert.Equal(t, "second", v, "instance of a replaced definition is not cached")
	})

	t.Run("definition and its aliases", func(t *testing.T) {
		t.Parallel()
		c, builds := newTestContainer(t)
		mustSet(t, c, "Counted", nil)
		require.NoError(t, c.Alias("a", "Counted"))
		require.NoError(t, c.Alias("b", "Counted"))
		_, err := c.Get("a")
		require.NoError(t, err)

		c.Remove("Counted")
		for _, name := range []string{"Counted", "a", "b"} {
			assert.False(t, c.Has(name), name)
		}
		assert.Empty(t, c.Names())

		mustSet(t, c, "Counted", nil)
		v, err := Resolve[*counted](c, "Counted")
		require.NoError(t, err)
		assert.Equal(t, int64(2), v.ID, "removed instance must not be reused")
		assert.Equal(t, int64(2), atomic.LoadInt64(builds))
	})

	t.Run("unknown identifier", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContainer(t)

		assert.NotPanics(t, func() { c.Remove("nope") })
		assert.False(t, c.Has("nope"))
	})
}

type closeRecorder struct {
	name  string
	order *[]string
	err   error
}

func (r *closeRecorder) Close() error {
	*r.order = append(*r.order, r.name)
	return r.err
}

func TestClose(t *testing.T) {
	t.Parallel()

	var order []string
	c := New()
	for _, name := range []string{"first", "second", "third"} {
		name := name
		var err error
		if name != "second" {
			err = errors.New(name + " failed")
		}
		mustSet(t, c, name, Factory(func(*Container) (interface{}, error) {
			return &closeRecorder{name: name, order: &order, err: err}, nil
		}))
	}
	mustSet(t, c, "plain", Factory(func(*Container) (interface{}, error) { return 1, nil }))
	require.NoError(t, c.Alias("alias", "first"))

	for _, name := range []string{"alias", "plain", "second", "third"} {
		_, err := c.Get(name)
		require.NoError(t, err)
	}

	err := c.Close()
	require.Error(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, order, "each instance closed once, newest first")
	assert.EqualError(t, err, "close third: third failed; close first: first failed")

	order = nil
	require.NoError(t, c.Close(), "cache is empty after Close")
	assert.Empty(t, order)
	assert.True(t, c.Has("first"), "definitions survive Close")
}

func TestNames(t *testing.T) {
	t.Parallel()

	c, _ := newTestContainer(t)
	mustSet(t, c, "Printer", Args("x"))
	mustSet(t, c, "Calculator", nil)
	require.NoError(t, c.Alias("calc", "Calculator"))

	assert.Equal(t, []string{"Calculator", "Printer"}, c.Names())
}

func TestResolveTypeMismatch(t *testing.T) {
	t.Parallel()

	c, _ := newTestContainer(t)
	mustSet(t, c, "Calculator", nil)

	_, err := Resolve[*printer](c, "Calculator")
	require.ErrorIs(t, err, ErrInvalid)
	assert.EqualError(t, err, "Calculator resolved to container.calculator, not *container.printer")

	assert.Panics(t, func() { c.MustGet("nope") })
}

type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *eventRecorder) LogEvent(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestResolvedEventRuntime(t *testing.T) {
	t.Parallel()

	mock := clock.NewMock()
	rec := &eventRecorder{}
	c, _ := newTestContainer(t, WithLogger(rec), withClock(mock))
	mustSet(t, c, "svc", Factory(func(*Container) (interface{}, error) {
		mock.Add(3 * time.Millisecond)
		return 1, nil
	}))
	require.NoError(t, c.Alias("alias", "svc"))

	_, err := c.Get("alias")
	require.NoError(t, err)
	_, err = c.Get("svc")
	require.NoError(t, err)

	require.Len(t, rec.events, 3)
	assert.IsType(t, &event.Registered{}, rec.events[0])
	assert.IsType(t, &event.Aliased{}, rec.events[1])
	assert.Equal(t, &event.Resolved{
		Name:         "alias",
		ResolvedName: "svc",
		Runtime:      3 * time.Millisecond,
	}, rec.events[2])
}
