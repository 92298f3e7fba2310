// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"cogentcore.org/mol/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func TestUpdateRateLimit(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	var reports []Progress
	c := NewContext(context.Background(), WithClock(clk.now), WithUpdateRate(100*time.Millisecond),
		WithObserver(func(p Progress) { reports = append(reports, p) }))

	for i := 0; i < 10*checkStride; i++ {
		require.NoError(t, c.Tick("colors", i, 10*checkStride))
	}
	assert.Empty(t, reports, "clock did not move")

	clk.t = clk.t.Add(150 * time.Millisecond)
	require.NoError(t, c.Tick("colors", checkStride, 10*checkStride))
	require.NoError(t, c.Tick("colors", 2*checkStride, 10*checkStride))
	require.Len(t, reports, 1)
	assert.Equal(t, checkStride, reports[0].Current)
	assert.Equal(t, 150*time.Millisecond, reports[0].Elapsed)

	clk.t = clk.t.Add(100 * time.Millisecond)
	require.NoError(t, c.Tick("colors", 3*checkStride, 10*checkStride))
	assert.Len(t, reports, 2)
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewContext(ctx, WithUpdateRate(0))
	assert.NoError(t, c.Check())
	cancel()
	err := c.Update("mesh", 1, 2)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunInContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := NewContext(ctx)
	var order []string
	outer := New("outer", func(c *Context) error {
		order = append(order, "outer")
		return New("inner", func(c *Context) error {
			order = append(order, "inner")
			return nil
		}).RunInContext(c)
	})
	require.NoError(t, outer.RunInContext(c))
	assert.Equal(t, []string{"outer", "inner"}, order)

	cancel()
	ran := false
	err := New("late", func(c *Context) error { ran = true; return nil }).RunInContext(c)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.False(t, ran)
}

func TestRunnerOutcome(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := &Runner{Metrics: m}
	require.NoError(t, r.Run(context.Background(), New("ok", func(c *Context) error { return nil })))

	boom := errors.New("boom")
	assert.ErrorIs(t, r.Run(context.Background(), New("bad", func(c *Context) error { return boom })), boom)

	ctx, cancel := context.WithCancel(context.Background())
	err := r.Run(ctx, New("slow", func(c *Context) error {
		cancel()
		return c.Update("slow", 0, 1)
	}))
	assert.ErrorIs(t, err, ErrCancelled)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TaskTotal.WithLabelValues("ok", metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TaskTotal.WithLabelValues("bad", metrics.OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TaskTotal.WithLabelValues("slow", metrics.OutcomeCancelled)))
}

func TestProgressString(t *testing.T) {
	p := Progress{Message: "sizes", Current: 1, Max: 4, Elapsed: 20 * time.Millisecond}
	assert.Equal(t, "sizes 25.00% (20ms)", p.String())
	assert.Equal(t, "sizes (20ms)", Progress{Message: "sizes", Elapsed: 20 * time.Millisecond}.String())
}
