// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package task provides the cooperative execution context that all
// long running builds run in: cancellation, rate limited progress
// reporting and explicit yield points.
package task

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"cogentcore.org/mol/metrics"
)

// ErrCancelled is returned (wrapped together with the context error)
// when the context of a build was cancelled. Committed value cell
// updates of the interrupted build are not rolled back.
var ErrCancelled = errors.New("task: build cancelled")

// DefaultUpdateRate is the minimum interval between two progress reports.
const DefaultUpdateRate = 150 * time.Millisecond

// checkStride is how many loop iterations [Context.Tick] lets pass
// between two clock reads.
const checkStride = 1024

// Progress is a progress report.
type Progress struct {
	Message string
	Current int
	Max     int
	Elapsed time.Duration
}

// IsIndeterminate returns whether the progress has no known maximum.
func (p Progress) IsIndeterminate() bool {
	return p.Max <= 0
}

// String returns the progress formatted for a terminal line.
func (p Progress) String() string {
	if p.IsIndeterminate() {
		return fmt.Sprintf("%s (%dms)", p.Message, p.Elapsed.Milliseconds())
	}
	return fmt.Sprintf("%s %.2f%% (%dms)", p.Message, 100*float64(p.Current)/float64(p.Max), p.Elapsed.Milliseconds())
}

// Context is passed explicitly into every build function.
// It is not safe for concurrent use; independent builds each get
// their own Context. A nil *Context is valid: it is never cancelled
// and reports nothing.
type Context struct {
	ctx      context.Context
	observer func(Progress)
	metrics  *metrics.Metrics
	rate     time.Duration
	now      func() time.Time
	start    time.Time
	last     time.Time
}

// Option configures a [Context].
type Option func(c *Context)

// WithObserver sets the progress observer.
func WithObserver(fn func(Progress)) Option {
	return func(c *Context) { c.observer = fn }
}

// WithUpdateRate sets the minimum interval between progress reports.
func WithUpdateRate(d time.Duration) Option {
	return func(c *Context) { c.rate = d }
}

// WithMetrics sets the collectors that builds running in the
// context report into.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Context) { c.metrics = m }
}

// WithClock replaces the clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Context) { c.now = now }
}

// NewContext returns a new [Context] bound to ctx.
func NewContext(ctx context.Context, opts ...Option) *Context {
	c := &Context{ctx: ctx, rate: DefaultUpdateRate, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	c.start = c.now()
	c.last = c.start
	return c
}

// Background returns a [Context] that is never cancelled and
// reports to nobody.
func Background() *Context {
	return NewContext(context.Background())
}

// Context returns the underlying [context.Context].
func (c *Context) Context() context.Context {
	return c.ctx
}

// Metrics returns the collectors of the context, which may be nil.
// All [metrics.Metrics] methods accept a nil receiver.
func (c *Context) Metrics() *metrics.Metrics {
	if c == nil {
		return nil
	}
	return c.metrics
}

// Check returns an error wrapping [ErrCancelled] if the context was
// cancelled.
func (c *Context) Check() error {
	if c == nil {
		return nil
	}
	if err := c.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}

// ShouldUpdate returns true if the update interval elapsed since the
// last report.
func (c *Context) ShouldUpdate() bool {
	return c.now().Sub(c.last) >= c.rate
}

// Update is a suspension point: it checks for cancellation, reports
// progress to the observer and yields to the scheduler.
func (c *Context) Update(message string, current, max int) error {
	if c == nil {
		return nil
	}
	if err := c.Check(); err != nil {
		return err
	}
	now := c.now()
	c.last = now
	if c.observer != nil {
		c.observer(Progress{Message: message, Current: current, Max: max, Elapsed: now.Sub(c.start)})
	}
	runtime.Gosched()
	return nil
}

// Tick is the per-iteration hook for long loops: every so many
// iterations it reads the clock and calls [Context.Update] when due.
func (c *Context) Tick(message string, current, max int) error {
	if c == nil {
		return nil
	}
	if current%checkStride != 0 || !c.ShouldUpdate() {
		return nil
	}
	return c.Update(message, current, max)
}
