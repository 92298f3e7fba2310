// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package task

import (
	"context"
	"errors"
	"time"

	"cogentcore.org/mol/logx"
	"cogentcore.org/mol/metrics"
)

// Task is a named unit of cancellable work.
type Task struct {
	Name string
	run  func(c *Context) error
}

// New returns a new [Task].
func New(name string, run func(c *Context) error) *Task {
	return &Task{Name: name, run: run}
}

// RunInContext runs the task as part of an already running one,
// sharing its cancellation and progress rate limiting.
func (t *Task) RunInContext(c *Context) error {
	if err := c.Check(); err != nil {
		return err
	}
	err := t.run(c)
	if err != nil && c != nil && !errors.Is(err, ErrCancelled) && c.ctx.Err() != nil {
		// the work failed because the context went away underneath it
		return c.Check()
	}
	return err
}

// Run runs the task in a fresh [Context].
func (t *Task) Run(ctx context.Context, opts ...Option) error {
	return t.RunInContext(NewContext(ctx, opts...))
}

// Runner runs top level tasks with logging and metrics.
type Runner struct {
	// Metrics is optional.
	Metrics *metrics.Metrics

	// Options are applied to the [Context] of every task.
	Options []Option
}

// Run runs the task and records its outcome.
func (r *Runner) Run(ctx context.Context, t *Task) error {
	start := time.Now()
	logx.Logger().Debug("task started", "task", t.Name)
	opts := append([]Option{WithMetrics(r.Metrics)}, r.Options...)
	err := t.Run(ctx, opts...)
	d := time.Since(start)
	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, ErrCancelled):
		outcome = metrics.OutcomeCancelled
		logx.Logger().Debug("task cancelled", "task", t.Name, "elapsed", d)
	case err != nil:
		outcome = metrics.OutcomeFailed
		logx.Logger().Warn("task failed", "task", t.Name, "err", err)
	default:
		logx.Logger().Debug("task finished", "task", t.Name, "elapsed", d)
	}
	r.Metrics.ObserveTask(t.Name, outcome, d)
	return err
}
