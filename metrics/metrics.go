// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics defines the prometheus collectors for geometry builds.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Task outcomes used as the "outcome" label.
const (
	OutcomeOK        = "ok"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// Metrics holds the build collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// TaskDuration tracks how long named tasks take.
	TaskDuration *prometheus.HistogramVec

	// TaskTotal counts finished tasks by outcome.
	TaskTotal *prometheus.CounterVec

	// Reallocations counts geometry buffer reallocations per geometry kind.
	Reallocations *prometheus.CounterVec
}

// New registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TaskDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mol_task_duration_seconds",
				Help:    "Duration of representation build tasks",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"task"},
		),
		TaskTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mol_task_total",
				Help: "Finished representation build tasks by outcome",
			},
			[]string{"task", "outcome"},
		),
		Reallocations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mol_geometry_reallocations_total",
				Help: "Geometry buffers that had to be reallocated instead of reused",
			},
			[]string{"kind"},
		),
	}
}

// ObserveTask records one finished task.
func (m *Metrics) ObserveTask(name, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.TaskDuration.WithLabelValues(name).Observe(d.Seconds())
	m.TaskTotal.WithLabelValues(name, outcome).Inc()
}

// Reallocated records a buffer reallocation for the geometry kind.
func (m *Metrics) Reallocated(kind string) {
	if m == nil {
		return
	}
	m.Reallocations.WithLabelValues(kind).Inc()
}
