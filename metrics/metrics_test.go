// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveTask("cartoon", OutcomeOK, 10*time.Millisecond)
	m.ObserveTask("cartoon", OutcomeCancelled, time.Millisecond)
	m.ObserveTask("cartoon", OutcomeOK, time.Millisecond)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TaskTotal.WithLabelValues("cartoon", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TaskTotal.WithLabelValues("cartoon", OutcomeCancelled)))

	m.Reallocated("mesh")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reallocations.WithLabelValues("mesh")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveTask("x", OutcomeFailed, 0)
	m.Reallocated("points")
}
