// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/logx"
	"cogentcore.org/mol/marker"
	"cogentcore.org/mol/metrics"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/repr"
	"cogentcore.org/mol/shape"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func count(ro *renderobject.RenderObject, f marker.Flags) int {
	n := 0
	for _, v := range renderobject.Get[[]uint8](ro.Values, renderobject.TMarker).Value() {
		if marker.Flags(v)&f != 0 {
			n++
		}
	}
	return n
}

func newScene(t *testing.T, runner *task.Runner) (*Scene, *structure.Structure) {
	s, err := structure.Demo("mixed")
	require.NoError(t, err)
	sc := New(runner)
	cartoon, err := repr.New(repr.KindCartoon)
	require.NoError(t, err)
	bs, err := repr.New(repr.KindBallAndStick)
	require.NoError(t, err)
	require.NoError(t, sc.Add("cartoon", cartoon, nil))
	require.NoError(t, sc.Add("bs", bs, map[string]any{"size-factor": 0.2}))
	assert.Error(t, sc.Add("bs", bs, nil))
	return sc, s
}

func TestBuild(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	sc, s := newScene(t, &task.Runner{Metrics: m})
	require.NoError(t, sc.Build(context.Background(), s))
	assert.Same(t, s, sc.Structure())
	assert.Equal(t, []string{"cartoon", "bs"}, sc.Names())
	assert.NotEmpty(t, sc.RenderObjects())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TaskTotal.WithLabelValues("build cartoon", metrics.OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TaskTotal.WithLabelValues("build bs", metrics.OutcomeOK)))

	bsph, ok := sc.BoundingSphere()
	require.True(t, ok)
	assert.Greater(t, bsph.Radius, float32(10))

	e, ok := sc.Get("bs")
	require.True(t, ok)
	p := e.Repr.Props().(repr.BallAndStickProps)
	assert.Equal(t, float32(0.2), p.SizeFactor)

	ok, err := sc.Update(context.Background(), "bs", map[string]any{"alpha": 0.5})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.5, e.Props["alpha"])
	assert.Equal(t, 0.2, e.Props["size-factor"])
	_, err = sc.Update(context.Background(), "nope", nil)
	assert.Error(t, err)

	assert.True(t, sc.Remove("bs"))
	assert.False(t, sc.Remove("bs"))
	assert.Equal(t, []string{"cartoon"}, sc.Names())
}

func TestBuildLogLevel(t *testing.T) {
	prev := logx.Logger()
	t.Cleanup(func() { logx.SetLogger(prev) })
	var buf bytes.Buffer
	level := &slog.LevelVar{}
	logx.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))

	sc, s := newScene(t, nil)
	require.NoError(t, sc.Build(context.Background(), s))
	assert.NotContains(t, buf.String(), "scene built")

	level.Set(slog.LevelDebug)
	require.NoError(t, sc.Build(context.Background(), s))
	assert.Contains(t, buf.String(), "level=DEBUG msg=\"scene built\"")
}

func TestBuildFailure(t *testing.T) {
	sc, s := newScene(t, nil)
	bad, err := repr.New(repr.KindSpacefill)
	require.NoError(t, err)
	require.NoError(t, sc.Add("bad", bad, map[string]any{"color": map[string]any{"name": "no-such-theme"}}))
	assert.Error(t, sc.Build(context.Background(), s))
	assert.Nil(t, sc.Structure())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sc, s = newScene(t, nil)
	assert.ErrorIs(t, sc.Build(ctx, s), task.ErrCancelled)
}

func TestPickAndMark(t *testing.T) {
	sc, s := newScene(t, nil)
	require.NoError(t, sc.Build(context.Background(), s))
	e, _ := sc.Get("bs")
	spheres := e.Repr.RenderObjects()[0]

	l := sc.Pick(renderobject.PickingID{ObjectID: spheres.ID, GroupID: 2})
	el, ok := l.(loci.Elements)
	require.True(t, ok)
	assert.Equal(t, 1, el.Size())
	assert.Equal(t, loci.Empty, sc.Pick(renderobject.PickingID{ObjectID: -1}))

	assert.True(t, sc.Highlight(l))
	assert.Equal(t, 1, count(spheres, marker.Highlighted))
	other := sc.Pick(renderobject.PickingID{ObjectID: spheres.ID, GroupID: 3})
	assert.True(t, sc.Highlight(other))
	assert.Equal(t, 1, count(spheres, marker.Highlighted))
	assert.True(t, sc.Highlight(loci.Empty))
	assert.Equal(t, 0, count(spheres, marker.Highlighted))

	assert.True(t, sc.Select(l))
	assert.True(t, sc.ToggleSelect(other))
	assert.Equal(t, 2, count(spheres, marker.Selected))
	assert.True(t, sc.Deselect(l))
	assert.Equal(t, 1, count(spheres, marker.Selected))
	assert.True(t, sc.ClearSelection())
	assert.Equal(t, 0, count(spheres, marker.Selected))
	assert.False(t, sc.ClearSelection())
}

func TestLabels(t *testing.T) {
	sc, s := newScene(t, nil)
	require.NoError(t, sc.Build(context.Background(), s))
	n := len(sc.RenderObjects())
	e, _ := sc.Get("bs")
	l := sc.Pick(renderobject.PickingID{ObjectID: e.Repr.RenderObjects()[0].ID})

	require.NoError(t, sc.SetLabels(context.Background(), []shape.LabelInfo{{Loci: l}}))
	ros := sc.RenderObjects()
	require.Len(t, ros, n+1)
	ll := sc.Pick(renderobject.PickingID{ObjectID: ros[n].ID})
	assert.Equal(t, loci.Label(l), loci.Label(ll))

	require.NoError(t, sc.SetLabels(context.Background(), nil))
	assert.Len(t, sc.RenderObjects(), n)
}

func TestUnionSphere(t *testing.T) {
	a := math32.Sphere{Center: math32.Vec3(0, 0, 0), Radius: 1}
	b := math32.Sphere{Center: math32.Vec3(4, 0, 0), Radius: 1}
	u := unionSphere(a, b)
	assert.InDelta(t, 3, u.Radius, 1e-5)
	assert.InDelta(t, 2, u.Center.X, 1e-5)
	assert.Equal(t, a, unionSphere(a, math32.Sphere{Center: math32.Vec3(0.1, 0, 0), Radius: 0.5}))
}
