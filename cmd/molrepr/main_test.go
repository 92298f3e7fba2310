// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/mol/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

const sceneYAML = `
progress-rate: 10ms
representations:
  - kind: ball-and-stick
    label: bs
    props:
      size-factor: 0.25
  - kind: cartoon
`

func TestBuild(t *testing.T) {
	out, err := run(t, "build", "--demo", "helix")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "cartoon cartoon\n"), out)
	assert.Contains(t, out, "mesh")
	assert.Contains(t, out, "bounds center")

	out, err = run(t, "build", "-c", writeConfig(t, sceneYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "bs ball-and-stick\n")
	assert.Contains(t, out, "spheres")
	assert.Less(t, strings.Index(out, "bs ball-and-stick"), strings.Index(out, "cartoon cartoon"))

	_, err = run(t, "build", "--demo", "nope")
	assert.Error(t, err)
	_, err = run(t, "build", "--log-level", "loud")
	assert.Error(t, err)
}

func TestPick(t *testing.T) {
	p := writeConfig(t, sceneYAML)
	out, err := run(t, "pick", "-c", p, "--repr", "bs", "--group", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "nothing")

	out, err = run(t, "pick", "-c", p, "--repr", "bs", "--group", "100000")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing")

	out, err = run(t, "pick", "-c", p, "--repr", "bs", "--label")
	require.NoError(t, err)
	assert.Contains(t, out, "text")

	_, err = run(t, "pick", "-c", p, "--repr", "nope")
	assert.Error(t, err)
	_, err = run(t, "pick", "-c", p, "--repr", "bs", "--object", "99")
	assert.Error(t, err)
}

func TestWatchNeedsConfig(t *testing.T) {
	_, err := run(t, "watch")
	assert.Error(t, err)
}

func TestSameRepresentations(t *testing.T) {
	a := &config.Config{Representations: []config.Representation{{Kind: "cartoon"}, {Kind: "point", Label: "p"}}}
	b := &config.Config{Representations: []config.Representation{{Kind: "cartoon", Props: map[string]any{"alpha": 0.5}}, {Kind: "point", Label: "p"}}}
	assert.True(t, sameRepresentations(a, b))
	b.Representations[1].Kind = "line"
	assert.False(t, sameRepresentations(a, b))
	b.Representations = b.Representations[:1]
	assert.False(t, sameRepresentations(a, b))
}
