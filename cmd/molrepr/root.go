// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cogentcore.org/mol/config"
	"cogentcore.org/mol/logx"
	"cogentcore.org/mol/metrics"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/repr"
	"cogentcore.org/mol/scene"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app is the state shared by the commands.
type app struct {
	configFile string
	demo       string
	logLevel   string

	out      *termenv.Output
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	config   *config.Config
}

func newRootCmd(w io.Writer) *cobra.Command {
	a := &app{out: termenv.NewOutput(w)}
	root := &cobra.Command{
		Use:          "molrepr",
		Short:        "Build molecular representations of demo structures",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(w)
	root.SetErr(w)
	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "TOML or YAML config file; the default builds a cartoon")
	flags.StringVarP(&a.demo, "demo", "d", "mixed", "demo structure, one of "+strings.Join(structure.DemoNames(), ", "))
	flags.StringVar(&a.logLevel, "log-level", "", "log level, overriding the config")

	root.AddCommand(a.buildCmd(), a.watchCmd(), a.pickCmd())
	return root
}

// setup loads the config and applies its log level.
func (a *app) setup() error {
	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)
	c, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.config = c
	return a.applyLevel(c)
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configFile == "" {
		c := config.Default()
		c.Representations = []config.Representation{{Kind: repr.KindCartoon.String()}}
		return c, nil
	}
	return config.Open(a.configFile)
}

func (a *app) applyLevel(c *config.Config) error {
	if a.logLevel != "" {
		c.LogLevel = a.logLevel
	}
	l, err := c.Level()
	if err != nil {
		return err
	}
	logx.UserLevel.Set(l)
	return nil
}

// newScene returns an unbuilt scene with the representations of c.
func (a *app) newScene(c *config.Config) (*scene.Scene, error) {
	sc := scene.New(&task.Runner{Metrics: a.metrics, Options: c.TaskOptions()})
	for i := range c.Representations {
		r := &c.Representations[i]
		kind, err := repr.ParseKind(r.Kind)
		if err != nil {
			return nil, err
		}
		h, err := repr.New(kind)
		if err != nil {
			return nil, err
		}
		if err := sc.Add(r.Name(), h, r.Props); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// buildScene builds the scene of c for the demo structure.
func (a *app) buildScene(ctx context.Context, c *config.Config) (*scene.Scene, error) {
	st, err := structure.Demo(a.demo)
	if err != nil {
		return nil, err
	}
	sc, err := a.newScene(c)
	if err != nil {
		return nil, err
	}
	if err := sc.Build(ctx, st); err != nil {
		sc.Destroy()
		return nil, err
	}
	return sc, nil
}

func count(ro *renderobject.RenderObject, name string) int {
	if c := renderobject.Get[int](ro.Values, name); c != nil {
		return c.Value()
	}
	return 0
}

// printScene writes one line per render object of every representation.
func (a *app) printScene(sc *scene.Scene) {
	o := a.out
	for _, name := range sc.Names() {
		e, _ := sc.Get(name)
		fmt.Fprintf(o, "%s %s\n", o.String(name).Bold(), o.String(e.Repr.Kind().String()).Faint())
		for i, ro := range e.Repr.RenderObjects() {
			a.printObject(i, ro)
		}
	}
	if bs, ok := sc.BoundingSphere(); ok {
		fmt.Fprintf(o, "bounds center (%.2f, %.2f, %.2f) radius %.2f\n", bs.Center.X, bs.Center.Y, bs.Center.Z, bs.Radius)
	}
}

func (a *app) printObject(index int, ro *renderobject.RenderObject) {
	o := a.out
	kind := o.String(fmt.Sprintf("%-8s", ro.Kind)).Foreground(o.Color("4"))
	draw := count(ro, renderobject.DrawCount)
	dc := o.String(fmt.Sprintf("draw %d", draw))
	if draw == 0 {
		dc = dc.Faint()
	}
	fmt.Fprintf(o, "  %d %s id %d  %s  groups %d  instances %d\n", index, kind, ro.ID, dc,
		count(ro, renderobject.UGroupCount), count(ro, renderobject.UInstanceCount))
}
