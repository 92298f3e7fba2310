// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	cerrors "cogentcore.org/core/base/errors"
	"cogentcore.org/mol/config"
	"cogentcore.org/mol/logx"
	"cogentcore.org/mol/scene"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func (a *app) watchCmd() *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the representations each time the config file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.configFile == "" {
				return errors.New("watch needs a --config file")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if metricsAddr != "" {
				a.serveMetrics(ctx, metricsAddr)
			}
			return a.watch(ctx)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")
	return cmd
}

func (a *app) serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			cerrors.Log(err)
		}
	}()
	go func() {
		<-ctx.Done()
		cerrors.Log(srv.Close())
	}()
	logx.Logger().Info("serving metrics", "addr", addr)
}

// watch builds the scene and then updates or rebuilds it on every
// config change, until ctx is done.
func (a *app) watch(ctx context.Context) error {
	sc, err := a.buildScene(ctx, a.config)
	if err != nil {
		return err
	}
	a.printScene(sc)
	defer func() { sc.Destroy() }()

	return config.Watch(ctx, a.configFile, func(c *config.Config, err error) {
		if err != nil {
			fmt.Fprintf(a.out, "%s %v\n", a.out.String("config error").Foreground(a.out.Color("1")), err)
			return
		}
		if cerrors.Log(a.applyLevel(c)) != nil {
			return
		}
		if sameRepresentations(a.config, c) {
			sc.Runner.Options = c.TaskOptions()
			if cerrors.Log(a.updateScene(ctx, sc, c)) == nil {
				a.config = c
				a.printScene(sc)
			}
			return
		}
		next, err := a.buildScene(ctx, c)
		if cerrors.Log(err) != nil {
			return
		}
		sc.Destroy()
		sc, a.config = next, c
		a.printScene(sc)
	})
}

// sameRepresentations reports whether both configs name the same
// representations of the same kinds in the same order.
func sameRepresentations(a, b *config.Config) bool {
	if len(a.Representations) != len(b.Representations) {
		return false
	}
	for i := range a.Representations {
		ra, rb := &a.Representations[i], &b.Representations[i]
		if ra.Name() != rb.Name() || ra.Kind != rb.Kind {
			return false
		}
	}
	return true
}

// updateScene decodes the new props of every representation onto its
// current props.
func (a *app) updateScene(ctx context.Context, sc *scene.Scene, c *config.Config) error {
	for i := range c.Representations {
		r := &c.Representations[i]
		if _, err := sc.Update(ctx, r.Name(), r.Props); err != nil {
			return err
		}
	}
	return nil
}
