// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"
)

func (a *app) buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the configured representations and print their render objects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.buildScene(cmd.Context(), a.config)
			if err != nil {
				return err
			}
			defer sc.Destroy()
			a.printScene(sc)
			return nil
		},
	}
}
