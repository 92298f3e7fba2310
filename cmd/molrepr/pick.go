// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/shape"
	"github.com/spf13/cobra"
)

func (a *app) pickCmd() *cobra.Command {
	var (
		name     string
		object   int
		instance int
		group    int
		label    bool
	)
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Print what a picking id of a representation points at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.buildScene(cmd.Context(), a.config)
			if err != nil {
				return err
			}
			defer sc.Destroy()
			if name == "" {
				names := sc.Names()
				if len(names) == 0 {
					return fmt.Errorf("no representations configured")
				}
				name = names[0]
			}
			e, ok := sc.Get(name)
			if !ok {
				return fmt.Errorf("no representation %q, have %v", name, sc.Names())
			}
			ros := e.Repr.RenderObjects()
			if object < 0 || object >= len(ros) {
				return fmt.Errorf("representation %q has %d render objects", name, len(ros))
			}
			id := renderobject.PickingID{ObjectID: ros[object].ID, InstanceID: instance, GroupID: group}
			l := sc.Pick(id)
			o := a.out
			if loci.IsEmpty(l) {
				fmt.Fprintf(o, "%s %s\n", id, o.String("nothing").Faint())
				return nil
			}
			fmt.Fprintf(o, "%s %s\n", id, o.String(loci.Label(l)).Bold())
			if !label {
				return nil
			}
			if err := sc.SetLabels(cmd.Context(), []shape.LabelInfo{{Loci: l}}); err != nil {
				return err
			}
			all := sc.RenderObjects()
			a.printObject(len(all)-1, all[len(all)-1])
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&name, "repr", "r", "", "representation name; the default is the first one")
	flags.IntVarP(&object, "object", "o", 0, "index of the render object within the representation")
	flags.IntVarP(&instance, "instance", "i", 0, "instance id")
	flags.IntVarP(&group, "group", "g", 0, "group id")
	flags.BoolVar(&label, "label", false, "add a text label for the picked loci")
	return cmd
}
