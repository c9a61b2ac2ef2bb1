package main

import (
	"github.com/spf13/cobra"

	"github.com/scigolib/corelib/quadtree"
)

// newQuadtreeCmd builds a fixed demo of both quadtree variants: a point
// quadtree holding two inserted points, printed via Dump, and a region
// quadtree whose whole area is filled with SetRegion (and so merges back
// to a single leaf), printed via Grid.
func newQuadtreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quadtree",
		Short: "Run a fixed point-quadtree and region-quadtree demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			pt := quadtree.New[string](0, 0, 20, 20, "")
			pt.Insert(5, 5, "a")
			pt.Insert(3, 3, "b")
			printf("point quadtree: size=%d depth=%d\n", pt.Size(), pt.Depth())
			printf("%s\n", pt.Dump())

			region := quadtree.NewRegion(0, 0, 4, 4)
			square := []quadtree.Point{{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}}
			region.SetRegion(square)
			printf("region quadtree: size=%d depth=%d\n", region.Size(), region.Depth())
			printf("%s\n", region.Grid())
			return nil
		},
	}
	return cmd
}
