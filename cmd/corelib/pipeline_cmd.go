package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/scigolib/corelib/pipeline"
)

// newPipelineCmd builds a fixed 3-stage identity pipeline demo matching
// the quiescence scenario in the test suite: per-stage sleeps, four fed
// items, wait for drain.
func newPipelineCmd() *cobra.Command {
	var items int

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Feed items through a fixed 3-stage demo pipeline and wait for quiescence",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipeline.New(pipeline.WithName("cli-demo"))
			sleeps := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}
			for i, sleep := range sleeps {
				stage := i
				delay := sleep
				p.AddStage(func(in any) any {
					time.Sleep(delay)
					printf("stage %d processed %v\n", stage, in)
					return in
				})
			}

			start := time.Now()
			for i := 1; i <= items; i++ {
				p.Feed(i)
			}
			p.WaitEnd()
			printf("drained %d items in %s\n", items, time.Since(start))
			return nil
		},
	}

	cmd.Flags().IntVar(&items, "items", 4, "number of items to feed")
	return cmd
}
