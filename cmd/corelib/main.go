// Package main provides a command-line demonstration of the corelib
// subsystems: the ordered map, the point and region quadtrees, and the
// staged pipeline.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/rs/zerolog"

	"github.com/scigolib/corelib/internal/corelog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "corelib",
		Short: "Demonstrates the ordered map, quadtree, and pipeline subsystems",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			corelog.SetDefault(zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger())
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newMapCmd())
	root.AddCommand(newQuadtreeCmd())
	root.AddCommand(newPipelineCmd())
	return root
}

func printf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format, args...)
}
