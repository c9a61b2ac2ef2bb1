package main

import (
	"iter"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scigolib/corelib/ordermap"
)

// newMapCmd builds a demo over the ordered map: feed it a comma-separated
// list of integers and print the resulting in-order (or, with --reverse,
// reverse-order) traversal, plus its size and height.
func newMapCmd() *cobra.Command {
	var keysFlag string
	var reverse bool

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Insert a list of integer keys into the ordered map and print it in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := ordermap.New[int, int]()
			for _, raw := range strings.Split(keysFlag, ",") {
				raw = strings.TrimSpace(raw)
				if raw == "" {
					continue
				}
				k, err := strconv.Atoi(raw)
				if err != nil {
					return err
				}
				tr.Insert(k, k)
			}

			printf("size=%d height=%d\n", tr.Size(), tr.Height())

			var seq iter.Seq2[int, int]
			if reverse {
				seq = tr.Reverse()
			} else {
				seq = tr.All()
			}
			var keys []string
			for k := range seq {
				keys = append(keys, strconv.Itoa(k))
			}
			printf("%s\n", strings.Join(keys, " "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&keysFlag, "keys", "k", "10,5,15,3,7,12,20", "comma-separated integer keys to insert")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "print in descending order")
	return cmd
}
