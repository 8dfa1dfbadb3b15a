package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newGCCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Sweep blobs no active link references",
		Long: "Removes orphan blobs left behind by crashes between blob and link\n" +
			"writes, or by garbage collection runs that failed after a revoke.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			collected, err := store.CollectOrphans()
			for _, h := range collected {
				fmt.Println(color.HiBlackString("collected %s", h))
			}
			if err != nil {
				return err
			}
			fmt.Printf("%d blob(s) collected\n", len(collected))
			return nil
		},
	}
}
