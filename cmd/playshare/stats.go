package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show store usage and link counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			st, err := store.Stat()
			if err != nil {
				return err
			}

			fmt.Printf("root:          %s\n", store.Root())
			fmt.Printf("blobs:         %d\n", st.Blobs)
			fmt.Printf("active links:  %d\n", st.ActiveLinks)
			fmt.Printf("revoked links: %d\n", st.RevokedLinks)
			fmt.Printf("used bytes:    %d\n", st.UsedBytes)
			if st.QuotaBytes > 0 {
				line := fmt.Sprintf("quota bytes:   %d", st.QuotaBytes)
				if st.UsedBytes >= st.QuotaBytes {
					line = color.RedString(line + "  (over limit)")
				}
				fmt.Println(line)
			} else {
				fmt.Println("quota bytes:   unlimited")
			}
			return nil
		},
	}
}
