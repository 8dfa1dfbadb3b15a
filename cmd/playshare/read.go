package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "read <share-id>",
		Short: "Resolve a share link and print its encrypted envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			env, err := store.ReadShare(args[0])
			if err != nil {
				return err
			}
			if env == nil {
				return fmt.Errorf("share %s not found", args[0])
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(env)
		},
	}
}
