package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/playshareorg/libplayshare-go/share"
)

func newRevokeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <share-id> <edit-token>",
		Short: "Revoke a share using its edit token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := store.RevokeShare(args[0], args[1])
			if err != nil {
				return err
			}

			switch result {
			case share.RevokeOk:
				fmt.Println(color.GreenString("revoked"))
				return nil
			case share.RevokeAlreadyRevoked:
				fmt.Println(color.YellowString("already revoked"))
				return nil
			default:
				return fmt.Errorf("revoke failed: %s", result)
			}
		},
	}
}
