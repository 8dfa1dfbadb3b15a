package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/playshareorg/libplayshare-go/envelope"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var contentHash string
	var revocable bool

	cmd := &cobra.Command{
		Use:   "create [envelope.json]",
		Short: "Store an encrypted envelope and create a share link",
		Long: "Reads a pre-encrypted envelope {iv, ciphertext, alg} from the given\n" +
			"file (or stdin) and creates a new share for it. The edit token, if\n" +
			"requested, is printed exactly once and cannot be recovered later.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var env envelope.Envelope
			dec := json.NewDecoder(in)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&env); err != nil {
				return fmt.Errorf("parse envelope: %w", err)
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := store.CreateShare(&env, contentHash, revocable)
			if err != nil {
				return err
			}

			fmt.Printf("share id:   %s\n", color.GreenString(res.ShareID))
			if res.EditToken != "" {
				fmt.Printf("edit token: %s\n", color.YellowString(res.EditToken))
				fmt.Println(color.HiBlackString("store the token now; it is not recoverable"))
			}
			if !res.BlobCreated {
				fmt.Println(color.HiBlackString("blob deduplicated against existing content"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contentHash, "content-hash", "", "hex SHA-256 of the logical playlist content (required)")
	cmd.Flags().BoolVar(&revocable, "revocable", false, "generate an edit token allowing later revocation")
	_ = cmd.MarkFlagRequired("content-hash")

	return cmd
}
