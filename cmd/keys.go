package cmd

import (
	"encoding/base64"
	"fmt"

	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	var secret bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate COOKIE_HASH_KEY and COOKIE_BLOCK_KEY values (base64)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if secret {
				b := securecookie.GenerateRandomKey(32)
				if b == nil {
					return fmt.Errorf("generate secret")
				}
				fmt.Fprintf(out, "export COOKIE_SECRET=%s\n", base64.RawURLEncoding.EncodeToString(b))
				return nil
			}
			hash := securecookie.GenerateRandomKey(32)
			block := securecookie.GenerateRandomKey(32)
			if hash == nil || block == nil {
				return fmt.Errorf("generate keys")
			}
			fmt.Fprintf(out, "export COOKIE_HASH_KEY=%s\n", base64.StdEncoding.EncodeToString(hash))
			fmt.Fprintf(out, "export COOKIE_BLOCK_KEY=%s\n", base64.StdEncoding.EncodeToString(block))
			return nil
		},
	}

	cmd.Flags().BoolVar(&secret, "secret", false, "emit a single COOKIE_SECRET instead of explicit keys")
	return cmd
}
