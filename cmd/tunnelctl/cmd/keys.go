package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var keysRegenerate bool

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the host public key",
	Long: "Print the host's WireGuard public key, generating and caching a keypair\n" +
		"on first use. The cached keypair is reused until --regenerate is given.",
	Args: cobra.NoArgs,
	RunE: runKeys,
}

var keysPubkeyCmd = &cobra.Command{
	Use:   "pubkey",
	Short: "Derive a public key from a private key on stdin",
	Args:  cobra.NoArgs,
	RunE:  runKeysPubkey,
}

func init() {
	keysCmd.Flags().BoolVar(&keysRegenerate, "regenerate", false, "generate a new keypair and overwrite the cache")
	keysCmd.AddCommand(keysPubkeyCmd)
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	provision := a.keys.Provision
	if keysRegenerate {
		provision = a.keys.Regenerate
	}
	kp, err := provision(cmd.Context())
	if err != nil {
		return fmt.Errorf("tunnelctl keys: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), kp.PublicKey)
	return nil
}

func runKeysPubkey(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	priv, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("tunnelctl keys pubkey: read stdin: %w", err)
	}
	pub, err := a.keys.DerivePublic(cmd.Context(), string(priv))
	if err != nil {
		return fmt.Errorf("tunnelctl keys pubkey: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), pub)
	return nil
}
