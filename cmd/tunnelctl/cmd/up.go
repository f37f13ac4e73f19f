package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up [name]",
	Short: "Connect a profile",
	Long: "Bring the profile's WireGuard interface up with wg-quick through the elevation helper.\n" +
		"Without a name the legacy wg0 interface is used.",
	Args: cobra.MaximumNArgs(1),
	RunE: runUp,
}

func init() {
	rootCmd.AddCommand(upCmd)
}

func runUp(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	out, err := a.ctrl.Connect(cmd.Context(), profileArg(args))
	if err != nil {
		return fmt.Errorf("tunnelctl up: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
