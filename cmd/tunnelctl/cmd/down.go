package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var downCmd = &cobra.Command{
	Use:   "down [name]",
	Short: "Disconnect a profile",
	Long: "Bring the profile's WireGuard interface down with wg-quick through the elevation helper.\n" +
		"Without a name the legacy wg0 interface is used.",
	Args: cobra.MaximumNArgs(1),
	RunE: runDown,
}

func init() {
	rootCmd.AddCommand(downCmd)
}

func runDown(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	out, err := a.ctrl.Disconnect(cmd.Context(), profileArg(args))
	if err != nil {
		return fmt.Errorf("tunnelctl down: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
