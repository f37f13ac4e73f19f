package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plexsphere/tunnelctl/internal/profile"
)

var statusCmd = &cobra.Command{
	Use:   "status [name]",
	Short: "Show tunnel status",
	Long: "With a profile name, report whether that profile is connected.\n" +
		"Without one, report which profile is connected, if any.",
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	if len(args) == 0 {
		name, ok, err := a.inspector.FindActive(ctx)
		if err != nil {
			return fmt.Errorf("tunnelctl status: %w", err)
		}
		if !ok {
			fmt.Fprintln(w, "No active profile")
			return nil
		}
		fmt.Fprintf(w, "Active profile: %s (%s)\n", color.GreenString(name), profile.InterfaceName(name))
		return nil
	}

	name := args[0]
	if err := profile.Validate(name); err != nil {
		return fmt.Errorf("tunnelctl status: %w", err)
	}
	iface := profile.InterfaceName(name)
	if !a.inspector.IsActive(ctx, name) {
		fmt.Fprintf(w, "%s: %s\n", iface, color.RedString("disconnected"))
		return nil
	}
	fmt.Fprintf(w, "%s: %s\n", iface, color.GreenString("connected"))
	if addr, err := a.inspector.Address(ctx, name); err == nil {
		fmt.Fprintf(w, "Address: %s\n", addr)
	}
	return nil
}
