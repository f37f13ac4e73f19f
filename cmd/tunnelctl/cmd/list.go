package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	Long:  "List the profiles found in the system configuration directory. The connected profile is marked with '*'.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	names, err := a.catalog.ListAvailable(ctx)
	if err != nil {
		return fmt.Errorf("tunnelctl list: %w", err)
	}

	active, ok, err := a.inspector.FindActive(ctx)
	if err != nil {
		a.logger.Debug("active profile unknown", "error", err)
	}

	w := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintf(w, "No profiles in %s\n", a.cfg.Store.ConfigDir)
		return nil
	}
	green := color.New(color.FgGreen, color.Bold)
	for _, name := range names {
		if ok && name == active {
			fmt.Fprintf(w, "* %s\n", green.Sprint(name))
			continue
		}
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}
