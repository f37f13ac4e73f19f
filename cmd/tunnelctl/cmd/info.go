package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show host information",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	info := a.host.Collect(cmd.Context())

	wg := color.GreenString("installed")
	if !info.WireGuardInstalled {
		wg = color.RedString("not installed")
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "User:        %s\n", info.Username)
	fmt.Fprintf(w, "Hostname:    %s\n", info.Hostname)
	fmt.Fprintf(w, "OS:          %s\n", info.OS)
	fmt.Fprintf(w, "IP address:  %s\n", info.OutboundIP)
	fmt.Fprintf(w, "DNS servers: %s\n", info.DNSServers)
	fmt.Fprintf(w, "WireGuard:   %s\n", wg)
	return nil
}
