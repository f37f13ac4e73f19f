package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plexsphere/tunnelctl/internal/store"
	"github.com/plexsphere/tunnelctl/internal/wgconf"
)

var (
	configWriteFile string

	initEndpoint   string
	initServerKey  string
	initAddress    string
	initDNS        string
	initAllowedIPs string
	initKeepalive  string
	initForce      bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage profile configurations",
	Long:  "Manage profile configurations. Without a name the legacy wg0 profile is used.",
}

var configShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a profile's configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigShow,
}

var configWriteCmd = &cobra.Command{
	Use:   "write [name]",
	Short: "Save a profile's configuration",
	Long: "Save configuration text read from standard input (or --file) for a profile.\n" +
		"Any DNS line is commented out. The text is kept in the staging directory\n" +
		"even when the system configuration directory cannot be written.",
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigWrite,
}

var configCheckCmd = &cobra.Command{
	Use:   "check [name]",
	Short: "Check whether a profile's configuration is filled in",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigCheck,
}

var configInitCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a profile configuration with the host keypair",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a profile's configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigDelete,
}

func init() {
	configWriteCmd.Flags().StringVarP(&configWriteFile, "file", "f", "", "read configuration from file instead of stdin")

	f := configInitCmd.Flags()
	f.StringVar(&initEndpoint, "endpoint", "", "server endpoint host:port")
	f.StringVar(&initServerKey, "server-key", "", "server public key")
	f.StringVar(&initAddress, "address", wgconf.DefaultAddress, "tunnel address of this host")
	f.StringVar(&initDNS, "dns", wgconf.DefaultDNS, "DNS server (stored commented out)")
	f.StringVar(&initAllowedIPs, "allowed-ips", wgconf.DefaultAllowedIPs, "routes sent through the tunnel")
	f.StringVar(&initKeepalive, "keepalive", wgconf.DefaultPersistentKeepalive, "persistent keepalive in seconds")
	f.BoolVar(&initForce, "force", false, "overwrite an existing configuration")

	configCmd.AddCommand(configShowCmd, configWriteCmd, configCheckCmd, configInitCmd, configDeleteCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	text, err := a.store.Read(profileArg(args))
	if err != nil {
		return fmt.Errorf("tunnelctl config show: %w", err)
	}
	if text == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "No configuration yet")
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

func runConfigWrite(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	var data []byte
	if configWriteFile != "" {
		data, err = os.ReadFile(configWriteFile)
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("tunnelctl config write: read input: %w", err)
	}

	out, err := a.store.Write(cmd.Context(), profileArg(args), string(data))
	if err != nil {
		return fmt.Errorf("tunnelctl config write: %w", err)
	}
	printOutcome(cmd.OutOrStdout(), out)
	return nil
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ok, err := a.store.CheckComplete(profileArg(args))
	if err != nil {
		return fmt.Errorf("tunnelctl config check: %w", err)
	}
	if ok {
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("complete"))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("incomplete"))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	name := profileArg(args)

	existing, err := a.store.Read(name)
	if err != nil {
		return fmt.Errorf("tunnelctl config init: %w", err)
	}
	if strings.TrimSpace(existing) != "" && !initForce {
		return errors.New("tunnelctl config init: configuration exists, use --force to overwrite")
	}

	kp, err := a.keys.Provision(ctx)
	if err != nil {
		return fmt.Errorf("tunnelctl config init: %w", err)
	}

	text := wgconf.Render(wgconf.Template{
		PrivateKey:          kp.PrivateKey,
		Address:             initAddress,
		DNS:                 initDNS,
		ServerPublicKey:     initServerKey,
		Endpoint:            initEndpoint,
		AllowedIPs:          initAllowedIPs,
		PersistentKeepalive: initKeepalive,
	})
	out, err := a.store.Write(ctx, name, text)
	if err != nil {
		return fmt.Errorf("tunnelctl config init: %w", err)
	}

	w := cmd.OutOrStdout()
	printOutcome(w, out)
	fmt.Fprintf(w, "Public key: %s\n", kp.PublicKey)
	if !wgconf.Complete(text) {
		fmt.Fprintln(w, color.YellowString("Server key or endpoint still missing; edit the configuration before connecting"))
	}
	return nil
}

func runConfigDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	name := profileArg(args)
	if err := a.store.Delete(cmd.Context(), name); err != nil {
		return fmt.Errorf("tunnelctl config delete: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", a.store.Paths(name).Privileged)
	return nil
}

func printOutcome(w io.Writer, out store.Outcome) {
	if out.Kind == store.FullSuccess {
		fmt.Fprintln(w, out.Message())
		return
	}
	fmt.Fprintln(w, color.YellowString(out.Message()))
	if out.Detail != "" {
		fmt.Fprintf(w, "  %s\n", out.Detail)
	}
}
