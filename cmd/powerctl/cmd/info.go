package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// IPCmd prints the LAN address the daemon reports.
var IPCmd = &cobra.Command{
	Use:   "ip",
	Short: "Print the daemon's local network address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ip, err := client().LocalIP(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ip)
		return nil
	},
}

// PingCmd checks that the daemon is reachable.
var PingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the daemon is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		pong, err := client().Ping(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "powergeistd on %s (protocol %d)\n", pong.Platform, pong.Protocol)
		return nil
	},
}
