// Command powergeistd is the powergeist daemon. It serves the HTTP API and
// the embedded control page on the local network and, optionally, the local
// control socket used by powerctl.
package main

import (
	"fmt"
	"os"

	"github.com/mfulz/powergeist/cmd/powergeistd/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "powergeistd",
	Short: "Remote power and volume control daemon",
	Long: `powergeistd lets devices on the local network shut down, restart or suspend
this machine and change its output volume through a small web page.`,
	SilenceUsage: true,
	RunE:         cmd.Serve,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cmd.BindFlags(rootCmd)
	rootCmd.AddCommand(cmd.ServeCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}
