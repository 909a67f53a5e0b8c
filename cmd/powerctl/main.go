// Command powerctl controls a running powergeistd over its local control
// socket. It is the command-line counterpart of the web page.
package main

import (
	"fmt"
	"os"

	"github.com/mfulz/powergeist/cmd/powerctl/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "powerctl",
	Short:             "Control interface for the powergeist daemon",
	Long:              `powerctl triggers power and volume actions through the powergeistd control socket.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: cmd.Setup,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cmd.BindFlags(rootCmd)
	for _, c := range cmd.PowerCmds {
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(cmd.VolumeCmd)
	rootCmd.AddCommand(cmd.IPCmd)
	rootCmd.AddCommand(cmd.PingCmd)
}
