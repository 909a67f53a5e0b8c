package cmd

import (
	"context"

	"github.com/mfulz/powergeist/internal/controlcli"
	"github.com/mfulz/powergeist/protocol"
	"github.com/spf13/cobra"
)

func powerCmd(use, short string, call func(*controlcli.Client, context.Context) (*protocol.Outcome, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := call(client(), cmd.Context())
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), out)
		},
	}
}

// PowerCmds are the power action subcommands.
var PowerCmds = []*cobra.Command{
	powerCmd("shutdown", "Shut the machine down after the configured delay", (*controlcli.Client).Shutdown),
	powerCmd("restart", "Restart the machine", (*controlcli.Client).Restart),
	powerCmd("cancel", "Cancel a pending shutdown", (*controlcli.Client).CancelShutdown),
	powerCmd("sleep", "Suspend the machine", (*controlcli.Client).Sleep),
}
