package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var amount int

// VolumeCmd is the root command for volume subcommands.
var VolumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Read or change the output volume",
}

var volumeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current volume",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := client().GetVolume(cmd.Context())
		if err != nil {
			return err
		}
		if !out.Success || out.Volume == nil {
			return report(cmd.OutOrStdout(), out)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", *out.Volume)
		return nil
	},
}

var volumeSetCmd = &cobra.Command{
	Use:   "set <level>",
	Short: "Set the volume to level percent (clamped to 0-100)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid level %q: %w", args[0], err)
		}
		out, err := client().SetVolume(cmd.Context(), level)
		if err != nil {
			return err
		}
		return report(cmd.OutOrStdout(), out)
	},
}

var volumeUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Increase the volume",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := client().IncreaseVolume(cmd.Context(), amount)
		if err != nil {
			return err
		}
		return report(cmd.OutOrStdout(), out)
	},
}

var volumeDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Decrease the volume",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := client().DecreaseVolume(cmd.Context(), amount)
		if err != nil {
			return err
		}
		return report(cmd.OutOrStdout(), out)
	},
}

func init() {
	for _, c := range []*cobra.Command{volumeUpCmd, volumeDownCmd} {
		c.Flags().IntVarP(&amount, "amount", "a", 0, "Percent to change by (0 uses the daemon's step)")
	}
	VolumeCmd.AddCommand(volumeGetCmd, volumeSetCmd, volumeUpCmd, volumeDownCmd)
}
