// Package cmd provides the subcommands of the powerctl binary.
package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/mfulz/powergeist/internal/configcli"
	"github.com/mfulz/powergeist/internal/configloader"
	"github.com/mfulz/powergeist/internal/controlcli"
	"github.com/mfulz/powergeist/internal/logging"
	"github.com/mfulz/powergeist/protocol"
	"github.com/spf13/cobra"
)

var (
	configPath      string
	overrideNetwork string
	overrideAddr    string
)

// errFailed makes powerctl exit non-zero after the daemon reported a failed action.
var errFailed = errors.New("action failed")

// BindFlags registers the connection flags on root.
func BindFlags(root *cobra.Command) {
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to powerctl.yaml")
	root.PersistentFlags().StringVar(&overrideNetwork, "network", "", "Override control network (unix or tcp)")
	root.PersistentFlags().StringVar(&overrideAddr, "addr", "", "Override daemon address (socket path or host:port)")
}

// Setup loads the client config and initializes logging.
func Setup(_ *cobra.Command, _ []string) error {
	cfg, err := configcli.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Apply(cfg.Logger); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	logging.Log.Debugf("[powerctl] config: %+v", *cfg)
	return nil
}

func client() *controlcli.Client {
	cfg := configloader.MustGetConfig[*configcli.Config]()
	network, addr := cfg.Network, cfg.Address
	if overrideNetwork != "" {
		network = overrideNetwork
	}
	if overrideAddr != "" {
		addr = overrideAddr
	}
	return controlcli.New(network, addr)
}

// report prints the outcome message and turns a failed outcome into an error.
func report(w io.Writer, out *protocol.Outcome) error {
	fmt.Fprintln(w, out.Message)
	if !out.Success {
		return errFailed
	}
	return nil
}
