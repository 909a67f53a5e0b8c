package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfulz/powergeist/dispatch"
	"github.com/mfulz/powergeist/interfaces"
	"github.com/mfulz/powergeist/interfaces/ilauncher"
	"github.com/mfulz/powergeist/internal/action"
	"github.com/mfulz/powergeist/internal/api"
	"github.com/mfulz/powergeist/internal/config"
	"github.com/mfulz/powergeist/internal/control"
	_ "github.com/mfulz/powergeist/internal/launchcli"
	"github.com/mfulz/powergeist/internal/logging"
	"github.com/mfulz/powergeist/internal/metrics"
	"github.com/mfulz/powergeist/internal/netinfo"
	"github.com/mfulz/powergeist/internal/platform"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const uptimeInterval = 15 * time.Second

// ServeCmd runs the daemon. It is also what powergeistd does without a
// subcommand.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the control socket",
	Args:  cobra.NoArgs,
	RunE:  Serve,
}

// Serve runs until SIGINT or SIGTERM.
func Serve(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Apply(cfg.Logger); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logging.Sync()

	launcher, err := ilauncher.GetLauncher(cfg.Power.Launcher)
	if err != nil {
		return err
	}
	p, err := platform.Select(cfg.Power.Platform, interfaces.PlatformOptions{
		Launcher:      launcher,
		ShutdownDelay: cfg.Power.ShutdownDelay,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	var opts []action.Option
	var hub *api.Hub
	if cfg.HTTP.Events {
		hub = api.NewHub(0)
		opts = append(opts, action.WithObserver(hub.Publish))
		g.Go(func() error {
			hub.Run(gctx)
			return nil
		})
	}
	actions := action.NewDispatcher(p, opts...)

	httpSrv := api.NewServer(cfg.HTTP, actions, api.Options{Step: cfg.Volume.Step, Hub: hub})
	g.Go(func() error { return httpSrv.Run(gctx) })

	if cfg.Control.Enabled {
		d := dispatch.New()
		(&control.Handlers{Actions: actions, Step: cfg.Volume.Step}).Register(d)
		ctlSrv := control.NewServer(cfg.Control, d)
		g.Go(func() error { return ctlSrv.Run(gctx) })
	}

	if cfg.HTTP.Metrics {
		metrics.StartUptime(gctx, uptimeInterval)
	}

	logURLs(gctx, cfg.HTTP)

	if err := g.Wait(); err != nil {
		logging.Log.Errorf("[powergeistd] %v", err)
		return err
	}
	logging.Log.Infof("[powergeistd] shutdown complete")
	return nil
}

func logURLs(ctx context.Context, cfg config.HTTPConfig) {
	logging.Log.Infof("[powergeistd] local:   http://localhost:%d", cfg.Port)

	host := cfg.Bind
	if host == "" || host == "0.0.0.0" || host == "::" {
		ip, err := netinfo.LocalIP(ctx)
		if err != nil {
			logging.Log.Warnf("[powergeistd] network: %s (%v)", netinfo.Unknown, err)
			return
		}
		host = ip
	}
	logging.Log.Infof("[powergeistd] network: http://%s:%d", host, cfg.Port)
}
