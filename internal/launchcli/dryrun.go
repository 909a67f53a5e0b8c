package launchcli

import (
	"context"

	"github.com/mfulz/powergeist/interfaces/ilauncher"
	"github.com/mfulz/powergeist/internal/logging"
)

// MethodDryRun is the registry name of the dryrun launcher.
const MethodDryRun = "dryrun"

// dryRunLauncher logs commands passed to Start instead of running them.
// Queries still go through the exec launcher so volume reads stay real.
type dryRunLauncher struct {
	query execLauncher
}

func init() {
	ilauncher.RegisterLauncher(&dryRunLauncher{})
}

func (l *dryRunLauncher) Method() string {
	return MethodDryRun
}

func (l *dryRunLauncher) Start(c ilauncher.Command) error {
	logging.Log.Infof("[launch] dry run, not starting '%s'", c)
	return nil
}

func (l *dryRunLauncher) Output(ctx context.Context, c ilauncher.Command) ([]byte, error) {
	return l.query.Output(ctx, c)
}
