//go:build !windows

package launchcli

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/mfulz/powergeist/interfaces"
	"github.com/mfulz/powergeist/interfaces/ilauncher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistered(t *testing.T) {
	for _, method := range []string{MethodExec, MethodDryRun} {
		l, err := ilauncher.GetLauncher(method)
		require.NoError(t, err)
		assert.Equal(t, method, l.Method())
	}
	_, err := ilauncher.GetLauncher("cgroup")
	assert.Error(t, err)
}

func TestExec_Output(t *testing.T) {
	l := &execLauncher{}

	out, err := l.Output(context.Background(), ilauncher.Command{Program: "sh", Args: []string{"-c", "echo 42"}})
	require.NoError(t, err)
	assert.Equal(t, "42\n", string(out))

	out, err = l.Output(context.Background(), ilauncher.Command{Program: "sh", Args: []string{"-c", "echo partial; exit 3"}})
	require.Error(t, err)
	assert.False(t, interfaces.IsLaunchError(err), "non-zero exit is not a launch failure")
	assert.Equal(t, "partial\n", string(out))
}

func TestExec_MissingProgram(t *testing.T) {
	l := &execLauncher{}
	cmd := ilauncher.Command{Program: "powergeist-no-such-tool"}

	err := l.Start(cmd)
	require.Error(t, err)
	var le *interfaces.LaunchError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "powergeist-no-such-tool", le.Program)
	assert.ErrorIs(t, err, exec.ErrNotFound)

	_, err = l.Output(context.Background(), cmd)
	assert.True(t, interfaces.IsLaunchError(err))
}

func TestExec_StartDoesNotWait(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "done")
	l := &execLauncher{}

	start := time.Now()
	require.NoError(t, l.Start(ilauncher.Command{Program: "sh", Args: []string{"-c", "sleep 0.3 && touch " + marker}}))
	assert.Less(t, time.Since(start), 250*time.Millisecond)

	require.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
}

func TestDryRun_StartsNothing(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "never")
	l := &dryRunLauncher{}

	require.NoError(t, l.Start(ilauncher.Command{Program: "touch", Args: []string{marker}}))
	time.Sleep(100 * time.Millisecond)
	assert.NoFileExists(t, marker)

	out, err := l.Output(context.Background(), ilauncher.Command{Program: "sh", Args: []string{"-c", "echo 7"}})
	require.NoError(t, err)
	assert.Equal(t, "7\n", string(out))
}
