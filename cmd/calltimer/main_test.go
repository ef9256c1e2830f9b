package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, signals <-chan os.Signal, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	// cobra falls back to os.Args on nil
	if args == nil {
		args = []string{}
	}

	rootCmd := newRootCommand(signals)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(&bytes.Buffer{})

	err := rootCmd.ExecuteContext(t.Context())

	return stdout.String(), stderr.String(), err
}

func TestRootCommandPrintsSummary(t *testing.T) {
	clearEnvironment(t)

	out, _, err := executeRoot(t, nil, "echo", "hello")
	require.NoError(t, err)
	require.Regexp(t, `^hello\necho hello done in \d+ ms\n$`, out)
}

func TestRootCommandLabelFlag(t *testing.T) {
	clearEnvironment(t)

	out, _, err := executeRoot(t, nil, "--label", "does_something", "--", "true")
	require.NoError(t, err)
	require.Regexp(t, `^does_something done in \d+ ms\n$`, out)
}

func TestRootCommandLabelFromEnvironment(t *testing.T) {
	clearEnvironment(t)
	t.Setenv("CALLTIMER_LABEL", "from env")

	out, _, err := executeRoot(t, nil, "true")
	require.NoError(t, err)
	require.Regexp(t, `^from env done in \d+ ms\n$`, out)
}

func TestRootCommandEmptyDebugVariable(t *testing.T) {
	clearEnvironment(t)
	t.Setenv("CALLTIMER_DEBUG", "")

	out, _, err := executeRoot(t, nil, "true")
	require.NoError(t, err)
	require.Regexp(t, `^true done in \d+ ms\n$`, out)
}

func TestRootCommandLeavesCommandFlagsAlone(t *testing.T) {
	clearEnvironment(t)

	out, _, err := executeRoot(t, nil, "sh", "-c", "echo $0", "--label")
	require.NoError(t, err)
	require.Regexp(t, `^--label\nsh -c echo \$0 --label done in \d+ ms\n$`, out)
}

func TestRootCommandPrintsNothingOnFailure(t *testing.T) {
	clearEnvironment(t)

	out, _, err := executeRoot(t, nil, "false")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitCode(err))
	require.Empty(t, out)
}

func TestRootCommandForwardsSIGTERM(t *testing.T) {
	clearEnvironment(t)

	signals := make(chan os.Signal, 1)
	signals <- syscall.SIGTERM

	out, _, err := executeRoot(t, signals, "sleep", "5")
	require.Error(t, err)
	require.Equal(t, 128+15, exitCode(err))
	require.Empty(t, out)
}

func TestRootCommandWritesMetricsOnSuccess(t *testing.T) {
	clearEnvironment(t)

	path := filepath.Join(t.TempDir(), "calltimer.prom")
	t.Setenv("CALLTIMER_METRICS_FILE", path)

	_, _, err := executeRoot(t, nil, "--label", "backup", "true")
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), `calltimer_calls_total{label="backup"} 1`)
}

func TestRootCommandSkipsMetricsOnFailure(t *testing.T) {
	clearEnvironment(t)

	path := filepath.Join(t.TempDir(), "calltimer.prom")
	t.Setenv("CALLTIMER_METRICS_FILE", path)

	_, _, err := executeRoot(t, nil, "--label", "backup", "false")
	require.Error(t, err)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRootCommandDebugLogsTimings(t *testing.T) {
	clearEnvironment(t)
	t.Setenv("CALLTIMER_DEBUG", "true")

	out, logs, err := executeRoot(t, nil, "--label", "debugged", "true")
	require.NoError(t, err)
	require.Regexp(t, `^debugged done in \d+ ms\n$`, out)
	require.Contains(t, logs, "msg=timings")
	require.Contains(t, logs, "method=debugged")
}

func TestRootCommandNeedsACommand(t *testing.T) {
	clearEnvironment(t)

	_, _, err := executeRoot(t, nil)
	require.Error(t, err)
}
