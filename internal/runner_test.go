package internal

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestExecRunnerSuccess(t *testing.T) {
	sh := requireShell(t)

	res, err := ExecRunner{}.Run([]string{sh, "-c", "echo out; echo err >&2"})
	require.NoError(t, err)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, 0, res.ExitCode)
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	sh := requireShell(t)
	argv := []string{sh, "-c", "echo partial; echo boom >&2; exit 2"}

	res, err := ExecRunner{}.Run(argv)
	require.Error(t, err)

	var perr *ProcessError
	require.True(t, errors.As(err, &perr), "want *ProcessError, got %T", err)
	assert.Equal(t, 2, perr.ExitCode)
	assert.Equal(t, argv, perr.Command)
	assert.Equal(t, "partial\n", perr.Stdout)
	assert.Equal(t, "boom\n", perr.Stderr)
	assert.Equal(t, 2, res.ExitCode)

	msg := err.Error()
	assert.Contains(t, msg, "exit code: 2")
	assert.Contains(t, msg, sh+" -c echo partial; echo boom >&2; exit 2")
	assert.Contains(t, msg, "stderr:\nboom")
	assert.Contains(t, msg, "stdout:\npartial")
}

func TestExecRunnerMissingExecutable(t *testing.T) {
	_, err := ExecRunner{}.Run([]string{"dlp-tui-definitely-not-a-real-binary", "--version"})
	require.Error(t, err)

	var uerr *UnexpectedError
	require.True(t, errors.As(err, &uerr), "want *UnexpectedError, got %T", err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.Contains(t, err.Error(), "dlp-tui-definitely-not-a-real-binary --version")

	var perr *ProcessError
	assert.False(t, errors.As(err, &perr))
}

func TestExecRunnerEmptyCommand(t *testing.T) {
	_, err := ExecRunner{}.Run(nil)

	var uerr *UnexpectedError
	require.True(t, errors.As(err, &uerr))
	assert.ErrorIs(t, err, errEmptyCommand)
}

func TestProcessErrorTrimsStreams(t *testing.T) {
	err := &ProcessError{
		ExitCode: 1,
		Command:  []string{"yt-dlp", "-x", "https://youtu.be/abc"},
		Stdout:   "\n[youtube] abc: Downloading webpage\n",
		Stderr:   "ERROR: Video unavailable\n\n",
	}
	assert.Equal(t,
		"process returned non-zero exit code\n"+
			"exit code: 1\n"+
			"command: yt-dlp -x https://youtu.be/abc\n\n"+
			"stderr:\nERROR: Video unavailable\n\n"+
			"stdout:\n[youtube] abc: Downloading webpage",
		err.Error())
}
