package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunIdentifyRequiresAssetsDir(t *testing.T) {
	assetsDir, modelName = "", ""
	require.NoError(t, os.Unsetenv(assetsDirEnv))
	require.NoError(t, os.Unsetenv(modelNameEnv))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"somefile"})
	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "--assets-dir")
}

func TestRunIdentifyRequiresModel(t *testing.T) {
	assetsDir, modelName = "", ""
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--assets-dir", t.TempDir(), "somefile"})
	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "--model")
}

// TestVerboseLogJSONSelectsJSONLogger exercises the --verbose --log-json
// combination far enough to prove obslog.New is actually wired in (not
// just declared): it must get past flag validation and into Open, whose
// catalog-load failure on the (deliberately empty) assets dir is then
// logged as a JSON event on the command's stderr.
func TestVerboseLogJSONSelectsJSONLogger(t *testing.T) {
	assetsDir, modelName = "", ""
	cmd := newRootCmd()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--assets-dir", t.TempDir(), "--model", "nope", "--verbose", "--log-json", "somefile"})
	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "open scanner")
	require.Contains(t, stderr.String(), `"level":"error"`)
	require.Contains(t, stderr.String(), `"message":"load content types catalog failed"`)
}
