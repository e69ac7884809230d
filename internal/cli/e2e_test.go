package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_InstallRegisterPlan(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mirror.db")
	schemaDir := "../schemasrc/testdata/sample"

	out, err := runCLI(t, "install", "--db", dbPath, "--schema", schemaDir)
	require.NoError(t, err, out)

	out, err = runCLI(t, "register", "--db", dbPath, "--schema", schemaDir, "--type", "Repo", "--id", "r1")
	require.NoError(t, err, out)

	out, err = runCLI(t, "--format", "json", "plan", "--db", dbPath, "--schema", schemaDir, "--since", "1h")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"id":"r1"`)
	assert.Contains(t, out, `"fieldname":"issues"`)
}

func TestCLI_QueryShallow(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mirror.db")
	schemaDir := "../schemasrc/testdata/sample"

	_, err := runCLI(t, "install", "--db", dbPath, "--schema", schemaDir)
	require.NoError(t, err)

	out, err := runCLI(t, "query", "shallow", "--db", dbPath, "--schema", schemaDir, "--type", "Actor")
	require.NoError(t, err)
	assert.Contains(t, out, "... on Bot")
	assert.Contains(t, out, "... on User")
}
