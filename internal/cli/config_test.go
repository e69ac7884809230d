package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
db_path: /tmp/mirror.db
schema_dir: /tmp/schema
since_millis: 60000
page_size: 25
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/mirror.db", cfg.DBPath)
	assert.Equal(t, "/tmp/schema", cfg.SchemaDir)
	assert.Equal(t, int64(60000), cfg.SinceMillis)
	assert.Equal(t, 25, cfg.PageSize)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/does/not/exist.yaml")
	require.Error(t, err)
}
