package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"crudkit/internal/config"
)

func TestNewDevelopment(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")
	logger, err := New(&config.Config{AppName: "todo", InstanceID: "test"})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewReleaseWritesFile(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(&config.Config{AppName: "blog", InstanceID: "test", LogDir: dir})
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "blog.log"))
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"hello"`)
	require.Contains(t, string(data), `"app":"blog"`)
}
