package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vgrid/internal/config"
)

func TestConfigInit_Global(t *testing.T) {
	home := setupCLITest(t)

	out, err := execute(t, nil, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	path := filepath.Join(home, config.ConfigFileName)
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	_, err = execute(t, nil, "config", "init")
	require.Error(t, err, "existing file is not overwritten without --force")
	assert.Contains(t, err.Error(), "--force")

	_, err = execute(t, nil, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_Project(t *testing.T) {
	home := setupCLITest(t)
	projectRoot := t.TempDir()

	out, err := execute(t, nil, "--project-dir", projectRoot, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at")
	assert.Contains(t, out, "Created .gitignore")

	projectDir := filepath.Join(projectRoot, config.DirName)
	_, statErr := os.Stat(filepath.Join(projectDir, config.ConfigFileName))
	require.NoError(t, statErr)

	data, readErr := os.ReadFile(filepath.Join(projectDir, ".gitignore"))
	require.NoError(t, readErr)
	assert.Equal(t, config.GitignoreContent(), string(data))

	_, statErr = os.Stat(filepath.Join(home, config.ConfigFileName))
	assert.True(t, os.IsNotExist(statErr), "user config is untouched")
}

func TestConfigInit_ExistingGitignorePreserved(t *testing.T) {
	setupCLITest(t)
	projectRoot := t.TempDir()
	projectDir := filepath.Join(projectRoot, config.DirName)
	require.NoError(t, os.MkdirAll(projectDir, 0o750))
	custom := "# mine\n"
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, ".gitignore"), []byte(custom), 0o600))

	out, err := execute(t, nil, "--project-dir", projectRoot, "config", "init", "--force")
	require.NoError(t, err)
	assert.NotContains(t, out, "Created .gitignore")

	data, readErr := os.ReadFile(filepath.Join(projectDir, ".gitignore"))
	require.NoError(t, readErr)
	assert.Equal(t, custom, string(data))
}

func TestConfigInit_GlobalFlagInsideProject(t *testing.T) {
	home := setupCLITest(t)
	projectRoot := t.TempDir()

	_, err := execute(t, nil, "--project-dir", projectRoot, "config", "init", "--global")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(home, config.ConfigFileName))
	require.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(projectRoot, config.DirName, config.ConfigFileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestConfigShow(t *testing.T) {
	setupCLITest(t)
	t.Setenv("VGRID_PAGE_SIZE", "25")

	out, err := execute(t, nil, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "page_size: 25")
	assert.Contains(t, out, "filter_debounce: 150ms")
	assert.Contains(t, out, "settle_delay: 200ms")
}

func TestConfigShow_ProjectOverlay(t *testing.T) {
	setupCLITest(t)
	projectRoot := t.TempDir()
	projectDir := filepath.Join(projectRoot, config.DirName)
	require.NoError(t, os.MkdirAll(projectDir, 0o750))
	require.NoError(t, os.WriteFile(
		filepath.Join(projectDir, config.ConfigFileName),
		[]byte("grid:\n  rtl: true\n"),
		0o600,
	))

	out, err := execute(t, nil, "--project-dir", projectRoot, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "rtl: true")
	assert.Contains(t, out, "page_size: 50", "fields absent from the overlay keep their value")
	assert.Contains(t, out, "# project: "+projectDir)
}
