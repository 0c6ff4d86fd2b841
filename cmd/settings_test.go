package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoxDroid/dtf/internal/config"
)

func TestSettingsInitAndShow(t *testing.T) {
	home := setupTempDB(t)
	p := filepath.Join(home, "settings.yaml")

	out, err := runCLI(t, "settings", "init")
	require.NoError(t, err)
	assert.Equal(t, "wrote "+p+"\n", out)
	s, err := config.LoadSettingsFile(p)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), s)

	_, err = runCLI(t, "settings", "init")
	assert.ErrorContains(t, err, "--force")

	require.NoError(t, os.WriteFile(p, []byte("history_limit: 7\n"), 0o644))
	out, err = runCLI(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "history_limit: 7")
	assert.Contains(t, out, "max_column_width: 80")

	_, err = runCLI(t, "settings", "init", "--force")
	require.NoError(t, err)
	s, err = config.LoadSettingsFile(p)
	require.NoError(t, err)
	assert.Equal(t, 200, s.HistoryLimit)
}
