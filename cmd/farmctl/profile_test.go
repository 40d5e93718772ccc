package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file uses defaults", func(t *testing.T) {
		path := filepath.Join(dir, "missing", "config.yaml")

		profile, err := loadProfile(path)
		require.NoError(t, err)
		assert.Equal(t, defaultBaseURL, profile.BaseURL)
		assert.Equal(t, filepath.Join(dir, "missing", "session.json"), profile.SessionFile)
	})

	t.Run("reads yaml", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("base_url: https://api.farmstay.test\nsession_file: /tmp/farm.json\n"), 0o600))

		profile, err := loadProfile(path)
		require.NoError(t, err)
		assert.Equal(t, "https://api.farmstay.test", profile.BaseURL)
		assert.Equal(t, "/tmp/farm.json", profile.SessionFile)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("base_url: [unterminated"), 0o600))

		_, err := loadProfile(path)
		assert.Error(t, err)
	})
}
