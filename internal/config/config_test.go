package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromPath(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{
			name: "valid config with all fields",
			config: Config{
				Source:   "./content/posts.json",
				PostType: "product",
				PerPage:  25,
				Status:   []string{"publish", "private"},
				OrderBy:  "title",
				Order:    "ASC",
			},
		},
		{
			name: "config with defaults",
			config: Config{
				PostType: "page",
			},
		},
		{
			name:   "empty config file",
			config: Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, FileName)

			data, err := json.MarshalIndent(tt.config, "", "  ")
			require.NoError(t, err)

			err = os.WriteFile(configPath, data, 0644)
			require.NoError(t, err)

			got, err := LoadConfigFromPath(configPath)
			require.NoError(t, err)
			require.NotNil(t, got)

			// Check explicit values survive and defaults fill the rest
			want := tt.config
			want.applyDefaults()
			assert.Equal(t, want, *got)
		})
	}
}

func TestDefault(t *testing.T) {
	got := Default()

	assert.Equal(t, "./posts.json", got.Source)
	assert.Equal(t, "post", got.PostType)
	assert.Equal(t, 10, got.PerPage)
	assert.Equal(t, []string{"publish"}, got.Status)
	assert.Equal(t, "date", got.OrderBy)
	assert.Equal(t, "DESC", got.Order)
}

func TestConfig_SourcePath(t *testing.T) {
	c := &Config{Source: "./posts.json"}
	assert.Equal(t, filepath.Join("/srv/site", "posts.json"), c.SourcePath("/srv/site"))
	assert.Equal(t, "./posts.json", c.SourcePath(""))

	abs := &Config{Source: "/data/posts.json"}
	assert.Equal(t, "/data/posts.json", abs.SourcePath("/srv/site"))
}

func TestLoadConfigFromPath_Errors(t *testing.T) {
	tests := []struct {
		name        string
		setupFunc   func(string) string
		errContains string
	}{
		{
			name: "file not found",
			setupFunc: func(tmpDir string) string {
				return filepath.Join(tmpDir, "nonexistent.json")
			},
			errContains: "failed to read config file",
		},
		{
			name: "invalid json",
			setupFunc: func(tmpDir string) string {
				path := filepath.Join(tmpDir, FileName)
				os.WriteFile(path, []byte("invalid json"), 0644)
				return path
			},
			errContains: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := tt.setupFunc(tmpDir)

			_, err := LoadConfigFromPath(configPath)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	// Test finding postloop.json in parent directory
	t.Run("config in parent dir", func(t *testing.T) {
		tmpDir := t.TempDir()
		subDir := filepath.Join(tmpDir, "subdir")
		err := os.MkdirAll(subDir, 0755)
		require.NoError(t, err)

		data, _ := json.MarshalIndent(Config{PostType: "page"}, "", "  ")
		err = os.WriteFile(filepath.Join(tmpDir, FileName), data, 0644)
		require.NoError(t, err)

		oldWd, _ := os.Getwd()
		defer os.Chdir(oldWd)
		err = os.Chdir(subDir)
		require.NoError(t, err)

		got, root, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "page", got.PostType)
		// Use filepath.EvalSymlinks to resolve any symlinks for comparison
		expectedRoot, _ := filepath.EvalSymlinks(tmpDir)
		actualRoot, _ := filepath.EvalSymlinks(root)
		assert.Equal(t, expectedRoot, actualRoot)
	})

	// Test no postloop.json found
	t.Run("no config found", func(t *testing.T) {
		tmpDir := t.TempDir()

		oldWd, _ := os.Getwd()
		defer os.Chdir(oldWd)
		err := os.Chdir(tmpDir)
		require.NoError(t, err)

		_, _, err = LoadConfig()
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})
}
