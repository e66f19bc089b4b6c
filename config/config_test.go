package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaultsWhenOmitted(t *testing.T) {
	path := writeConfig(t, "parse_only_default: true\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, defaultCategories, cfg.EnabledCategories)
	assert.Equal(t, 1, cfg.RecursionLevels)
	assert.True(t, cfg.ParseOnlyDefault)
}

func TestLoadHonorsExplicitValues(t *testing.T) {
	path := writeConfig(t, "enabled_categories: [math, string]\nrecursion_levels: 3\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"math", "string"}, cfg.EnabledCategories)
	assert.Equal(t, 3, cfg.RecursionLevels)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCategoryEnabled(t *testing.T) {
	cfg := &Config{EnabledCategories: []string{"math", "date"}}
	assert.True(t, cfg.CategoryEnabled("math"))
	assert.False(t, cfg.CategoryEnabled("survey"))
}
