package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "collection.json", cfg.Skills.Meta)
	assert.Equal(t, "skills", cfg.Skills.Dir)
	assert.Equal(t, "dist/collection.json", cfg.Skills.Out)
	assert.Equal(t, "skillName", cfg.Skills.SortBy)

	assert.Equal(t, "competencies.json", cfg.Competencies.Meta)
	assert.Equal(t, "competencies", cfg.Competencies.Dir)
	assert.Equal(t, "name", cfg.Competencies.SortBy)
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collectc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
skills:
  out: build/skills.json
  exclude:
    - "*.draft.json"
watch:
  debounce: 50ms
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "build/skills.json", cfg.Skills.Out)
	assert.Equal(t, []string{"*.draft.json"}, cfg.Skills.Exclude)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.DebounceDuration())
	// Untouched keys keep their defaults.
	assert.Equal(t, "collection.json", cfg.Skills.Meta)
	assert.Equal(t, "dist/competencies.json", cfg.Competencies.Out)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collectc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skills: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestDebounceDurationFallback(t *testing.T) {
	assert.Equal(t, DefaultDebounce, Watch{}.DebounceDuration())
	assert.Equal(t, DefaultDebounce, Watch{Debounce: "soon"}.DebounceDuration())
	assert.Equal(t, DefaultDebounce, Watch{Debounce: "-1s"}.DebounceDuration())
	assert.Equal(t, time.Second, Watch{Debounce: "1s"}.DebounceDuration())
}
