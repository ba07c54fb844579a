package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup location at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, path, err := Load()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPathOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
window:
  width: 800
scene:
  preset: triad
  seed: 42
camera:
  zoom_duration: 500ms
  spawn_on_miss: false
codec:
  scheme: base4
audio:
  enabled: false
`)

	cfg, got, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "absent keys keep defaults")
	assert.Equal(t, "triad", cfg.Scene.Preset)
	assert.Equal(t, uint64(42), cfg.Scene.Seed)
	assert.Equal(t, 500*time.Millisecond, cfg.Camera.ZoomDuration.Duration())
	assert.InDelta(t, 0.5, cfg.Camera.ZoomDuration.Seconds(), 1e-9)
	assert.False(t, cfg.Camera.SpawnOnMiss)
	assert.Equal(t, "base4", cfg.Codec.Scheme)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, float32(75), cfg.Camera.FOV)
}

func TestApplyDefaultsRepairsBadValues(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, `
window: {width: -1, title: ""}
scene: {spawn_extent: 0, node_radius: -2, min_hue_gap: 400}
camera: {fov: 200, focus_distance: 0}
audio: {volume: 3}
export: {cell_size: 0, dir: ""}
`)

	cfg, _, err := LoadFromPath(path)
	require.NoError(t, err)
	d := DefaultConfig()
	assert.Equal(t, d.Window, cfg.Window)
	assert.Equal(t, d.Scene.SpawnExtent, cfg.Scene.SpawnExtent)
	assert.Equal(t, d.Scene.NodeRadius, cfg.Scene.NodeRadius)
	assert.Equal(t, d.Scene.MinHueGap, cfg.Scene.MinHueGap)
	assert.Equal(t, d.Camera.FOV, cfg.Camera.FOV)
	assert.Equal(t, d.Camera.FocusDistance, cfg.Camera.FocusDistance)
	assert.Equal(t, d.Audio.Volume, cfg.Audio.Volume)
	assert.Equal(t, d.Export, cfg.Export)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, _, err := LoadFromPath(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "camera:\n  zoom_duration: soon\n")
	_, _, err = LoadFromPath(bad)
	assert.ErrorContains(t, err, "parse config")

	writeFile(t, bad, "window: [1, 2\n")
	_, _, err = LoadFromPath(bad)
	assert.ErrorContains(t, err, "parse config")
}

func TestFindConfigPathPriority(t *testing.T) {
	dir := isolate(t)
	assert.Empty(t, FindConfigPath())

	home := filepath.Join(dir, "home", ".config", ConfigDirName, "config.yaml")
	writeFile(t, home, "{}")
	assert.Equal(t, home, FindConfigPath())

	xdg := filepath.Join(dir, "xdg", ConfigDirName, "config.yaml")
	writeFile(t, xdg, "{}")
	assert.Equal(t, xdg, FindConfigPath())

	writeFile(t, filepath.Join(dir, ConfigFileName), "{}")
	got := FindConfigPath()
	assert.Equal(t, ConfigFileName, filepath.Base(got))
	assert.True(t, filepath.IsAbs(got))

	explicit := filepath.Join(dir, "explicit.yaml")
	t.Setenv(EnvConfigPath, explicit)
	assert.Equal(t, ConfigFileName, filepath.Base(FindConfigPath()), "missing explicit file is skipped")
	writeFile(t, explicit, "{}")
	assert.Equal(t, explicit, FindConfigPath())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Codec.Scheme = "base4"
	cfg.Camera.ZoomDuration = Duration(2 * time.Second)
	require.NoError(t, cfg.Save(path))

	loaded, _, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
