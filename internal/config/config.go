// Package config loads nodeglyph settings from YAML.
//
// Config file locations (priority order):
//  1. $NODEGLYPH_CONFIG
//  2. ./nodeglyph.yaml
//  3. $XDG_CONFIG_HOME/nodeglyph/config.yaml
//  4. ~/.config/nodeglyph/config.yaml
//
// Missing files are not an error: Load falls back to DefaultConfig.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full settings tree.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Scene  SceneConfig  `yaml:"scene"`
	Camera CameraConfig `yaml:"camera"`
	Codec  CodecConfig  `yaml:"codec"`
	Audio  AudioConfig  `yaml:"audio"`
	Export ExportConfig `yaml:"export"`
}

// WindowConfig sizes the game window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// SceneConfig controls the seed preset and node placement.
type SceneConfig struct {
	Preset       string  `yaml:"preset"` // embedded preset name, without .json
	Seed         uint64  `yaml:"seed"`   // 0 picks a time-based seed
	SpawnExtent  float32 `yaml:"spawn_extent"`
	LinkDistance float32 `yaml:"link_distance"`
	NodeRadius   float32 `yaml:"node_radius"`
	MinHueGap    float64 `yaml:"min_hue_gap"`
	DriftAmp     float32 `yaml:"drift_amp"`
}

// CameraConfig controls the perspective camera and zoom motion.
type CameraConfig struct {
	FOV           float32  `yaml:"fov"`
	ZoomDuration  Duration `yaml:"zoom_duration"`
	FocusDistance float32  `yaml:"focus_distance"`
	RestDistance  float32  `yaml:"rest_distance"`
	SpawnOnMiss   bool     `yaml:"spawn_on_miss"`
}

// CodecConfig picks the initial encoding scheme.
type CodecConfig struct {
	Scheme string `yaml:"scheme"`
}

// AudioConfig controls tonal feedback.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// ExportConfig controls colour strip PNG export.
type ExportConfig struct {
	Dir      string `yaml:"dir"`
	CellSize int    `yaml:"cell_size"` // pixels per symbol
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Seconds returns the duration in seconds.
func (d Duration) Seconds() float64 {
	return time.Duration(d).Seconds()
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path. Keys absent from the file
// keep their default values.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the classic scene setup.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Title: "nodeglyph", Width: 1280, Height: 720},
		Scene: SceneConfig{
			Preset:       "default",
			Seed:         0,
			SpawnExtent:  3,
			LinkDistance: 1.5,
			NodeRadius:   0.3,
			MinHueGap:    25,
			DriftAmp:     0.0005,
		},
		Camera: CameraConfig{
			FOV:           75,
			ZoomDuration:  Duration(1600 * time.Millisecond),
			FocusDistance: 2.5,
			RestDistance:  5,
			SpawnOnMiss:   true,
		},
		Codec:  CodecConfig{Scheme: "binary"},
		Audio:  AudioConfig{Enabled: true, Volume: 0.5},
		Export: ExportConfig{Dir: ".", CellSize: 16},
	}
}

// applyDefaults replaces unusable values (zero or negative) with defaults.
func (c *Config) applyDefaults() {
	d := DefaultConfig()

	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Width <= 0 {
		c.Window.Width = d.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = d.Window.Height
	}

	if c.Scene.Preset == "" {
		c.Scene.Preset = d.Scene.Preset
	}
	if c.Scene.SpawnExtent <= 0 {
		c.Scene.SpawnExtent = d.Scene.SpawnExtent
	}
	if c.Scene.LinkDistance <= 0 {
		c.Scene.LinkDistance = d.Scene.LinkDistance
	}
	if c.Scene.NodeRadius <= 0 {
		c.Scene.NodeRadius = d.Scene.NodeRadius
	}
	if c.Scene.MinHueGap < 0 || c.Scene.MinHueGap > 180 {
		c.Scene.MinHueGap = d.Scene.MinHueGap
	}
	if c.Scene.DriftAmp < 0 {
		c.Scene.DriftAmp = d.Scene.DriftAmp
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		c.Camera.FOV = d.Camera.FOV
	}
	if c.Camera.ZoomDuration < 0 {
		c.Camera.ZoomDuration = d.Camera.ZoomDuration
	}
	if c.Camera.FocusDistance <= 0 {
		c.Camera.FocusDistance = d.Camera.FocusDistance
	}
	if c.Camera.RestDistance <= 0 {
		c.Camera.RestDistance = d.Camera.RestDistance
	}

	if c.Codec.Scheme == "" {
		c.Codec.Scheme = d.Codec.Scheme
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		c.Audio.Volume = d.Audio.Volume
	}

	if c.Export.Dir == "" {
		c.Export.Dir = d.Export.Dir
	}
	if c.Export.CellSize <= 0 {
		c.Export.CellSize = d.Export.CellSize
	}
}
