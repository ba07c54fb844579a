// Package assets embeds the seed scene presets.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed presets/*.json
var Presets embed.FS

// Preset returns the raw JSON of the named preset ("default", "triad").
func Preset(name string) ([]byte, error) {
	data, err := Presets.ReadFile(path.Join("presets", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}
	return data, nil
}

// PresetNames lists the embedded presets.
func PresetNames() []string {
	entries, _ := fs.ReadDir(Presets, "presets")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names
}
