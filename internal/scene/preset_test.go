package scene

import (
	"testing"

	"github.com/nodeglyph/nodeglyph/assets"
	"github.com/nodeglyph/nodeglyph/internal/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedPresets(t *testing.T) {
	for _, name := range []string{"presets/default.json", "presets/triad.json"} {
		data, err := assets.Presets.ReadFile(name)
		require.NoError(t, err, name)
		p, err := LoadPreset(data)
		require.NoError(t, err, name)
		assert.NotEmpty(t, p.Nodes)
	}
}

func TestApplyPreset(t *testing.T) {
	data, err := assets.Presets.ReadFile("presets/triad.json")
	require.NoError(t, err)
	p, err := LoadPreset(data)
	require.NoError(t, err)

	r := NewRegistry(codec.Binary{}, DefaultOptions())
	ids := r.Apply(p)
	require.Len(t, ids, 3)
	assert.Len(t, r.Links(), 2)

	core, ok := r.Node(ids[0])
	require.True(t, ok)
	assert.Equal(t, "Core", core.Title)
	assert.Equal(t, "0110100001101001", core.Code)
	assert.Equal(t, uint8(255), core.Color.G)
	assert.Equal(t, uint8(255), core.Color.B)
}

func TestLoadPresetErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"bad json", `{"nodes": [`},
		{"no nodes", `{"name": "empty", "nodes": []}`},
		{"zero radius", `{"nodes": [{"radius": 0, "color": "#ffffff"}]}`},
		{"bad color", `{"nodes": [{"radius": 1, "color": "teal"}]}`},
		{"link out of range", `{"nodes": [{"radius": 1, "color": "#ffffff"}], "links": [[0, 3]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPreset([]byte(tt.json))
			assert.Error(t, err)
		})
	}
}
