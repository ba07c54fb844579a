package assets

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{"default", "triad"}, PresetNames())
}

func TestPreset(t *testing.T) {
	data, err := Preset("default")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Core")

	_, err = Preset("nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
