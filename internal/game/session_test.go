package game

import (
	"testing"

	"github.com/nodeglyph/nodeglyph/assets"
	"github.com/nodeglyph/nodeglyph/internal/codec"
	"github.com/nodeglyph/nodeglyph/internal/config"
	"github.com/nodeglyph/nodeglyph/internal/nav"
	"github.com/nodeglyph/nodeglyph/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	frame   = 1.0 / 60
	screenW = 1280
	screenH = 720
)

func newSession(t *testing.T, preset string) *Session {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Scene.Seed = 7
	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)

	data, err := assets.Preset(preset)
	require.NoError(t, err)
	p, err := scene.LoadPreset(data)
	require.NoError(t, err)
	return NewSession(opts, p)
}

func settle(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; s.Nav.Animating(); i++ {
		require.Less(t, i, 1000)
		s.Tick(frame)
	}
}

func lastLog(s *Session) string {
	m := s.Log.Recent(1)
	if len(m) == 0 {
		return ""
	}
	return m[0].Text
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Codec.Scheme = "BASE4"
	cfg.Camera.RestDistance = 8
	cfg.Camera.SpawnOnMiss = false

	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, codec.NameBase4, opts.Scheme.Name())
	assert.NotZero(t, opts.Scene.Seed, "zero seed is replaced")
	assert.Equal(t, float32(8), opts.Nav.RestPos.Z)
	assert.InDelta(t, 1.6, opts.Nav.ZoomDuration, 1e-9)
	assert.False(t, opts.Nav.SpawnOnMiss)
	assert.Equal(t, float32(75), opts.FOV)

	cfg.Codec.Scheme = "morse"
	_, err = OptionsFromConfig(cfg)
	assert.ErrorIs(t, err, codec.ErrUnknownScheme)
}

func TestSessionScenario(t *testing.T) {
	s := newSession(t, "default")
	require.Equal(t, 1, s.Registry.Len())

	// click the core at screen centre
	require.True(t, s.Click(screenW/2, screenH/2, screenW, screenH))
	assert.Equal(t, nav.ZoomingIn, s.Nav.Phase())
	assert.Contains(t, lastLog(s), "Approaching Core")
	settle(t, s)
	assert.Equal(t, nav.Focused, s.Nav.Phase())

	// second click opens the panel
	require.True(t, s.Click(10, 10, screenW, screenH))
	assert.Equal(t, nav.PanelOpen, s.Nav.Phase())
	require.True(t, s.Overlay.Visible())
	assert.Equal(t, "Core", s.Overlay.Title())

	s.Overlay.SetField("hi")
	s.Convert()
	assert.Equal(t, "0110100001101001", s.Overlay.Code())
	assert.Equal(t, "binary: 0110100001101001", lastLog(s))

	s.Overlay.SetField("")
	s.Reverse()
	assert.Equal(t, "hi", s.Overlay.Field())

	require.True(t, s.Escape())
	assert.Equal(t, nav.ZoomingOut, s.Nav.Phase())
	assert.False(t, s.Overlay.Visible())
	settle(t, s)
	assert.Equal(t, nav.Idle, s.Nav.Phase())
	assert.Equal(t, "At rest.", lastLog(s))
	assert.False(t, s.Escape(), "nothing left to close")

	v, _ := s.Registry.Node(0)
	assert.Equal(t, "hi", v.RawText)
	assert.Equal(t, "0110100001101001", v.Code)
}

func TestClickEmptySpaceSpawns(t *testing.T) {
	s := newSession(t, "default")
	require.True(t, s.Click(0, 0, screenW, screenH))
	assert.Equal(t, 2, s.Registry.Len())
	assert.Equal(t, nav.Idle, s.Nav.Phase())
	assert.Equal(t, "Node 1 appeared.", lastLog(s))
}

func TestSpawnLinkedNeedsFocus(t *testing.T) {
	s := newSession(t, "triad")
	assert.False(t, s.SpawnLinked())
	assert.Equal(t, "Focus a node first.", lastLog(s))

	require.True(t, s.Nav.Handle(nav.PointerAt(0)))
	settle(t, s)
	require.True(t, s.SpawnLinked())
	assert.Equal(t, 4, s.Registry.Len())
	assert.Len(t, s.Registry.Links(), 3)
	assert.Equal(t, "Linked Core to Node 3.", lastLog(s))
}

func TestConvertRequiresOpenPanel(t *testing.T) {
	s := newSession(t, "default")
	s.Overlay.SetField("hi")
	s.Convert()
	s.Reverse()
	assert.Empty(t, s.Overlay.Code())
	v, _ := s.Registry.Node(0)
	assert.Empty(t, v.RawText)
}

func TestCycleSchemeLogs(t *testing.T) {
	s := newSession(t, "triad")
	s.CycleScheme()
	assert.Equal(t, codec.NameBase4, s.Registry.Scheme().Name())
	assert.Equal(t, "Scheme: base4.", lastLog(s))

	v, _ := s.Registry.Node(0)
	assert.Equal(t, "01", v.Code, "seed payloads are re-encoded")
}

func TestTickAdvancesClock(t *testing.T) {
	s := newSession(t, "default")
	s.Tick(0.5)
	s.Tick(0.5)
	assert.Equal(t, uint64(2), s.Ticks)
	assert.InDelta(t, 1.0, s.Clock, 1e-9)
}
