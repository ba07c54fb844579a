package scene

import (
	"image/color"
	"testing"

	"github.com/nodeglyph/nodeglyph/internal/codec"
	"github.com/nodeglyph/nodeglyph/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cyan = color.RGBA{0, 255, 255, 255}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	opts := DefaultOptions()
	opts.Seed = 42
	return NewRegistry(codec.Binary{}, opts)
}

func TestSpawnStaysInCube(t *testing.T) {
	r := newTestRegistry(t)
	for range 200 {
		id := r.Spawn()
		pos, ok := r.Position(id)
		require.True(t, ok)
		for _, c := range []float32{pos.X, pos.Y, pos.Z} {
			assert.LessOrEqual(t, c, float32(3))
			assert.GreaterOrEqual(t, c, float32(-3))
		}
	}
	assert.Equal(t, 200, r.Len())
}

func TestSpawnAssignsDistinctHues(t *testing.T) {
	r := newTestRegistry(t)
	var prev float64
	for i := range 50 {
		v, _ := r.Node(r.Spawn())
		if i > 0 {
			assert.GreaterOrEqual(t, hueDistance(v.Hue, prev), 25.0)
		}
		prev = v.Hue
		assert.Equal(t, uint8(255), v.Color.A)
	}
}

func TestSpawnNearUsesLinkDistance(t *testing.T) {
	r := newTestRegistry(t)
	origin := r.Place(geom.V3(1, 2, 3), 1, cyan, "Core", "")
	id := r.SpawnNear(origin)

	a, _ := r.Position(origin)
	b, _ := r.Position(id)
	assert.InDelta(t, 1.5, a.DistanceTo(b), 1e-4)

	fallback := r.SpawnNear(NodeID(99))
	assert.True(t, r.Valid(fallback))
}

func TestNewNodeDefaults(t *testing.T) {
	r := newTestRegistry(t)
	id := r.Spawn()
	v, ok := r.Node(id)
	require.True(t, ok)
	assert.Equal(t, "Node 0", v.Title)
	assert.Empty(t, v.RawText)
	assert.Empty(t, v.Code)
	assert.True(t, v.Growing)
	assert.InDelta(t, 0.1, v.Scale, 1e-6)
}

func TestHitTestNearest(t *testing.T) {
	r := newTestRegistry(t)
	far := r.Place(geom.V3(0, 0, -4), 1, cyan, "far", "")
	near := r.Place(geom.V3(0, 0, 0), 1, cyan, "near", "")
	r.Place(geom.V3(5, 0, 0), 1, cyan, "aside", "")

	ray := geom.Ray{Origin: geom.V3(0, 0, 5), Dir: geom.V3(0, 0, -1)}
	id, ok := r.HitTest(ray)
	require.True(t, ok)
	assert.Equal(t, near, id)
	assert.NotEqual(t, far, id)

	_, ok = r.HitTest(geom.Ray{Origin: geom.V3(0, 0, 5), Dir: geom.V3(0, 1, 0)})
	assert.False(t, ok, "empty space is no selection")
}

func TestHitTestTieGoesToLowerID(t *testing.T) {
	r := newTestRegistry(t)
	first := r.Place(geom.V3(0, 0, 0), 1, cyan, "a", "")
	r.Place(geom.V3(0, 0, 0), 1, cyan, "b", "")

	ray := geom.Ray{Origin: geom.V3(0, 0, 5), Dir: geom.V3(0, 0, -1)}
	for range 3 {
		id, ok := r.HitTest(ray)
		require.True(t, ok)
		assert.Equal(t, first, id)
	}
}

func TestLinkToleratesDuplicates(t *testing.T) {
	r := newTestRegistry(t)
	a := r.Place(geom.V3(0, 0, 0), 1, cyan, "a", "")
	b := r.Place(geom.V3(1, 0, 0), 1, cyan, "b", "")

	assert.True(t, r.Link(a, b))
	assert.True(t, r.Link(a, b))
	assert.False(t, r.Link(a, NodeID(7)))

	links := r.Links()
	require.Len(t, links, 2)
	assert.Equal(t, geom.V3(1, 0, 0), links[0].Ends[1])
}

func TestUpdatePayloadKeepsCodeInSync(t *testing.T) {
	r := newTestRegistry(t)
	id := r.Place(geom.V3(0, 0, 0), 1, cyan, "Core", "")

	require.True(t, r.UpdatePayload(id, "Greeting", "hi"))
	v, _ := r.Node(id)
	assert.Equal(t, "Greeting", v.Title)
	assert.Equal(t, "hi", v.RawText)
	assert.Equal(t, "0110100001101001", v.Code)

	r.SetScheme(codec.Base4{})
	v, _ = r.Node(id)
	assert.Equal(t, "01", v.Code)

	assert.False(t, r.UpdatePayload(NodeID(5), "x", "y"))
}

func TestTickGrowsAndDrifts(t *testing.T) {
	r := newTestRegistry(t)
	seed := r.Place(geom.V3(0, 0, 0), 1, cyan, "Core", "")
	spawned := r.Spawn()
	start, _ := r.Position(spawned)

	for i := range 120 {
		r.Tick(float64(i) / 60)
	}

	v, _ := r.Node(spawned)
	assert.False(t, v.Growing)
	assert.InDelta(t, 1.5, v.Scale, 1e-6)
	assert.NotEqual(t, start, v.Pos)

	s, _ := r.Node(seed)
	assert.InDelta(t, 1, s.Scale, 1e-6, "seed nodes do not grow")
}

func TestPinnedNodeDoesNotDrift(t *testing.T) {
	r := newTestRegistry(t)
	id := r.Place(geom.V3(1, 1, 1), 1, cyan, "Core", "")
	r.Pin(id)
	for i := range 60 {
		r.Tick(float64(i))
	}
	pos, _ := r.Position(id)
	assert.Equal(t, geom.V3(1, 1, 1), pos)

	r.Unpin()
	r.Tick(1)
	pos, _ = r.Position(id)
	assert.NotEqual(t, geom.V3(1, 1, 1), pos)
}

func TestEachVisitsInOrder(t *testing.T) {
	r := newTestRegistry(t)
	for range 4 {
		r.Spawn()
	}
	var seen []NodeID
	r.Each(func(v View) { seen = append(seen, v.ID) })
	assert.Equal(t, []NodeID{0, 1, 2, 3}, seen)
}
