package scene

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mlange-42/ark/ecs"
	"github.com/nodeglyph/nodeglyph/internal/codec"
	"github.com/nodeglyph/nodeglyph/internal/geom"
)

// Spawn animation (per tick, at 60 TPS)
const (
	spawnScale = 0.1
	growFactor = 1.05
	grownScale = 1.5
)

// Options tunes how nodes are placed and animated.
type Options struct {
	SpawnExtent  float32 // half-width of the random spawn cube
	LinkDistance float32 // distance of a linked node from its origin
	NodeRadius   float32 // base radius of spawned nodes
	MinHueGap    float64 // minimum hue distance (degrees) between consecutive spawns
	DriftAmp     float32 // per-tick drift amplitude
	Seed         uint64
}

// DefaultOptions mirrors the classic scene: ±3 spawn cube, 0.3 radius nodes.
func DefaultOptions() Options {
	return Options{
		SpawnExtent:  3,
		LinkDistance: 1.5,
		NodeRadius:   0.3,
		MinHueGap:    25,
		DriftAmp:     0.0005,
		Seed:         1,
	}
}

// Registry owns every node and link of a session. Nodes live as entities
// in an ECS world; NodeID is their dense spawn index.
type Registry struct {
	world    *ecs.World
	bodies   *ecs.Map[Body]
	looks    *ecs.Map[Look]
	payloads *ecs.Map[Payload]
	builder  *ecs.Map3[Body, Look, Payload]

	entities []ecs.Entity
	links    []Link

	scheme  codec.Scheme
	rng     *rand.Rand
	opts    Options
	lastHue float64
	hasHue  bool

	pinned    NodeID
	hasPinned bool
}

// NewRegistry creates an empty registry encoding payloads with scheme.
func NewRegistry(scheme codec.Scheme, opts Options) *Registry {
	w := ecs.NewWorld(256)
	return &Registry{
		world:    w,
		bodies:   ecs.NewMap[Body](w),
		looks:    ecs.NewMap[Look](w),
		payloads: ecs.NewMap[Payload](w),
		builder:  ecs.NewMap3[Body, Look, Payload](w),
		scheme:   scheme,
		rng:      rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		opts:     opts,
	}
}

// Scheme returns the active codec scheme.
func (r *Registry) Scheme() codec.Scheme { return r.scheme }

// SetScheme switches the codec and re-encodes every payload so that Code
// keeps matching RawText.
func (r *Registry) SetScheme(s codec.Scheme) {
	r.scheme = s
	for _, e := range r.entities {
		p := r.payloads.Get(e)
		p.Code = s.Encode(p.RawText)
	}
}

// Len returns the number of nodes.
func (r *Registry) Len() int { return len(r.entities) }

// Valid reports whether id names a spawned node.
func (r *Registry) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(r.entities)
}

// add creates the entity behind a new node and returns its id.
func (r *Registry) add(body Body, look Look, title, text string) NodeID {
	id := NodeID(len(r.entities))
	if title == "" {
		title = defaultTitle(id)
	}
	payload := Payload{Title: title, RawText: text, Code: r.scheme.Encode(text)}
	e := r.builder.NewEntity(&body, &look, &payload)
	r.entities = append(r.entities, e)
	return id
}

// Place creates a node at an explicit position. Used for seed nodes.
func (r *Registry) Place(pos geom.Vec3, radius float32, c color.RGBA, title, text string) NodeID {
	return r.add(
		Body{Pos: pos, Radius: radius, Scale: 1},
		Look{Color: c},
		title, text,
	)
}

// Spawn creates an unlinked node at a random point of the spawn cube.
func (r *Registry) Spawn() NodeID {
	ext := r.opts.SpawnExtent
	pos := geom.V3(
		(r.rng.Float32()*2-1)*ext,
		(r.rng.Float32()*2-1)*ext,
		(r.rng.Float32()*2-1)*ext,
	)
	return r.spawnAt(pos)
}

// SpawnNear creates a node one link distance from origin in a random
// direction. An unknown origin falls back to a plain Spawn.
func (r *Registry) SpawnNear(origin NodeID) NodeID {
	if !r.Valid(origin) {
		return r.Spawn()
	}
	base := r.bodies.Get(r.entities[origin]).Pos
	pos := base.Add(r.randomDir().MulScalar(r.opts.LinkDistance))
	return r.spawnAt(pos)
}

func (r *Registry) spawnAt(pos geom.Vec3) NodeID {
	hue := r.nextHue()
	cr, cg, cb := colorful.Hsl(hue, 1.0, 0.6).Clamped().RGB255()
	return r.add(
		Body{Pos: pos, Radius: r.opts.NodeRadius, Scale: spawnScale, Growing: true},
		Look{Color: color.RGBA{cr, cg, cb, 255}, Hue: hue},
		"", "",
	)
}

// nextHue picks a random hue at least MinHueGap away from the previous one.
func (r *Registry) nextHue() float64 {
	var h float64
	for range 16 {
		h = r.rng.Float64() * 360
		if !r.hasHue || hueDistance(h, r.lastHue) >= r.opts.MinHueGap {
			break
		}
	}
	r.lastHue, r.hasHue = h, true
	return h
}

func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func (r *Registry) randomDir() geom.Vec3 {
	for {
		v := geom.V3(float32(r.rng.NormFloat64()), float32(r.rng.NormFloat64()), float32(r.rng.NormFloat64()))
		if v.Length() > 1e-6 {
			return v.Normal()
		}
	}
}

// Link records an association between two existing nodes. Duplicates are
// kept. It returns false if either id is unknown.
func (r *Registry) Link(a, b NodeID) bool {
	if !r.Valid(a) || !r.Valid(b) {
		return false
	}
	r.links = append(r.links, Link{
		A:    a,
		B:    b,
		Ends: [2]geom.Vec3{r.bodies.Get(r.entities[a]).Pos, r.bodies.Get(r.entities[b]).Pos},
	})
	return true
}

// Links returns the recorded links in creation order.
func (r *Registry) Links() []Link { return r.links }

// HitTest returns the nearest node whose sphere the ray crosses. Equal
// distances resolve to the lower id.
func (r *Registry) HitTest(ray geom.Ray) (NodeID, bool) {
	best := NodeID(-1)
	bestT := float32(math.MaxFloat32)
	for i, e := range r.entities {
		b := r.bodies.Get(e)
		t, ok := ray.IntersectSphere(b.Pos, b.Extent())
		if ok && t < bestT {
			best, bestT = NodeID(i), t
		}
	}
	return best, best >= 0
}

// Node returns a snapshot of a node.
func (r *Registry) Node(id NodeID) (View, bool) {
	if !r.Valid(id) {
		return View{}, false
	}
	e := r.entities[id]
	return View{
		ID:      id,
		Body:    *r.bodies.Get(e),
		Look:    *r.looks.Get(e),
		Payload: *r.payloads.Get(e),
	}, true
}

// Each calls fn for every node in id order.
func (r *Registry) Each(fn func(View)) {
	for i := range r.entities {
		v, _ := r.Node(NodeID(i))
		fn(v)
	}
}

// Position returns a node's current position.
func (r *Registry) Position(id NodeID) (geom.Vec3, bool) {
	if !r.Valid(id) {
		return geom.Vec3{}, false
	}
	return r.bodies.Get(r.entities[id]).Pos, true
}

// UpdatePayload overwrites a node's title and text and re-encodes its code.
// It is the only way payloads change.
func (r *Registry) UpdatePayload(id NodeID, title, rawText string) bool {
	if !r.Valid(id) {
		return false
	}
	p := r.payloads.Get(r.entities[id])
	p.Title = title
	p.RawText = rawText
	p.Code = r.scheme.Encode(rawText)
	return true
}

// SetGlow sets the highlight intensity of a node.
func (r *Registry) SetGlow(id NodeID, v float32) {
	if r.Valid(id) {
		r.looks.Get(r.entities[id]).Glow = v
	}
}

// Pin freezes a node's drift so a camera can hold it in view.
func (r *Registry) Pin(id NodeID) {
	r.pinned, r.hasPinned = id, r.Valid(id)
}

// Unpin releases the pinned node.
func (r *Registry) Unpin() { r.hasPinned = false }

// Tick advances spawn growth and the ambient drift. t is the session clock
// in seconds.
func (r *Registry) Tick(t float64) {
	amp := r.opts.DriftAmp
	for i, e := range r.entities {
		b := r.bodies.Get(e)
		if b.Growing {
			b.Scale *= growFactor
			if b.Scale >= grownScale {
				b.Scale = grownScale
				b.Growing = false
			}
		}
		if amp == 0 || (r.hasPinned && NodeID(i) == r.pinned) {
			continue
		}
		fi := float64(i)
		b.Pos.X += float32(math.Sin(t+fi)) * amp
		b.Pos.Y += float32(math.Cos(t+fi*0.5)) * amp
	}
}
