// Package nav is the selection and camera navigation state machine.
//
// The navigator is driven from one goroutine: discrete commands go through
// Handle and the frame loop calls Update once per tick. Camera motion is a
// linear interpolation over a fixed duration. While a zoom runs, further
// focus requests are ignored so only one animation ever writes the camera.
package nav

import (
	"github.com/nodeglyph/nodeglyph/internal/geom"
	"github.com/nodeglyph/nodeglyph/internal/scene"
)

// Options configures camera motion and click behaviour.
type Options struct {
	ZoomDuration  float64   // seconds per zoom
	FocusDistance float32   // camera distance from a focused node
	RestPos       geom.Vec3 // camera position when idle
	RestTarget    geom.Vec3 // camera look-at when idle
	SpawnOnMiss   bool      // clicking empty space while idle spawns a node
}

// DefaultOptions returns the classic setup: camera at z=5 looking at the
// origin, 1.6s zooms.
func DefaultOptions() Options {
	return Options{
		ZoomDuration:  1.6,
		FocusDistance: 2.5,
		RestPos:       geom.V3(0, 0, 5),
		RestTarget:    geom.V3(0, 0, 0),
		SpawnOnMiss:   true,
	}
}

// zoom is one camera animation. gen ties it to the navigator generation
// that started it.
type zoom struct {
	gen                  uint64
	fromPos, toPos       geom.Vec3
	fromTarget, toTarget geom.Vec3
	elapsed, duration    float64
}

// Navigator owns the navigation state and drives the shared camera.
type Navigator struct {
	reg  *scene.Registry
	cam  *geom.Camera
	opts Options

	state    State
	anim     *zoom
	gen      uint64
	cued     bool // first-focus cue already emitted this episode
	handlers []Handler
}

// New creates an idle navigator and puts the camera in its rest pose.
func New(reg *scene.Registry, cam *geom.Camera, opts Options) *Navigator {
	cam.Pos = opts.RestPos
	cam.Target = opts.RestTarget
	return &Navigator{reg: reg, cam: cam, opts: opts}
}

// Subscribe registers h for every subsequent event.
func (n *Navigator) Subscribe(h Handler) {
	n.handlers = append(n.handlers, h)
}

// State returns a copy of the current navigation state.
func (n *Navigator) State() State { return n.state }

// Phase returns the current phase.
func (n *Navigator) Phase() Phase { return n.state.Phase }

// Focused returns the focused node, if any.
func (n *Navigator) Focused() (scene.NodeID, bool) {
	return n.state.Focused, n.state.HasFocus
}

// Animating reports whether a zoom is in progress.
func (n *Navigator) Animating() bool { return n.anim != nil }

func (n *Navigator) emit(ev Event) {
	ev.Phase = n.state.Phase
	for _, h := range n.handlers {
		h(ev)
	}
}

// Handle applies one command. It returns false when the command is not
// valid in the current phase and was ignored.
func (n *Navigator) Handle(cmd Command) bool {
	switch cmd.Kind {
	case CmdPointer:
		return n.pointer(cmd)
	case CmdClose:
		if n.state.Phase != PanelOpen {
			return false
		}
		n.state.Phase = ZoomingOut
		n.state.Progress = 0
		n.emit(Event{Kind: EvPanelClosed, Node: n.state.Focused})
		n.start(n.opts.RestPos, n.opts.RestTarget)
		return true
	case CmdDismiss:
		if n.state.Phase != PanelOpen {
			return false
		}
		n.state.Phase = Focused
		n.emit(Event{Kind: EvPanelClosed, Node: n.state.Focused})
		return true
	case CmdSpawnLinked:
		if n.state.Phase != Focused && n.state.Phase != PanelOpen {
			return false
		}
		src := n.state.Focused
		id := n.reg.SpawnNear(src)
		n.reg.Link(src, id)
		n.emit(Event{Kind: EvNodeSpawned, Node: id})
		n.emit(Event{Kind: EvNodeLinked, Node: src, Other: id})
		return true
	}
	return false
}

func (n *Navigator) pointer(cmd Command) bool {
	hit := cmd.Hit && n.reg.Valid(cmd.Node)
	switch n.state.Phase {
	case Idle:
		if hit {
			n.focus(cmd.Node)
			return true
		}
		if !n.opts.SpawnOnMiss {
			return false
		}
		id := n.reg.Spawn()
		n.emit(Event{Kind: EvNodeSpawned, Node: id})
		return true
	case Focused:
		n.state.Phase = PanelOpen
		if !n.cued {
			n.cued = true
			n.emit(Event{Kind: EvFocusFirstTime, Node: n.state.Focused})
		}
		n.emit(Event{Kind: EvPanelOpened, Node: n.state.Focused})
		return true
	case PanelOpen:
		if !hit || cmd.Node != n.state.Focused {
			return false
		}
		n.emit(Event{Kind: EvPanelOpened, Node: n.state.Focused})
		return true
	}
	// ZoomingIn, ZoomingOut: a camera animation owns the camera.
	return false
}

func (n *Navigator) focus(id scene.NodeID) {
	pos, _ := n.reg.Position(id)
	n.state = State{Phase: ZoomingIn, Focused: id, HasFocus: true}
	n.reg.Pin(id)
	n.reg.SetGlow(id, 1)
	n.start(pos.Add(n.cam.ViewAxis().MulScalar(n.opts.FocusDistance)), pos)
}

// start replaces any running zoom with a new one toward (pos, target).
func (n *Navigator) start(pos, target geom.Vec3) {
	n.gen++
	n.anim = &zoom{
		gen:        n.gen,
		fromPos:    n.cam.Pos,
		toPos:      pos,
		fromTarget: n.cam.Target,
		toTarget:   target,
		duration:   n.opts.ZoomDuration,
	}
	n.emit(Event{Kind: EvZoomStarted, Node: n.state.Focused})
}

// Update advances the running zoom by dt seconds. It is a no-op when no
// animation is active.
func (n *Navigator) Update(dt float64) {
	if n.anim == nil {
		return
	}
	n.step(n.anim, dt)
}

// step applies one frame of z. Frames of a superseded zoom are dropped.
func (n *Navigator) step(z *zoom, dt float64) {
	if z == nil || z.gen != n.gen || z != n.anim {
		return
	}
	if dt > 0 {
		z.elapsed += dt
	}
	p := float32(1)
	if z.duration > 0 && z.elapsed < z.duration {
		p = float32(z.elapsed / z.duration)
	}
	n.cam.Pos = z.fromPos.Lerp(z.toPos, p)
	n.cam.Target = z.fromTarget.Lerp(z.toTarget, p)
	if p >= 1 {
		// land exactly on the target pose
		n.cam.Pos = z.toPos
		n.cam.Target = z.toTarget
	}
	n.state.Progress = p
	n.emit(Event{Kind: EvZoomProgress, Node: n.state.Focused, Progress: p})
	if p >= 1 {
		n.anim = nil
		n.finish()
	}
}

func (n *Navigator) finish() {
	switch n.state.Phase {
	case ZoomingIn:
		n.state.Phase = Focused
		n.emit(Event{Kind: EvFocused, Node: n.state.Focused})
	case ZoomingOut:
		n.reg.SetGlow(n.state.Focused, 0)
		n.reg.Unpin()
		n.state = State{Phase: Idle}
		n.cued = false
		n.emit(Event{Kind: EvIdle})
	}
}
