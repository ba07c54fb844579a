// Package game wires the scene, the navigator and the overlay into one
// session driven by the frame loop.
package game

import (
	"fmt"
	"time"

	"github.com/nodeglyph/nodeglyph/internal/codec"
	"github.com/nodeglyph/nodeglyph/internal/config"
	"github.com/nodeglyph/nodeglyph/internal/geom"
	"github.com/nodeglyph/nodeglyph/internal/nav"
	"github.com/nodeglyph/nodeglyph/internal/overlay"
	"github.com/nodeglyph/nodeglyph/internal/scene"
)

// logSize is how many wrapped lines the event log keeps.
const logSize = 50

// Options collects everything needed to build a session.
type Options struct {
	Scheme codec.Scheme
	Scene  scene.Options
	Nav    nav.Options
	FOV    float32
}

// OptionsFromConfig translates loaded settings. A zero seed is replaced by
// the current time.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	scheme, err := codec.Lookup(cfg.Codec.Scheme)
	if err != nil {
		return Options{}, fmt.Errorf("codec: %w", err)
	}

	so := scene.Options{
		SpawnExtent:  cfg.Scene.SpawnExtent,
		LinkDistance: cfg.Scene.LinkDistance,
		NodeRadius:   cfg.Scene.NodeRadius,
		MinHueGap:    cfg.Scene.MinHueGap,
		DriftAmp:     cfg.Scene.DriftAmp,
		Seed:         cfg.Scene.Seed,
	}
	if so.Seed == 0 {
		so.Seed = uint64(time.Now().UnixNano())
	}

	no := nav.DefaultOptions()
	no.ZoomDuration = cfg.Camera.ZoomDuration.Seconds()
	no.FocusDistance = cfg.Camera.FocusDistance
	no.RestPos = geom.V3(0, 0, cfg.Camera.RestDistance)
	no.SpawnOnMiss = cfg.Camera.SpawnOnMiss

	return Options{Scheme: scheme, Scene: so, Nav: no, FOV: cfg.Camera.FOV}, nil
}

// Session owns all interactive state of one run.
type Session struct {
	Camera   *geom.Camera
	Registry *scene.Registry
	Nav      *nav.Navigator
	Overlay  *overlay.Overlay
	Log      *MessageLog
	Clock    float64 // seconds since start
	Ticks    uint64
}

// NewSession builds a session and seeds it from preset (which may be nil).
func NewSession(opts Options, preset *scene.Preset) *Session {
	reg := scene.NewRegistry(opts.Scheme, opts.Scene)
	if preset != nil {
		reg.Apply(preset)
	}

	cam := geom.NewCamera(opts.Nav.RestPos, opts.FOV)
	nv := nav.New(reg, cam, opts.Nav)

	s := &Session{
		Camera:   cam,
		Registry: reg,
		Nav:      nv,
		Overlay:  overlay.New(reg, nv),
		Log:      NewMessageLog(logSize),
	}
	nv.Subscribe(s.logEvent)

	s.Log.Add(fmt.Sprintf("%d node(s) online. Scheme: %s.", reg.Len(), opts.Scheme.Name()), MsgInfo)
	s.Log.Add("Click a node to approach it.", MsgInfo)
	return s
}

// Click casts a ray through a screen pixel and forwards the hit (or miss)
// to the navigator. w and h are the viewport size.
func (s *Session) Click(sx, sy, w, h float32) bool {
	ray := s.Camera.Ray(sx, sy, w, h)
	if id, ok := s.Registry.HitTest(ray); ok {
		return s.Nav.Handle(nav.PointerAt(id))
	}
	return s.Nav.Handle(nav.PointerMiss())
}

// Tick advances the scene animation and any running zoom by dt seconds.
func (s *Session) Tick(dt float64) {
	s.Ticks++
	s.Clock += dt
	s.Registry.Tick(s.Clock)
	s.Nav.Update(dt)
}

// SpawnLinked grows a new node off the focused one.
func (s *Session) SpawnLinked() bool {
	if !s.Nav.Handle(nav.Command{Kind: nav.CmdSpawnLinked}) {
		s.Log.Add("Focus a node first.", MsgWarning)
		return false
	}
	return true
}

// Convert encodes the panel's field into the focused node.
func (s *Session) Convert() {
	if !s.Overlay.Visible() {
		return
	}
	s.Overlay.Submit(s.Overlay.Field())
	if code := s.Overlay.Code(); code != "" {
		s.Log.Add(fmt.Sprintf("%s: %s", s.Overlay.Scheme().Name(), code), MsgCode)
	}
}

// Reverse decodes the shown code back into the field.
func (s *Session) Reverse() {
	if !s.Overlay.Visible() || s.Overlay.Code() == "" {
		return
	}
	s.Overlay.Reverse()
	s.Log.Add(fmt.Sprintf("Decoded: %q", s.Overlay.Field()), MsgCode)
}

// CycleScheme switches the encoding scheme for every node.
func (s *Session) CycleScheme() {
	sc := s.Overlay.CycleScheme()
	s.Log.Add(fmt.Sprintf("Scheme: %s.", sc.Name()), MsgInfo)
}

// Escape closes the panel if it is open. It reports false when there was
// nothing to close and the session is at rest.
func (s *Session) Escape() bool {
	switch s.Nav.Phase() {
	case nav.PanelOpen:
		s.Overlay.Close()
		return true
	case nav.Idle:
		return false
	}
	return true
}

func (s *Session) title(id scene.NodeID) string {
	if v, ok := s.Registry.Node(id); ok {
		return v.Title
	}
	return fmt.Sprintf("#%d", id)
}

// logEvent records navigator events in the HUD log.
func (s *Session) logEvent(ev nav.Event) {
	switch ev.Kind {
	case nav.EvZoomStarted:
		if ev.Phase == nav.ZoomingIn {
			s.Log.Add(fmt.Sprintf("Approaching %s.", s.title(ev.Node)), MsgInfo)
		}
	case nav.EvFocusFirstTime:
		s.Log.Add(fmt.Sprintf("Contact with %s.", s.title(ev.Node)), MsgSpawn)
	case nav.EvFocused:
		s.Log.Add(fmt.Sprintf("Holding at %s. Click to open.", s.title(ev.Node)), MsgInfo)
	case nav.EvPanelClosed:
		if ev.Phase == nav.ZoomingOut {
			s.Log.Add("Pulling back.", MsgInfo)
		}
	case nav.EvIdle:
		s.Log.Add("At rest.", MsgInfo)
	case nav.EvNodeSpawned:
		s.Log.Add(fmt.Sprintf("%s appeared.", s.title(ev.Node)), MsgSpawn)
	case nav.EvNodeLinked:
		s.Log.Add(fmt.Sprintf("Linked %s to %s.", s.title(ev.Node), s.title(ev.Other)), MsgSpawn)
	}
}
