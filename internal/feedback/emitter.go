// Package feedback turns navigation events into short tonal cues and a
// sustained drone that follows camera zooms.
package feedback

import "github.com/nodeglyph/nodeglyph/internal/nav"

// Tone is a single sine cue.
type Tone struct {
	Freq     float64 // Hz
	Duration float64 // seconds
	Volume   float64 // 0..1
}

// Synth plays tones. Implementations must not block the frame loop.
type Synth interface {
	Play(t Tone)
	SetDrone(freq, amp float64)
}

// Mute is a Synth that discards everything.
type Mute struct{}

func (Mute) Play(Tone) {}
func (Mute) SetDrone(float64, float64) {}

// Cue tones
var (
	CueFocus  = Tone{Freq: 660, Duration: 0.35, Volume: 0.5}
	CuePanel  = Tone{Freq: 880, Duration: 0.12, Volume: 0.35}
	CueLinked = Tone{Freq: 523.25, Duration: 0.2, Volume: 0.4}
)

// spawn pitches cycle through a major pentatonic scale.
var pentatonic = [...]float64{261.63, 293.66, 329.63, 392.00, 440.00, 523.25}

// Drone shape during zooms.
const (
	droneBase  = 110.0
	droneSpan  = 110.0
	droneLevel = 0.15
)

// Emitter maps navigator events onto a Synth.
type Emitter struct {
	synth Synth
}

// NewEmitter returns an emitter playing through s.
func NewEmitter(s Synth) *Emitter {
	if s == nil {
		s = Mute{}
	}
	return &Emitter{synth: s}
}

// Attach subscribes the emitter to a navigator.
func (e *Emitter) Attach(nv *nav.Navigator) {
	nv.Subscribe(e.OnEvent)
}

// OnEvent reacts to a single navigator event.
func (e *Emitter) OnEvent(ev nav.Event) {
	switch ev.Kind {
	case nav.EvFocusFirstTime:
		e.synth.Play(CueFocus)
	case nav.EvPanelOpened:
		e.synth.Play(CuePanel)
	case nav.EvNodeSpawned:
		e.synth.Play(SpawnTone(int(ev.Node)))
	case nav.EvNodeLinked:
		e.synth.Play(CueLinked)
	case nav.EvZoomProgress:
		p := float64(ev.Progress)
		if ev.Phase == nav.ZoomingOut {
			p = 1 - p
		}
		e.synth.SetDrone(droneBase+droneSpan*p, droneLevel)
	case nav.EvFocused, nav.EvIdle:
		e.synth.SetDrone(droneBase, 0)
	}
}

// SpawnTone is the cue for the n-th spawned node.
func SpawnTone(n int) Tone {
	if n < 0 {
		n = -n
	}
	return Tone{Freq: pentatonic[n%len(pentatonic)], Duration: 0.18, Volume: 0.3}
}
