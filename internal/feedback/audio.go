package feedback

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate of every rendered tone.
const SampleRate = 44100

const (
	bytesPerFrame = 4     // 16-bit little endian, stereo
	attackSec     = 0.005 // fade-in to avoid clicks
)

// AudioSynth plays tones through ebiten's audio context.
type AudioSynth struct {
	ctx     *audio.Context
	volume  float64
	players []*audio.Player
	drone   *Drone
}

// NewAudioSynth creates the process-wide audio context and starts the drone
// stream (silent until SetDrone raises it).
func NewAudioSynth(volume float64) (*AudioSynth, error) {
	ctx := audio.NewContext(SampleRate)
	drone := NewDrone(SampleRate)
	p, err := ctx.NewPlayer(drone)
	if err != nil {
		return nil, fmt.Errorf("create drone player: %w", err)
	}
	p.SetVolume(volume)
	p.Play()
	return &AudioSynth{
		ctx:     ctx,
		volume:  volume,
		players: []*audio.Player{p},
		drone:   drone,
	}, nil
}

// Play starts a one-shot tone.
func (s *AudioSynth) Play(t Tone) {
	s.prune()
	p, err := s.ctx.NewPlayer(bytes.NewReader(RenderTone(t, SampleRate)))
	if err != nil {
		log.Printf("[audio] tone %.0fHz: %v", t.Freq, err)
		return
	}
	p.SetVolume(s.volume)
	p.Play()
	s.players = append(s.players, p)
}

// SetDrone retunes the sustained drone.
func (s *AudioSynth) SetDrone(freq, amp float64) {
	s.drone.Set(freq, amp)
}

// prune closes finished tone players. The drone player (index 0) stays.
func (s *AudioSynth) prune() {
	kept := s.players[:1]
	for _, p := range s.players[1:] {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		if err := p.Close(); err != nil {
			log.Printf("[audio] close player: %v", err)
		}
	}
	s.players = kept
}

// RenderTone renders t as 16-bit stereo PCM with a short attack and a
// linear release.
func RenderTone(t Tone, rate int) []byte {
	n := int(t.Duration * float64(rate))
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n*bytesPerFrame)
	attack := int(attackSec * float64(rate))
	for i := 0; i < n; i++ {
		env := 1 - float64(i)/float64(n)
		if i < attack {
			env *= float64(i) / float64(attack)
		}
		v := math.Sin(2*math.Pi*t.Freq*float64(i)/float64(rate)) * t.Volume * env
		putFrame(buf[i*bytesPerFrame:], v)
	}
	return buf
}

// putFrame writes one stereo frame for a sample in [-1, 1].
func putFrame(dst []byte, v float64) {
	v = math.Max(-1, math.Min(1, v))
	s := uint16(int16(v * math.MaxInt16))
	binary.LittleEndian.PutUint16(dst[0:], s)
	binary.LittleEndian.PutUint16(dst[2:], s)
}

// Drone is an endless sine stream whose pitch and level can be changed
// while the audio goroutine reads it.
type Drone struct {
	mu    sync.Mutex
	rate  float64
	freq  float64
	amp   float64
	level float64 // smoothed amp
	phase float64
}

// NewDrone returns a silent drone.
func NewDrone(rate int) *Drone {
	return &Drone{rate: float64(rate), freq: droneBase}
}

// Set changes the target pitch and level.
func (d *Drone) Set(freq, amp float64) {
	d.mu.Lock()
	d.freq, d.amp = freq, amp
	d.mu.Unlock()
}

// Read implements io.Reader. It never returns an error.
func (d *Drone) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	frames := len(p) / bytesPerFrame
	step := 2 * math.Pi * d.freq / d.rate
	for i := 0; i < frames; i++ {
		d.level += (d.amp - d.level) * 0.002
		putFrame(p[i*bytesPerFrame:], math.Sin(d.phase)*d.level)
		d.phase += step
		if d.phase > 2*math.Pi {
			d.phase -= 2 * math.Pi
		}
	}
	return frames * bytesPerFrame, nil
}
