package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/nodeglyph/nodeglyph/assets"
	"github.com/nodeglyph/nodeglyph/internal/codec"
	"github.com/nodeglyph/nodeglyph/internal/config"
	"github.com/nodeglyph/nodeglyph/internal/feedback"
	"github.com/nodeglyph/nodeglyph/internal/game"
	"github.com/nodeglyph/nodeglyph/internal/nav"
	"github.com/nodeglyph/nodeglyph/internal/render"
	"github.com/nodeglyph/nodeglyph/internal/scene"
)

const (
	cellWidth  = 16
	cellHeight = 16

	logMax      = 6  // visible event log lines
	statusTicks = 90 // how long a status note stays up (1.5s at 60 TPS)
	panelTop    = 3

	// key repeat, in ticks
	repeatDelay    = 24
	repeatInterval = 3
)

// Game is the Ebitengine game struct. It owns rendering and input.
// All interactive state lives in session.
type Game struct {
	cfg      *config.Config
	session  *game.Session
	renderer *render.GridRenderer
	buffer   *render.CellBuffer
	muted    bool

	width, height int
	runes         []rune
	status        string
	statusLeft    int
}

func NewGame(cfg *config.Config, session *game.Session, muted bool) *Game {
	w, h := cfg.Window.Width, cfg.Window.Height
	atlas := render.NewFontAtlas()
	return &Game{
		cfg:      cfg,
		session:  session,
		renderer: render.NewGridRenderer(atlas, cellWidth, cellHeight),
		buffer:   render.NewCellBuffer(w/cellWidth, h/cellHeight),
		muted:    muted,
		width:    w,
		height:   h,
	}
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusLeft = statusTicks
}

// repeatingKeyPressed reports a key press on its first tick and then at a
// steady rate while it is held.
func repeatingKeyPressed(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (g *Game) Update() error {
	s := g.session
	ctrl := ctrlPressed()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if !s.Escape() {
			return ebiten.Termination
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		s.Click(float32(mx), float32(my), float32(g.width), float32(g.height))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		s.Overlay.Dismiss()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		s.CycleScheme()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyL) {
		s.SpawnLinked()
	}

	if s.Overlay.Visible() {
		g.updatePanel(ctrl)
	}

	s.Tick(1.0 / float64(ebiten.TPS()))

	if g.statusLeft > 0 {
		g.statusLeft--
		if g.statusLeft == 0 {
			g.status = ""
		}
	}
	g.drawScreen()
	return nil
}

// updatePanel handles text entry and panel shortcuts.
func (g *Game) updatePanel(ctrl bool) {
	s := g.session
	ov := s.Overlay

	if ctrl {
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.copyCode()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyE) {
			g.exportStrip()
		}
		return
	}

	g.runes = ebiten.AppendInputChars(g.runes[:0])
	ov.Insert(g.runes)
	if repeatingKeyPressed(ebiten.KeyBackspace) {
		ov.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		s.Convert()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.Reverse()
	}
}

func (g *Game) copyCode() {
	code := g.session.Overlay.Code()
	if code == "" {
		g.setStatus("nothing to copy")
		return
	}
	if err := clipboard.WriteAll(code); err != nil {
		log.Printf("[clipboard] %v", err)
		g.session.Log.Add(fmt.Sprintf("Copy failed: %v", err), game.MsgError)
		return
	}
	g.setStatus("copied")
}

func (g *Game) exportStrip() {
	ov := g.session.Overlay
	path := render.StripPath(g.cfg.Export.Dir, ov.Title(), time.Now())
	err := render.ExportStrip(path, render.StripImage{
		Title:  ov.Title(),
		Scheme: ov.Scheme().Name(),
		Code:   ov.Code(),
		Colors: ov.Strip(),
		Cell:   g.cfg.Export.CellSize,
	})
	switch {
	case errors.Is(err, render.ErrEmptyStrip):
		g.setStatus("nothing to export")
	case err != nil:
		log.Printf("[export] %v", err)
		g.session.Log.Add(fmt.Sprintf("Export failed: %v", err), game.MsgError)
	default:
		g.session.Log.Add(fmt.Sprintf("Saved %s", path), game.MsgInfo)
		g.setStatus("exported")
	}
}

func msgColor(p game.MsgPriority) uint8 {
	switch p {
	case game.MsgWarning:
		return render.ColorYellow
	case game.MsgError:
		return render.ColorLightRed
	case game.MsgSpawn:
		return render.ColorLightGreen
	case game.MsgCode:
		return render.ColorWhite
	default:
		return render.ColorCyan
	}
}

func (g *Game) drawScreen() {
	s := g.session
	buf := g.buffer
	buf.Clear()

	recent := s.Log.Recent(logMax)
	lines := make([]render.LogLine, len(recent))
	for i, m := range recent {
		lines[i] = render.LogLine{Text: m.Text, FG: msgColor(m.Priority)}
	}
	render.DrawHUD(buf, render.HUD{
		Phase:  s.Nav.Phase(),
		Scheme: s.Registry.Scheme().Name(),
		Nodes:  s.Registry.Len(),
		Links:  len(s.Registry.Links()),
		Muted:  g.muted,
		Log:    lines,
		Status: g.status,
	})
	render.DrawPanel(buf, s.Overlay, buf.Cols-render.PanelWidth-1, panelTop)
	g.updateHoverInfo()
}

// updateHoverInfo names the node under the cursor on the second row.
func (g *Game) updateHoverInfo() {
	s := g.session
	if s.Nav.Phase() != nav.Idle {
		return
	}
	mx, my := ebiten.CursorPosition()
	ray := s.Camera.Ray(float32(mx), float32(my), float32(g.width), float32(g.height))
	id, ok := s.Registry.HitTest(ray)
	if !ok {
		return
	}
	v, _ := s.Registry.Node(id)
	info := fmt.Sprintf("%s  [%d]", v.Title, id)
	if v.Code != "" {
		info += "  " + v.Code
	}
	g.buffer.WriteClipped(1, 1, g.buffer.Cols-2, info, render.ColorYellow, render.ColorBlack)
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.session
	w, h := float32(g.width), float32(g.height)
	sprites := render.ProjectNodes(s.Registry, s.Camera, w, h)
	render.DrawScene(screen, sprites, render.ProjectLinks(s.Registry, s.Camera, w, h))

	if s.Nav.Phase() == nav.Idle {
		for _, sp := range sprites {
			px := float64(sp.X) - float64(len(sp.Title)*cellWidth)/2
			py := float64(sp.Y+sp.R) + 4
			g.renderer.DrawLabel(screen, sp.Title, sp.Color, px, py)
		}
	}
	g.renderer.Draw(screen, g.buffer)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func loadPreset(name string) (*scene.Preset, error) {
	data, err := assets.Preset(name)
	if err != nil {
		return nil, err
	}
	return scene.LoadPreset(data)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		configPath = flag.String("config", "", "config file (default: search standard locations)")
		scheme     = flag.String("scheme", "", "initial encoding scheme (binary, base4)")
		seed       = flag.Uint64("seed", 0, "spawn seed (0: time based)")
		preset     = flag.String("preset", "", "seed scene preset")
		mute       = flag.Bool("mute", false, "disable audio")
	)
	flag.Parse()

	var (
		cfg  *config.Config
		path string
		err  error
	)
	if *configPath != "" {
		cfg, path, err = config.LoadFromPath(*configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		log.Fatalf("load config %s: %v", path, err)
	}
	if path != "" {
		log.Printf("config: %s", path)
	}
	if *scheme != "" {
		cfg.Codec.Scheme = *scheme
	}
	if *seed != 0 {
		cfg.Scene.Seed = *seed
	}
	if *preset != "" {
		cfg.Scene.Preset = *preset
	}
	muted := *mute || !cfg.Audio.Enabled

	opts, err := game.OptionsFromConfig(cfg)
	if err != nil {
		log.Fatalf("options: %v (schemes: %v)", err, codec.Names())
	}
	p, err := loadPreset(cfg.Scene.Preset)
	if err != nil {
		log.Fatalf("load preset: %v (presets: %v)", err, assets.PresetNames())
	}

	session := game.NewSession(opts, p)

	var synth feedback.Synth = feedback.Mute{}
	if !muted {
		as, err := feedback.NewAudioSynth(cfg.Audio.Volume)
		if err != nil {
			log.Printf("[audio] disabled: %v", err)
			muted = true
		} else {
			synth = as
		}
	}
	feedback.NewEmitter(synth).Attach(session.Nav)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewGame(cfg, session, muted)); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
