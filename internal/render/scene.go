package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/nodeglyph/nodeglyph/internal/geom"
	"github.com/nodeglyph/nodeglyph/internal/scene"
)

// Sprite is a node projected to the screen.
type Sprite struct {
	ID    scene.NodeID
	X, Y  float32
	R     float32
	Depth float32
	Color color.RGBA
	Glow  float32
	Title string
}

// Segment is a link projected to the screen.
type Segment struct {
	X0, Y0, X1, Y1 float32
}

// minSpriteRadius keeps distant nodes clickable-looking.
const minSpriteRadius = 1.5

// ProjectNodes projects every node in front of the camera, sorted back to
// front so nearer nodes paint over farther ones.
func ProjectNodes(reg *scene.Registry, cam *geom.Camera, w, h float32) []Sprite {
	sprites := make([]Sprite, 0, reg.Len())
	reg.Each(func(v scene.View) {
		sx, sy, depth, ok := cam.Project(v.Pos, w, h)
		if !ok {
			return
		}
		sprites = append(sprites, Sprite{
			ID:    v.ID,
			X:     sx,
			Y:     sy,
			R:     max(cam.ScreenRadius(v.Extent(), depth, h), minSpriteRadius),
			Depth: depth,
			Color: v.Color,
			Glow:  v.Glow,
			Title: v.Title,
		})
	})
	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].Depth > sprites[j].Depth
	})
	return sprites
}

// ProjectLinks projects each link from its cached endpoints. Links with an
// endpoint behind the camera are skipped.
func ProjectLinks(reg *scene.Registry, cam *geom.Camera, w, h float32) []Segment {
	var segs []Segment
	for _, l := range reg.Links() {
		x0, y0, _, ok0 := cam.Project(l.Ends[0], w, h)
		x1, y1, _, ok1 := cam.Project(l.Ends[1], w, h)
		if ok0 && ok1 {
			segs = append(segs, Segment{x0, y0, x1, y1})
		}
	}
	return segs
}

var linkColor = color.RGBA{110, 110, 110, 110} // premultiplied white at ~43%

// DrawScene paints links, then nodes back to front. Glowing nodes get a
// halo and a brighter core.
func DrawScene(screen *ebiten.Image, sprites []Sprite, links []Segment) {
	for _, s := range links {
		vector.StrokeLine(screen, s.X0, s.Y0, s.X1, s.Y1, 1.5, linkColor, true)
	}
	for _, s := range sprites {
		if s.Glow > 0 {
			a := 0.5 * s.Glow
			halo := Dim(s.Color, a)
			halo.A = uint8(255 * a)
			vector.StrokeCircle(screen, s.X, s.Y, s.R+4, 3, halo, true)
		}
		base := Dim(s.Color, 0.55+0.45*s.Glow)
		vector.DrawFilledCircle(screen, s.X, s.Y, s.R, base, true)
		// offset highlight fakes a light source above-left
		vector.DrawFilledCircle(screen, s.X-s.R*0.3, s.Y-s.R*0.3, s.R*0.45, Dim(s.Color, 1), true)
	}
}
