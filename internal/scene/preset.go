package scene

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nodeglyph/nodeglyph/internal/geom"
)

// Preset is the JSON definition of the nodes a session starts with.
type Preset struct {
	Name  string       `json:"name"`
	Nodes []PresetNode `json:"nodes"`
	Links [][2]int     `json:"links"`
}

// PresetNode defines one seed node.
type PresetNode struct {
	Title  string     `json:"title"`
	Text   string     `json:"text"`
	Pos    [3]float32 `json:"pos"`
	Radius float32    `json:"radius"`
	Color  string     `json:"color"` // hex, e.g. "#00ffff"
}

// LoadPreset parses a Preset from JSON bytes.
func LoadPreset(data []byte) (*Preset, error) {
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	if len(p.Nodes) == 0 {
		return nil, fmt.Errorf("preset %q has no nodes", p.Name)
	}
	for i, n := range p.Nodes {
		if n.Radius <= 0 {
			return nil, fmt.Errorf("preset node %d: radius must be positive", i)
		}
		if _, err := colorful.Hex(n.Color); err != nil {
			return nil, fmt.Errorf("preset node %d: color %q: %w", i, n.Color, err)
		}
	}
	for i, l := range p.Links {
		if l[0] < 0 || l[0] >= len(p.Nodes) || l[1] < 0 || l[1] >= len(p.Nodes) {
			return nil, fmt.Errorf("preset link %d: node index out of range", i)
		}
	}
	return &p, nil
}

// Apply places the preset's nodes and links into r and returns their ids.
func (r *Registry) Apply(p *Preset) []NodeID {
	ids := make([]NodeID, len(p.Nodes))
	for i, n := range p.Nodes {
		c, _ := colorful.Hex(n.Color)
		cr, cg, cb := c.RGB255()
		ids[i] = r.Place(geom.V3(n.Pos[0], n.Pos[1], n.Pos[2]), n.Radius,
			color.RGBA{cr, cg, cb, 255}, n.Title, n.Text)
	}
	for _, l := range p.Links {
		r.Link(ids[l[0]], ids[l[1]])
	}
	return ids
}
