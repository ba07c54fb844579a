// Package scene is the node registry: interactive spheres, their payloads
// and the links between them.
package scene

import (
	"fmt"
	"image/color"

	"github.com/nodeglyph/nodeglyph/internal/geom"
)

// NodeID is a node's spawn index. It stays valid for the whole session.
type NodeID int

// Body is the spatial component of a node.
type Body struct {
	Pos     geom.Vec3
	Radius  float32
	Scale   float32
	Growing bool // spawn animation still running
}

// Extent is the effective bounding-sphere radius.
func (b Body) Extent() float32 { return b.Radius * b.Scale }

// Look is the visual component of a node.
type Look struct {
	Color color.RGBA
	Hue   float64
	Glow  float32 // highlight (emissive) intensity, 0..1
}

// Payload is the text a node carries. Code is always the active scheme's
// encoding of RawText.
type Payload struct {
	Title   string
	RawText string
	Code    string
}

// Link joins two nodes. Ends caches the endpoint positions at creation.
type Link struct {
	A, B NodeID
	Ends [2]geom.Vec3
}

// View is a read-only snapshot of one node.
type View struct {
	ID NodeID
	Body
	Look
	Payload
}

func defaultTitle(id NodeID) string {
	return fmt.Sprintf("Node %d", id)
}
