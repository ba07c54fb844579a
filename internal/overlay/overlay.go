// Package overlay is the text-entry panel shown for a focused node.
//
// The panel follows the navigator: it opens on EvPanelOpened and hides on
// EvPanelClosed. Edits are encoded with the registry's active scheme and
// written back through Registry.UpdatePayload. Every operation is a no-op
// while no node is focused.
package overlay

import (
	"image/color"
	"unicode/utf8"

	"github.com/nodeglyph/nodeglyph/internal/codec"
	"github.com/nodeglyph/nodeglyph/internal/nav"
	"github.com/nodeglyph/nodeglyph/internal/scene"
)

// MaxField caps the editable text length in runes.
const MaxField = 64

// Overlay holds the panel's display state.
type Overlay struct {
	reg *scene.Registry
	nav *nav.Navigator

	visible bool
	node    scene.NodeID
	title   string
	field   string
	code    string
}

// New creates a hidden overlay and subscribes it to nv.
func New(reg *scene.Registry, nv *nav.Navigator) *Overlay {
	o := &Overlay{reg: reg, nav: nv}
	nv.Subscribe(o.onEvent)
	return o
}

func (o *Overlay) onEvent(ev nav.Event) {
	switch ev.Kind {
	case nav.EvPanelOpened:
		o.Open(ev.Node)
	case nav.EvPanelClosed:
		o.visible = false
	}
}

// focused returns the node the panel may act on.
func (o *Overlay) focused() (scene.NodeID, bool) {
	id, ok := o.nav.Focused()
	if !ok || !o.reg.Valid(id) {
		return 0, false
	}
	return id, true
}

// Open fills the panel from the node's payload and clears the shown code.
func (o *Overlay) Open(id scene.NodeID) {
	v, ok := o.reg.Node(id)
	if !ok {
		return
	}
	o.visible = true
	o.node = id
	o.title = v.Title
	o.field = v.RawText
	o.code = ""
}

// Submit encodes text into the focused node and shows the resulting code.
func (o *Overlay) Submit(text string) {
	id, ok := o.focused()
	if !ok {
		return
	}
	title := o.title
	if id != o.node {
		v, _ := o.reg.Node(id)
		title = v.Title
	}
	o.reg.UpdatePayload(id, title, text)
	v, _ := o.reg.Node(id)
	o.node = id
	o.field = text
	o.code = v.Code
}

// Reverse decodes the shown code into the text field. The node is left
// untouched.
func (o *Overlay) Reverse() {
	if _, ok := o.focused(); !ok {
		return
	}
	o.field = o.reg.Scheme().Decode(o.code)
}

// Close closes the panel and sends the camera back out. It only acts while
// the panel is open.
func (o *Overlay) Close() bool {
	if o.nav.Phase() != nav.PanelOpen {
		return false
	}
	return o.nav.Handle(nav.Command{Kind: nav.CmdClose})
}

// Dismiss hides the panel but keeps the node focused.
func (o *Overlay) Dismiss() bool {
	return o.nav.Handle(nav.Command{Kind: nav.CmdDismiss})
}

// CycleScheme switches to the next codec scheme. Stored codes are
// re-encoded and the shown code follows the focused node.
func (o *Overlay) CycleScheme() codec.Scheme {
	s := codec.Next(o.reg.Scheme())
	o.reg.SetScheme(s)
	if o.code != "" {
		if v, ok := o.reg.Node(o.node); ok {
			o.code = v.Code
		}
	}
	return s
}

// Insert appends typed runes to the field, dropping control characters and
// anything past MaxField.
func (o *Overlay) Insert(rs []rune) {
	if !o.visible {
		return
	}
	n := utf8.RuneCountInString(o.field)
	for _, r := range rs {
		if n >= MaxField {
			break
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		o.field += string(r)
		n++
	}
}

// Backspace removes the last rune of the field.
func (o *Overlay) Backspace() {
	if !o.visible || o.field == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(o.field)
	o.field = o.field[:len(o.field)-size]
}

// SetField replaces the field contents.
func (o *Overlay) SetField(s string) { o.field = s }

func (o *Overlay) Visible() bool { return o.visible }
func (o *Overlay) Node() scene.NodeID { return o.node }
func (o *Overlay) Title() string { return o.title }
func (o *Overlay) Field() string { return o.field }
func (o *Overlay) Code() string { return o.code }
func (o *Overlay) Scheme() codec.Scheme { return o.reg.Scheme() }

// Strip is the colour view of the shown code.
func (o *Overlay) Strip() []color.RGBA {
	return codec.Strip(o.reg.Scheme(), o.code)
}
