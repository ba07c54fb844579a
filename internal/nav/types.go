package nav

import (
	"fmt"

	"github.com/nodeglyph/nodeglyph/internal/scene"
)

// Phase is the discrete navigation state.
type Phase uint8

const (
	Idle Phase = iota
	ZoomingIn
	Focused
	PanelOpen
	ZoomingOut
)

var phaseNames = [...]string{"idle", "zooming-in", "focused", "panel-open", "zooming-out"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// State is the navigation state of a session.
type State struct {
	Phase    Phase
	Focused  scene.NodeID
	HasFocus bool
	Progress float32 // fraction of the running zoom, 1 once it completes
}

// CommandKind enumerates the inputs the navigator understands.
type CommandKind uint8

const (
	CmdPointer     CommandKind = iota // pointer click, Hit/Node from the hit-test
	CmdClose                          // close the panel and zoom back out
	CmdDismiss                        // hide the panel, keep focus
	CmdSpawnLinked                    // spawn a node linked to the focused one
)

// Command is one input event for the navigator.
type Command struct {
	Kind CommandKind
	Node scene.NodeID
	Hit  bool
}

// PointerAt is a pointer command that hit node id.
func PointerAt(id scene.NodeID) Command {
	return Command{Kind: CmdPointer, Node: id, Hit: true}
}

// PointerMiss is a pointer command that hit empty space.
func PointerMiss() Command {
	return Command{Kind: CmdPointer}
}

// EventKind enumerates navigator notifications.
type EventKind uint8

const (
	EvZoomStarted EventKind = iota
	EvZoomProgress
	EvFocused
	EvFocusFirstTime
	EvPanelOpened
	EvPanelClosed
	EvIdle
	EvNodeSpawned
	EvNodeLinked
)

var eventNames = [...]string{
	"zoom-started", "zoom-progress", "focused", "focus-first-time",
	"panel-opened", "panel-closed", "idle", "node-spawned", "node-linked",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("event(%d)", uint8(k))
}

// Event is emitted synchronously to every subscriber.
type Event struct {
	Kind     EventKind
	Phase    Phase        // phase after the transition
	Node     scene.NodeID // focused, spawned or link source node
	Other    scene.NodeID // link target for EvNodeLinked
	Progress float32
}

// Handler receives navigator events.
type Handler func(Event)
