package gesture

import (
	"fmt"

	"github.com/mobile-next/remotepad/types"
)

// FrameKind is the event that produced a pointer frame.
type FrameKind int

const (
	Begin FrameKind = iota
	PointerAdded
	Move
	End
	Cancel
)

var frameKindNames = map[FrameKind]string{
	Begin:        "begin",
	PointerAdded: "pointer_added",
	Move:         "move",
	End:          "end",
	Cancel:       "cancel",
}

func (k FrameKind) String() string {
	if name, ok := frameKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FrameKind(%d)", int(k))
}

// ParseFrameKind maps a kind name as written by String back to a FrameKind.
func ParseFrameKind(name string) (FrameKind, error) {
	for k, n := range frameKindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown frame kind: %s", name)
}

// Contact is one finger on the touch surface. Index is stable for as long as
// the finger stays down.
type Contact struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Point returns the contact position.
func (c Contact) Point() types.Point {
	return types.Point{X: c.X, Y: c.Y}
}

// Frame is one sampled snapshot of all active contacts. Contacts[0] is the
// primary contact.
type Frame struct {
	Kind     FrameKind
	Contacts []Contact
}

func (f Frame) primary() Contact {
	return f.Contacts[0]
}

// spread is the distance between the first two contacts, or 0 with fewer.
func (f Frame) spread() float64 {
	if len(f.Contacts) < 2 {
		return 0
	}
	return f.Contacts[0].Point().Distance(f.Contacts[1].Point())
}

// Kind identifies which gesture a Gesture value carries.
type Kind int

const (
	KindMove Kind = iota
	KindClick
	KindScroll
	KindZoom
	KindSwipe
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindClick:
		return "click"
	case KindScroll:
		return "scroll"
	case KindZoom:
		return "zoom"
	case KindSwipe:
		return "swipe"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Gesture is one classified action. Only the fields that belong to Kind are set.
type Gesture struct {
	Kind      Kind    `json:"kind"`
	DX        float64 `json:"dx,omitempty"`
	DY        float64 `json:"dy,omitempty"`
	Right     bool    `json:"right,omitempty"`
	Expanding bool    `json:"expanding,omitempty"`
	Forward   bool    `json:"forward,omitempty"`
}

func NewMove(dx, dy float64) Gesture {
	return Gesture{Kind: KindMove, DX: dx, DY: dy}
}

func NewClick(right bool) Gesture {
	return Gesture{Kind: KindClick, Right: right}
}

func NewScroll(dy float64) Gesture {
	return Gesture{Kind: KindScroll, DY: dy}
}

func NewZoom(expanding bool) Gesture {
	return Gesture{Kind: KindZoom, Expanding: expanding}
}

func NewSwipe(forward bool) Gesture {
	return Gesture{Kind: KindSwipe, Forward: forward}
}

// IsDiscrete reports whether the gesture is turned into injected strokes.
// Move is applied to the cursor instead.
func (g Gesture) IsDiscrete() bool {
	return g.Kind != KindMove
}

func (g Gesture) String() string {
	switch g.Kind {
	case KindMove:
		return fmt.Sprintf("move(%.1f,%.1f)", g.DX, g.DY)
	case KindClick:
		if g.Right {
			return "click(right)"
		}
		return "click(left)"
	case KindScroll:
		return fmt.Sprintf("scroll(%.1f)", g.DY)
	case KindZoom:
		if g.Expanding {
			return "zoom(in)"
		}
		return "zoom(out)"
	case KindSwipe:
		if g.Forward {
			return "swipe(forward)"
		}
		return "swipe(back)"
	default:
		return g.Kind.String()
	}
}

// Params are the tunable thresholds read on every frame.
type Params struct {
	Sensitivity      float64
	PinchThreshold   float64
	SwipeThreshold   float64
	SwipeVerticalCap float64
	ScrollThreshold  float64
	Slop             float64
}
