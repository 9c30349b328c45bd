package gesture

import (
	"math"

	"github.com/google/uuid"
	"github.com/mobile-next/remotepad/types"
)

// Session is the state of one continuous touch interaction, from the first
// finger landing to the last one lifting. A nil *Session means no touch is
// in progress.
type Session struct {
	ID uuid.UUID

	Origin       types.Point
	LastPosition types.Point
	PrimaryIndex int

	// Moving latches once the primary contact leaves the slop radius around
	// Origin, or once any two-finger gesture fires.
	Moving      bool
	Pointers    int
	MaxPointers int

	PinchBaseline float64

	// SwipeAnchor is the reference point a two-finger horizontal drag is
	// measured against. After a swipe fires, swipeLatch holds its direction
	// and the anchor follows the drag, so the same drag cannot fire again
	// until it reverses by a full threshold.
	SwipeAnchor types.Point
	swipeLatch  int
}

func newSession(f Frame) *Session {
	p := f.primary()
	s := &Session{
		ID:           uuid.New(),
		Origin:       p.Point(),
		LastPosition: p.Point(),
		PrimaryIndex: p.Index,
		Pointers:     1,
		MaxPointers:  1,
	}
	if len(f.Contacts) > 1 {
		s.addPointers(f)
	}
	return s
}

// Step applies one frame to the session and returns the next session (nil
// once the touch is over) plus the gestures recognised on this frame.
func Step(s *Session, f Frame, p Params) (*Session, []Gesture) {
	switch f.Kind {
	case Begin:
		// a Begin while tracking means an End was lost; the stale session
		// is dropped without a gesture
		if len(f.Contacts) == 0 {
			return nil, nil
		}
		return newSession(f), nil

	case End:
		if s == nil {
			return nil, nil
		}
		return nil, s.release()

	case Cancel:
		return nil, nil
	}

	if s == nil || len(f.Contacts) == 0 {
		return nil, nil
	}

	next := *s
	switch f.Kind {
	case PointerAdded:
		next.addPointers(f)
		return &next, nil
	case Move:
		out := next.move(f, p)
		return &next, out
	}

	return nil, nil
}

func (s *Session) addPointers(f Frame) {
	count := len(f.Contacts)
	if count > s.MaxPointers {
		s.MaxPointers = count
	}
	if count == 2 {
		s.PinchBaseline = f.spread()
		s.SwipeAnchor = f.primary().Point()
		s.swipeLatch = 0
	}
	s.Pointers = count
	s.rebase(f.primary())
}

// rebase moves the motion reference to c without emitting anything.
func (s *Session) rebase(c Contact) {
	s.LastPosition = c.Point()
	s.PrimaryIndex = c.Index
}

func (s *Session) move(f Frame, p Params) []Gesture {
	count := len(f.Contacts)
	primary := f.primary()

	// a finger landed or lifted without its own frame, or the primary
	// contact changed identity: re-anchor instead of reading a jump as motion
	if count != s.Pointers || primary.Index != s.PrimaryIndex {
		if count > s.Pointers {
			s.addPointers(f)
		} else {
			s.Pointers = count
			if count == 2 {
				s.PinchBaseline = f.spread()
				s.SwipeAnchor = primary.Point()
			}
			s.rebase(primary)
		}
		return nil
	}

	pos := primary.Point()
	dx, dy := pos.Sub(s.LastPosition)
	if !s.Moving && pos.Distance(s.Origin) > p.Slop {
		s.Moving = true
	}

	var out []Gesture
	switch {
	case count == 1 && s.MaxPointers == 1:
		if dx != 0 || dy != 0 {
			out = append(out, NewMove(dx*p.Sensitivity, dy*p.Sensitivity))
		}
	case count == 2:
		if g, ok := s.twoFinger(f, dx, dy, p); ok {
			s.Moving = true
			out = append(out, g)
		}
	}

	s.LastPosition = pos
	return out
}

// twoFinger picks at most one gesture for a two-contact move. Zoom and swipe
// need a larger, direction-specific signal, so they are checked before the
// low scroll deadzone.
func (s *Session) twoFinger(f Frame, dx, dy float64, p Params) (Gesture, bool) {
	d := f.spread()
	if math.Abs(d-s.PinchBaseline) > p.PinchThreshold {
		g := NewZoom(d > s.PinchBaseline)
		s.PinchBaseline = d
		s.SwipeAnchor = f.primary().Point()
		s.swipeLatch = 0
		return g, true
	}

	pos := f.primary().Point()
	sdx, sdy := pos.Sub(s.SwipeAnchor)

	// while latched the anchor follows the drag in the fired direction
	if s.swipeLatch != 0 && sign(sdx) == s.swipeLatch {
		s.SwipeAnchor.X = pos.X
		sdx = 0
	}

	if math.Abs(sdx) > p.SwipeThreshold && math.Abs(sdy) < p.SwipeVerticalCap {
		forward := sdx > 0
		s.swipeLatch = sign(sdx)
		s.SwipeAnchor = pos
		return NewSwipe(forward), true
	}

	// a latched swipe keeps its direction through vertical jitter: mostly
	// horizontal frames stay part of the swipe, and a scroll tick only moves
	// the anchor's Y
	if s.swipeLatch != 0 && math.Abs(dx) >= math.Abs(dy) {
		s.SwipeAnchor.Y = pos.Y
		return Gesture{}, false
	}

	if math.Abs(dy) > p.ScrollThreshold {
		if s.swipeLatch == 0 {
			s.SwipeAnchor = pos
		} else {
			s.SwipeAnchor.Y = pos.Y
		}
		return NewScroll(dy), true
	}

	return Gesture{}, false
}

// release decides the tap at the end of an untouched session.
func (s *Session) release() []Gesture {
	if s.Moving {
		return nil
	}
	switch s.MaxPointers {
	case 1:
		return []Gesture{NewClick(false)}
	case 2:
		return []Gesture{NewClick(true)}
	}
	return nil
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
