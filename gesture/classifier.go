// Package gesture turns a stream of raw multi-touch frames into pointer
// gestures: cursor motion, left and right clicks, scroll ticks, pinch zoom
// ticks and horizontal swipe navigation.
package gesture

// Classifier holds the live session between frames. It is not safe for
// concurrent use.
type Classifier struct {
	session *Session
}

// NewClassifier returns a classifier with no touch in progress.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// OnFrame feeds one frame and returns the gestures it produced, in order.
func (c *Classifier) OnFrame(f Frame, p Params) []Gesture {
	next, out := Step(c.session, f, p)
	c.session = next
	return out
}

// Session returns a copy of the live session, or false when idle.
func (c *Classifier) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Reset drops any in-flight session without emitting a gesture.
func (c *Classifier) Reset() {
	c.session = nil
}
