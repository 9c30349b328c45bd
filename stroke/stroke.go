// Package stroke turns discrete gestures into synthetic input strokes that an
// injection backend can replay on the target surface.
package stroke

import (
	"fmt"
	"time"

	"github.com/mobile-next/remotepad/gesture"
	"github.com/mobile-next/remotepad/types"
)

const (
	TapDuration       = 50 * time.Millisecond
	LongPressDuration = 600 * time.Millisecond
	ScrollDuration    = 100 * time.Millisecond
	ZoomDuration      = 200 * time.Millisecond
	SwipeDuration     = 150 * time.Millisecond
)

// Stroke is one synthetic finger path. Strokes in the same batch with equal
// Delay are performed simultaneously.
type Stroke struct {
	Start    types.Point   `json:"start"`
	End      types.Point   `json:"end"`
	Duration time.Duration `json:"duration"`
	Delay    time.Duration `json:"delay,omitempty"`
}

func (s Stroke) String() string {
	return fmt.Sprintf("(%.0f,%.0f)->(%.0f,%.0f) %s", s.Start.X, s.Start.Y, s.End.X, s.End.Y, s.Duration)
}

// Params shape the generated strokes.
type Params struct {
	// ScrollGain amplifies a small finger drag into a scroll distance the
	// host recognises.
	ScrollGain float64

	// Zoom strokes start ZoomStartOffset either side of the cursor and end
	// ZoomOuterOffset away when expanding, ZoomInnerOffset when contracting.
	ZoomStartOffset float64
	ZoomInnerOffset float64
	ZoomOuterOffset float64

	SwipeLength float64
}

// DefaultParams returns the stroke shape used unless configured otherwise.
func DefaultParams() Params {
	return Params{
		ScrollGain:      15,
		ZoomStartOffset: 100,
		ZoomInnerOffset: 10,
		ZoomOuterOffset: 200,
		SwipeLength:     300,
	}
}

// Synthesize returns the strokes that reproduce g at the cursor position.
// Move gestures produce nothing; they only move the cursor.
func Synthesize(g gesture.Gesture, at types.Point, p Params) []Stroke {
	switch g.Kind {
	case gesture.KindClick:
		d := TapDuration
		if g.Right {
			// a long press opens the context action on most hosts
			d = LongPressDuration
		}
		return []Stroke{{Start: at, End: at, Duration: d}}

	case gesture.KindScroll:
		return []Stroke{{
			Start:    at,
			End:      at.Add(0, g.DY*p.ScrollGain),
			Duration: ScrollDuration,
		}}

	case gesture.KindZoom:
		end := p.ZoomInnerOffset
		if g.Expanding {
			end = p.ZoomOuterOffset
		}
		return []Stroke{
			{Start: at.Add(-p.ZoomStartOffset, 0), End: at.Add(-end, 0), Duration: ZoomDuration},
			{Start: at.Add(p.ZoomStartOffset, 0), End: at.Add(end, 0), Duration: ZoomDuration},
		}

	case gesture.KindSwipe:
		start := at.Add(-p.SwipeLength, 0)
		if !g.Forward {
			start = at.Add(p.SwipeLength, 0)
		}
		return []Stroke{{Start: start, End: at, Duration: SwipeDuration}}
	}

	return nil
}
