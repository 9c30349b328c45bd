package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = Params{
	Sensitivity:      2.5,
	PinchThreshold:   60,
	SwipeThreshold:   60,
	SwipeVerticalCap: 40,
	ScrollThreshold:  8,
	Slop:             8,
}

func one(kind FrameKind, x, y float64) Frame {
	return Frame{Kind: kind, Contacts: []Contact{{Index: 0, X: x, Y: y}}}
}

func two(kind FrameKind, x0, y0, x1, y1 float64) Frame {
	return Frame{Kind: kind, Contacts: []Contact{{Index: 0, X: x0, Y: y0}, {Index: 1, X: x1, Y: y1}}}
}

func feed(c *Classifier, frames ...Frame) []Gesture {
	var out []Gesture
	for _, f := range frames {
		out = append(out, c.OnFrame(f, testParams)...)
	}
	return out
}

func discrete(gs []Gesture) []Gesture {
	var out []Gesture
	for _, g := range gs {
		if g.IsDiscrete() {
			out = append(out, g)
		}
	}
	return out
}

func TestTap_EmitsLeftClickOnEnd(t *testing.T) {
	c := NewClassifier()
	out := feed(c,
		one(Begin, 100, 100),
		one(Move, 102, 101),
		one(Move, 104, 103),
		one(End, 104, 103),
	)

	assert.Equal(t, []Gesture{NewClick(false)}, discrete(out))
	_, live := c.Session()
	assert.False(t, live)
}

func TestTap_CancelSuppressesClick(t *testing.T) {
	motion := []Frame{
		one(Begin, 100, 100),
		one(Move, 102, 101),
	}

	ended := feed(NewClassifier(), append(motion, one(End, 102, 101))...)
	cancelled := feed(NewClassifier(), append(motion, one(Cancel, 102, 101))...)

	assert.Equal(t, []Gesture{NewClick(false)}, discrete(ended))
	assert.Empty(t, discrete(cancelled))
}

func TestTwoFingerTap_EmitsRightClick(t *testing.T) {
	c := NewClassifier()
	out := feed(c,
		one(Begin, 100, 100),
		two(PointerAdded, 100, 100, 150, 100),
		two(Move, 101, 100, 151, 101),
		two(End, 101, 100, 151, 101),
	)

	assert.Equal(t, []Gesture{NewClick(true)}, out)
}

func TestTwoFingerTap_CancelSuppressesClick(t *testing.T) {
	c := NewClassifier()
	out := feed(c,
		one(Begin, 100, 100),
		two(PointerAdded, 100, 100, 150, 100),
		two(Cancel, 100, 100, 150, 100),
	)

	assert.Empty(t, out)
}

func TestMove_ScalesBySensitivityAndSuppressesClick(t *testing.T) {
	c := NewClassifier()
	out := feed(c,
		one(Begin, 0, 0),
		one(Move, 10, 0),
		one(Move, 10, -4),
		one(End, 10, -4),
	)

	require.Len(t, out, 2)
	assert.Equal(t, NewMove(25, 0), out[0])
	assert.Equal(t, NewMove(0, -10), out[1])
}

func TestMove_SlopIsCumulative(t *testing.T) {
	c := NewClassifier()
	frames := []Frame{one(Begin, 0, 0)}
	// ten 1-unit steps: no single step exceeds slop, the total does
	for i := 1; i <= 10; i++ {
		frames = append(frames, one(Move, float64(i), 0))
	}
	frames = append(frames, one(End, 10, 0))

	assert.Empty(t, discrete(feed(c, frames...)))
}

func TestMove_NoCursorMotionAfterSecondFingerLifts(t *testing.T) {
	c := NewClassifier()
	out := feed(c,
		one(Begin, 100, 100),
		two(PointerAdded, 100, 100, 200, 100),
		one(Move, 100, 100),
		one(Move, 103, 100),
	)

	assert.Empty(t, out)
}

func TestZoom_RebaselinesAfterEachTick(t *testing.T) {
	c := NewClassifier()
	feed(c,
		one(Begin, 200, 200),
		two(PointerAdded, 200, 200, 300, 200),
	)

	var ticks []Gesture
	var baselines []float64
	for x := 310.0; x <= 500; x += 10 {
		out := c.OnFrame(two(Move, 200, 200, x, 200), testParams)
		if len(out) > 0 {
			ticks = append(ticks, out...)
			s, ok := c.Session()
			require.True(t, ok)
			baselines = append(baselines, s.PinchBaseline)
		}
	}

	// spread 100 → 300 with threshold 60 fires at 170 and 240
	assert.Equal(t, []Gesture{NewZoom(true), NewZoom(true)}, ticks)
	assert.Equal(t, []float64{170, 240}, baselines)

	assert.Empty(t, c.OnFrame(two(End, 200, 200, 500, 200), testParams))
}

func TestZoom_Contracting(t *testing.T) {
	c := NewClassifier()
	out := feed(c,
		one(Begin, 100, 100),
		two(PointerAdded, 100, 100, 400, 100),
		two(Move, 100, 100, 330, 100),
	)

	assert.Equal(t, []Gesture{NewZoom(false)}, out)
}

func TestSwipe_FiresOncePerDrag(t *testing.T) {
	c := NewClassifier()
	feed(c,
		one(Begin, 100, 300),
		two(PointerAdded, 100, 300, 100, 400),
	)

	var out []Gesture
	for dx := 20.0; dx <= 400; dx += 20 {
		out = append(out, c.OnFrame(two(Move, 100+dx, 300, 100+dx, 400), testParams)...)
	}

	assert.Equal(t, []Gesture{NewSwipe(true)}, out)
}

func TestSwipe_ReversalFiresOpposite(t *testing.T) {
	c := NewClassifier()
	feed(c,
		one(Begin, 100, 300),
		two(PointerAdded, 100, 300, 100, 400),
	)

	var out []Gesture
	for x := 120.0; x <= 300; x += 20 {
		out = append(out, c.OnFrame(two(Move, x, 300, x, 400), testParams)...)
	}
	for x := 280.0; x >= 180; x -= 20 {
		out = append(out, c.OnFrame(two(Move, x, 300, x, 400), testParams)...)
	}

	assert.Equal(t, []Gesture{NewSwipe(true), NewSwipe(false)}, out)
}

func TestSwipe_VerticalDriftBlocksSwipe(t *testing.T) {
	c := NewClassifier()
	feed(c,
		one(Begin, 100, 300),
		two(PointerAdded, 100, 300, 100, 400),
	)

	// diagonal drag: every frame scrolls, so no swipe accumulates
	var out []Gesture
	for i := 1.0; i <= 10; i++ {
		out = append(out, c.OnFrame(two(Move, 100+i*20, 300+i*10, 100+i*20, 400+i*10), testParams)...)
	}

	for _, g := range out {
		assert.Equal(t, KindScroll, g.Kind)
	}
	assert.Len(t, out, 10)
}

func TestSwipe_VerticalJitterDoesNotRefire(t *testing.T) {
	c := NewClassifier()
	feed(c,
		one(Begin, 100, 300),
		two(PointerAdded, 100, 300, 100, 400),
	)

	var out []Gesture
	for dx := 20.0; dx <= 400; dx += 20 {
		y := 0.0
		if dx == 260 {
			y = 10
		}
		out = append(out, c.OnFrame(two(Move, 100+dx, 300+y, 100+dx, 400+y), testParams)...)
	}

	assert.Equal(t, []Gesture{NewSwipe(true)}, out)
}

func TestSwipe_ScrollKeepsLatch(t *testing.T) {
	c := NewClassifier()
	feed(c,
		one(Begin, 100, 300),
		two(PointerAdded, 100, 300, 100, 400),
	)

	var out []Gesture
	for x := 120.0; x <= 200; x += 20 {
		out = append(out, c.OnFrame(two(Move, x, 300, x, 400), testParams)...)
	}
	out = append(out, feed(c,
		two(Move, 200, 320, 200, 420),
		two(Move, 200, 340, 200, 440),
	)...)
	for x := 220.0; x <= 400; x += 20 {
		out = append(out, c.OnFrame(two(Move, x, 340, x, 440), testParams)...)
	}

	assert.Equal(t, []Gesture{NewSwipe(true), NewScroll(20), NewScroll(20)}, out)
}

func TestSwipe_ZoomAllowsFreshSwipe(t *testing.T) {
	c := NewClassifier()
	feed(c,
		one(Begin, 100, 300),
		two(PointerAdded, 100, 300, 100, 400),
	)

	var out []Gesture
	for x := 120.0; x <= 200; x += 20 {
		out = append(out, c.OnFrame(two(Move, x, 300, x, 400), testParams)...)
	}
	// spread 100 → 180
	out = append(out, c.OnFrame(two(Move, 200, 300, 200, 480), testParams)...)
	for x := 220.0; x <= 400; x += 20 {
		out = append(out, c.OnFrame(two(Move, x, 300, x, 480), testParams)...)
	}

	assert.Equal(t, []Gesture{NewSwipe(true), NewZoom(true), NewSwipe(true)}, out)
}

func TestScroll_EmitsRawDeltaBeyondDeadzone(t *testing.T) {
	c := NewClassifier()
	out := feed(c,
		one(Begin, 100, 100),
		two(PointerAdded, 100, 100, 200, 100),
		two(Move, 100, 120, 200, 120),
		two(Move, 100, 125, 200, 125),
		two(Move, 100, 110, 200, 110),
		two(End, 100, 110, 200, 110),
	)

	// the 5-unit step is inside the deadzone; no right click after scrolling
	assert.Equal(t, []Gesture{NewScroll(20), NewScroll(-15)}, out)
}

func TestThreePointers_EmitNothing(t *testing.T) {
	c := NewClassifier()
	three := Frame{Kind: PointerAdded, Contacts: []Contact{{0, 100, 100}, {1, 200, 100}, {2, 300, 100}}}
	moved := Frame{Kind: Move, Contacts: []Contact{{0, 100, 150}, {1, 200, 150}, {2, 300, 150}}}
	out := feed(c,
		one(Begin, 100, 100),
		two(PointerAdded, 100, 100, 200, 100),
		three,
		moved,
		Frame{Kind: End},
	)

	assert.Empty(t, out)
}

func TestThreePointerTap_NoClick(t *testing.T) {
	c := NewClassifier()
	three := Frame{Kind: PointerAdded, Contacts: []Contact{{0, 100, 100}, {1, 200, 100}, {2, 300, 100}}}
	out := feed(c, one(Begin, 100, 100), three, Frame{Kind: End})

	assert.Empty(t, out)
}

func TestMalformedSequences(t *testing.T) {
	t.Run("move without begin", func(t *testing.T) {
		c := NewClassifier()
		assert.Empty(t, feed(c, one(Move, 10, 10), one(End, 10, 10)))
		_, live := c.Session()
		assert.False(t, live)
	})

	t.Run("begin while tracking restarts", func(t *testing.T) {
		c := NewClassifier()
		out := feed(c,
			one(Begin, 0, 0),
			one(Move, 50, 0),
			one(Begin, 300, 300),
			one(End, 300, 300),
		)
		// the fresh session never moved, so its End is a tap
		assert.Equal(t, []Gesture{NewClick(false)}, discrete(out))
	})

	t.Run("move with no contacts drops session", func(t *testing.T) {
		c := NewClassifier()
		out := feed(c, one(Begin, 0, 0), Frame{Kind: Move}, one(End, 0, 0))
		assert.Empty(t, out)
	})

	t.Run("second finger without pointer added frame", func(t *testing.T) {
		c := NewClassifier()
		out := feed(c,
			one(Begin, 100, 100),
			two(Move, 100, 100, 200, 100),
			two(End, 100, 100, 200, 100),
		)
		assert.Equal(t, []Gesture{NewClick(true)}, out)
	})
}

func TestParamsHotReload_KeepsSession(t *testing.T) {
	c := NewClassifier()
	c.OnFrame(one(Begin, 0, 0), testParams)

	faster := testParams
	faster.Sensitivity = 4
	out := c.OnFrame(one(Move, 2, 0), faster)

	assert.Equal(t, []Gesture{NewMove(8, 0)}, out)
	s, ok := c.Session()
	require.True(t, ok)
	assert.Equal(t, 1, s.MaxPointers)
}

func TestStep_DoesNotMutateInput(t *testing.T) {
	s, _ := Step(nil, one(Begin, 0, 0), testParams)
	before := *s

	next, _ := Step(s, one(Move, 40, 0), testParams)

	assert.Equal(t, before, *s)
	assert.True(t, next.Moving)
	assert.Equal(t, s.ID, next.ID)
}

func TestParseFrameKind(t *testing.T) {
	for _, k := range []FrameKind{Begin, PointerAdded, Move, End, Cancel} {
		got, err := ParseFrameKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseFrameKind("hover")
	assert.Error(t, err)
}
