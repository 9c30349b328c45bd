// Package engine wires the gesture classifier, cursor model, stroke
// synthesizer and dispatch gateway into one frame-driven pointer engine.
package engine

import (
	"context"
	"sync"

	"github.com/mobile-next/remotepad/config"
	"github.com/mobile-next/remotepad/cursor"
	"github.com/mobile-next/remotepad/dispatch"
	"github.com/mobile-next/remotepad/gesture"
	"github.com/mobile-next/remotepad/stroke"
	"github.com/mobile-next/remotepad/types"
	"github.com/mobile-next/remotepad/utils"
)

// Presenter draws the cursor glyph. It is called after the engine lock is
// released, from the goroutine that delivered the frame.
type Presenter interface {
	CursorMoved(position types.Point)
	CursorVisibility(visible bool)
}

type Option func(*Engine)

// WithPresenter attaches a presentation layer.
func WithPresenter(p Presenter) Option {
	return func(e *Engine) {
		e.presenter = p
	}
}

// WithStart overrides the initial cursor position taken from the settings.
func WithStart(start types.Point) Option {
	return func(e *Engine) {
		e.cursor = cursor.NewModel(start)
	}
}

// Engine processes touch frames for one target surface. All methods are safe
// for concurrent use; each call holds the engine lock for its duration.
type Engine struct {
	mu         sync.Mutex
	gateway    *dispatch.Gateway
	store      *config.Store
	classifier *gesture.Classifier
	cursor     *cursor.Model
	presenter  Presenter

	target    string
	suspended bool
	visible   bool
}

// New creates an engine with no target surface. A nil store means defaults.
func New(gw *dispatch.Gateway, store *config.Store, opts ...Option) *Engine {
	e := &Engine{
		gateway:    gw,
		store:      store,
		classifier: gesture.NewClassifier(),
		visible:    true,
	}

	s := e.settings()
	e.cursor = cursor.NewModel(types.Point{X: s.Cursor.StartX, Y: s.Cursor.StartY})

	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) settings() config.Settings {
	if e.store == nil {
		return config.Defaults()
	}
	return e.store.Get()
}

// OnFrame classifies one frame. Moves update the cursor; discrete gestures
// are synthesized at the cursor and dispatched to the target surface. The
// gestures are returned in the order they were produced.
func (e *Engine) OnFrame(ctx context.Context, f gesture.Frame) []gesture.Gesture {
	e.mu.Lock()

	if e.suspended {
		e.mu.Unlock()
		return nil
	}

	s := e.settings()
	gestures := e.classifier.OnFrame(f, s.GestureParams())
	sp := s.StrokeParams()

	moved := false
	for _, g := range gestures {
		if !g.IsDiscrete() {
			if e.cursor.Bounds().IsZero() {
				continue
			}
			e.cursor.ApplyDelta(g.DX, g.DY)
			moved = true
			continue
		}

		strokes := stroke.Synthesize(g, e.cursor.Position(), sp)
		result := e.gateway.Inject(ctx, strokes, e.target)
		utils.Verbose("Gesture %s on %q: %s", g, e.target, result)
	}

	position := e.cursor.Position()
	presenter := e.presenter
	e.mu.Unlock()

	if moved && presenter != nil {
		presenter.CursorMoved(position)
	}
	return gestures
}

// SelectSurface makes id the target and reads its bounds. When the bounds are
// unavailable the previous bounds are kept and false is returned.
func (e *Engine) SelectSurface(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id != e.target {
		utils.Info("Target surface: %s", id)
	}
	e.target = id
	return e.refreshBoundsLocked()
}

// RefreshBounds re-reads the bounds of the current target, e.g. after a
// display change notification.
func (e *Engine) RefreshBounds() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refreshBoundsLocked()
}

func (e *Engine) refreshBoundsLocked() bool {
	size, ok := e.gateway.CurrentBounds(e.target)
	if !ok {
		utils.Verbose("Bounds of %q unavailable, keeping %dx%d", e.target, e.cursor.Bounds().Width, e.cursor.Bounds().Height)
		return false
	}
	e.cursor.SetBounds(size)
	return true
}

// SetSuspended pauses input handling. Suspending drops the touch in progress
// without emitting a gesture.
func (e *Engine) SetSuspended(suspended bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.suspended = suspended
	if suspended {
		e.classifier.Reset()
	}
}

func (e *Engine) Suspended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.suspended
}

// SetCursorVisible shows or hides the cursor glyph. The position keeps
// tracking motion while hidden.
func (e *Engine) SetCursorVisible(visible bool) {
	e.mu.Lock()
	e.visible = visible
	presenter := e.presenter
	e.mu.Unlock()

	if presenter != nil {
		presenter.CursorVisibility(visible)
	}
}

func (e *Engine) CursorVisible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}

// Cursor returns the current cursor position.
func (e *Engine) Cursor() types.Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor.Position()
}

// Target returns the selected surface, or false if none was selected.
func (e *Engine) Target() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.target, e.target != ""
}

// Info returns a snapshot of the cursor state.
func (e *Engine) Info() types.CursorInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return types.CursorInfo{
		Position: e.cursor.Position(),
		Bounds:   e.cursor.Bounds(),
		Target:   e.target,
		Visible:  e.visible,
	}
}
