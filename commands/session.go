package commands

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mobile-next/remotepad/config"
	"github.com/mobile-next/remotepad/devices"
	"github.com/mobile-next/remotepad/dispatch"
	"github.com/mobile-next/remotepad/engine"
	"github.com/mobile-next/remotepad/gesture"
	"github.com/mobile-next/remotepad/input"
	"github.com/mobile-next/remotepad/types"
	"github.com/mobile-next/remotepad/utils"
)

// SessionConfig describes where a session sends its input.
type SessionConfig struct {
	Surface config.SurfaceSettings
	// SurfaceID pins the target. Empty follows the selection policy and
	// re-selects when displays are added or removed.
	SurfaceID string
	// WatchInterval is how often the surface list is polled; zero disables it.
	WatchInterval time.Duration
	QueueSize     int
	// Record, when set, receives every frame as a JSON-lines trace.
	Record io.Writer
}

// Session drives one engine from a frame source.
type Session struct {
	engine   *engine.Engine
	registry *devices.SurfaceRegistry
	queue    *dispatch.QueuedInjector
	recorder *input.TraceWriter
	cfg      SessionConfig

	unsubscribe func()
	closeOnce   sync.Once

	gestures []gesture.Gesture
}

// NewSession enumerates the surfaces and selects a target.
func NewSession(ctx context.Context, store *config.Store, cfg SessionConfig) (*Session, error) {
	registry, err := OpenRegistry(ctx, cfg.Surface)
	if err != nil {
		return nil, err
	}

	if cfg.QueueSize <= 0 {
		cfg.QueueSize = dispatch.DefaultQueueSize
	}
	queue := dispatch.NewQueuedInjector(registry, cfg.QueueSize)
	gw := dispatch.NewGateway(registry, queue)

	s := &Session{
		engine:   engine.New(gw, store, engine.WithPresenter(&logPresenter{})),
		registry: registry,
		queue:    queue,
		cfg:      cfg,
	}
	if cfg.Record != nil {
		s.recorder = input.NewTraceWriter(cfg.Record)
	}

	s.unsubscribe = store.Subscribe(func(settings config.Settings) {
		utils.Verbose("Settings changed: sensitivity=%.2f cursor=%s/%d",
			settings.Gesture.Sensitivity, settings.Cursor.Color, settings.Cursor.Size)
	})

	if cfg.SurfaceID != "" {
		if _, err := registry.Get(cfg.SurfaceID); err != nil {
			s.Close()
			return nil, fmt.Errorf("%w, available: %s", err, getSurfaceIDList(registry.Surfaces()))
		}
	}
	s.selectTarget()

	return s, nil
}

// Engine returns the engine so callers can toggle suspension and cursor
// visibility while the session runs.
func (s *Session) Engine() *engine.Engine {
	return s.engine
}

// Registry returns the surfaces the session can target.
func (s *Session) Registry() *devices.SurfaceRegistry {
	return s.registry
}

func (s *Session) selectTarget() {
	id := s.cfg.SurfaceID
	if id == "" {
		var ok bool
		id, ok = s.registry.SelectTarget()
		if !ok {
			utils.Warn("No surface available, input is paused until one appears")
			return
		}
	}

	if !s.engine.SelectSurface(id) {
		utils.Warn("Surface %s is unavailable, known: %s", id, getSurfaceIDList(s.registry.Surfaces()))
	}
}

// Run feeds frames from src to the engine until src is exhausted or ctx is done.
func (s *Session) Run(ctx context.Context, src input.Source) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if s.cfg.WatchInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.registry.Watch(ctx, s.cfg.WatchInterval, s.selectTarget)
		}()
	}

	handle := func(f gesture.Frame) {
		for _, g := range s.engine.OnFrame(ctx, f) {
			if g.IsDiscrete() {
				utils.Verbose("Gesture: %s", g)
				s.gestures = append(s.gestures, g)
			}
		}
	}
	if s.recorder != nil {
		handle = s.recorder.Tee(handle, func(err error) {
			utils.Warn("Failed to record frame: %v", err)
		})
	}

	err := src.Run(ctx, handle)
	cancel()
	wg.Wait()
	return err
}

// Gestures returns the discrete gestures recognised so far. It must not be
// called while Run is in progress.
func (s *Session) Gestures() []gesture.Gesture {
	return s.gestures
}

// Summary reports what the session did.
func (s *Session) Summary() map[string]interface{} {
	counts := make(map[string]int)
	for _, g := range s.gestures {
		label := g.String()
		if g.Kind == gesture.KindScroll {
			label = g.Kind.String()
		}
		counts[label]++
	}
	return map[string]interface{}{
		"cursor":   s.engine.Info(),
		"gestures": counts,
	}
}

// Close waits for queued strokes to be delivered, then releases the surfaces.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		s.queue.Close()
		err = s.registry.Close()
	})
	return err
}

// logPresenter stands in for a cursor overlay by logging what it would draw.
type logPresenter struct{}

func (p *logPresenter) CursorMoved(position types.Point) {
	utils.Verbose("Cursor at (%.0f, %.0f)", position.X, position.Y)
}

func (p *logPresenter) CursorVisibility(visible bool) {
	if visible {
		utils.Info("Cursor shown")
	} else {
		utils.Info("Cursor hidden")
	}
}
