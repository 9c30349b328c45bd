package devices

import (
	"context"
	"errors"
	"fmt"

	"github.com/mobile-next/remotepad/config"
	"github.com/mobile-next/remotepad/stroke"
	"github.com/mobile-next/remotepad/types"
)

var (
	// ErrSurfaceNotFound is returned when a surface id is not (or no longer) listed.
	ErrSurfaceNotFound = errors.New("surface not found")

	// ErrMultiTouchUnsupported is returned by backends that cannot perform
	// simultaneous strokes.
	ErrMultiTouchUnsupported = errors.New("backend cannot inject simultaneous strokes")
)

// Surface is a display that receives synthetic input.
type Surface interface {
	ID() string
	Name() string
	Platform() string // e.g. "android", "ios", "static"
	IsDefault() bool  // the built-in display of its device

	Bounds() (types.Size, error)
	Inject(ctx context.Context, strokes []stroke.Stroke) error
}

// SurfaceProvider enumerates the surfaces currently reachable.
type SurfaceProvider interface {
	Surfaces(ctx context.Context) ([]Surface, error)
}

// ProviderFunc adapts a function to SurfaceProvider.
type ProviderFunc func(ctx context.Context) ([]Surface, error)

func (f ProviderFunc) Surfaces(ctx context.Context) ([]Surface, error) {
	return f(ctx)
}

// NewProvider returns the surface provider for the configured backend.
func NewProvider(s config.SurfaceSettings) (SurfaceProvider, error) {
	switch s.Backend {
	case config.BackendADB:
		return &AndroidProvider{Serial: s.ADBSerial, run: runCommand}, nil
	case config.BackendWDA:
		return NewWDAProvider(s.WDAAddress), nil
	case config.BackendStatic:
		size := types.Size{Width: s.Width, Height: s.Height}
		return ProviderFunc(func(context.Context) ([]Surface, error) {
			return []Surface{NewStaticSurface("static", size)}, nil
		}), nil
	}
	return nil, fmt.Errorf("unknown surface backend: %s", s.Backend)
}

// Info returns the JSON-friendly description of a surface. Bounds errors are
// reported as a zero size.
func Info(s Surface) types.SurfaceInfo {
	size, _ := s.Bounds()
	return types.SurfaceInfo{
		ID:       s.ID(),
		Name:     s.Name(),
		Platform: s.Platform(),
		Size:     size,
		Default:  s.IsDefault(),
	}
}

// hasOverlap reports whether any two strokes in the batch run at the same time.
func hasOverlap(strokes []stroke.Stroke) bool {
	for i := range strokes {
		for j := i + 1; j < len(strokes); j++ {
			a, b := strokes[i], strokes[j]
			if a.Delay < b.Delay+b.Duration && b.Delay < a.Delay+a.Duration {
				return true
			}
		}
	}
	return false
}
