package devices

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mobile-next/remotepad/stroke"
	"github.com/mobile-next/remotepad/types"
	"github.com/mobile-next/remotepad/utils"
)

// SurfaceRegistry caches the surfaces of a provider together with their
// bounds. It serves as the engine's bounds provider and injector, so a
// surface that disappeared between refreshes is reported as unavailable
// instead of being driven blindly.
type SurfaceRegistry struct {
	mu       sync.RWMutex
	provider SurfaceProvider
	surfaces []Surface
	bounds   map[string]types.Size
}

func NewSurfaceRegistry(provider SurfaceProvider) *SurfaceRegistry {
	return &SurfaceRegistry{
		provider: provider,
		bounds:   make(map[string]types.Size),
	}
}

// Refresh re-enumerates the provider. It reports whether the set of surfaces
// or any of their sizes changed. On error the registry is emptied: every
// surface counts as unreachable until the next successful refresh.
func (r *SurfaceRegistry) Refresh(ctx context.Context) (bool, error) {
	surfaces, err := r.provider.Surfaces(ctx)
	if err != nil {
		surfaces = nil
	}

	bounds := make(map[string]types.Size, len(surfaces))
	for _, s := range surfaces {
		size, berr := s.Bounds()
		if berr != nil {
			utils.Verbose("Failed to read bounds of surface %s: %v", s.ID(), berr)
			continue
		}
		bounds[s.ID()] = size
	}

	r.mu.Lock()
	changed := !sameSurfaces(r.surfaces, surfaces) || !sameBounds(r.bounds, bounds)
	r.surfaces = surfaces
	r.bounds = bounds
	r.mu.Unlock()

	if err != nil {
		return changed, fmt.Errorf("error listing surfaces: %w", err)
	}
	return changed, nil
}

// Surfaces returns the surfaces from the last refresh, in listing order.
func (r *SurfaceRegistry) Surfaces() []Surface {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Surface, len(r.surfaces))
	copy(out, r.surfaces)
	return out
}

// Get finds a surface by id.
func (r *SurfaceRegistry) Get(id string) (Surface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.surfaces {
		if s.ID() == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSurfaceNotFound, id)
}

// CurrentBounds implements dispatch.BoundsProvider.
func (r *SurfaceRegistry) CurrentBounds(id string) (types.Size, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	size, ok := r.bounds[id]
	return size, ok
}

// Inject implements dispatch.Injector.
func (r *SurfaceRegistry) Inject(ctx context.Context, id string, strokes []stroke.Stroke) error {
	s, err := r.Get(id)
	if err != nil {
		return err
	}
	return s.Inject(ctx, strokes)
}

// SelectTarget picks the surface input should go to: with several displays
// the last one listed (an attached external display), otherwise the only one.
func (r *SurfaceRegistry) SelectTarget() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.surfaces) == 0 {
		return "", false
	}
	return r.surfaces[len(r.surfaces)-1].ID(), true
}

// Watch refreshes every interval until ctx is done and calls onChange after
// each refresh that changed the surface list. Display add/remove
// notifications are derived this way since adb and WebDriverAgent offer no
// push channel.
func (r *SurfaceRegistry) Watch(ctx context.Context, interval time.Duration, onChange func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			changed, err := r.Refresh(ctx)
			if err != nil {
				utils.Verbose("Surface refresh failed: %v", err)
			}
			if changed {
				utils.Info("Surface list changed, %d surface(s) available", len(r.Surfaces()))
				onChange()
			}
		}
	}
}

// Close releases surfaces that hold backend resources, such as an agent
// session.
func (r *SurfaceRegistry) Close() error {
	var errs []error
	for _, s := range r.Surfaces() {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", s.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}

func sameSurfaces(a, b []Surface) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID() != b[i].ID() {
			return false
		}
	}
	return true
}

func sameBounds(a, b map[string]types.Size) bool {
	if len(a) != len(b) {
		return false
	}
	for id, size := range a {
		if other, ok := b[id]; !ok || other != size {
			return false
		}
	}
	return true
}
