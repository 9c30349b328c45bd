// Package dispatch is the seam between the gesture engine and the platform:
// it reads target surface bounds and hands stroke batches to an injector.
package dispatch

import (
	"context"

	"github.com/mobile-next/remotepad/stroke"
	"github.com/mobile-next/remotepad/types"
	"github.com/mobile-next/remotepad/utils"
)

// BoundsProvider reports the size of a target surface. ok is false when the
// surface is unknown or no longer reachable.
type BoundsProvider interface {
	CurrentBounds(surfaceID string) (size types.Size, ok bool)
}

// Injector delivers a batch of strokes to a surface. Strokes with equal
// Delay must be performed simultaneously.
type Injector interface {
	Inject(ctx context.Context, surfaceID string, strokes []stroke.Stroke) error
}

// Result tells what happened to one batch. The engine only logs it.
type Result int

const (
	Delivered Result = iota
	Skipped
	Failed
)

func (r Result) String() string {
	switch r {
	case Delivered:
		return "delivered"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	}
	return "unknown"
}

type Gateway struct {
	bounds   BoundsProvider
	injector Injector
}

func NewGateway(bounds BoundsProvider, injector Injector) *Gateway {
	return &Gateway{
		bounds:   bounds,
		injector: injector,
	}
}

// CurrentBounds returns the bounds of surfaceID, or false if it is unavailable.
func (g *Gateway) CurrentBounds(surfaceID string) (types.Size, bool) {
	if surfaceID == "" || g.bounds == nil {
		return types.Size{}, false
	}
	size, ok := g.bounds.CurrentBounds(surfaceID)
	if !ok || size.IsZero() {
		return types.Size{}, false
	}
	return size, true
}

// Inject hands strokes to the injector. A target that vanished since the
// gesture was classified is skipped without error; injector failures are
// logged and never retried.
func (g *Gateway) Inject(ctx context.Context, strokes []stroke.Stroke, surfaceID string) Result {
	if len(strokes) == 0 || g.injector == nil {
		return Skipped
	}

	if _, ok := g.CurrentBounds(surfaceID); !ok {
		utils.Verbose("Skipping %d strokes: surface %q is unavailable", len(strokes), surfaceID)
		return Skipped
	}

	if err := g.injector.Inject(ctx, surfaceID, strokes); err != nil {
		utils.Warn("Failed to inject %d strokes on surface %s: %v", len(strokes), surfaceID, err)
		return Failed
	}

	return Delivered
}
