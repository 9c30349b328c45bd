// Package input produces touch frames for the engine: live from a Linux
// multitouch device, or replayed from a recorded trace.
package input

import (
	"context"

	"github.com/mobile-next/remotepad/gesture"
)

// FrameHandler receives frames in the order they were sampled.
type FrameHandler func(gesture.Frame)

// Source delivers frames to a handler from a single goroutine until the
// context is done or the source is exhausted.
type Source interface {
	Run(ctx context.Context, handle FrameHandler) error
}
