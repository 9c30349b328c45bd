package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/mobile-next/remotepad/config"
	"github.com/mobile-next/remotepad/devices"
	"github.com/mobile-next/remotepad/input"
)

// ReplayRequest represents the parameters for a replay command
type ReplayRequest struct {
	TracePath string `json:"tracePath"`
	SurfaceID string `json:"surfaceId,omitempty"`
	Realtime  bool   `json:"realtime"`
	// DryRun sends strokes to a static surface that only logs them.
	DryRun bool `json:"dryRun"`
}

// ReplayCommand feeds a recorded trace through the engine.
func ReplayCommand(ctx context.Context, store *config.Store, req ReplayRequest) *CommandResponse {
	f, err := os.Open(req.TracePath)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to open trace: %w", err))
	}
	defer f.Close()

	entries, err := input.ReadTrace(f)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to read trace %s: %w", req.TracePath, err))
	}

	surface := store.Get().Surface
	if req.DryRun {
		surface.Backend = config.BackendStatic
		req.SurfaceID = ""
	}

	session, err := NewSession(ctx, store, SessionConfig{
		Surface:   surface,
		SurfaceID: req.SurfaceID,
	})
	if err != nil {
		return NewErrorResponse(err)
	}

	err = session.Run(ctx, &input.TraceSource{Entries: entries, Realtime: req.Realtime})
	session.Close()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("replay failed: %w", err))
	}

	data := session.Summary()
	data["frames"] = len(entries)
	data["sequence"] = session.Gestures()

	if req.DryRun {
		strokes := 0
		for _, s := range session.Registry().Surfaces() {
			if static, ok := s.(*devices.StaticSurface); ok {
				for _, batch := range static.Batches() {
					strokes += len(batch)
				}
			}
		}
		data["strokes"] = strokes
	}

	return NewSuccessResponse(data)
}
