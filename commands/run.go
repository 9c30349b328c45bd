package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mobile-next/remotepad/config"
	"github.com/mobile-next/remotepad/engine"
	"github.com/mobile-next/remotepad/input"
	"github.com/mobile-next/remotepad/types"
	"github.com/mobile-next/remotepad/utils"
)

// DefaultWatchInterval is how often a live session re-enumerates surfaces.
const DefaultWatchInterval = 2 * time.Second

// RunRequest represents the parameters for a live touch session
type RunRequest struct {
	// Device is the touch input node, e.g. /dev/input/event5. Empty picks the
	// first device whose name mentions touch.
	Device    string     `json:"device"`
	Size      types.Size `json:"size"`
	Grab      bool       `json:"grab"`
	SurfaceID string     `json:"surfaceId,omitempty"`
	Record    string     `json:"record,omitempty"`
	// OnReady is called once the engine is running, e.g. to hook up
	// suspend and cursor visibility controls.
	OnReady func(*engine.Engine) `json:"-"`
}

// RunCommand turns a local touch device into a remote touchpad until ctx
// is done.
func RunCommand(ctx context.Context, store *config.Store, req RunRequest) *CommandResponse {
	path := req.Device
	if path == "" {
		devs, err := input.ListDevices()
		if err != nil || len(devs) == 0 {
			return NewErrorResponse(fmt.Errorf("no input device given and none could be detected"))
		}
		path = devs[0].Path
		utils.Info("Using touch device %s (%s)", path, devs[0].Name)
	}

	src, err := input.OpenEvdev(path, req.Size, req.Grab)
	if err != nil {
		return NewErrorResponse(err)
	}
	registerCleanup("touch device", src.Close)

	cfg := SessionConfig{
		Surface:       store.Get().Surface,
		SurfaceID:     req.SurfaceID,
		WatchInterval: DefaultWatchInterval,
	}

	if req.Record != "" {
		f, err := os.Create(req.Record)
		if err != nil {
			src.Close()
			return NewErrorResponse(fmt.Errorf("failed to create trace file: %w", err))
		}
		defer f.Close()
		cfg.Record = f
	}

	session, err := NewSession(ctx, store, cfg)
	if err != nil {
		src.Close()
		return NewErrorResponse(err)
	}
	registerCleanup("session", session.Close)

	if req.OnReady != nil {
		req.OnReady(session.Engine())
	}

	target, _ := session.Engine().Target()
	utils.Info("Forwarding touches from %s to %s", path, target)

	err = session.Run(ctx, src)
	session.Close()
	src.Close()
	if err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(session.Summary())
}
