package commands

import (
	"context"
	"fmt"

	"github.com/mobile-next/remotepad/config"
	"github.com/mobile-next/remotepad/gesture"
	"github.com/mobile-next/remotepad/stroke"
	"github.com/mobile-next/remotepad/types"
)

// GestureRequest represents the parameters for a one-shot gesture command
type GestureRequest struct {
	SurfaceID string  `json:"surfaceId"`
	Gesture   string  `json:"gesture"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	// DY is the scroll delta in touch units, before gain
	DY float64 `json:"dy,omitempty"`
}

// GestureNames lists the gestures GestureCommand accepts.
var GestureNames = []string{"click", "right-click", "scroll", "zoom-in", "zoom-out", "swipe-forward", "swipe-back"}

// ParseGesture maps a gesture name to a discrete gesture.
func ParseGesture(name string, dy float64) (gesture.Gesture, error) {
	switch name {
	case "click":
		return gesture.NewClick(false), nil
	case "right-click":
		return gesture.NewClick(true), nil
	case "scroll":
		if dy == 0 {
			return gesture.Gesture{}, fmt.Errorf("scroll needs a non-zero delta")
		}
		return gesture.NewScroll(dy), nil
	case "zoom-in":
		return gesture.NewZoom(true), nil
	case "zoom-out":
		return gesture.NewZoom(false), nil
	case "swipe-forward":
		return gesture.NewSwipe(true), nil
	case "swipe-back":
		return gesture.NewSwipe(false), nil
	}
	return gesture.Gesture{}, fmt.Errorf("unknown gesture '%s', expected one of %v", name, GestureNames)
}

// GestureCommand synthesizes one gesture at (x, y) and injects it on a
// surface, bypassing the classifier.
func GestureCommand(ctx context.Context, settings config.Settings, req GestureRequest) *CommandResponse {
	if req.X < 0 || req.Y < 0 {
		return NewErrorResponse(fmt.Errorf("x and y coordinates must be non-negative, got x=%g, y=%g", req.X, req.Y))
	}

	g, err := ParseGesture(req.Gesture, req.DY)
	if err != nil {
		return NewErrorResponse(err)
	}

	surface, err := FindSurfaceOrAutoSelect(ctx, settings.Surface, req.SurfaceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding surface: %w", err))
	}

	at := types.Point{X: req.X, Y: req.Y}
	strokes := stroke.Synthesize(g, at, settings.StrokeParams())

	if err := surface.Inject(ctx, strokes); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to inject %s on surface %s: %w", g, surface.ID(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Injected %s on surface %s at (%g,%g)", g, surface.ID(), req.X, req.Y),
		"strokes": strokes,
	})
}
