package wda

import (
	"context"
	"fmt"
	"time"
)

type TapAction struct {
	Type     string `json:"type"`
	Duration int    `json:"duration"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Button   int    `json:"button"`
}

type PointerParameters struct {
	PointerType string `json:"pointerType"`
}

type Pointer struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Parameters PointerParameters `json:"parameters"`
	Actions    []TapAction       `json:"actions"`
}

type ActionsRequest struct {
	Actions []Pointer `json:"actions"`
}

// Path is one finger's movement. Fingers in the same request run in parallel.
type Path struct {
	X1, Y1   int
	X2, Y2   int
	Delay    time.Duration
	Duration time.Duration
}

// BuildActions converts finger paths into a W3C actions request with one
// touch pointer source per finger.
func BuildActions(paths []Path) ActionsRequest {
	req := ActionsRequest{Actions: make([]Pointer, 0, len(paths))}

	for i, p := range paths {
		actions := []TapAction{
			{Type: "pointerMove", Duration: 0, X: p.X1, Y: p.Y1},
		}
		if p.Delay > 0 {
			actions = append(actions, TapAction{Type: "pause", Duration: int(p.Delay.Milliseconds())})
		}
		actions = append(actions, TapAction{Type: "pointerDown", Button: 0})

		ms := int(p.Duration.Milliseconds())
		if p.X1 == p.X2 && p.Y1 == p.Y2 {
			actions = append(actions, TapAction{Type: "pause", Duration: ms})
		} else {
			actions = append(actions, TapAction{Type: "pointerMove", Duration: ms, X: p.X2, Y: p.Y2})
		}
		actions = append(actions, TapAction{Type: "pointerUp", Button: 0})

		req.Actions = append(req.Actions, Pointer{
			Type: "pointer",
			ID:   fmt.Sprintf("finger%d", i+1),
			Parameters: PointerParameters{
				PointerType: "touch",
			},
			Actions: actions,
		})
	}

	return req
}

// PerformPaths sends all paths as one actions request.
func (c *WdaClient) PerformPaths(ctx context.Context, paths []Path) error {
	if len(paths) == 0 {
		return nil
	}

	data := BuildActions(paths)
	return c.withSession(ctx, func(sessionId string) error {
		_, err := c.PostEndpoint(ctx, fmt.Sprintf("session/%s/actions", sessionId), data)
		return err
	})
}
