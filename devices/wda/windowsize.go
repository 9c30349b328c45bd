package wda

import (
	"context"
	"fmt"
)

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type WindowSize struct {
	Scale      int  `json:"scale"`
	ScreenSize Size `json:"screenSize"`
}

// GetWindowSize returns the screen size in points, the unit actions use.
func (c *WdaClient) GetWindowSize(ctx context.Context) (*WindowSize, error) {
	var windowSize *WindowSize
	err := c.withSession(ctx, func(sessionId string) error {
		response, err := c.GetEndpoint(ctx, fmt.Sprintf("session/%s/wda/screen", sessionId))
		if err != nil {
			return err
		}

		value, ok := response["value"].(map[string]interface{})
		if !ok {
			return fmt.Errorf("unexpected screen response: %v", response)
		}
		screenSize, ok := value["screenSize"].(map[string]interface{})
		if !ok {
			return fmt.Errorf("unexpected screen response: %v", response)
		}

		scale, _ := value["scale"].(float64)
		width, _ := screenSize["width"].(float64)
		height, _ := screenSize["height"].(float64)

		windowSize = &WindowSize{
			Scale: int(scale),
			ScreenSize: Size{
				Width:  int(width),
				Height: int(height),
			},
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return windowSize, nil
}
