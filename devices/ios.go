package devices

import (
	"context"
	"fmt"
	"time"

	"github.com/mobile-next/remotepad/devices/wda"
	"github.com/mobile-next/remotepad/stroke"
	"github.com/mobile-next/remotepad/types"
)

// WDASurface is the screen of an iOS device or simulator driven through
// WebDriverAgent. Simultaneous strokes become parallel touch pointers, so
// pinch zoom is delivered as a real two-finger gesture.
type WDASurface struct {
	client *wda.WdaClient
}

func NewWDASurface(client *wda.WdaClient) *WDASurface {
	return &WDASurface{client: client}
}

func (s *WDASurface) ID() string {
	return "wda:" + s.client.BaseURL()
}

func (s *WDASurface) Name() string {
	return fmt.Sprintf("WebDriverAgent at %s", s.client.BaseURL())
}

func (s *WDASurface) Platform() string {
	return "ios"
}

func (s *WDASurface) IsDefault() bool {
	return true
}

func (s *WDASurface) Bounds() (types.Size, error) {
	size, err := s.client.GetWindowSize(context.Background())
	if err != nil {
		return types.Size{}, err
	}
	return types.Size{Width: size.ScreenSize.Width, Height: size.ScreenSize.Height}, nil
}

func (s *WDASurface) Inject(ctx context.Context, strokes []stroke.Stroke) error {
	paths := make([]wda.Path, 0, len(strokes))
	for _, st := range strokes {
		x1, y1 := st.Start.Rounded()
		x2, y2 := st.End.Rounded()
		paths = append(paths, wda.Path{
			X1: x1, Y1: y1,
			X2: x2, Y2: y2,
			Delay:    st.Delay,
			Duration: st.Duration,
		})
	}
	return s.client.PerformPaths(ctx, paths)
}

// Close ends the WebDriverAgent session opened for injection.
func (s *WDASurface) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Close(ctx)
}

// NewWDAProvider lists the single screen behind a WebDriverAgent address.
// The agent is probed on every call so a stopped agent drops the surface.
func NewWDAProvider(address string) SurfaceProvider {
	surface := NewWDASurface(wda.NewWdaClient(address))
	return ProviderFunc(func(ctx context.Context) ([]Surface, error) {
		if _, err := surface.client.GetStatus(ctx); err != nil {
			return nil, fmt.Errorf("WebDriverAgent is not reachable at %s: %w", surface.client.BaseURL(), err)
		}
		return []Surface{surface}, nil
	})
}
