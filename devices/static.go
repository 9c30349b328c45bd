package devices

import (
	"context"
	"sync"

	"github.com/mobile-next/remotepad/stroke"
	"github.com/mobile-next/remotepad/types"
	"github.com/mobile-next/remotepad/utils"
)

// StaticSurface is a fixed-size surface that records and logs strokes
// instead of delivering them. It backs dry runs and trace replays.
type StaticSurface struct {
	id   string
	size types.Size

	mu      sync.Mutex
	batches [][]stroke.Stroke
}

func NewStaticSurface(id string, size types.Size) *StaticSurface {
	return &StaticSurface{id: id, size: size}
}

func (s *StaticSurface) ID() string       { return s.id }
func (s *StaticSurface) Name() string     { return "Static " + s.id }
func (s *StaticSurface) Platform() string { return "static" }
func (s *StaticSurface) IsDefault() bool  { return false }

func (s *StaticSurface) Bounds() (types.Size, error) {
	return s.size, nil
}

func (s *StaticSurface) Inject(_ context.Context, strokes []stroke.Stroke) error {
	s.mu.Lock()
	s.batches = append(s.batches, strokes)
	s.mu.Unlock()

	for _, st := range strokes {
		utils.Info("[%s] stroke %s", s.id, st)
	}
	return nil
}

// Batches returns every batch injected so far.
func (s *StaticSurface) Batches() [][]stroke.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]stroke.Stroke, len(s.batches))
	copy(out, s.batches)
	return out
}
