//go:build !linux

package input

import (
	"context"
	"errors"

	"github.com/mobile-next/remotepad/types"
)

// EvdevSource is only available on Linux.
type EvdevSource struct{}

func OpenEvdev(path string, size types.Size, grab bool) (*EvdevSource, error) {
	return nil, errors.New("touch devices are only supported on linux")
}

func (s *EvdevSource) Run(ctx context.Context, handle FrameHandler) error {
	return errors.New("touch devices are only supported on linux")
}

func (s *EvdevSource) Close() error {
	return nil
}
