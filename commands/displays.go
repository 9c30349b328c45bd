package commands

import (
	"context"

	"github.com/mobile-next/remotepad/config"
	"github.com/mobile-next/remotepad/devices"
	"github.com/mobile-next/remotepad/types"
)

// DisplaysCommand lists the surfaces of the configured backend and the one
// input would be sent to.
func DisplaysCommand(ctx context.Context, s config.SurfaceSettings) *CommandResponse {
	registry, err := OpenRegistry(ctx, s)
	if err != nil {
		return NewErrorResponse(err)
	}

	surfaces := registry.Surfaces()
	infos := make([]types.SurfaceInfo, 0, len(surfaces))
	for _, surface := range surfaces {
		infos = append(infos, devices.Info(surface))
	}

	target, _ := registry.SelectTarget()
	return NewSuccessResponse(map[string]interface{}{
		"backend":  s.Backend,
		"surfaces": infos,
		"target":   target,
	})
}
