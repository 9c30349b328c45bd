//go:build windows

package cli

import (
	"context"

	"github.com/mobile-next/remotepad/engine"
)

func watchControls(ctx context.Context, e *engine.Engine) {}
