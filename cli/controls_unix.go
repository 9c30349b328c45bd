//go:build !windows

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mobile-next/remotepad/engine"
	"github.com/mobile-next/remotepad/utils"
)

// watchControls maps SIGUSR1 to suspend/resume and SIGUSR2 to hide/show cursor.
func watchControls(ctx context.Context, e *engine.Engine) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGUSR1, syscall.SIGUSR2)

	go func() {
		defer signal.Stop(sig)
		for {
			select {
			case <-ctx.Done():
				return
			case s := <-sig:
				switch s {
				case syscall.SIGUSR1:
					suspended := !e.Suspended()
					e.SetSuspended(suspended)
					utils.Info("Input suspended: %v", suspended)
				case syscall.SIGUSR2:
					e.SetCursorVisible(!e.CursorVisible())
				}
			}
		}
	}()
}
