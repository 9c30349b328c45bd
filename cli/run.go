package cli

import (
	"fmt"

	"github.com/mobile-next/remotepad/commands"
	"github.com/mobile-next/remotepad/daemon"
	"github.com/mobile-next/remotepad/engine"
	"github.com/mobile-next/remotepad/types"
	"github.com/mobile-next/remotepad/utils"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Forward a local touch device to the target display",
	Long: `Reads multi-finger touches from a Linux input device and replays them as cursor
motion, clicks, scrolling, pinch zoom and swipes on the target display.

While running, SIGUSR1 suspends or resumes input and SIGUSR2 hides or shows the cursor.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runDaemon && !daemon.IsChild() {
			child, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}
			if child != nil {
				fmt.Printf("Touchpad daemon spawned (pid %d), logging to %s\n", child.Pid, daemon.LogFile())
				return nil
			}
		}
		if daemon.IsChild() {
			if _, err := daemon.Daemonize(); err != nil {
				return err
			}
			defer func() {
				if err := daemon.Release(); err != nil {
					utils.Warn("Failed to release pid file: %v", err)
				}
			}()
		}

		store, err := loadSettings(cmd)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}

		req := commands.RunRequest{
			Device:    touchDevice,
			Size:      types.Size{Width: touchWidth, Height: touchHeight},
			Grab:      grabDevice,
			SurfaceID: surfaceID,
			Record:    recordPath,
			OnReady: func(e *engine.Engine) {
				watchControls(cmd.Context(), e)
			},
		}

		return printResponse(commands.RunCommand(cmd.Context(), store, req))
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the background touchpad session",
	Long:  `Sends SIGTERM to the session started with 'remotepad run --daemon'.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := daemon.Stop()
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}
		return printResponse(commands.NewSuccessResponse(map[string]interface{}{
			"message": fmt.Sprintf("Stopped background session (pid %d)", pid),
		}))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stopCmd)

	addSurfaceFlags(runCmd)
	runCmd.Flags().StringVar(&touchDevice, "device", "", "touch input device, e.g. /dev/input/event5 (default: first touch device)")
	runCmd.Flags().IntVar(&touchWidth, "width", 1080, "width touch coordinates are scaled to (0 keeps device units)")
	runCmd.Flags().IntVar(&touchHeight, "height", 2400, "height touch coordinates are scaled to (0 keeps device units)")
	runCmd.Flags().BoolVar(&grabDevice, "grab", true, "take the touch device exclusively")
	runCmd.Flags().StringVar(&recordPath, "record", "", "write received frames to a JSON-lines trace")
	runCmd.Flags().Float64Var(&sensitivity, "sensitivity", 0, "cursor speed multiplier (overrides settings)")
	runCmd.Flags().BoolVarP(&runDaemon, "daemon", "d", false, "run in the background")
}
