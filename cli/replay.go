package cli

import (
	"github.com/mobile-next/remotepad/commands"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [trace.jsonl]",
	Short: "Replay a recorded touch trace",
	Long:  `Feeds a JSON-lines touch trace (as written by 'run --record') through the gesture engine and reports the recognised gestures.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadSettings(cmd)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}

		req := commands.ReplayRequest{
			TracePath: args[0],
			SurfaceID: surfaceID,
			Realtime:  replayRealtime,
			DryRun:    replayDryRun,
		}
		return printResponse(commands.ReplayCommand(cmd.Context(), store, req))
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	addSurfaceFlags(replayCmd)
	replayCmd.Flags().BoolVar(&replayRealtime, "realtime", false, "pace frames by their recorded timestamps")
	replayCmd.Flags().BoolVar(&replayDryRun, "dry-run", false, "log strokes instead of injecting them")
	replayCmd.Flags().Float64Var(&sensitivity, "sensitivity", 0, "cursor speed multiplier (overrides settings)")
}
