package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mobile-next/remotepad/commands"
	"github.com/spf13/cobra"
)

var gestureCmd = &cobra.Command{
	Use:   "gesture [name]",
	Short: "Inject one gesture on the target display",
	Long: fmt.Sprintf(`Synthesizes one gesture at the given point and injects it, without a touch device.
Gestures: %s.`, strings.Join(commands.GestureNames, ", ")),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := strings.Split(gestureAt, ",")
		if len(parts) != 2 {
			return printResponse(commands.NewErrorResponse(fmt.Errorf("invalid coordinate format. Expected 'x,y', got '%s'", gestureAt)))
		}

		x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errX != nil || errY != nil {
			return printResponse(commands.NewErrorResponse(fmt.Errorf("invalid coordinate values. Got x='%s', y='%s'", parts[0], parts[1])))
		}

		store, err := loadSettings(cmd)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}

		req := commands.GestureRequest{
			SurfaceID: surfaceID,
			Gesture:   args[0],
			X:         x,
			Y:         y,
			DY:        scrollDY,
		}
		return printResponse(commands.GestureCommand(cmd.Context(), store.Get(), req))
	},
}

func init() {
	rootCmd.AddCommand(gestureCmd)

	addSurfaceFlags(gestureCmd)
	gestureCmd.Flags().StringVar(&gestureAt, "at", "500,500", "point to perform the gesture at, as x,y")
	gestureCmd.Flags().Float64Var(&scrollDY, "dy", 0, "scroll delta in touch units (scroll only)")
}
