package cli

import (
	"github.com/mobile-next/remotepad/commands"
	"github.com/mobile-next/remotepad/input"
	"github.com/spf13/cobra"
)

var displaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "List target displays",
	Long:  `List the displays of the configured backend and the one input would be sent to.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadSettings(cmd)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}
		return printResponse(commands.DisplaysCommand(cmd.Context(), store.Get().Surface))
	},
}

var touchpadsCmd = &cobra.Command{
	Use:   "touchpads",
	Short: "List local input devices",
	Long:  `List the input devices of this machine that expose an event node, touch devices first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		devs, err := input.ListDevices()
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}
		return printResponse(commands.NewSuccessResponse(map[string]interface{}{
			"devices": devs,
		}))
	},
}

func init() {
	rootCmd.AddCommand(displaysCmd)
	rootCmd.AddCommand(touchpadsCmd)

	addSurfaceFlags(displaysCmd)
}
