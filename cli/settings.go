package cli

import (
	"github.com/mobile-next/remotepad/commands"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long:  `Commands for reading and changing the persisted gesture, stroke, cursor and surface settings.`,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := commands.LoadSettings(settingsPath)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}
		return printResponse(commands.SettingsListCommand(store))
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [section.key] [value]",
	Short: "Change one setting",
	Long:  `Changes one setting, e.g. 'remotepad settings set gesture.sensitivity 3'. Out of range values are clamped.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := commands.LoadSettings(settingsPath)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}
		return printResponse(commands.SettingsSetCommand(store, args[0], args[1]))
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := commands.LoadSettings(settingsPath)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}
		return printResponse(commands.SettingsResetCommand(store))
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)

	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}
