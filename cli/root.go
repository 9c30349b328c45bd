package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/mobile-next/remotepad/commands"
	"github.com/mobile-next/remotepad/config"
	"github.com/mobile-next/remotepad/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "remotepad",
	Short: "Use a touch screen as a remote touchpad for another display",
	Long:  `Turns multi-finger touches into cursor motion, clicks, scrolling, pinch zoom and swipe navigation on a target Android or iOS display.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func initConfig() {
	utils.SetVerbose(verbose)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", fmt.Sprintf("settings file (default %s, or $%s)", config.DefaultPath(), config.ConfigEnvVar))
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "output format (json or yaml)")
}

// Execute runs the root command
func Execute() error {
	// enable microseconds in logs
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	return rootCmd.Execute()
}

// loadSettings opens the settings store and applies the surface flags on top.
func loadSettings(cmd *cobra.Command) (*config.Store, error) {
	store, err := commands.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	store.Update(func(s *config.Settings) {
		if cmd.Flags().Changed("backend") {
			s.Surface.Backend = backend
		}
		if cmd.Flags().Changed("serial") {
			s.Surface.ADBSerial = adbSerial
		}
		if cmd.Flags().Changed("wda") {
			s.Surface.WDAAddress = wdaAddress
		}
		if cmd.Flags().Changed("sensitivity") {
			s.Gesture.Sensitivity = sensitivity
		}
	})
	return store, nil
}

func addSurfaceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&backend, "backend", "", "surface backend (adb, wda or static)")
	cmd.Flags().StringVar(&adbSerial, "serial", "", "adb serial of the target device")
	cmd.Flags().StringVar(&wdaAddress, "wda", "", "WebDriverAgent address, e.g. localhost:8100")
	cmd.Flags().StringVar(&surfaceID, "surface", "", "target surface id (default: last display listed)")
}

// printResponse prints a command response and turns an error status into an error.
func printResponse(response *commands.CommandResponse) error {
	printOutput(response)
	if response.Status == "error" {
		return fmt.Errorf("%s", response.Error)
	}
	return nil
}

func printOutput(data interface{}) {
	if outputFormat == "yaml" {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			log.Fatal(err)
		}
		_ = enc.Close()
		return
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(jsonData))
}
