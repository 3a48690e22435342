package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var noReset bool

var launchCmd = &cobra.Command{
	Use:     "launch TARGET",
	Aliases: []string{"start", "reset"},
	Short:   "Leave the bootloader and run the application",
	Long: `Start the application. By default the bootloader resets the chip through
its watchdog; --no-reset jumps to address zero instead.`,
	Args: cobraArgs(cobra.ExactArgs(1)),
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)

	launchCmd.Flags().BoolVar(&noReset, "no-reset", false, "jump to the application without a reset")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	conn, err := connect(cmd, args[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.device.Launch(!noReset); err != nil {
		return exitError(ExitUnspecified, fmt.Errorf("launch: %w", err))
	}
	return nil
}
