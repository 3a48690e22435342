package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kairyu/flop/pkg/atmel"
)

var (
	force              bool
	suppressValidation bool
)

var eraseCmd = &cobra.Command{
	Use:   "erase TARGET",
	Short: "Erase the application flash",
	Long: `Erase the application region of flash. The region is blank checked first
and the erase is skipped when it is already blank, unless --force is given.
After erasing, the region is checked again.`,
	Args: cobraArgs(cobra.ExactArgs(1)),
	RunE: runErase,
}

func init() {
	rootCmd.AddCommand(eraseCmd)

	eraseCmd.Flags().BoolVar(&force, "force", false, "erase even if the flash is already blank")
	eraseCmd.Flags().BoolVar(&suppressValidation, "suppress-validation", false, "skip the blank check after erasing")
}

func runErase(cmd *cobra.Command, args []string) error {
	conn, err := connect(cmd, args[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	d := conn.device
	start, end := conn.desc.FlashBottom(), conn.desc.FlashTop()

	if !force {
		if res, err := d.CheckBlank(start, end); res == 0 && err == nil {
			status(cmd, "Chip already blank, to force erase use --force.\n")
			return nil
		}
	}

	conn.log.Debugf("erase 0x%X bytes", end-start+1)
	if _, err := d.Erase(atmel.EraseAll); err != nil {
		return exitError(ExitUnspecified, fmt.Errorf("erase: %w", err))
	}

	if !suppressValidation {
		res, err := d.CheckBlank(start, end)
		if err != nil {
			return exitError(ExitFlashRead, fmt.Errorf("erase validation: %w", err))
		}
		if res != 0 {
			return exitError(ExitValidationInRegion,
				fmt.Errorf("flash not blank at 0x%X after erase", res-1))
		}
	}
	return nil
}
