package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kairyu/flop/pkg/atmel"
)

var getCmd = &cobra.Command{
	Use:   "get TARGET [NAME]",
	Short: "Read a bootloader info value",
	Long: `Read one configuration value from the bootloader and print it. NAME
defaults to bootloader-version. The BSB, SBV, SSB, EB and HSB values exist
only on 8051 bootloaders.`,
	Args: cobraArgs(cobra.RangeArgs(1, 2)),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	var names []string
	for _, item := range atmel.InfoItems() {
		names = append(names, item.Name())
	}
	getCmd.Long += "\n\nNames: " + strings.Join(names, ", ")
}

func runGet(cmd *cobra.Command, args []string) error {
	item := atmel.InfoBootloaderVersion
	if len(args) == 2 {
		var err error
		if item, err = atmel.ParseInfoItem(args[1]); err != nil {
			return argError(err)
		}
	}

	conn, err := connect(cmd, args[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	info, err := conn.device.ReadConfig()
	if err != nil {
		conn.log.Debugf("reading %s config information: %v", conn.desc.Name, err)
		return exitError(ExitUnspecified, fmt.Errorf("error reading %s config information: %w", conn.desc.Name, err))
	}

	v, err := info.Get(item)
	switch {
	case errors.Is(err, atmel.ErrRequires8051):
		return exitError(ExitUnspecified, fmt.Errorf("%s requires 8051 based controller", item.Description()))
	case err != nil:
		return exitError(ExitUnspecified, fmt.Errorf("requested device info is unavailable: %w", err))
	}

	if quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "0x%02x (%d)\n", v, v)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: 0x%02x (%d)\n", item.Description(), v, v)
	}
	return nil
}
