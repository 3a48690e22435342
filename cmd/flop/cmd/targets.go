package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kairyu/flop/pkg/dfu"
	"github.com/kairyu/flop/pkg/target"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List supported targets",
	Long: `Print every target name known to flop, grouped by bootloader family.
Targets from --targets-file are included.`,
	Args: cobraArgs(cobra.NoArgs),
	RunE: runTargets,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List connected Atmel bootloaders",
	Long: `Scan the USB bus for devices answering on a known target's vendor and
product id and print their location, for use with --device BUS:ADDR.`,
	Args: cobraArgs(cobra.NoArgs),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(listCmd)
}

const targetsPerLine = 4

func runTargets(cmd *cobra.Command, args []string) error {
	t, err := loadTargets()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range target.Families() {
		names := t.ByFamily(f)
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s based controllers:\n", f)
		for i := 0; i < len(names); i += targetsPerLine {
			end := i + targetsPerLine
			if end > len(names) {
				end = len(names)
			}
			var line strings.Builder
			for _, n := range names[i:end] {
				fmt.Fprintf(&line, "    %-18s", n)
			}
			fmt.Fprintln(out, strings.TrimRight(line.String(), " "))
		}
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	t, err := loadTargets()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), 5*time.Second)
	defer cancel()

	infos, err := dfu.ListDevices(ctx, func(vid, pid uint16) bool {
		return len(t.MatchUSB(vid, pid)) > 0
	})
	if err != nil {
		return exitError(ExitDeviceAccess, fmt.Errorf("list devices: %w", err))
	}

	out := cmd.OutOrStdout()
	if len(infos) == 0 {
		fmt.Fprintln(out, "No bootloaders found.")
		return nil
	}
	for _, info := range infos {
		var names []string
		for _, d := range t.MatchUSB(info.VendorID, info.ProductID) {
			names = append(names, d.Name)
		}
		fmt.Fprintf(out, "%s  %s\n", info, strings.Join(names, ", "))
	}
	return nil
}
