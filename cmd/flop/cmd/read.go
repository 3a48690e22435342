package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kairyu/flop/pkg/ihex"
	"github.com/kairyu/flop/pkg/memory"
)

var binaryOutput bool

var readCmd = &cobra.Command{
	Use:     "read TARGET",
	Aliases: []string{"dump"},
	Short:   "Read device memory",
	Long: `Read flash, EEPROM (--eeprom) or the AVR32 user page (--user) and write it
to standard output as Intel HEX. Pages that read back blank are left out
unless --force is given. --bin writes the raw bytes instead.`,
	Args: cobraArgs(cobra.ExactArgs(1)),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().BoolVar(&eepromFlag, "eeprom", false, "read the EEPROM")
	readCmd.Flags().BoolVar(&userFlag, "user", false, "read the AVR32 user page")
	readCmd.Flags().BoolVar(&force, "force", false, "output blank pages too")
	readCmd.Flags().BoolVar(&binaryOutput, "bin", false, "write raw bytes instead of Intel HEX")
}

func runRead(cmd *cobra.Command, args []string) error {
	desc, err := lookupTarget(args[0])
	if err != nil {
		return err
	}
	seg, err := selectSegment(desc, eepromFlag, userFlag)
	if err != nil {
		return err
	}
	buf, err := memory.NewInput(seg.size, seg.pageSize, seg.offset)
	if err != nil {
		return exitError(ExitBufferInit, fmt.Errorf("initialize buffer: %w", err))
	}
	region := buf.ValidRange()
	if !seg.eeprom() && seg.offset == 0 {
		region = memory.NewRange(desc.FlashBottom(), desc.FlashTop())
	}
	buf.SetValidRange(region)
	buf.SetDataRange(region)

	conn, err := connect(cmd, args[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.device.ReadFlash(buf, seg.unit); err != nil {
		return exitError(ExitFlashRead, fmt.Errorf("read %s: %w", seg.unit, err))
	}

	out := cmd.OutOrStdout()
	if binaryOutput {
		raw := make([]byte, 0, region.Length())
		for a := region.Start; a <= region.End; a++ {
			raw = append(raw, buf.Data(a))
		}
		if _, err := out.Write(raw); err != nil {
			return exitError(ExitUnspecified, fmt.Errorf("write output: %w", err))
		}
		return nil
	}

	segments := dumpSegments(buf, region, force)
	if len(segments) == 0 {
		status(cmd, "Memory is blank, returning a single blank page.\n")
		status(cmd, "Use --force to return the entire memory regardless.\n")
		first := memory.NewRange(region.Start, region.Start+seg.pageSize-1)
		if first.End > region.End {
			first.End = region.End
		}
		segments = dumpSegments(buf, first, true)
	}
	if err := ihex.Write(out, segments); err != nil {
		return exitError(ExitUnspecified, fmt.Errorf("write output: %w", err))
	}
	return nil
}

// dumpSegments collects the pages of r that hold a non-blank byte, merging
// neighbours. With all set every page is kept.
func dumpSegments(buf *memory.Buffer, r memory.Range, all bool) []ihex.Segment {
	var segments []ihex.Segment
	pageSize := buf.PageSize()
	last := -1
	for page, end := r.Start, 0; page <= r.End; page = end + 1 {
		end = page - page%pageSize + pageSize - 1
		if end > r.End {
			end = r.End
		}
		data := make([]byte, 0, end-page+1)
		keep := all
		for a := page; a <= end; a++ {
			v := buf.Data(a)
			keep = keep || v != memory.Blank
			data = append(data, v)
		}
		if !keep {
			continue
		}
		if n := len(segments); n > 0 && last == page-1 {
			segments[n-1].Data = append(segments[n-1].Data, data...)
		} else {
			segments = append(segments, ihex.Segment{Address: buf.Offset() + uint32(page), Data: data})
		}
		last = end
	}
	return segments
}
