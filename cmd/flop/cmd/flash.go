package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kairyu/flop/pkg/atmel"
	"github.com/kairyu/flop/pkg/memory"
	"github.com/kairyu/flop/pkg/target"
)

var (
	eepromFlag         bool
	userFlag           bool
	suppressBootloader bool
)

var flashCmd = &cobra.Command{
	Use:   "flash TARGET FILE",
	Short: "Program an Intel HEX image",
	Long: `Program an Intel HEX image into flash, EEPROM (--eeprom) or the AVR32
user page (--user), then read it back and validate it. FILE "-" reads the
image from standard input.

The application region must be blank unless --force is given. Writing the
user page always requires --force, since its last words hold the
bootloader configuration.`,
	Args: cobraArgs(cobra.ExactArgs(2)),
	RunE: runFlash,
}

func init() {
	rootCmd.AddCommand(flashCmd)

	flashCmd.Flags().BoolVar(&force, "force", false, "skip the blank check; required for --user")
	flashCmd.Flags().BoolVar(&eepromFlag, "eeprom", false, "program the EEPROM")
	flashCmd.Flags().BoolVar(&userFlag, "user", false, "program the AVR32 user page")
	flashCmd.Flags().BoolVar(&suppressValidation, "suppress-validation", false, "skip reading back the image")
	flashCmd.Flags().BoolVar(&suppressBootloader, "suppress-bootloader-mem", false, "drop image bytes that overlap the bootloader")
}

func runFlash(cmd *cobra.Command, args []string) error {
	desc, err := lookupTarget(args[0])
	if err != nil {
		return err
	}
	seg, err := selectSegment(desc, eepromFlag, userFlag)
	if err != nil {
		return err
	}
	buf, err := seg.outputBuffer(args[1])
	if err != nil {
		return err
	}
	log := newLogger()

	if n := buf.InvalidAddressCount(); n > 0 {
		log.Debugf("file contains 0x%X bytes outside target memory, first at 0x%X", n, buf.FirstInvalidAddress())
		if seg.unit == atmel.UnitFlash {
			log.Debugf("there may be data in the user page (offset 0x%X)", target.UserPageOffset)
		}
		status(cmd, "WARNING: 0x%X bytes are outside target memory,\n", n)
		status(cmd, " and will not be written.\n")
	}

	switch seg.unit {
	case atmel.UnitFlash:
		if err := checkBootloader(cmd, desc, buf); err != nil {
			return err
		}
		buf.SetValidRange(memory.NewRange(desc.FlashBottom(), desc.FlashTop()))
	case atmel.UnitUser:
		if !buf.HasData() {
			return exitError(ExitBufferInit, errors.New("no data to write into the user page"))
		}
		log.Debugf("hex file contains %d bytes to write", buf.DataLength())
		if !force {
			fmt.Fprintln(cmd.ErrOrStderr(), "ERROR: --force flag is required to write user page.")
			fmt.Fprintln(cmd.ErrOrStderr(), " Last word(s) in user page contain configuration data.")
			fmt.Fprintln(cmd.ErrOrStderr(), " The user page is erased whenever any data is written.")
			fmt.Fprintln(cmd.ErrOrStderr(), " Without valid config. device always resets in bootloader.")
			fmt.Fprintln(cmd.ErrOrStderr(), " Use read --user to obtain valid configuration words.")
			return argError(errors.New("user page write needs --force"))
		}
	}

	conn, err := connect(cmd, args[0])
	if err != nil {
		return err
	}
	defer conn.Close()
	d := conn.device

	if seg.unit == atmel.UnitUser {
		err = d.FlashUser(buf)
	} else {
		err = d.Flash(buf, seg.eeprom(), force)
	}
	if err != nil {
		return exitError(ExitFlashWrite, fmt.Errorf("write %s: %w", seg.unit, err))
	}

	if !suppressValidation {
		if err := validate(cmd, d, buf, seg.unit); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Memory did not validate. Did you erase?")
			return err
		}
	}
	status(cmd, "0x%X bytes written into 0x%X bytes memory (%.02f%%).\n",
		buf.DataLength(), buf.ValidLength(), buf.Usage()*100)
	return nil
}

// checkBootloader rejects image bytes inside the bootloader region, or
// drops them when --suppress-bootloader-mem is set.
func checkBootloader(cmd *cobra.Command, desc target.Descriptor, buf *memory.Buffer) error {
	dropped := 0
	for a := desc.BootloaderBottom(); a <= desc.BootloaderTop(); a++ {
		if !buf.IsValid(a) {
			continue
		}
		if !suppressBootloader {
			fmt.Fprintln(cmd.ErrOrStderr(), "Bootloader and code overlap.")
			fmt.Fprintln(cmd.ErrOrStderr(), "Use --suppress-bootloader-mem to ignore")
			return exitError(ExitBufferInit, fmt.Errorf("image overlaps bootloader at 0x%X", a))
		}
		buf.SetInvalid(a)
		dropped++
	}
	if dropped > 0 {
		buf.TrimDataRange()
	}
	return nil
}

// validate reads the valid region of out back from the device and
// compares it.
func validate(cmd *cobra.Command, d *atmel.Device, out *memory.Buffer, unit atmel.MemoryUnit) (err error) {
	defer func() {
		if err != nil {
			status(cmd, "FAIL\n")
		}
	}()

	in, err := memory.NewInputLike(out)
	if err != nil {
		return exitError(ExitUnspecified, fmt.Errorf("initialize buffer: %w", err))
	}
	in.SetDataRange(out.ValidRange())
	if err := d.ReadFlash(in, unit); err != nil {
		return exitError(ExitFlashRead, fmt.Errorf("read back: %w", err))
	}

	res := d.Validate(in, out)
	switch {
	case res.Inside > 0:
		return exitError(ExitValidationInRegion,
			fmt.Errorf("%d bytes differ in the program region", res.Inside))
	case res.Outside > 0:
		return exitError(ExitValidationOutOfRegion,
			fmt.Errorf("%d bytes outside the program region are not blank", res.Outside))
	}
	return nil
}
