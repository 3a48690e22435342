package atmel

import (
	"github.com/pkg/errors"

	"github.com/kairyu/flop/pkg/memory"
)

// Flash programs the valid data of buf into flash, or EEPROM when eeprom
// is set. Unless force is set the target region must be blank.
func (d *Device) Flash(buf *memory.Buffer, eeprom, force bool) error {
	d.log.Tracef("flash eeprom=%t force=%t", eeprom, force)
	if err := d.prepare(buf); err != nil {
		return err
	}

	if !force {
		result, err := d.CheckBlankRange(buf.DataRange())
		if result != 0 {
			d.printf("The target memory for the program is not blank.\n")
			d.printf("Use --force flag to override this error check.\n")
			d.log.Debugf("the target memory is not blank")
			if err != nil {
				return errors.Wrap(ErrNotBlank, err.Error())
			}
			return errors.Wrapf(ErrNotBlank, "first programmed byte at 0x%X", result-1)
		}
	}

	unit := UnitFlash
	if eeprom {
		unit = UnitEEPROM
	}
	return d.program(buf, unit, eeprom)
}

// FlashUser writes the AVR32 user page. The page is not erased by a chip
// erase, so no blank check is made.
func (d *Device) FlashUser(buf *memory.Buffer) error {
	d.log.Tracef("flash user page")
	if !d.initialized() {
		return ErrNotInitialized
	}
	if !d.family.InAVR32Group() {
		return errors.Wrapf(ErrUnsupportedFamily, "user page on %s", d.family)
	}
	if err := d.prepare(buf); err != nil {
		return err
	}
	return d.program(buf, UnitUser, false)
}

func (d *Device) prepare(buf *memory.Buffer) error {
	switch {
	case !d.initialized():
		return ErrNotInitialized
	case !buf.Initialized():
		return memory.ErrNotInitialized
	case !buf.HasData():
		d.log.Debugf("no valid target memory, end before start")
		return ErrNoData
	}

	buf.PadPages()

	valid, data := buf.ValidRange(), buf.DataRange()
	d.log.Debugf("flash available from %s (64kB p. %s), 0x%X bytes",
		valid, valid.PageRange(), valid.Length())
	d.log.Debugf("data start @ 0x%X: 64kB p %d; %dB p 0x%X + 0x%X offset",
		data.Start, data.StartPage(), buf.PageSize(), buf.FirstPage(), buf.OffsetInPage(data.Start))
	d.log.Debugf("data end @ 0x%X: 64kB p %d; %dB p 0x%X + 0x%X offset",
		data.End, data.EndPage(), buf.PageSize(), buf.LastPage(), buf.OffsetInPage(data.End))
	d.log.Debugf("totals: 0x%X bytes, %d %dB pages, %d 64kB pages",
		data.Length(), buf.PageCount(), buf.PageSize(), data.PageCount())

	if !buf.DataInsideValid() {
		d.log.Debugf("data exists outside of the valid target flash region")
		d.printf("Hex file error, use debug for more info.\n")
		return ErrDataOutsideRegion
	}
	return nil
}

// program writes every block of buf to unit.
func (d *Device) program(buf *memory.Buffer, unit MemoryUnit, eeprom bool) error {
	if err := d.SelectMemoryUnit(unit); err != nil {
		d.log.Debugf("error selecting memory unit: %v", err)
		d.printf("Memory access error, use debug for more info.\n")
		return err
	}

	p := d.startProgress("Programming", buf.DataLength())
	err := d.eachBlock(buf, p, func() error {
		d.log.Debugf("program data block: %s (p. %d), 0x%X bytes",
			buf.BlockRange(), buf.BlockPage(), buf.BlockLength())
		if err := d.WriteBlock(buf, eeprom); err != nil {
			return &blockError{op: "write", err: err}
		}
		return nil
	})
	p.finish(err)
	return d.reportBlockError(err)
}

// ReadFlash fills buf from flash, EEPROM or the user page.
func (d *Device) ReadFlash(buf *memory.Buffer, unit MemoryUnit) error {
	d.log.Tracef("read flash %s", unit)
	if !d.initialized() {
		return ErrNotInitialized
	}
	if !buf.Initialized() {
		return memory.ErrNotInitialized
	}
	if unit != UnitFlash && unit != UnitUser && unit != UnitEEPROM {
		d.log.Debugf("invalid memory segment %s to read", unit)
		d.printf("Program Error, use debug for more info.\n")
		return errors.Wrapf(ErrInvalidMemoryUnit, "cannot read %s", unit)
	}
	if err := d.SelectMemoryUnit(unit); err != nil {
		d.log.Debugf("error selecting memory unit: %v", err)
		d.printf("Memory access error, use debug for more info.\n")
		return err
	}

	p := d.startProgress("Reading", buf.DataLength())
	err := d.eachBlock(buf, p, func() error {
		if err := d.ReadBlock(buf, unit == UnitEEPROM); err != nil {
			return &blockError{op: "read", err: err}
		}
		return nil
	})
	p.finish(err)
	return d.reportBlockError(err)
}

// blockError marks a failure of the per-block transfer, as opposed to a
// page selection failure.
type blockError struct {
	op  string
	err error
}

func (e *blockError) Error() string { return e.op + " block: " + e.err.Error() }
func (e *blockError) Unwrap() error { return e.err }
func (e *blockError) Cause() error  { return e.err }

// eachBlock walks the blocks of buf, selecting 64 KiB pages as the cursor
// crosses them.
func (d *Device) eachBlock(buf *memory.Buffer, p *progress, fn func() error) error {
	page := -1
	for buf.Rewind(); buf.HasBlock(); buf.Next() {
		if page != buf.BlockPage() {
			page = buf.BlockPage()
			if err := d.SelectPage(page); err != nil {
				d.log.Debugf("error selecting 64kB page %d: %v", page, err)
				return errors.Wrapf(err, "select page %d", page)
			}
		}
		if err := fn(); err != nil {
			d.log.Debugf("block %s failed: %v", buf.BlockRange(), err)
			return err
		}
		p.update(buf)
	}
	return nil
}

func (d *Device) reportBlockError(err error) error {
	if err == nil {
		return nil
	}
	var be *blockError
	if errors.As(err, &be) {
		d.printf("Memory %s error, use debug for more info.\n", be.op)
		return be.err
	}
	d.printf("Memory access error, use debug for more info.\n")
	return err
}

// ValidationResult counts the bytes that failed to read back as expected.
type ValidationResult struct {
	// Inside counts mismatches among the bytes that were written.
	Inside int
	// Outside counts bytes of the valid region that were not written but
	// did not read back blank.
	Outside int
}

// Code folds the counts into one value: -Inside when any written byte
// differs, otherwise Outside.
func (v ValidationResult) Code() int {
	if v.Inside > 0 {
		return -v.Inside
	}
	return v.Outside
}

// OK reports whether the image validated.
func (v ValidationResult) OK() bool { return v.Inside == 0 && v.Outside == 0 }

// Validate compares in, read back from the device, with out over the
// valid region of out.
func (d *Device) Validate(in, out *memory.Buffer) ValidationResult {
	var res ValidationResult
	valid := out.ValidRange()
	d.log.Debugf("validating image from byte %s", valid)
	d.printf("Validating...  ")

	for i := valid.Start; i <= valid.End; i++ {
		if out.IsValid(i) {
			if out.Data(i) != in.Data(i) {
				if res.Inside == 0 {
					d.log.Debugf("image did not validate at byte 0x%X of 0x%X", i, out.ValidLength())
					d.log.Debugf("wanted 0x%02x but read 0x%02x, suppressing additional warnings",
						out.Data(i), in.Data(i))
				}
				res.Inside++
			}
			continue
		}
		if in.Data(i) != memory.Blank {
			if res.Outside == 0 {
				d.log.Debugf("outside program region: byte 0x%X expected 0xFF but read 0x%02X, suppressing additional warnings",
					i, in.Data(i))
			}
			res.Outside++
		}
	}

	if res.OK() {
		d.printf("Success\n")
	} else {
		d.printf("%d invalid bytes in program region, %d outside region.\n", res.Inside, res.Outside)
	}
	return res
}
