package atmel

import (
	"github.com/pkg/errors"

	"github.com/kairyu/flop/pkg/dfu"
	"github.com/kairyu/flop/pkg/memory"
)

// checkBlankPage asks the bootloader whether [start, end] of the selected
// 64 KiB page is erased. It returns 0 when blank, the page offset of the
// first programmed byte plus one when not, and a negative code with an
// error otherwise.
func (d *Device) checkBlankPage(start, end int) (int, error) {
	d.log.Tracef("blank page check 0x%04X to 0x%04X", start, end)
	switch {
	case !d.initialized():
		return -1, ErrNotInitialized
	case start > end:
		return -1, errors.Wrapf(ErrInvalidRange, "end 0x%X before start 0x%X", end, start)
	case start < 0 || end >= memory.PageSize:
		return -1, errors.Wrapf(ErrInvalidRange, "0x%X out of 64 KiB page range", end)
	}

	cmd := []byte{0x03, 0x01, byte(start >> 8), byte(start), byte(end >> 8), byte(end)}
	if err := d.download(cmd); err != nil {
		return -2, errors.Wrap(err, "blank check")
	}
	reply, err := d.dfu.UpdateStatus()
	if err != nil {
		return -3, errors.Wrap(err, "blank check status")
	}

	switch reply.Status {
	case dfu.StatusOK:
		d.log.Debugf("flash region from 0x%X to 0x%X is blank", start, end)
		return 0, nil
	case dfu.StatusErrCheckErased:
		if reply.State == dfu.DFUError {
			d.dfu.ClearStatus()
		}
		addr := make([]byte, 2)
		n, err := d.dfu.Upload(addr)
		if err != nil {
			return -4, errors.Wrap(err, "blank check address")
		}
		if n != len(addr) {
			return -4, ErrShortTransfer
		}
		offset := int(addr[0])<<8 | int(addr[1])
		d.log.Debugf("first non-blank address in region is 0x%X", offset)
		return offset + 1, nil
	default:
		if reply.State == dfu.DFUError {
			d.dfu.ClearStatus()
		}
		return -4, &StatusError{Op: "blank check", Status: reply.Status, State: reply.State}
	}
}

// CheckBlank checks [start, end] of flash page by page. The result is 0
// when the whole range is erased, the first programmed address plus one
// when it is not, and negative on failure.
func (d *Device) CheckBlank(start, end int) (int, error) {
	d.log.Tracef("blank check 0x%08X to 0x%08X", start, end)
	if !d.initialized() {
		return -1, ErrNotInitialized
	}
	if start > end {
		return -1, errors.Wrapf(ErrInvalidRange, "end 0x%X before start 0x%X", end, start)
	}
	if err := d.SelectMemoryUnit(UnitFlash); err != nil {
		return -2, err
	}

	d.printf("Checking memory from 0x%X to 0x%X...  ", start, end)
	if d.log.DebugEnabled() {
		d.printf("\n")
	}

	blankUpto := start
	for {
		page := blankUpto / memory.PageSize
		checkUntil := (page+1)*memory.PageSize - 1
		if checkUntil > end {
			checkUntil = end
		}
		if err := d.SelectPage(page); err != nil {
			d.log.Debugf("page select error: %v", err)
			d.printf("ERROR.\n")
			return -3, err
		}

		result, err := d.checkBlankPage(blankUpto%memory.PageSize, checkUntil%memory.PageSize)
		switch {
		case result == 0:
			d.log.Debugf("flash blank from 0x%X to 0x%X", start, checkUntil)
			blankUpto = checkUntil + 1
		case result > 0:
			addr := result - 1 + memory.PageSize*page
			d.log.Debugf("flash not blank beginning at 0x%X", addr)
			d.printf("Not blank at 0x%X.\n", addr)
			return addr + 1, nil
		default:
			d.log.Debugf("blank check failed, flash status unknown: %v", err)
			d.printf("ERROR.\n")
			return result, err
		}
		if blankUpto > end {
			break
		}
	}

	d.printf("Empty.\n")
	return 0, nil
}

// CheckBlankRange is CheckBlank over r.
func (d *Device) CheckBlankRange(r memory.Range) (int, error) {
	return d.CheckBlank(r.Start, r.End)
}
