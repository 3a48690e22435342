package atmel

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/kairyu/flop/pkg/dfu"
	"github.com/kairyu/flop/pkg/memory"
	"github.com/kairyu/flop/pkg/target"
)

// header builds the write control block for the in-page range
// [start, end]. AVR32 group bootloaders expect the payload aligned to
// their 64 byte control block, so the header grows by start%64.
func (d *Device) header(start, end int, eeprom bool) []byte {
	size := controlBlockSize
	if d.family.InAVR32Group() {
		size = avr32ControlBlockSize + start%avr32ControlBlockSize
	}
	h := make([]byte, size)
	h[0] = 0x01
	if eeprom && d.family != target.FamilyXMEGA {
		h[1] = 0x01
	}
	binary.BigEndian.PutUint16(h[2:], uint16(start))
	binary.BigEndian.PutUint16(h[4:], uint16(end))
	return h
}

// footer builds the 16 byte DFU suffix appended to every write. msg is
// the header and payload it follows.
func (d *Device) footer(msg []byte) []byte {
	f := make([]byte, footerSize)
	if d.opts.FooterCRC != nil {
		binary.BigEndian.PutUint32(f[0:], d.opts.FooterCRC(msg))
	}
	f[4] = footerSize
	copy(f[5:], "DFU")
	f[8], f[9] = 0x01, 0x10
	binary.BigEndian.PutUint16(f[10:], d.opts.FooterVendor)
	binary.BigEndian.PutUint16(f[12:], d.opts.FooterProduct)
	binary.BigEndian.PutUint16(f[14:], d.opts.FooterBCD)
	return f
}

func checkBlock(buf *memory.Buffer) error {
	switch {
	case !buf.Initialized():
		return memory.ErrNotInitialized
	case !buf.BlockRange().Valid():
		return errors.Wrap(ErrInvalidRange, "block end before start")
	case buf.BlockLength() > memory.MaxTransferSize:
		return errors.Wrapf(ErrInvalidRange, "0x%X byte block exceeds transfer size 0x%X",
			buf.BlockLength(), memory.MaxTransferSize)
	}
	return nil
}

// ReadBlock reads the buffer's current block from the selected page.
func (d *Device) ReadBlock(buf *memory.Buffer, eeprom bool) error {
	if !d.initialized() {
		return ErrNotInitialized
	}
	if err := checkBlock(buf); err != nil {
		return err
	}
	r := buf.BlockRange()
	d.log.Tracef("read block %s", r)

	mem := byte(0x00)
	if eeprom && d.family.InAVRGroup() {
		mem = 0x02
	}
	start, end := r.StartInPage(), r.EndInPage()
	cmd := []byte{0x03, mem, byte(start >> 8), byte(start), byte(end >> 8), byte(end)}
	if err := d.download(cmd); err != nil {
		return errors.Wrap(err, "read block")
	}

	data := make([]byte, r.Length())
	n, err := d.dfu.Upload(data)
	if err == nil && n != len(data) {
		err = ErrShortTransfer
	}
	if err != nil {
		d.log.Debugf("upload failed: %v", err)
		reply, serr := d.dfu.UpdateStatus()
		switch {
		case serr != nil:
			d.printf("Device is unresponsive.\n")
			err = errors.Wrap(ErrUnresponsive, err.Error())
		case reply.Status == dfu.StatusErrFile:
			d.printf("The device is read protected.\n")
			err = errors.Wrap(ErrReadProtected, err.Error())
		default:
			d.printf("Unknown error. Try enabling debug.\n")
			err = errors.Wrap(err, "read block")
		}
		d.dfu.ClearStatus()
		return err
	}

	buf.PutBlock(data)
	return nil
}

// WriteBlock programs the buffer's current block into the selected page.
func (d *Device) WriteBlock(buf *memory.Buffer, eeprom bool) error {
	if !d.initialized() {
		return ErrNotInitialized
	}
	if err := checkBlock(buf); err != nil {
		return err
	}
	r := buf.BlockRange()
	d.log.Tracef("write block %s", r)

	msg := d.header(r.StartInPage(), r.EndInPage(), eeprom)
	msg = append(msg, buf.Block()...)
	msg = append(msg, d.footer(msg)...)

	if err := d.download(msg); err != nil {
		if errors.Is(err, dfu.EPIPE) {
			d.printf("Device is write protected.\n")
			d.dfu.ClearStatus()
			return errors.Wrap(ErrWriteProtected, err.Error())
		}
		d.log.Debugf("flash data download of %d bytes failed: %v", len(msg), err)
		return errors.Wrap(err, "write block")
	}

	if err := d.expectOK("write block"); err != nil {
		d.log.Debugf("page write unsuccessful: %v", err)
		return err
	}
	d.log.Debugf("page write success")
	return nil
}
