package atmel

import (
	"github.com/pkg/errors"

	"github.com/kairyu/flop/pkg/dfu"
	"github.com/kairyu/flop/pkg/memory"
	"github.com/kairyu/flop/pkg/target"
)

// ReadCommand reads one configuration byte with `05 cmd0 cmd1`. On failure
// the value is -1 (download), -2 (status), -3 (status not OK) or -4
// (upload). The AVR32 group has no encoding for this and yields
// ErrUnsupportedFamily with value 0.
func (d *Device) ReadCommand(cmd [2]byte) (int16, error) {
	d.log.Tracef("read command 0x%02x 0x%02x", cmd[0], cmd[1])
	if !d.initialized() {
		return -1, ErrNotInitialized
	}
	if d.family.InAVR32Group() {
		return 0, ErrUnsupportedFamily
	}

	if err := d.download([]byte{0x05, cmd[0], cmd[1]}); err != nil {
		return -1, errors.Wrap(err, "read command")
	}
	reply, err := d.dfu.UpdateStatus()
	if err != nil {
		return -2, errors.Wrap(err, "read command status")
	}
	if reply.Status != dfu.StatusOK {
		d.dfu.ClearStatus()
		return -3, &StatusError{Op: "read command", Status: reply.Status, State: reply.State}
	}
	buf := make([]byte, 1)
	n, err := d.dfu.Upload(buf)
	if err != nil {
		return -4, errors.Wrap(err, "read command upload")
	}
	if n != 1 {
		return -4, ErrShortTransfer
	}
	return int16(buf[0]), nil
}

// Info is the set of configuration values read by ReadConfig.
type Info struct {
	family target.Family
	values map[InfoItem]int16
}

// Get returns the value of item. 8051-only items fail with
// ErrRequires8051 on other families.
func (i Info) Get(item InfoItem) (int16, error) {
	if item.Only8051() && i.family != target.Family8051 {
		return 0, ErrRequires8051
	}
	v, ok := i.values[item]
	if !ok || v < 0 {
		return 0, ErrInfoUnavailable
	}
	return v, nil
}

// ReadConfig reads every info item the family supports. Items that fail
// are recorded with their negative code and the first error is returned.
func (d *Device) ReadConfig() (Info, error) {
	info := Info{family: d.family, values: make(map[InfoItem]int16)}
	if !d.initialized() {
		return info, ErrNotInitialized
	}
	var first error
	for _, item := range InfoItems() {
		cmd, ok := InfoCommand(item, d.family)
		if !ok || (item.Only8051() && d.family != target.Family8051) {
			continue
		}
		v, err := d.ReadCommand(cmd)
		if err != nil {
			d.log.Debugf("reading %s: %v", item.Name(), err)
			if first == nil {
				first = err
			}
			if errors.Is(err, ErrUnsupportedFamily) {
				return info, err
			}
		}
		info.values[item] = v
	}
	return info, first
}

var avr32Units = map[MemoryUnit]bool{
	UnitFlash:     true,
	UnitSecurity:  true,
	UnitConfig:    true,
	UnitBoot:      true,
	UnitSignature: true,
	UnitUser:      true,
}

// SelectMemoryUnit switches the AVR32 group to unit. Other families have a
// single address space and ignore the request.
func (d *Device) SelectMemoryUnit(unit MemoryUnit) error {
	d.log.Tracef("select memory unit %s", unit)
	if !d.initialized() {
		return ErrNotInitialized
	}
	if !d.family.InAVR32Group() {
		d.log.Debugf("ignoring memory unit selection for %s device", d.family)
		return nil
	}
	if d.family == target.FamilyAVR32 && !avr32Units[unit] {
		d.printf("Invalid Memory Unit Selection.\n")
		return errors.Wrapf(ErrInvalidMemoryUnit, "%s on AVR32", unit)
	}
	if unit > UnitExtDF {
		d.printf("Invalid Memory Unit Selection.\n")
		return errors.Wrapf(ErrInvalidMemoryUnit, "0x%X exceeds 0x%X", uint8(unit), uint8(UnitExtDF))
	}

	d.log.Debugf("selecting %s memory unit", unit)
	if err := d.download([]byte{0x06, 0x03, 0x00, byte(unit)}); err != nil {
		return errors.Wrap(err, "select memory unit")
	}
	return d.expectOK("select memory unit")
}

// SelectPage selects the 64 KiB page subsequent offsets refer to. 8051
// bootloaders address their whole flash directly.
func (d *Device) SelectPage(page int) error {
	d.log.Tracef("select page %d", page)
	if !d.initialized() {
		return ErrNotInitialized
	}

	var cmd []byte
	switch {
	case d.family == target.Family8051:
		d.log.Debugf("page selection not used on 8051, ignoring")
		return nil
	case d.family.InAVR32Group():
		cmd = []byte{0x06, 0x03, 0x01, byte(page >> 8), byte(page)}
	case d.family == target.FamilyAVR:
		cmd = []byte{0x06, 0x03, byte(page)}
	default:
		return nil
	}

	d.log.Debugf("selecting page %d, address 0x%X", page, page*memory.PageSize)
	if err := d.download(cmd); err != nil {
		return errors.Wrap(err, "select page")
	}
	return d.expectOK("select page")
}

// Launch leaves the bootloader and starts the application, either through
// a watchdog reset or by jumping to address zero.
func (d *Device) Launch(reset bool) error {
	if !d.initialized() {
		return ErrNotInitialized
	}
	cmd := []byte{0x04, 0x03, 0x00}
	if !reset {
		cmd = []byte{0x04, 0x03, 0x01, 0x00, 0x00}
	}
	if err := d.download(cmd); err != nil {
		return errors.Wrap(err, "launch")
	}
	if _, err := d.dfu.Download(nil); err != nil {
		return errors.Wrap(err, "launch")
	}
	return nil
}
