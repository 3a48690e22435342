package atmel

import (
	"github.com/pkg/errors"

	"github.com/kairyu/flop/pkg/dfu"
)

// Erase erases flash with mode and waits for the bootloader to finish. The
// terminal status is returned; anything but StatusOK comes with a
// StatusError.
func (d *Device) Erase(mode EraseMode) (dfu.Status, error) {
	d.log.Tracef("erase flash 0x%02X", uint8(mode))
	if !d.initialized() {
		return dfu.StatusErrUnknown, ErrNotInitialized
	}

	d.printf("Erasing flash...  ")
	if d.log.DebugEnabled() {
		d.printf("\n")
	}
	if err := d.download([]byte{0x04, 0x00, byte(mode)}); err != nil {
		d.printf("ERROR\n")
		return dfu.StatusErrUnknown, errors.Wrap(err, "erase")
	}

	deadline := d.now().Add(eraseTimeout)
	failures := 0
	for failures < eraseMaxFailures {
		reply, err := d.dfu.UpdateStatus()
		switch {
		case err != nil:
			d.dfu.ClearStatus()
			failures++
			d.log.Debugf("erase status check %d failed: %v", failures, err)
		case reply.Status == dfu.StatusErrNotDone && reply.State == dfu.DFUDownloadBusy:
		default:
			if reply.Status != dfu.StatusOK {
				d.printf("ERROR\n")
				if reply.State == dfu.DFUError {
					d.dfu.ClearStatus()
				}
				return reply.Status, &StatusError{Op: "erase", Status: reply.Status, State: reply.State}
			}
			d.printf("Success\n")
			d.log.Debugf("erase done")
			return reply.Status, nil
		}
		if d.now().After(deadline) {
			d.log.Debugf("erase time limit %v exceeded", eraseTimeout)
			d.printf("ERROR\n")
			return dfu.StatusErrNotDone, errors.Wrapf(ErrEraseTimeout, "after %v", eraseTimeout)
		}
		d.sleep(erasePoll)
	}

	d.printf("ERROR\n")
	return dfu.StatusErrUnknown, errors.Wrapf(ErrUnresponsive, "%d erase status checks failed", failures)
}
