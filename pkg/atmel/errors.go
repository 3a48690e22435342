package atmel

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/kairyu/flop/pkg/dfu"
)

var (
	ErrNotInitialized    = errors.New("atmel: device not initialized")
	ErrUnsupportedFamily = errors.New("atmel: not supported for this device family")
	ErrInvalidMemoryUnit = errors.New("atmel: invalid memory unit selection")
	ErrInvalidRange      = errors.New("atmel: invalid address range")
	ErrWriteProtected    = errors.New("atmel: device is write protected")
	ErrReadProtected     = errors.New("atmel: device is read protected")
	ErrUnresponsive      = errors.New("atmel: device is unresponsive")
	ErrRequires8051      = errors.New("atmel: requires 8051 based controller")
	ErrInfoUnavailable   = errors.New("atmel: requested device info is unavailable")
	ErrNoData            = errors.New("atmel: no valid data to write")
	ErrDataOutsideRegion = errors.New("atmel: data exists outside of the valid target region")
	ErrNotBlank          = errors.New("atmel: target memory is not blank")
	ErrEraseTimeout      = errors.New("atmel: erase did not complete")
	ErrShortTransfer     = errors.New("atmel: short transfer")
)

// StatusError reports a command the bootloader answered with a non-OK status.
type StatusError struct {
	Op     string
	Status dfu.Status
	State  dfu.State
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("atmel: %s: status %s (%s), state %s",
		e.Op, e.Status, e.Status.Description(), e.State)
}
