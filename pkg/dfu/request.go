package dfu

import (
	"fmt"
	"time"

	"github.com/google/gousb"
)

// Request is a DFU class request code (bRequest).
type Request uint8

const (
	RequestDetach    Request = 0
	RequestDownload  Request = 1
	RequestUpload    Request = 2
	RequestGetStatus Request = 3
	RequestClrStatus Request = 4
	RequestGetState  Request = 5
	RequestAbort     Request = 6
)

const (
	// RequestTypeOut is bmRequestType for host-to-device class requests
	// addressed to an interface (0x21).
	RequestTypeOut = uint8(gousb.ControlOut | gousb.ControlClass | gousb.ControlInterface)
	// RequestTypeIn is the device-to-host counterpart (0xA1).
	RequestTypeIn = uint8(gousb.ControlIn | gousb.ControlClass | gousb.ControlInterface)

	// TransferTimeout bounds every control transfer.
	TransferTimeout = 20 * time.Second
	// DetachTimeout is the wValue sent with DETACH, in milliseconds.
	DetachTimeout = 1000 * time.Millisecond

	statusLength = 6
)

var requestNames = map[Request]string{
	RequestDetach:    "DETACH",
	RequestDownload:  "DNLOAD",
	RequestUpload:    "UPLOAD",
	RequestGetStatus: "GETSTATUS",
	RequestClrStatus: "CLRSTATUS",
	RequestGetState:  "GETSTATE",
	RequestAbort:     "ABORT",
}

func (r Request) String() string {
	if s, ok := requestNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Request(%d)", uint8(r))
}

// Direction returns the bmRequestType used for r. ABORT is issued in the IN
// direction with no data stage, as the Atmel bootloaders expect.
func (r Request) Direction() uint8 {
	switch r {
	case RequestDetach, RequestDownload, RequestClrStatus:
		return RequestTypeOut
	default:
		return RequestTypeIn
	}
}
