package dfu

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Status is the bStatus field of a GETSTATUS reply.
type Status uint8

const (
	StatusOK               Status = 0x00
	StatusErrTarget        Status = 0x01
	StatusErrFile          Status = 0x02
	StatusErrWrite         Status = 0x03
	StatusErrErase         Status = 0x04
	StatusErrCheckErased   Status = 0x05
	StatusErrProg          Status = 0x06
	StatusErrVerify        Status = 0x07
	StatusErrAddress       Status = 0x08
	StatusErrNotDone       Status = 0x09
	StatusErrFirmware      Status = 0x0a
	StatusErrVendor        Status = 0x0b
	StatusErrUSBReset      Status = 0x0c
	StatusErrPowerOnReset  Status = 0x0d
	StatusErrUnknown       Status = 0x0e
	StatusErrStalledPacket Status = 0x0f
	statusCount                   = 0x10
	stateCount                    = 0x0b
)

var statusNames = [statusCount]string{
	"OK",
	"errTARGET",
	"errFILE",
	"errWRITE",
	"errERASE",
	"errCHECK_ERASED",
	"errPROG",
	"errVERIFY",
	"errADDRESS",
	"errNOTDONE",
	"errFIRMWARE",
	"errVENDOR",
	"errUSBR",
	"errPOR",
	"errUNKNOWN",
	"errSTALLEDPKT",
}

var statusDescriptions = [statusCount]string{
	"No error condition is present",
	"File is not targeted for use by this device",
	"File is for this device but fails some vendor-specific test",
	"Device is unable to write memory",
	"Memory erase function failed",
	"Memory erase check failed",
	"Program memory function failed",
	"Programmed memory failed verification",
	"Cannot program memory due to received address that is out of range",
	"Received DFU_DNLOAD with wLength = 0, but device does not think that it has all data yet",
	"Device's firmware is corrupt. It cannot return to run-time (non-DFU) operations",
	"iString indicates a vendor specific error",
	"Device detected unexpected USB reset signalling",
	"Device detected unexpected power on reset",
	"Something went wrong, but the device does not know what it was",
	"Device stalled an unexpected request",
}

func (s Status) String() string {
	if s < statusCount {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Description returns the DFU 1.1 explanation of s.
func (s Status) Description() string {
	if s < statusCount {
		return statusDescriptions[s]
	}
	return "Unknown status"
}

// State is the bState field of a GETSTATUS or GETSTATE reply.
type State uint8

const (
	AppIdle              State = 0x00
	AppDetach            State = 0x01
	DFUIdle              State = 0x02
	DFUDownloadSync      State = 0x03
	DFUDownloadBusy      State = 0x04
	DFUDownloadIdle      State = 0x05
	DFUManifestSync      State = 0x06
	DFUManifest          State = 0x07
	DFUManifestWaitReset State = 0x08
	DFUUploadIdle        State = 0x09
	DFUError             State = 0x0a
)

var stateNames = [stateCount]string{
	"appIDLE",
	"appDETACH",
	"dfuIDLE",
	"dfuDNLOAD-SYNC",
	"dfuDNBUSY",
	"dfuDNLOAD-IDLE",
	"dfuMANIFEST-SYNC",
	"dfuMANIFEST",
	"dfuMANIFEST-WAIT-RESET",
	"dfuUPLOAD-IDLE",
	"dfuERROR",
}

func (s State) String() string {
	if s < stateCount {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// StatusReply is a decoded GETSTATUS response.
type StatusReply struct {
	Status      Status
	PollTimeout time.Duration
	State       State
	StringIndex uint8
}

// unknownStatus is reported until the first successful GETSTATUS.
var unknownStatus = StatusReply{Status: StatusErrUnknown, State: DFUError}

// ErrShortStatus is returned when a GETSTATUS reply is not 6 bytes long.
var ErrShortStatus = errors.New("dfu: short GETSTATUS reply")

// ParseStatusReply decodes the 6-byte GETSTATUS payload:
// status, 24-bit big-endian poll timeout in ms, state, iString.
func ParseStatusReply(b []byte) (StatusReply, error) {
	if len(b) < statusLength {
		return unknownStatus, errors.Wrapf(ErrShortStatus, "got %d bytes", len(b))
	}
	ms := uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return StatusReply{
		Status:      Status(b[0]),
		PollTimeout: time.Duration(ms) * time.Millisecond,
		State:       State(b[4]),
		StringIndex: b[5],
	}, nil
}

// Bytes encodes r in wire order.
func (r StatusReply) Bytes() []byte {
	ms := uint32(r.PollTimeout / time.Millisecond)
	return []byte{byte(r.Status), byte(ms >> 16), byte(ms >> 8), byte(ms), byte(r.State), r.StringIndex}
}

func (r StatusReply) String() string {
	return fmt.Sprintf("%s/%s (poll %v)", r.Status, r.State, r.PollTimeout)
}
