package dfu

import (
	"fmt"

	"github.com/google/gousb"
	"github.com/pkg/errors"
)

// Errno classifies a failed USB transfer using the Linux usbfs error codes
// the Atmel tooling has always reported.
type Errno int

const (
	ENOENT      Errno = 2
	EIO         Errno = 5
	EXDEV       Errno = 18
	ENODEV      Errno = 19
	EINVAL      Errno = 22
	EPIPE       Errno = 32
	EPROTO      Errno = 71
	EILSEQ      Errno = 84
	ETIMEDOUT   Errno = 110
	EINPROGRESS Errno = 115
	EREMOTEIO   Errno = 121
)

var errnoMessages = map[Errno]string{
	ENOENT:      "-ENOENT: URB was canceled by unlink_urb",
	EINPROGRESS: "-EINPROGRESS: URB still pending, no results yet",
	EPROTO:      "-EPROTO: a) Bitstuff error or b) Unknown USB error",
	EILSEQ:      "-EILSEQ: CRC mismatch",
	EPIPE:       "-EPIPE: a) Babble detect or b) Endpoint stalled",
	ETIMEDOUT:   "-ETIMEDOUT: Transfer timed out, NAK",
	ENODEV:      "-ENODEV: Device was removed",
	EIO:         "-EIO: USB I/O error",
	EREMOTEIO:   "-EREMOTEIO: Short packet detected",
	EXDEV:       "-EXDEV: ISO transfer only partially completed",
	EINVAL:      "-EINVAL: ISO madness, if this happens: Log off and go home",
}

func (e Errno) Error() string {
	if msg, ok := errnoMessages[e]; ok {
		return msg
	}
	return fmt.Sprintf("unknown USB error %d", int(e))
}

// ErrNotInitialized is returned when a session has no transport.
var ErrNotInitialized = errors.New("dfu: session not initialized")

// TransferError reports a failed control transfer.
type TransferError struct {
	Request Request
	Code    Errno
	Err     error
}

func (e *TransferError) Error() string {
	if e.Err == nil || e.Err == error(e.Code) {
		return fmt.Sprintf("dfu: %s: %v", e.Request, e.Code)
	}
	return fmt.Sprintf("dfu: %s: %v (%v)", e.Request, e.Code, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// Is lets errors.Is match a TransferError against an Errno.
func (e *TransferError) Is(target error) bool {
	code, ok := target.(Errno)
	return ok && code == e.Code
}

// Classify maps a transport error onto the Errno table. Errors that do not
// carry USB information are reported as EIO.
func Classify(err error) Errno {
	var code Errno
	if errors.As(err, &code) {
		return code
	}
	var usbErr gousb.Error
	if errors.As(err, &usbErr) {
		switch usbErr {
		case gousb.ErrorPipe, gousb.ErrorOverflow:
			return EPIPE
		case gousb.ErrorTimeout:
			return ETIMEDOUT
		case gousb.ErrorNoDevice, gousb.ErrorNotFound:
			return ENODEV
		case gousb.ErrorInterrupted:
			return ENOENT
		case gousb.ErrorBusy:
			return EINPROGRESS
		case gousb.ErrorInvalidParam:
			return EINVAL
		}
	}
	return EIO
}

func wrapTransfer(req Request, err error) error {
	if err == nil {
		return nil
	}
	return &TransferError{Request: req, Code: Classify(err), Err: err}
}
