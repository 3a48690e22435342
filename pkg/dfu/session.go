package dfu

import (
	"time"

	"github.com/kairyu/flop/internal/debuglog"
)

// Log thresholds for DFU traffic.
var LogThresholds = debuglog.Thresholds{Debug: 100, Trace: 200, Dump: 300}

// Session is an open DFU conversation with one claimed interface.
type Session struct {
	transport   Transport
	iface       uint16
	transaction uint16
	status      StatusReply
	log         *debuglog.Logger
}

// NewSession binds a transport whose interface iface has been claimed.
// log may be nil.
func NewSession(t Transport, iface uint16, log *debuglog.Logger) *Session {
	return &Session{
		transport: t,
		iface:     iface,
		status:    unknownStatus,
		log:       log.With("dfu", LogThresholds),
	}
}

// Interface returns the claimed interface number used as wIndex.
func (s *Session) Interface() uint16 { return s.iface }

// Transaction returns the next DNLOAD/UPLOAD block number.
func (s *Session) Transaction() uint16 { return s.transaction }

// Transport returns the underlying transport.
func (s *Session) Transport() Transport { return s.transport }

// Logger returns the session's logger, which may be nil.
func (s *Session) Logger() *debuglog.Logger { return s.log }

func (s *Session) initialized() bool {
	return s != nil && s.transport != nil
}

func (s *Session) control(req Request, val uint16, data []byte) (int, error) {
	if !s.initialized() {
		return 0, ErrNotInitialized
	}
	if req.Direction() == RequestTypeOut {
		s.log.Dump(req.String(), data)
	}
	n, err := s.transport.Control(req.Direction(), uint8(req), val, s.iface, data)
	if err != nil {
		s.log.Debugf("%s failed: %v", req, err)
		return n, wrapTransfer(req, err)
	}
	if req.Direction() == RequestTypeIn && n > 0 {
		s.log.Dump(req.String(), data[:n])
	}
	return n, nil
}

// Download sends data with DNLOAD and advances the transaction counter.
// A zero-length download signals end of transfer to the device.
func (s *Session) Download(data []byte) (int, error) {
	s.log.Tracef("download: %d bytes, transaction %d", len(data), s.transaction)
	if !s.initialized() {
		return 0, ErrNotInitialized
	}
	n, err := s.control(RequestDownload, s.transaction, data)
	s.transaction++
	return n, err
}

// Upload reads into buf with UPLOAD and advances the transaction counter.
func (s *Session) Upload(buf []byte) (int, error) {
	s.log.Tracef("upload: %d bytes, transaction %d", len(buf), s.transaction)
	if !s.initialized() {
		return 0, ErrNotInitialized
	}
	n, err := s.control(RequestUpload, s.transaction, buf)
	s.transaction++
	return n, err
}

// UpdateStatus issues GETSTATUS and caches the decoded reply.
func (s *Session) UpdateStatus() (StatusReply, error) {
	buf := make([]byte, statusLength)
	n, err := s.control(RequestGetStatus, 0, buf)
	if err != nil {
		s.status = unknownStatus
		return s.status, err
	}
	reply, err := ParseStatusReply(buf[:n])
	s.status = reply
	if err != nil {
		return reply, err
	}
	s.log.Debugf("status: %s (%s), state: %s, poll %v, iString 0x%02x",
		reply.Status, reply.Status.Description(), reply.State, reply.PollTimeout, reply.StringIndex)
	return reply, nil
}

// LastStatus returns the reply cached by the last UpdateStatus.
func (s *Session) LastStatus() StatusReply { return s.status }

func (s *Session) IsStatus(st Status) bool { return s.status.Status == st }
func (s *Session) IsState(st State) bool   { return s.status.State == st }
func (s *Session) IsStatusOK() bool        { return s.status.Status == StatusOK }
func (s *Session) IsStateError() bool      { return s.status.State == DFUError }

// ClearStatus issues CLRSTATUS and forgets the cached reply.
func (s *Session) ClearStatus() error {
	s.log.Tracef("clear status")
	_, err := s.control(RequestClrStatus, 0, nil)
	s.status = unknownStatus
	return err
}

// GetState issues GETSTATE.
func (s *Session) GetState() (State, error) {
	buf := make([]byte, 1)
	n, err := s.control(RequestGetState, 0, buf)
	if err != nil {
		return DFUError, err
	}
	if n < 1 {
		return DFUError, ErrShortStatus
	}
	return State(buf[0]), nil
}

// Abort issues ABORT, returning the device to DFU_IDLE.
func (s *Session) Abort() error {
	s.log.Tracef("abort")
	_, err := s.control(RequestAbort, 0, nil)
	return err
}

// Detach asks a run-time device to enter DFU mode within timeout.
func (s *Session) Detach(timeout time.Duration) error {
	s.log.Tracef("detach: %v", timeout)
	_, err := s.control(RequestDetach, uint16(timeout/time.Millisecond), nil)
	return err
}

// Reset issues a USB bus reset. The session must be reopened afterwards.
func (s *Session) Reset() error {
	if !s.initialized() {
		return ErrNotInitialized
	}
	return s.transport.Reset()
}
