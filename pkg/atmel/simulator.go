package atmel

import (
	"encoding/binary"
	"sync"

	"github.com/pkg/errors"

	"github.com/kairyu/flop/pkg/dfu"
	"github.com/kairyu/flop/pkg/memory"
	"github.com/kairyu/flop/pkg/target"
)

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithState starts the simulator in state instead of DFU_IDLE.
func WithState(state dfu.State) SimulatorOption {
	return func(s *Simulator) { s.state = state }
}

// WithEraseBusyPolls makes erase report errNOTDONE/dfuDNBUSY for n status
// requests before completing.
func WithEraseBusyPolls(n int) SimulatorOption {
	return func(s *Simulator) { s.erasePolls = n }
}

// WithWriteProtect makes every write stall.
func WithWriteProtect() SimulatorOption {
	return func(s *Simulator) { s.writeProtected = true }
}

// WithReadProtect makes every read stall with errFILE.
func WithReadProtect() SimulatorOption {
	return func(s *Simulator) { s.readProtected = true }
}

// WithInfo sets the byte returned by the read-info command cmd.
func WithInfo(cmd [2]byte, v byte) SimulatorOption {
	return func(s *Simulator) { s.info[cmd] = v }
}

// Simulator is an in-memory Atmel DFU bootloader. It implements
// dfu.Transport and answers the command set Device speaks.
type Simulator struct {
	mu sync.Mutex

	desc   target.Descriptor
	flash  []byte
	eeprom []byte
	user   []byte
	info   map[[2]byte]byte

	status dfu.Status
	state  dfu.State
	unit   MemoryUnit
	page   int
	upload []byte

	erasePolls     int
	busy           int
	writeProtected bool
	readProtected  bool
	launchPending  bool
	launched       bool
	resets         int
	requests       []dfu.Request
}

// NewSimulator returns a blank device shaped like desc.
func NewSimulator(desc target.Descriptor, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		desc:   desc,
		flash:  blank(desc.MemorySize),
		eeprom: blank(desc.EEPROMSize),
		info: map[[2]byte]byte{
			{0x00, 0x00}: 0x10,
			{0x00, 0x01}: 0x00,
			{0x00, 0x02}: 0x00,
			{0x01, 0x00}: 0xff,
			{0x01, 0x01}: 0xf0,
			{0x01, 0x05}: 0xff,
			{0x01, 0x06}: 0xff,
			{0x01, 0x30}: 0x1e,
			{0x01, 0x31}: 0x95,
			{0x01, 0x60}: 0x87,
			{0x01, 0x61}: 0x00,
			{0x02, 0x00}: 0x00,
		},
		state: dfu.DFUIdle,
	}
	if desc.Family.InAVR32Group() {
		s.user = blank(desc.FlashPageSize)
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func blank(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = memory.Blank
	}
	return b
}

// Load stores data at address of unit, bypassing the protocol.
func (s *Simulator) Load(unit MemoryUnit, address int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mem := s.memory(unit)
	if address < 0 || address+len(data) > len(mem) {
		return errors.Wrapf(ErrInvalidRange, "0x%X bytes at 0x%X do not fit %s", len(data), address, unit)
	}
	copy(mem[address:], data)
	return nil
}

// Memory returns a copy of the contents of unit.
func (s *Simulator) Memory(unit MemoryUnit) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.memory(unit)...)
}

// Launched reports whether the application was started.
func (s *Simulator) Launched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.launched
}

// Resets returns the number of bus resets seen.
func (s *Simulator) Resets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resets
}

// Requests returns the DFU requests received so far.
func (s *Simulator) Requests() []dfu.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dfu.Request(nil), s.requests...)
}

func (s *Simulator) memory(unit MemoryUnit) []byte {
	switch unit {
	case UnitEEPROM:
		return s.eeprom
	case UnitUser:
		return s.user
	default:
		return s.flash
	}
}

func (s *Simulator) fail(status dfu.Status) error {
	s.status = status
	s.state = dfu.DFUError
	return dfu.EPIPE
}

// Reset implements dfu.Transport.
func (s *Simulator) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets++
	s.status = dfu.StatusOK
	if s.launched {
		s.state = dfu.AppIdle
	} else {
		s.state = dfu.DFUIdle
	}
	return nil
}

// Control implements dfu.Transport.
func (s *Simulator) Control(rType, request uint8, val, idx uint16, data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req := dfu.Request(request)
	s.requests = append(s.requests, req)
	if rType != req.Direction() {
		return 0, s.fail(dfu.StatusErrStalledPacket)
	}

	switch req {
	case dfu.RequestDetach:
		if s.state == dfu.AppIdle {
			s.state = dfu.AppDetach
		}
		return 0, nil
	case dfu.RequestGetStatus:
		reply := dfu.StatusReply{Status: s.status, State: s.state}
		if s.busy > 0 {
			s.busy--
			reply.Status, reply.State = dfu.StatusErrNotDone, dfu.DFUDownloadBusy
		}
		return copy(data, reply.Bytes()), nil
	case dfu.RequestClrStatus:
		s.status = dfu.StatusOK
		if s.state == dfu.DFUError {
			s.state = dfu.DFUIdle
		}
		return 0, nil
	case dfu.RequestGetState:
		if len(data) == 0 {
			return 0, nil
		}
		data[0] = byte(s.state)
		return 1, nil
	case dfu.RequestAbort:
		if s.state != dfu.AppIdle && s.state != dfu.AppDetach {
			s.state, s.status = dfu.DFUIdle, dfu.StatusOK
		}
		return 0, nil
	case dfu.RequestUpload:
		if s.state == dfu.AppIdle || s.state == dfu.AppDetach {
			return 0, dfu.EPIPE
		}
		if s.readProtected {
			return 0, s.fail(dfu.StatusErrFile)
		}
		if s.upload == nil {
			return 0, s.fail(dfu.StatusErrStalledPacket)
		}
		n := copy(data, s.upload)
		s.upload = nil
		return n, nil
	case dfu.RequestDownload:
		if s.state == dfu.AppIdle || s.state == dfu.AppDetach {
			return 0, dfu.EPIPE
		}
		return s.command(data)
	}
	return 0, s.fail(dfu.StatusErrStalledPacket)
}

func (s *Simulator) command(cmd []byte) (int, error) {
	if len(cmd) == 0 {
		if s.launchPending {
			s.launchPending = false
			s.launched = true
			s.state = dfu.AppIdle
		}
		return 0, nil
	}
	if len(cmd) < 2 {
		return 0, s.fail(dfu.StatusErrStalledPacket)
	}
	switch cmd[0] {
	case 0x01:
		return s.write(cmd)
	case 0x03:
		return s.read(cmd)
	case 0x04:
		return s.eraseOrLaunch(cmd)
	case 0x05:
		if len(cmd) != 3 {
			return 0, s.fail(dfu.StatusErrStalledPacket)
		}
		v, ok := s.info[[2]byte{cmd[1], cmd[2]}]
		if !ok {
			s.status = dfu.StatusErrTarget
			return len(cmd), nil
		}
		s.upload = []byte{v}
		return len(cmd), nil
	case 0x06:
		return s.selectCmd(cmd)
	}
	return 0, s.fail(dfu.StatusErrStalledPacket)
}

func (s *Simulator) selectCmd(cmd []byte) (int, error) {
	if cmd[1] != 0x03 {
		return 0, s.fail(dfu.StatusErrStalledPacket)
	}
	group32 := s.desc.Family.InAVR32Group()
	switch {
	case len(cmd) == 3 && s.desc.Family == target.FamilyAVR:
		s.page = int(cmd[2])
	case len(cmd) == 4 && group32 && cmd[2] == 0x00:
		s.unit = MemoryUnit(cmd[3])
	case len(cmd) == 5 && group32 && cmd[2] == 0x01:
		s.page = int(binary.BigEndian.Uint16(cmd[3:]))
	default:
		return 0, s.fail(dfu.StatusErrStalledPacket)
	}
	return len(cmd), nil
}

// region resolves the in-page range of a command into a slice of the
// memory it addresses.
func (s *Simulator) region(mem []byte, start, end int) ([]byte, bool) {
	base := s.page * memory.PageSize
	if s.desc.Family.InAVR32Group() && s.unit == UnitUser {
		base = 0
	}
	if end < start || base+end >= len(mem) {
		return nil, false
	}
	return mem[base+start : base+end+1], true
}

func (s *Simulator) target(eepromFlag bool) []byte {
	if s.desc.Family.InAVR32Group() {
		return s.memory(s.unit)
	}
	if eepromFlag {
		return s.eeprom
	}
	return s.flash
}

func (s *Simulator) read(cmd []byte) (int, error) {
	if len(cmd) != 6 {
		return 0, s.fail(dfu.StatusErrStalledPacket)
	}
	start := int(binary.BigEndian.Uint16(cmd[2:]))
	end := int(binary.BigEndian.Uint16(cmd[4:]))

	if cmd[1] == 0x01 {
		region, ok := s.region(s.flash, start, end)
		if !ok {
			s.status = dfu.StatusErrAddress
			return len(cmd), nil
		}
		for i, v := range region {
			if v != memory.Blank {
				s.status, s.state = dfu.StatusErrCheckErased, dfu.DFUError
				off := start + i
				s.upload = []byte{byte(off >> 8), byte(off)}
				return len(cmd), nil
			}
		}
		return len(cmd), nil
	}

	region, ok := s.region(s.target(cmd[1] == 0x02), start, end)
	if !ok {
		s.status = dfu.StatusErrAddress
		return len(cmd), nil
	}
	s.upload = append([]byte(nil), region...)
	return len(cmd), nil
}

func (s *Simulator) write(msg []byte) (int, error) {
	if s.writeProtected {
		return 0, s.fail(dfu.StatusErrWrite)
	}
	if len(msg) < 6 {
		return 0, s.fail(dfu.StatusErrStalledPacket)
	}
	start := int(binary.BigEndian.Uint16(msg[2:]))
	end := int(binary.BigEndian.Uint16(msg[4:]))
	headerLen := controlBlockSize
	if s.desc.Family.InAVR32Group() {
		headerLen = avr32ControlBlockSize + start%avr32ControlBlockSize
	}
	n := end - start + 1
	if n <= 0 || len(msg) != headerLen+n+footerSize {
		return 0, s.fail(dfu.StatusErrStalledPacket)
	}
	if string(msg[headerLen+n+5:headerLen+n+8]) != "DFU" {
		s.status = dfu.StatusErrFile
		return len(msg), nil
	}

	eeprom := msg[1] == 0x01
	region, ok := s.region(s.target(eeprom), start, end)
	if !ok {
		s.status = dfu.StatusErrAddress
		return len(msg), nil
	}
	copy(region, msg[headerLen:headerLen+n])
	return len(msg), nil
}

func (s *Simulator) eraseOrLaunch(cmd []byte) (int, error) {
	switch {
	case cmd[1] == 0x00 && len(cmd) == 3:
		for a := s.desc.FlashBottom(); a <= s.desc.FlashTop(); a++ {
			s.flash[a] = memory.Blank
		}
		s.busy = s.erasePolls
	case cmd[1] == 0x03 && len(cmd) >= 3:
		s.launchPending = true
	default:
		return 0, s.fail(dfu.StatusErrStalledPacket)
	}
	return len(cmd), nil
}
