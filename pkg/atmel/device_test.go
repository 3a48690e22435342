package atmel

import (
	"bytes"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/gousb"
	"github.com/pkg/errors"

	"github.com/kairyu/flop/pkg/dfu"
	"github.com/kairyu/flop/pkg/dfu/mocks"
	"github.com/kairyu/flop/pkg/memory"
	"github.com/kairyu/flop/pkg/target"
)

func lookup(t *testing.T, name string) target.Descriptor {
	t.Helper()
	d, ok := target.Builtin().Lookup(name)
	if !ok {
		t.Fatalf("Expected builtin target %s", name)
	}
	return d
}

func newSimDevice(t *testing.T, desc target.Descriptor, opts ...SimulatorOption) (*Device, *Simulator, *bytes.Buffer) {
	t.Helper()
	sim := NewSimulator(desc, opts...)
	out := &bytes.Buffer{}
	o := DefaultOptions()
	o.Out = out
	d := New(dfu.NewSession(sim, 0, nil), desc.Family, o)
	d.sleep = func(time.Duration) {}
	return d, sim, out
}

func newMockDevice(t *testing.T, family target.Family) (*Device, *mocks.MockTransport) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks.NewMockTransport(ctrl)
	o := DefaultOptions()
	o.Out = &bytes.Buffer{}
	return New(dfu.NewSession(m, 0, nil), family, o), m
}

func expectDownload(m *mocks.MockTransport, data interface{}, n int, err error) *gomock.Call {
	return m.EXPECT().
		Control(dfu.RequestTypeOut, uint8(dfu.RequestDownload), gomock.Any(), uint16(0), data).
		Return(n, err)
}

func expectStatus(m *mocks.MockTransport, status dfu.Status, state dfu.State) *gomock.Call {
	return m.EXPECT().
		Control(dfu.RequestTypeIn, uint8(dfu.RequestGetStatus), uint16(0), uint16(0), gomock.Any()).
		SetArg(4, dfu.StatusReply{Status: status, State: state}.Bytes()).
		Return(6, nil)
}

func TestInfoCommand(t *testing.T) {
	tests := []struct {
		item   InfoItem
		family target.Family
		cmd    [2]byte
		ok     bool
	}{
		{InfoBootloaderVersion, target.FamilyAVR, [2]byte{0x00, 0x00}, true},
		{InfoBootloaderVersion, target.FamilyAVR32, [2]byte{0x04, 0x00}, true},
		{InfoManufacturer, target.Family8051, [2]byte{0x01, 0x30}, true},
		{InfoProductRevision, target.FamilyXMEGA, [2]byte{0x05, 0x03}, true},
		{InfoHSB, target.Family8051, [2]byte{0x02, 0x00}, true},
		{InfoHSB, target.FamilyAVR32, [2]byte{}, false},
		{InfoSSB, target.FamilyXMEGA, [2]byte{}, false},
	}
	for _, tt := range tests {
		cmd, ok := InfoCommand(tt.item, tt.family)
		if ok != tt.ok || cmd != tt.cmd {
			t.Errorf("InfoCommand(%s, %s): expected % X %t, got % X %t",
				tt.item, tt.family, tt.cmd, tt.ok, cmd, ok)
		}
	}

	item, err := ParseInfoItem("Product-Name")
	if err != nil || item != InfoProductName {
		t.Errorf("Expected product-name, got %s (%v)", item, err)
	}
	if _, err := ParseInfoItem("fuses"); err == nil {
		t.Error("Expected unknown info item to fail")
	}
}

func TestReadConfig(t *testing.T) {
	d, _, _ := newSimDevice(t, lookup(t, "atmega32u4"), WithInfo([2]byte{0x01, 0x31}, 0x95))

	info, err := d.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if v, err := info.Get(InfoBootloaderVersion); err != nil || v != 0x10 {
		t.Errorf("Expected bootloader version 0x10, got 0x%x (%v)", v, err)
	}
	if v, err := info.Get(InfoFamily); err != nil || v != 0x95 {
		t.Errorf("Expected family 0x95, got 0x%x (%v)", v, err)
	}
	if _, err := info.Get(InfoBSB); !errors.Is(err, ErrRequires8051) {
		t.Errorf("Expected ErrRequires8051, got %v", err)
	}
}

func TestReadCommandStatusError(t *testing.T) {
	d, m := newMockDevice(t, target.FamilyAVR)
	gomock.InOrder(
		expectDownload(m, []byte{0x05, 0x01, 0x31}, 3, nil),
		expectStatus(m, dfu.StatusErrTarget, dfu.DFUError),
		m.EXPECT().Control(dfu.RequestTypeOut, uint8(dfu.RequestClrStatus), uint16(0), uint16(0), gomock.Any()).Return(0, nil),
	)

	v, err := d.ReadCommand([2]byte{0x01, 0x31})
	if v != -3 {
		t.Errorf("Expected -3, got %d", v)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Status != dfu.StatusErrTarget {
		t.Errorf("Expected StatusError errTARGET, got %v", err)
	}
}

func TestReadCommandAVR32(t *testing.T) {
	d, m := newMockDevice(t, target.FamilyAVR32)
	m.EXPECT().Control(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	v, err := d.ReadCommand([2]byte{0x04, 0x00})
	if v != 0 || !errors.Is(err, ErrUnsupportedFamily) {
		t.Errorf("Expected 0 and ErrUnsupportedFamily, got %d (%v)", v, err)
	}
	if _, err := d.ReadConfig(); !errors.Is(err, ErrUnsupportedFamily) {
		t.Errorf("Expected ReadConfig to report ErrUnsupportedFamily, got %v", err)
	}
}

func TestSelectMemoryUnit(t *testing.T) {
	d, m := newMockDevice(t, target.FamilyAVR32)
	gomock.InOrder(
		expectDownload(m, []byte{0x06, 0x03, 0x00, 0x06}, 4, nil),
		expectStatus(m, dfu.StatusOK, dfu.DFUIdle),
	)
	if err := d.SelectMemoryUnit(UnitUser); err != nil {
		t.Fatalf("Expected user unit selection to succeed: %v", err)
	}
	if err := d.SelectMemoryUnit(UnitRAM); !errors.Is(err, ErrInvalidMemoryUnit) {
		t.Errorf("Expected ram to be rejected on AVR32, got %v", err)
	}

	avr, _ := newMockDevice(t, target.FamilyAVR)
	if err := avr.SelectMemoryUnit(UnitEEPROM); err != nil {
		t.Errorf("Expected AVR memory unit selection to be a no-op, got %v", err)
	}
}

func TestSelectPage(t *testing.T) {
	tests := []struct {
		family target.Family
		page   int
		cmd    []byte
	}{
		{target.FamilyAVR, 1, []byte{0x06, 0x03, 0x01}},
		{target.FamilyAVR32, 0x0102, []byte{0x06, 0x03, 0x01, 0x01, 0x02}},
		{target.FamilyXMEGA, 2, []byte{0x06, 0x03, 0x01, 0x00, 0x02}},
	}
	for _, tt := range tests {
		d, m := newMockDevice(t, tt.family)
		gomock.InOrder(
			expectDownload(m, tt.cmd, len(tt.cmd), nil),
			expectStatus(m, dfu.StatusOK, dfu.DFUIdle),
		)
		if err := d.SelectPage(tt.page); err != nil {
			t.Errorf("%s: SelectPage(%d) failed: %v", tt.family, tt.page, err)
		}
	}

	d, _ := newMockDevice(t, target.Family8051)
	if err := d.SelectPage(1); err != nil {
		t.Errorf("Expected 8051 page selection to be a no-op, got %v", err)
	}
}

func TestCheckBlankPage(t *testing.T) {
	d, sim, _ := newSimDevice(t, lookup(t, "atmega32u4"))

	if res, err := d.checkBlankPage(0, 0xff); res != 0 || err != nil {
		t.Errorf("Expected blank page to yield 0, got %d (%v)", res, err)
	}
	if err := sim.Load(UnitFlash, 0x10, []byte{0x00}); err != nil {
		t.Fatal(err)
	}
	if res, err := d.checkBlankPage(0, 0xff); res != 0x11 || err != nil {
		t.Errorf("Expected 0x11, got 0x%x (%v)", res, err)
	}
	if res, _ := d.checkBlankPage(0x20, 0x10); res >= 0 {
		t.Errorf("Expected inverted range to fail, got %d", res)
	}

	md, m := newMockDevice(t, target.FamilyAVR)
	expectDownload(m, []byte{0x03, 0x01, 0x00, 0x00, 0x00, 0xff}, 0, gousb.ErrorIO)
	if res, err := md.checkBlankPage(0, 0xff); res >= 0 || err == nil {
		t.Errorf("Expected transport failure to yield a negative result, got %d (%v)", res, err)
	}
}

func TestCheckBlankAcrossPages(t *testing.T) {
	d, sim, out := newSimDevice(t, lookup(t, "at32uc3a0512"))
	if err := sim.Load(UnitFlash, 0x10005, []byte{0x42}); err != nil {
		t.Fatal(err)
	}

	res, err := d.CheckBlank(0x2000, 0x2ffff)
	if err != nil {
		t.Fatalf("CheckBlank failed: %v", err)
	}
	if res != 0x10006 {
		t.Errorf("Expected first programmed address 0x10005 + 1, got 0x%X", res)
	}
	if !bytes.Contains(out.Bytes(), []byte("Not blank at 0x10005.")) {
		t.Errorf("Expected not blank message, got %q", out.String())
	}

	if res, err := d.CheckBlank(0x20000, 0x2ffff); res != 0 || err != nil {
		t.Errorf("Expected upper page to be blank, got %d (%v)", res, err)
	}
}

func TestEraseBusyPolls(t *testing.T) {
	d, sim, out := newSimDevice(t, lookup(t, "atmega32u4"), WithEraseBusyPolls(5))
	if err := sim.Load(UnitFlash, 0, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	polls := 0
	d.sleep = func(time.Duration) { polls++ }

	status, err := d.Erase(EraseAll)
	if err != nil || status != dfu.StatusOK {
		t.Fatalf("Expected erase to succeed, got %s (%v)", status, err)
	}
	if polls != 5 {
		t.Errorf("Expected 5 poll iterations, got %d", polls)
	}
	if sim.Memory(UnitFlash)[0] != memory.Blank {
		t.Error("Expected flash to be erased")
	}
	if out.String() != "Erasing flash...  Success\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
}

func TestEraseTimeout(t *testing.T) {
	d, _, _ := newSimDevice(t, lookup(t, "atmega32u4"), WithEraseBusyPolls(1000))
	clock := time.Unix(0, 0)
	d.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	if _, err := d.Erase(EraseAll); !errors.Is(err, ErrEraseTimeout) {
		t.Errorf("Expected ErrEraseTimeout, got %v", err)
	}
}

func TestEraseUnresponsive(t *testing.T) {
	d, m := newMockDevice(t, target.FamilyAVR)
	d.sleep = func(time.Duration) {}

	var statusCalls, clears int
	expectDownload(m, []byte{0x04, 0x00, 0xff}, 3, nil)
	m.EXPECT().
		Control(dfu.RequestTypeIn, uint8(dfu.RequestGetStatus), uint16(0), uint16(0), gomock.Any()).
		DoAndReturn(func(uint8, uint8, uint16, uint16, []byte) (int, error) {
			statusCalls++
			return 0, gousb.ErrorIO
		}).Times(eraseMaxFailures)
	m.EXPECT().
		Control(dfu.RequestTypeOut, uint8(dfu.RequestClrStatus), uint16(0), uint16(0), gomock.Any()).
		DoAndReturn(func(uint8, uint8, uint16, uint16, []byte) (int, error) {
			clears++
			return 0, nil
		}).Times(eraseMaxFailures)

	if _, err := d.Erase(EraseAll); !errors.Is(err, ErrUnresponsive) {
		t.Fatalf("Expected ErrUnresponsive, got %v", err)
	}
	if statusCalls != 10 || clears != 10 {
		t.Errorf("Expected 10 status fetches and 10 clears, got %d and %d", statusCalls, clears)
	}
}

func TestLaunch(t *testing.T) {
	d, sim, _ := newSimDevice(t, lookup(t, "atmega32u4"))
	if err := d.Launch(true); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if !sim.Launched() {
		t.Error("Expected the application to be running")
	}

	md, m := newMockDevice(t, target.FamilyAVR)
	gomock.InOrder(
		expectDownload(m, []byte{0x04, 0x03, 0x01, 0x00, 0x00}, 5, nil),
		expectDownload(m, gomock.Len(0), 0, nil),
	)
	if err := md.Launch(false); err != nil {
		t.Errorf("Launch without reset failed: %v", err)
	}
}

func TestMakeIdleFromApplication(t *testing.T) {
	sim := NewSimulator(lookup(t, "atmega32u4"), WithState(dfu.AppIdle))
	s := dfu.NewSession(sim, 0, nil)

	res, err := s.MakeIdle(false)
	if err != nil || res != dfu.IdleResetPerformed {
		t.Fatalf("Expected reset performed, got %s (%v)", res, err)
	}
	if sim.Resets() != 1 {
		t.Errorf("Expected one bus reset, got %d", sim.Resets())
	}
	detach := 0
	for _, r := range sim.Requests() {
		if r == dfu.RequestDetach {
			detach++
		}
	}
	if detach != 1 {
		t.Errorf("Expected one DETACH, got %d", detach)
	}

	if res, err := s.MakeIdle(false); err != nil || res != dfu.IdleReady {
		t.Errorf("Expected ready after reset, got %s (%v)", res, err)
	}
}
