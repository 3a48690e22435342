package dfu

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/gousb"
	"github.com/pkg/errors"

	"github.com/kairyu/flop/internal/debuglog"
)

const (
	// InterfaceClassDFU and InterfaceSubClassDFU identify a DFU interface.
	InterfaceClassDFU    = gousb.Class(0xfe)
	InterfaceSubClassDFU = gousb.Class(0x01)

	defaultOpenRetries = 4
	reenumerateDelay   = time.Second
)

// USBConfig selects and prepares a device for OpenUSB.
type USBConfig struct {
	VendorID  uint16
	ProductID uint16
	// Bus and Address restrict the match to one port when non-zero.
	Bus     int
	Address int
	// HonorInterfaceClass requires class 0xFE / subclass 0x01 on the
	// interface instead of taking the first one.
	HonorInterfaceClass bool
	InitialAbort        bool
	Retries             int
	Log                 *debuglog.Logger
}

// DefaultUSBConfig returns a configuration for the given chip id on the
// Atmel vendor id.
func DefaultUSBConfig(productID uint16) USBConfig {
	return USBConfig{
		VendorID:  0x03eb,
		ProductID: productID,
		Retries:   defaultOpenRetries,
	}
}

func (c USBConfig) matches(desc *gousb.DeviceDesc) bool {
	if uint16(desc.Vendor) != c.VendorID || uint16(desc.Product) != c.ProductID {
		return false
	}
	if c.Bus != 0 && desc.Bus != c.Bus {
		return false
	}
	if c.Address != 0 && desc.Address != c.Address {
		return false
	}
	return true
}

// USBTransport is a Transport over a claimed gousb interface.
type USBTransport struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface

	iface int
}

var _ Transport = (*USBTransport)(nil)

// Control performs one control transfer on the default endpoint.
func (t *USBTransport) Control(rType, request uint8, val, idx uint16, data []byte) (int, error) {
	if t.dev == nil {
		return 0, ErrNotInitialized
	}
	return t.dev.Control(rType, request, val, idx, data)
}

// Reset issues a USB port reset.
func (t *USBTransport) Reset() error {
	if t.dev == nil {
		return ErrNotInitialized
	}
	return t.dev.Reset()
}

// Interface returns the claimed interface number.
func (t *USBTransport) Interface() int { return t.iface }

// Close releases the interface, the device and the USB context.
func (t *USBTransport) Close() error {
	if t.intf != nil {
		t.intf.Close()
		t.intf = nil
	}
	if t.cfg != nil {
		t.cfg.Close()
		t.cfg = nil
	}
	if t.dev != nil {
		t.dev.Close()
		t.dev = nil
	}
	if t.ctx != nil {
		t.ctx.Close()
		t.ctx = nil
	}
	return nil
}

// Close releases the transport if it holds resources.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	if c, ok := s.transport.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// OpenUSB finds the configured device, claims its DFU interface and drives
// it to DFU_IDLE. When MakeIdle had to reset the device, the device is
// enumerated again, up to cfg.Retries times.
func OpenUSB(ctx context.Context, cfg USBConfig) (*Session, error) {
	retries := cfg.Retries
	if retries <= 0 {
		retries = defaultOpenRetries
	}
	log := cfg.Log.With("dfu", LogThresholds)

	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := openTransport(cfg, log)
		if err != nil {
			lastErr = err
			log.Debugf("open attempt %d: %v", attempt+1, err)
			if !sleepCtx(ctx, reenumerateDelay) {
				return nil, ctx.Err()
			}
			continue
		}

		s := NewSession(t, uint16(t.iface), cfg.Log)
		res, err := s.MakeIdle(cfg.InitialAbort)
		switch {
		case err != nil:
			t.Close()
			return nil, errors.Wrap(err, "dfu: make idle")
		case res == IdleReady:
			return s, nil
		case res == IdleResetPerformed:
			t.Close()
			lastErr = errors.New("dfu: device reset while entering DFU mode")
			if !sleepCtx(ctx, reenumerateDelay) {
				return nil, ctx.Err()
			}
		default:
			t.Close()
			return nil, errors.New("dfu: device did not reach dfuIDLE")
		}
	}
	return nil, errors.Wrapf(lastErr, "dfu: no usable device %04x:%04x after %d attempts",
		cfg.VendorID, cfg.ProductID, retries)
}

func openTransport(cfg USBConfig, log *debuglog.Logger) (*USBTransport, error) {
	usb := gousb.NewContext()

	devs, err := usb.OpenDevices(cfg.matches)
	if err != nil && len(devs) == 0 {
		usb.Close()
		return nil, errors.Wrap(err, "dfu: enumerate devices")
	}
	if len(devs) == 0 {
		usb.Close()
		return nil, errors.Errorf("dfu: device %04x:%04x not found", cfg.VendorID, cfg.ProductID)
	}
	dev := devs[0]
	for _, extra := range devs[1:] {
		extra.Close()
	}
	log.Debugf("found device %04x:%04x at bus %d address %d",
		cfg.VendorID, cfg.ProductID, dev.Desc.Bus, dev.Desc.Address)

	t := &USBTransport{ctx: usb, dev: dev}
	dev.ControlTimeout = TransferTimeout
	if err := dev.SetAutoDetach(true); err != nil {
		log.Debugf("auto detach unsupported: %v", err)
	}

	cfgNum, ifNum, alt, ok := findInterface(dev.Desc, cfg.HonorInterfaceClass)
	if !ok {
		t.Close()
		return nil, errors.New("dfu: no DFU interface found")
	}
	c, err := dev.Config(cfgNum)
	if err != nil {
		t.Close()
		return nil, errors.Wrapf(err, "dfu: set configuration %d", cfgNum)
	}
	t.cfg = c
	intf, err := c.Interface(ifNum, alt)
	if err != nil {
		t.Close()
		return nil, errors.Wrapf(err, "dfu: claim interface %d", ifNum)
	}
	t.intf = intf
	t.iface = ifNum
	return t, nil
}

// findInterface returns the first interface setting that looks like DFU.
func findInterface(desc *gousb.DeviceDesc, honorClass bool) (cfg, iface, alt int, ok bool) {
	for cfgNum := 1; cfgNum <= len(desc.Configs); cfgNum++ {
		c, found := desc.Configs[cfgNum]
		if !found {
			continue
		}
		for _, in := range c.Interfaces {
			for _, s := range in.AltSettings {
				if !honorClass || (s.Class == InterfaceClassDFU && s.SubClass == InterfaceSubClassDFU) {
					return c.Number, in.Number, s.Alternate, true
				}
			}
		}
	}
	return 0, 0, 0, false
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// DeviceInfo describes a USB device found by ListDevices.
type DeviceInfo struct {
	Bus       int
	Address   int
	VendorID  uint16
	ProductID uint16
	// DFU is true when the device exposes a class 0xFE / subclass 0x01 interface.
	DFU bool
}

func (d DeviceInfo) String() string {
	mode := "runtime"
	if d.DFU {
		mode = "dfu"
	}
	return fmt.Sprintf("bus %03d device %03d: %04x:%04x (%s)", d.Bus, d.Address, d.VendorID, d.ProductID, mode)
}

// ListDevices enumerates present devices for which match returns true
// without opening them.
func ListDevices(ctx context.Context, match func(vid, pid uint16) bool) ([]DeviceInfo, error) {
	var results []DeviceInfo
	usb := gousb.NewContext()
	defer usb.Close()

	_, err := usb.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		vid, pid := uint16(desc.Vendor), uint16(desc.Product)
		if match != nil && !match(vid, pid) {
			return false
		}
		_, _, _, dfu := findInterface(desc, true)
		results = append(results, DeviceInfo{
			Bus:       desc.Bus,
			Address:   desc.Address,
			VendorID:  vid,
			ProductID: pid,
			DFU:       dfu,
		})
		return false
	})
	if err != nil && err != gousb.ErrorAccess {
		return results, err
	}
	return results, ctx.Err()
}
