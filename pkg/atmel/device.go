package atmel

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kairyu/flop/internal/debuglog"
	"github.com/kairyu/flop/pkg/dfu"
	"github.com/kairyu/flop/pkg/target"
)

// LogThresholds for the command layer. The progress meter is drawn only
// while debug output is off.
var LogThresholds = debuglog.Thresholds{Debug: 50, Trace: 55}

const (
	avr32ControlBlockSize = 64
	controlBlockSize      = 32
	footerSize            = 16
	footerUnset           = 0xffff

	eraseTimeout     = 20 * time.Second
	erasePoll        = 100 * time.Millisecond
	eraseMaxFailures = 10
)

// Options configure a Device.
type Options struct {
	// Quiet suppresses progress and status lines.
	Quiet bool
	// Out receives progress and status lines. Defaults to os.Stderr.
	Out io.Writer
	// Log receives debug output. May be nil.
	Log *debuglog.Logger
	// FooterCRC computes the CRC field of the write footer over the
	// message preceding it. The field is zero when nil.
	FooterCRC func(msg []byte) uint32
	// FooterVendor, FooterProduct and FooterBCD fill the footer ids.
	FooterVendor  uint16
	FooterProduct uint16
	FooterBCD     uint16
}

// DefaultOptions returns options writing to standard error with unset
// footer ids.
func DefaultOptions() Options {
	return Options{
		Out:           os.Stderr,
		FooterVendor:  footerUnset,
		FooterProduct: footerUnset,
		FooterBCD:     footerUnset,
	}
}

// Device issues Atmel bootloader commands over an idle DFU session.
type Device struct {
	dfu    *dfu.Session
	family target.Family
	opts   Options
	log    *debuglog.Logger

	sleep func(time.Duration)
	now   func() time.Time
}

// New wraps s for a chip of the given family.
func New(s *dfu.Session, family target.Family, opts Options) *Device {
	if opts.Out == nil {
		opts.Out = os.Stderr
	}
	return &Device{
		dfu:    s,
		family: family,
		opts:   opts,
		log:    opts.Log.With("atmel", LogThresholds),
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

func (d *Device) Family() target.Family { return d.family }
func (d *Device) Session() *dfu.Session { return d.dfu }

// SetQuiet toggles status output.
func (d *Device) SetQuiet(q bool) { d.opts.Quiet = q }

func (d *Device) initialized() bool {
	return d != nil && d.dfu != nil
}

func (d *Device) printf(format string, args ...interface{}) {
	if !d.opts.Quiet {
		fmt.Fprintf(d.opts.Out, format, args...)
	}
}

// print writes s verbatim; meter pieces contain '%'.
func (d *Device) print(s string) {
	if !d.opts.Quiet {
		fmt.Fprint(d.opts.Out, s)
	}
}

// meterEnabled reports whether the textual progress meter is drawn.
func (d *Device) meterEnabled() bool {
	return !d.opts.Quiet && !d.log.DebugEnabled()
}

// download sends cmd and fails unless every byte was accepted.
func (d *Device) download(cmd []byte) error {
	n, err := d.dfu.Download(cmd)
	if err != nil {
		return err
	}
	if n != len(cmd) {
		return ErrShortTransfer
	}
	return nil
}

// expectOK fetches the status and turns a non-OK answer into a
// StatusError, clearing the device's error state.
func (d *Device) expectOK(op string) error {
	reply, err := d.dfu.UpdateStatus()
	if err != nil {
		return err
	}
	if reply.Status == dfu.StatusOK {
		return nil
	}
	d.log.Debugf("%s: status %s was not OK", op, reply.Status)
	if reply.State == dfu.DFUError {
		d.dfu.ClearStatus()
	}
	return &StatusError{Op: op, Status: reply.Status, State: reply.State}
}
