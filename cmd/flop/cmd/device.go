package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kairyu/flop/internal/debuglog"
	"github.com/kairyu/flop/pkg/atmel"
	"github.com/kairyu/flop/pkg/dfu"
	"github.com/kairyu/flop/pkg/ihex"
	"github.com/kairyu/flop/pkg/target"
)

// connection is an idle bootloader session for one command.
type connection struct {
	desc    target.Descriptor
	session *dfu.Session
	device  *atmel.Device
	log     *debuglog.Logger
}

func (c *connection) Close() error {
	return c.session.Close()
}

// lastSimulator is the simulator behind the most recent sim connection.
var lastSimulator *atmel.Simulator

// parseDeviceAddr splits --device BUS:ADDR.
func parseDeviceAddr(s string) (bus, addr int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid device %q, want BUS:ADDR", s)
	}
	if bus, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid bus in %q: %w", s, err)
	}
	if addr, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid address in %q: %w", s, err)
	}
	return bus, addr, nil
}

// connect opens the bootloader of the target named name.
func connect(cmd *cobra.Command, name string) (*connection, error) {
	desc, err := lookupTarget(name)
	if err != nil {
		return nil, err
	}
	log := newLogger()
	log.Debugf("target %s", desc)

	var session *dfu.Session
	switch transportKind {
	case "sim":
		session, err = openSimulator(desc, log)
	default:
		session, err = openUSB(commandContext(cmd), desc, log)
	}
	if err != nil {
		return nil, err
	}

	opts := atmel.DefaultOptions()
	opts.Quiet = quiet
	opts.Out = cmd.ErrOrStderr()
	opts.Log = log
	return &connection{
		desc:    desc,
		session: session,
		device:  atmel.New(session, desc.Family, opts),
		log:     log,
	}, nil
}

func openUSB(ctx context.Context, desc target.Descriptor, log *debuglog.Logger) (*dfu.Session, error) {
	bus, addr, err := parseDeviceAddr(deviceAddr)
	if err != nil {
		return nil, argError(err)
	}

	cfg := dfu.DefaultUSBConfig(desc.ProductID)
	cfg.VendorID = desc.VendorID
	cfg.Bus, cfg.Address = bus, addr
	cfg.HonorInterfaceClass = desc.HonorInterfaceClass
	cfg.InitialAbort = desc.InitialAbort
	cfg.Log = log

	s, err := dfu.OpenUSB(ctx, cfg)
	if err != nil {
		return nil, exitError(ExitDeviceAccess, fmt.Errorf("no device present: %w", err))
	}
	return s, nil
}

// simLoader feeds a hex image into simulator flash.
type simLoader struct {
	sim *atmel.Simulator
	err error
}

func (l *simLoader) OnData(address uint32, data []byte) {
	if l.err == nil {
		l.err = l.sim.Load(atmel.UnitFlash, int(address), data)
	}
}

func (l *simLoader) OnEOF() {}

func openSimulator(desc target.Descriptor, log *debuglog.Logger) (*dfu.Session, error) {
	sim := atmel.NewSimulator(desc)
	if simImage != "" {
		l := &simLoader{sim: sim}
		if err := ihex.LoadFile(simImage, l); err != nil {
			return nil, argError(fmt.Errorf("load simulator image: %w", err))
		}
		if l.err != nil {
			return nil, argError(fmt.Errorf("load simulator image: %w", l.err))
		}
	}
	lastSimulator = sim

	s := dfu.NewSession(sim, 0, log)
	res, err := s.MakeIdle(desc.InitialAbort)
	if err != nil || res != dfu.IdleReady {
		return nil, exitError(ExitDeviceAccess, fmt.Errorf("simulator not idle: %s (%v)", res, err))
	}
	return s, nil
}
