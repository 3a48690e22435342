package cmd

import (
	"fmt"

	"github.com/kairyu/flop/pkg/atmel"
	"github.com/kairyu/flop/pkg/ihex"
	"github.com/kairyu/flop/pkg/memory"
	"github.com/kairyu/flop/pkg/target"
)

// segment is the memory space a flash or read command works on.
type segment struct {
	unit     atmel.MemoryUnit
	size     int
	pageSize int
	offset   uint32
}

func (s segment) eeprom() bool { return s.unit == atmel.UnitEEPROM }

// selectSegment picks the segment named by --eeprom and --user.
func selectSegment(desc target.Descriptor, eeprom, user bool) (segment, error) {
	switch {
	case eeprom && user:
		return segment{}, argError(fmt.Errorf("--eeprom and --user are mutually exclusive"))
	case eeprom:
		if !desc.HasEEPROM() {
			return segment{}, argError(fmt.Errorf("%s has no eeprom", desc.Name))
		}
		return segment{
			unit:     atmel.UnitEEPROM,
			size:     desc.EEPROMSize,
			pageSize: desc.EEPROMPageSize,
		}, nil
	case user:
		if !desc.Family.InAVR32Group() {
			return segment{}, argError(fmt.Errorf("user page is only implemented for AVR32 devices, %s is %s", desc.Name, desc.Family))
		}
		return segment{
			unit:     atmel.UnitUser,
			size:     desc.FlashPageSize,
			pageSize: desc.FlashPageSize,
			offset:   target.UserPageOffset,
		}, nil
	}
	return segment{
		unit:     atmel.UnitFlash,
		size:     desc.MemorySize,
		pageSize: desc.FlashPageSize,
	}, nil
}

// outputBuffer allocates a buffer for s and loads a hex file into it.
func (s segment) outputBuffer(path string) (*memory.Buffer, error) {
	buf, err := memory.NewOutput(s.size, s.pageSize, s.offset)
	if err != nil {
		return nil, exitError(ExitBufferInit, fmt.Errorf("initialize buffer: %w", err))
	}
	if err := ihex.LoadFile(path, buf); err != nil {
		return nil, exitError(ExitBufferInit, fmt.Errorf("create memory image: %w", err))
	}
	return buf, nil
}
