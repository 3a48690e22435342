package target

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// AtmelVendorID is the USB vendor id of all Atmel DFU bootloaders.
	AtmelVendorID = 0x03eb
	// UserPageOffset is the hex-file address of the AVR32 user page.
	UserPageOffset = 0x80800000
)

// Descriptor holds the static facts about one chip needed to program it.
type Descriptor struct {
	Name                string
	Family              Family
	VendorID            uint16
	ProductID           uint16
	MemorySize          int
	BootloaderSize      int
	BootloaderAtHighMem bool
	FlashPageSize       int
	InitialAbort        bool
	HonorInterfaceClass bool
	EEPROMPageSize      int
	EEPROMSize          int
}

// MemoryTop is the highest flash address.
func (d Descriptor) MemoryTop() int { return d.MemorySize - 1 }

// FlashTop is the highest address available to the application.
func (d Descriptor) FlashTop() int {
	if d.BootloaderAtHighMem {
		return d.MemoryTop() - d.BootloaderSize
	}
	return d.MemoryTop()
}

// FlashBottom is the lowest address available to the application.
func (d Descriptor) FlashBottom() int {
	if d.BootloaderAtHighMem {
		return 0
	}
	return d.BootloaderSize
}

func (d Descriptor) BootloaderBottom() int {
	if d.BootloaderAtHighMem {
		return d.FlashTop() + 1
	}
	return 0
}

func (d Descriptor) BootloaderTop() int {
	if d.BootloaderAtHighMem {
		return d.MemoryTop()
	}
	return d.BootloaderSize - 1
}

// HasEEPROM reports whether the chip has EEPROM reachable by the bootloader.
func (d Descriptor) HasEEPROM() bool { return d.EEPROMSize > 0 }

// Validate checks that the descriptor can be used to address a device.
func (d Descriptor) Validate() error {
	switch {
	case d.Name == "":
		return errors.New("target: missing name")
	case d.Family.String() == "unknown":
		return errors.Errorf("target %s: missing or unknown family", d.Name)
	case d.ProductID == 0:
		return errors.Errorf("target %s: missing product id", d.Name)
	case d.MemorySize <= 0:
		return errors.Errorf("target %s: memory size must be positive", d.Name)
	case d.BootloaderSize < 0 || d.BootloaderSize >= d.MemorySize:
		return errors.Errorf("target %s: bootloader size 0x%X does not fit memory 0x%X",
			d.Name, d.BootloaderSize, d.MemorySize)
	case d.FlashPageSize <= 0:
		return errors.Errorf("target %s: flash page size must be positive", d.Name)
	case d.EEPROMSize > 0 && d.EEPROMPageSize <= 0:
		return errors.Errorf("target %s: eeprom page size must be positive", d.Name)
	}
	return nil
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%s, %04x:%04x)", d.Name, d.Family, d.VendorID, d.ProductID)
}
