package atmel

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/kairyu/flop/pkg/target"
)

// MemoryUnit selects an address space on AVR32 and XMEGA bootloaders.
type MemoryUnit uint8

const (
	UnitFlash MemoryUnit = iota
	UnitEEPROM
	UnitSecurity
	UnitConfig
	UnitBoot
	UnitSignature
	UnitUser
	UnitRAM
	UnitExt0
	UnitExt1
	UnitExt2
	UnitExt3
	UnitExt
	UnitExt5
	UnitExt6
	UnitExt7
	UnitExtDF
)

var unitNames = [...]string{
	"flash", "eeprom", "security", "config", "boot", "sig", "user", "ram",
	"ext0", "ext1", "ext2", "ext3", "ext", "ext5", "ext6", "ext7", "extdf",
}

func (u MemoryUnit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("unit(%d)", uint8(u))
}

// EraseMode is the argument of the erase command.
type EraseMode uint8

const (
	EraseBlock0 EraseMode = 0x00
	EraseBlock1 EraseMode = 0x20
	EraseBlock2 EraseMode = 0x40
	EraseBlock3 EraseMode = 0x80
	EraseAll    EraseMode = 0xff
)

// InfoItem names a configuration value readable with the read command.
type InfoItem int

const (
	InfoBootloaderVersion InfoItem = iota
	InfoBootID1
	InfoBootID2
	InfoBSB
	InfoSBV
	InfoSSB
	InfoEB
	InfoManufacturer
	InfoFamily
	InfoProductName
	InfoProductRevision
	InfoHSB
	infoItemCount
)

type infoMeta struct {
	name        string
	description string
	avr         []byte
	avr32       []byte
	only8051    bool
}

var infoTable = [infoItemCount]infoMeta{
	InfoBootloaderVersion: {"bootloader-version", "Bootloader Version", []byte{0x00, 0x00}, []byte{0x04, 0x00}, false},
	InfoBootID1:           {"ID1", "Device boot ID 1", []byte{0x00, 0x01}, []byte{0x04, 0x01}, false},
	InfoBootID2:           {"ID2", "Device boot ID 2", []byte{0x00, 0x02}, []byte{0x04, 0x02}, false},
	InfoBSB:               {"BSB", "Boot Status Byte", []byte{0x01, 0x00}, nil, true},
	InfoSBV:               {"SBV", "Software Boot Vector", []byte{0x01, 0x01}, nil, true},
	InfoSSB:               {"SSB", "Software Security Byte", []byte{0x01, 0x05}, nil, true},
	InfoEB:                {"EB", "Extra Byte", []byte{0x01, 0x06}, nil, true},
	InfoManufacturer:      {"manufacturer", "Manufacture Code", []byte{0x01, 0x30}, []byte{0x05, 0x00}, false},
	InfoFamily:            {"family", "Family Code", []byte{0x01, 0x31}, []byte{0x05, 0x01}, false},
	InfoProductName:       {"product-name", "Product Name", []byte{0x01, 0x60}, []byte{0x05, 0x02}, false},
	InfoProductRevision:   {"product-revision", "Product Revision", []byte{0x01, 0x61}, []byte{0x05, 0x03}, false},
	InfoHSB:               {"HSB", "Hardware Security Byte", []byte{0x02, 0x00}, nil, true},
}

// InfoItems returns every item in display order.
func InfoItems() []InfoItem {
	items := make([]InfoItem, infoItemCount)
	for i := range items {
		items[i] = InfoItem(i)
	}
	return items
}

func (i InfoItem) valid() bool { return i >= 0 && i < infoItemCount }

// Name is the command line spelling of i.
func (i InfoItem) Name() string {
	if !i.valid() {
		return fmt.Sprintf("info(%d)", int(i))
	}
	return infoTable[i].name
}

func (i InfoItem) String() string { return i.Name() }

// Description is the human readable label of i.
func (i InfoItem) Description() string {
	if !i.valid() {
		return "Unknown"
	}
	return infoTable[i].description
}

// Only8051 reports whether i exists only on 8051 bootloaders.
func (i InfoItem) Only8051() bool {
	return i.valid() && infoTable[i].only8051
}

// ParseInfoItem resolves a command line name. Matching ignores case.
func ParseInfoItem(name string) (InfoItem, error) {
	for i := InfoItem(0); i < infoItemCount; i++ {
		if strings.EqualFold(infoTable[i].name, name) {
			return i, nil
		}
	}
	return 0, errors.Errorf("unknown info item %q", name)
}

// InfoCommand returns the two command bytes that read item on family. The
// bool is false when the item does not exist there. 8051-only items are
// reported for the whole AVR group; Info.Get enforces the 8051 restriction.
func InfoCommand(item InfoItem, family target.Family) ([2]byte, bool) {
	var cmd [2]byte
	if !item.valid() {
		return cmd, false
	}
	var raw []byte
	switch {
	case family.InAVRGroup():
		raw = infoTable[item].avr
	case family.InAVR32Group():
		raw = infoTable[item].avr32
	}
	if raw == nil {
		return cmd, false
	}
	copy(cmd[:], raw)
	return cmd, true
}
