package target

import (
	"strings"
	"testing"
)

func TestBuiltinTable(t *testing.T) {
	tbl := Builtin()
	if tbl.Len() != 77 {
		t.Fatalf("Expected 77 built-in targets, got %d", tbl.Len())
	}
	for _, d := range tbl.All() {
		if err := d.Validate(); err != nil {
			t.Errorf("Built-in target invalid: %v", err)
		}
		if d.VendorID != AtmelVendorID {
			t.Errorf("%s: expected Atmel vendor id, got %04x", d.Name, d.VendorID)
		}
	}
	d, ok := tbl.Lookup("at90usb1287-4k")
	if !ok {
		t.Fatal("Expected at90usb1287-4k to exist")
	}
	if d.BootloaderSize != 0x1000 || d.ProductID != 0x2ffb {
		t.Errorf("Unexpected descriptor %+v", d)
	}
	if _, ok := tbl.Lookup("at90usb1287_4k"); ok {
		t.Error("Expected enum-style name not to resolve")
	}
}

func TestAddressBounds(t *testing.T) {
	tbl := Builtin()
	tests := []struct {
		name                        string
		flashBottom, flashTop       int
		bootBottom, bootTop, memTop int
	}{
		{"atmega32u4", 0, 0x6FFF, 0x7000, 0x7FFF, 0x7FFF},
		{"at32uc3a0512", 0x2000, 0x7FFFF, 0, 0x1FFF, 0x7FFFF},
		{"at89c5131", 0, 0x7FFF, 0x8000, 0x7FFF, 0x7FFF},
	}
	for _, tt := range tests {
		d, ok := tbl.Lookup(tt.name)
		if !ok {
			t.Fatalf("Missing target %s", tt.name)
		}
		got := []int{d.FlashBottom(), d.FlashTop(), d.BootloaderBottom(), d.BootloaderTop(), d.MemoryTop()}
		want := []int{tt.flashBottom, tt.flashTop, tt.bootBottom, tt.bootTop, tt.memTop}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: bound %d expected 0x%X, got 0x%X", tt.name, i, want[i], got[i])
			}
		}
	}
}

func TestFamilyGroups(t *testing.T) {
	if !Family8051.InAVRGroup() || !FamilyAVR.InAVRGroup() || FamilyXMEGA.InAVRGroup() {
		t.Error("AVR group membership wrong")
	}
	if !FamilyAVR32.InAVR32Group() || !FamilyXMEGA.InAVR32Group() || FamilyAVR.InAVR32Group() {
		t.Error("AVR32 group membership wrong")
	}
	f, err := ParseFamily("xmega")
	if err != nil || f != FamilyXMEGA {
		t.Errorf("Expected XMEGA, got %v (%v)", f, err)
	}
	if _, err := ParseFamily("pic"); err == nil {
		t.Error("Expected error for unknown family")
	}
}

func TestByFamilyAndMatchUSB(t *testing.T) {
	tbl := Builtin()
	names := tbl.ByFamily(Family8051)
	if len(names) != 5 || names[0] != "at89c5130" {
		t.Errorf("Unexpected 8051 targets %v", names)
	}
	matches := tbl.MatchUSB(AtmelVendorID, 0x2ff4)
	if len(matches) != 1 || matches[0].Name != "atmega32u4" {
		t.Errorf("Expected atmega32u4 for 2ff4, got %v", matches)
	}
}

const sampleDescriptors = `
# custom boards
target "atmega32u4-alt" {
    family      = avr
    product     = 0x2ff4
    memory      = 0x8000
    bootloader  = 0x800 high
    flash-page  = 128
    eeprom      = 0x400
    eeprom-page = 128
}

target "uc3-custom" {
    family     = AVR32
    vendor     = 0x1234
    product    = 0x0001
    memory     = 0x40000
    bootloader = 0x2000
    flash-page = 512
    initial-abort
    honor-interface-class = false
}
`

func TestParseDescriptors(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	ds, err := p.ParseString(sampleDescriptors)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if len(ds) != 2 {
		t.Fatalf("Expected 2 descriptors, got %d", len(ds))
	}

	avr := ds[0]
	if avr.Name != "atmega32u4-alt" || avr.Family != FamilyAVR || avr.VendorID != AtmelVendorID {
		t.Errorf("Unexpected AVR descriptor %+v", avr)
	}
	if !avr.BootloaderAtHighMem || !avr.InitialAbort || avr.HonorInterfaceClass {
		t.Errorf("Expected AVR family defaults, got %+v", avr)
	}
	if avr.FlashTop() != 0x77FF {
		t.Errorf("Expected flash top 0x77FF, got 0x%X", avr.FlashTop())
	}

	uc3 := ds[1]
	if uc3.VendorID != 0x1234 || uc3.BootloaderAtHighMem {
		t.Errorf("Unexpected AVR32 descriptor %+v", uc3)
	}
	if !uc3.InitialAbort || uc3.HonorInterfaceClass {
		t.Errorf("Expected explicit flags to override defaults, got %+v", uc3)
	}
}

func TestPlacementKeyword(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatal(err)
	}
	ds, err := p.ParseString(`target "x" { family = avr product = 1 memory = 0x8000 bootloader = 0x1000 low flash-page = 128 }`)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if ds[0].BootloaderAtHighMem || ds[0].BootloaderSize != 0x1000 || ds[0].FlashPageSize != 128 {
		t.Errorf("Expected low bootloader of 0x1000 and 128 byte pages, got %+v", ds[0])
	}
}

func TestParseErrors(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown property", `target "x" { family = avr product = 1 memory = 0x100 flash-page = 8 colour = 3 }`, "unknown property"},
		{"unknown family", `target "x" { family = pic }`, "unknown family"},
		{"missing memory", `target "x" { family = avr product = 1 flash-page = 8 }`, "memory size"},
		{"syntax", `target x { }`, "parse error"},
		{"hyphenated placement word", `target "x" { family = high-end }`, `unknown family "high-end"`},
		{"placement word as flag value", `target "x" { family = avr initial-abort = low-power }`, "initial-abort expects true or false"},
	}
	for _, tt := range tests {
		_, err := p.ParseString(tt.input)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected %q in %q", tt.name, tt.want, err.Error())
		}
	}
}

func TestMerge(t *testing.T) {
	tbl := Builtin()
	custom := Descriptor{
		Name: "atmega32u4", Family: FamilyAVR, VendorID: AtmelVendorID, ProductID: 0x2ff4,
		MemorySize: 0x8000, BootloaderSize: 0x800, BootloaderAtHighMem: true, FlashPageSize: 128,
	}
	if err := tbl.Merge([]Descriptor{custom}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if tbl.Len() != 77 {
		t.Errorf("Expected replacement, table grew to %d", tbl.Len())
	}
	d, _ := tbl.Lookup("atmega32u4")
	if d.BootloaderSize != 0x800 {
		t.Errorf("Expected replaced bootloader size, got 0x%X", d.BootloaderSize)
	}
	if err := tbl.Merge([]Descriptor{custom, custom}); err == nil {
		t.Error("Expected duplicate names to be rejected")
	}
	if Builtin().Len() != 77 {
		t.Error("Expected Builtin to return an independent table")
	}
}
