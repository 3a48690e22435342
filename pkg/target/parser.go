package target

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// Parser reads target descriptor files:
//
//	# comment
//	target "atmega32u4-alt" {
//	    family      = avr
//	    product     = 0x2ff4
//	    memory      = 0x8000
//	    bootloader  = 0x1000 high
//	    flash-page  = 128
//	    eeprom      = 0x400
//	    eeprom-page = 128
//	    initial-abort
//	}
//
// vendor defaults to the Atmel vendor id. Bootloader placement,
// initial-abort and honor-interface-class default to what the built-in
// targets of the same family use.
type Parser struct {
	parser *participle.Parser[descriptorFile]
}

// NewParser builds the descriptor grammar.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[descriptorFile](
		participle.Lexer(descriptorLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build descriptor parser")
	}
	return &Parser{parser: parser}, nil
}

// Parse reads descriptors from r. filename is used in error positions.
func (p *Parser) Parse(filename string, r io.Reader) ([]Descriptor, error) {
	file, err := p.parser.Parse(filename, r)
	if err != nil {
		return nil, errors.Wrap(err, "parse error")
	}
	return file.descriptors()
}

// ParseString reads descriptors from a string.
func (p *Parser) ParseString(input string) ([]Descriptor, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, errors.Wrap(err, "parse error")
	}
	return file.descriptors()
}

// ParseFile reads descriptors from the file at path.
func (p *Parser) ParseFile(path string) ([]Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open descriptor file")
	}
	defer f.Close()
	return p.Parse(path, f)
}

// LoadFile merges the descriptors in path into t.
func (t *Table) LoadFile(path string) error {
	p, err := NewParser()
	if err != nil {
		return err
	}
	ds, err := p.ParseFile(path)
	if err != nil {
		return err
	}
	return t.Merge(ds)
}

func (f *descriptorFile) descriptors() ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(f.Targets))
	for _, b := range f.Targets {
		d, err := b.descriptor()
		if err != nil {
			return nil, err
		}
		if err := d.Validate(); err != nil {
			return nil, errors.Wrap(err, b.Pos.String())
		}
		out = append(out, d)
	}
	return out, nil
}

func (b *targetBlock) descriptor() (Descriptor, error) {
	d := Descriptor{Name: b.Name, VendorID: AtmelVendorID}

	for _, p := range b.Properties {
		if p.Key != "family" {
			continue
		}
		f, err := ParseFamily(p.Value.raw())
		if err != nil {
			return d, errors.Wrap(err, p.Pos.String())
		}
		d.Family = f
	}
	d.BootloaderAtHighMem = d.Family != FamilyAVR32
	d.InitialAbort = d.Family == FamilyAVR || d.Family == FamilyXMEGA
	d.HonorInterfaceClass = d.Family == Family8051 || d.Family == FamilyAVR32

	for _, p := range b.Properties {
		if err := p.apply(&d); err != nil {
			return d, errors.Wrap(err, p.Pos.String())
		}
	}
	return d, nil
}

func (p *property) apply(d *Descriptor) error {
	switch p.Key {
	case "family":
		return nil
	case "vendor":
		n, err := p.uint16Value()
		d.VendorID = n
		return err
	case "product":
		n, err := p.uint16Value()
		d.ProductID = n
		return err
	case "memory":
		return p.intValue(&d.MemorySize)
	case "bootloader":
		if err := p.intValue(&d.BootloaderSize); err != nil {
			return err
		}
		switch p.Value.Placement {
		case "high":
			d.BootloaderAtHighMem = true
		case "low":
			d.BootloaderAtHighMem = false
		}
		return nil
	case "flash-page":
		return p.intValue(&d.FlashPageSize)
	case "eeprom":
		return p.intValue(&d.EEPROMSize)
	case "eeprom-page":
		return p.intValue(&d.EEPROMPageSize)
	case "initial-abort":
		return p.boolValue(&d.InitialAbort)
	case "honor-interface-class":
		return p.boolValue(&d.HonorInterfaceClass)
	}
	return errors.Errorf("unknown property %q", p.Key)
}

func (p *property) intValue(dst *int) error {
	num := p.Value.number()
	if num == nil {
		return errors.Errorf("%s needs a numeric value", p.Key)
	}
	n, err := strconv.ParseInt(*num, 0, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid %s", p.Key)
	}
	*dst = int(n)
	return nil
}

func (p *property) uint16Value() (uint16, error) {
	var n int
	if err := p.intValue(&n); err != nil {
		return 0, err
	}
	if n < 0 || n > 0xffff {
		return 0, errors.Errorf("%s 0x%X out of range", p.Key, n)
	}
	return uint16(n), nil
}

func (p *property) boolValue(dst *bool) error {
	if p.Value == nil {
		*dst = true
		return nil
	}
	switch strings.ToLower(p.Value.raw()) {
	case "true", "yes", "1":
		*dst = true
	case "false", "no", "0":
		*dst = false
	default:
		return errors.Errorf("%s expects true or false", p.Key)
	}
	return nil
}
