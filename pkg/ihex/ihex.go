// Package ihex reads and writes Intel HEX images through gohex.
package ihex

import (
	"io"
	"os"

	"github.com/marcinbor85/gohex"
	"github.com/pkg/errors"
)

// LineLength is the number of data bytes per record written by Write.
const LineLength = 16

// Listener receives the contents of a hex file. OnData is called once per
// contiguous segment in ascending address order, then OnEOF once.
type Listener interface {
	OnData(address uint32, data []byte)
	OnEOF()
}

// Segment is a contiguous run of bytes at an absolute address.
type Segment struct {
	Address uint32
	Data    []byte
}

// Load parses an Intel HEX stream and feeds it to l.
func Load(r io.Reader, l Listener) error {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return errors.Wrap(err, "ihex: parse")
	}
	for _, seg := range mem.GetDataSegments() {
		l.OnData(seg.Address, seg.Data)
	}
	l.OnEOF()
	return nil
}

// LoadFile loads path, or standard input when path is "-".
func LoadFile(path string, l Listener) error {
	if path == "-" {
		return Load(os.Stdin, l)
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "ihex: open")
	}
	defer f.Close()
	return Load(f, l)
}

// Write emits segments as Intel HEX, ending with an EOF record.
func Write(w io.Writer, segments []Segment) error {
	mem := gohex.NewMemory()
	for _, seg := range segments {
		if len(seg.Data) == 0 {
			continue
		}
		if err := mem.AddBinary(seg.Address, seg.Data); err != nil {
			return errors.Wrapf(err, "ihex: segment at 0x%X", seg.Address)
		}
	}
	if err := mem.DumpIntelHex(w, LineLength); err != nil {
		return errors.Wrap(err, "ihex: write")
	}
	return nil
}
