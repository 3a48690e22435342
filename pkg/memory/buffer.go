package memory

import (
	"github.com/pkg/errors"
)

const (
	// MaxTransferSize is the largest payload moved in one DNLOAD or UPLOAD.
	MaxTransferSize = 0x400
	// Blank is the value of erased flash.
	Blank byte = 0xFF
)

// ErrNotInitialized is returned for operations on a buffer without storage.
var ErrNotInitialized = errors.New("memory: buffer not initialized")

// Role selects the block strategy of a Buffer.
type Role int

const (
	// Output buffers hold an image to be written to the device.
	Output Role = iota
	// Input buffers receive memory read back from the device.
	Input
)

func (r Role) String() string {
	if r == Input {
		return "input"
	}
	return "output"
}

// Buffer is a host-side image of target memory. See the package
// documentation for the block model.
type Buffer struct {
	role     Role
	pageSize int
	offset   uint32

	data  []byte
	valid []bool

	dataRange  Range
	validRange Range
	blockRange Range

	invalidCount int
	firstInvalid uint32
}

// NewOutput allocates a buffer for an image that will be programmed.
// offset is the address the image's first byte has in the hex file.
func NewOutput(totalSize, pageSize int, offset uint32) (*Buffer, error) {
	return newBuffer(Output, totalSize, pageSize, offset)
}

// NewInput allocates a buffer that receives device memory.
func NewInput(totalSize, pageSize int, offset uint32) (*Buffer, error) {
	return newBuffer(Input, totalSize, pageSize, offset)
}

// NewInputLike allocates an input buffer with the geometry of b.
func NewInputLike(b *Buffer) (*Buffer, error) {
	if !b.Initialized() {
		return nil, ErrNotInitialized
	}
	return newBuffer(Input, len(b.data), b.pageSize, b.offset)
}

func newBuffer(role Role, totalSize, pageSize int, offset uint32) (*Buffer, error) {
	if totalSize <= 0 {
		return nil, errors.Errorf("memory: invalid buffer size %d", totalSize)
	}
	if pageSize <= 0 {
		return nil, errors.Errorf("memory: invalid page size %d", pageSize)
	}
	b := &Buffer{
		role:       role,
		pageSize:   pageSize,
		offset:     offset,
		data:       make([]byte, totalSize),
		valid:      make([]bool, totalSize),
		dataRange:  EmptyRange(),
		validRange: NewRange(0, totalSize-1),
		blockRange: EmptyRange(),
	}
	for i := range b.data {
		b.data[i] = Blank
	}
	return b, nil
}

// Initialized reports whether b has storage.
func (b *Buffer) Initialized() bool {
	return b != nil && b.data != nil
}

func (b *Buffer) Role() Role     { return b.role }
func (b *Buffer) Size() int      { return len(b.data) }
func (b *Buffer) PageSize() int  { return b.pageSize }
func (b *Buffer) Offset() uint32 { return b.offset }

func (b *Buffer) DataRange() Range       { return b.dataRange }
func (b *Buffer) SetDataRange(r Range)   { b.dataRange = r }
func (b *Buffer) ValidRange() Range      { return b.validRange }
func (b *Buffer) SetValidRange(r Range)  { b.validRange = r }
func (b *Buffer) BlockRange() Range      { return b.blockRange }
func (b *Buffer) DataLength() int        { return b.dataRange.Length() }
func (b *Buffer) ValidLength() int       { return b.validRange.Length() }
func (b *Buffer) OffsetInPage(a int) int { return a % b.pageSize }

// Usage returns the fraction of the valid region covered by the data range.
func (b *Buffer) Usage() float64 {
	if b.ValidLength() == 0 {
		return 0
	}
	return float64(b.DataLength()) / float64(b.ValidLength())
}

// FirstPage returns the chip page holding the first data byte.
func (b *Buffer) FirstPage() int { return b.dataRange.Start / b.pageSize }

// LastPage returns the chip page holding the last data byte.
func (b *Buffer) LastPage() int { return b.dataRange.End / b.pageSize }

// PageCount returns the number of chip pages spanned by the data range.
func (b *Buffer) PageCount() int {
	if !b.HasData() {
		return 0
	}
	return b.LastPage() - b.FirstPage() + 1
}

// PutData stores v at addr, marks it valid and grows the data range.
func (b *Buffer) PutData(addr int, v byte) {
	b.data[addr] = v
	b.valid[addr] = true
	b.dataRange.Inflate(addr)
}

func (b *Buffer) Data(addr int) byte {
	return b.data[addr]
}

func (b *Buffer) IsValid(addr int) bool {
	return b.valid[addr]
}

// SetInvalid excludes addr from programming. The data range is left as is.
func (b *Buffer) SetInvalid(addr int) {
	b.valid[addr] = false
}

// TrimDataRange shrinks the data range to the bytes still marked valid.
func (b *Buffer) TrimDataRange() {
	r := EmptyRange()
	for a := b.dataRange.Start; a >= 0 && a <= b.dataRange.End; a++ {
		if b.valid[a] {
			r.Inflate(a)
		}
	}
	b.dataRange = r
}

// HasData reports whether any byte has been stored.
func (b *Buffer) HasData() bool {
	return b.dataRange.Valid()
}

// DataInsideValid reports whether all data lies in the writable region.
func (b *Buffer) DataInsideValid() bool {
	return b.validRange.ContainsRange(b.dataRange)
}

// IsValidAddress reports whether an absolute (hex file) address maps into
// the valid region once the buffer offset is applied.
func (b *Buffer) IsValidAddress(address uint32) bool {
	base := int(b.offset & AddressMask)
	return b.validRange.Offset(base).Contains(int(address & AddressMask))
}

// RelativeAddress converts an absolute address into a buffer index.
func (b *Buffer) RelativeAddress(address uint32) int {
	return int(address&AddressMask) - int(b.offset&AddressMask)
}

// OnData receives a run of bytes from the hex loader. Bytes outside the
// valid region are counted and dropped.
func (b *Buffer) OnData(address uint32, data []byte) {
	for i, v := range data {
		a := address + uint32(i)
		if !b.IsValidAddress(a) {
			if b.invalidCount == 0 {
				b.firstInvalid = a
			}
			b.invalidCount++
			continue
		}
		b.PutData(b.RelativeAddress(a), v)
	}
}

// OnEOF marks the end of a hex stream. Buffers need no finalisation.
func (b *Buffer) OnEOF() {}

// InvalidAddressCount returns how many loaded bytes fell outside the buffer.
func (b *Buffer) InvalidAddressCount() int { return b.invalidCount }

// FirstInvalidAddress returns the first dropped address, if any.
func (b *Buffer) FirstInvalidAddress() uint32 { return b.firstInvalid }

// PadPages fills every chip page of the valid region that holds at least one
// valid byte, so the device receives whole pages.
func (b *Buffer) PadPages() {
	for _, page := range b.validRange.Addresses(b.pageSize) {
		last := page + b.pageSize - 1
		if last > b.validRange.End {
			last = b.validRange.End
		}
		used := false
		for a := page; a <= last; a++ {
			if b.valid[a] {
				used = true
				break
			}
		}
		if !used {
			continue
		}
		for a := page; a <= last; a++ {
			if !b.valid[a] {
				b.PutData(a, Blank)
			}
		}
	}
}
