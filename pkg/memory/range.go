package memory

import (
	"fmt"
	"math"
)

const (
	// PageSize is the size of the 64 KiB address window selected on the device.
	PageSize = 0x10000
	// AddressMask reduces addresses to the 31-bit space used by the bootloaders.
	AddressMask = 0x7fffffff
)

// Range is an inclusive address interval. A range whose End is below its
// Start is empty.
type Range struct {
	Start int
	End   int
}

// EmptyRange returns a range that any Inflate call will replace.
func EmptyRange() Range {
	return Range{Start: math.MaxInt32, End: math.MinInt32}
}

func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// Valid reports whether the range covers at least one address.
func (r Range) Valid() bool {
	return r.End >= r.Start
}

// Length returns the number of covered addresses, 0 for an empty range.
func (r Range) Length() int {
	if !r.Valid() {
		return 0
	}
	return r.End - r.Start + 1
}

func (r Range) StartPage() int   { return r.Start / PageSize }
func (r Range) EndPage() int     { return r.End / PageSize }
func (r Range) StartInPage() int { return r.Start % PageSize }
func (r Range) EndInPage() int   { return r.End % PageSize }

// PageCount returns the number of 64 KiB pages the range touches.
func (r Range) PageCount() int {
	if !r.Valid() {
		return 0
	}
	return r.EndPage() - r.StartPage() + 1
}

// PageRange returns the page numbers spanned by r.
func (r Range) PageRange() Range {
	return Range{Start: r.StartPage(), End: r.EndPage()}
}

// Contains reports whether addr lies inside r.
func (r Range) Contains(addr int) bool {
	return r.Valid() && addr >= r.Start && addr <= r.End
}

// ContainsRange reports whether o is non-empty and lies entirely inside r.
func (r Range) ContainsRange(o Range) bool {
	return r.Valid() && o.Valid() && o.Start >= r.Start && o.End <= r.End
}

// Intersects reports whether r and o share at least one address.
func (r Range) Intersects(o Range) bool {
	return r.Valid() && o.Valid() && o.Start <= r.End && o.End >= r.Start
}

// Inflate grows r so that it covers addr.
func (r *Range) Inflate(addr int) {
	if addr < r.Start {
		r.Start = addr
	}
	if addr > r.End {
		r.End = addr
	}
}

// Offset returns r shifted by delta.
func (r Range) Offset(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Addresses returns every step-th address from Start to End.
func (r Range) Addresses(step int) []int {
	if !r.Valid() || step <= 0 {
		return nil
	}
	out := make([]int, 0, (r.End-r.Start)/step+1)
	for a := r.Start; a <= r.End; a += step {
		out = append(out, a)
	}
	return out
}

func (r Range) String() string {
	return fmt.Sprintf("0x%X to 0x%X", r.Start, r.End)
}
