package target

import (
	"strings"

	"github.com/pkg/errors"
)

// Family is the bootloader protocol variant of a chip.
type Family int

const (
	Family8051 Family = iota + 1
	FamilyAVR
	FamilyAVR32
	FamilyXMEGA
)

var familyNames = map[Family]string{
	Family8051:  "8051",
	FamilyAVR:   "AVR",
	FamilyAVR32: "AVR32",
	FamilyXMEGA: "XMEGA",
}

func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return "unknown"
}

// Families returns all families in table order.
func Families() []Family {
	return []Family{Family8051, FamilyAVR, FamilyAVR32, FamilyXMEGA}
}

// ParseFamily accepts a family name in any case.
func ParseFamily(s string) (Family, error) {
	for f, name := range familyNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, errors.Errorf("unknown family %q", s)
}

// InAVRGroup reports whether f uses the 8-bit command encoding
// (8051 and AVR).
func (f Family) InAVRGroup() bool {
	return f == Family8051 || f == FamilyAVR
}

// InAVR32Group reports whether f uses the extended command encoding with
// memory units and 16-bit page selection (AVR32 and XMEGA).
func (f Family) InAVR32Group() bool {
	return f == FamilyAVR32 || f == FamilyXMEGA
}
