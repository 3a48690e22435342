package target

import (
	"sort"

	"github.com/pkg/errors"
)

// Table is an ordered, name-indexed set of descriptors.
type Table struct {
	list   []Descriptor
	byName map[string]int
}

// Builtin returns a fresh table with the built-in targets.
func Builtin() *Table {
	t := &Table{byName: make(map[string]int, len(builtin))}
	for _, d := range builtin {
		t.add(d)
	}
	return t
}

func (t *Table) add(d Descriptor) {
	t.byName[d.Name] = len(t.list)
	t.list = append(t.list, d)
}

// Lookup returns the descriptor called name.
func (t *Table) Lookup(name string) (Descriptor, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return t.list[i], true
}

// All returns every descriptor in table order.
func (t *Table) All() []Descriptor {
	out := make([]Descriptor, len(t.list))
	copy(out, t.list)
	return out
}

// ByFamily returns the sorted names of the targets of family f.
func (t *Table) ByFamily(f Family) []string {
	var names []string
	for _, d := range t.list {
		if d.Family == f {
			names = append(names, d.Name)
		}
	}
	sort.Strings(names)
	return names
}

// MatchUSB returns the targets answering on vid:pid.
func (t *Table) MatchUSB(vid, pid uint16) []Descriptor {
	var out []Descriptor
	for _, d := range t.list {
		if d.VendorID == vid && d.ProductID == pid {
			out = append(out, d)
		}
	}
	return out
}

// Merge adds descriptors to t. A descriptor may replace a built-in entry
// but two descriptors in ds may not share a name.
func (t *Table) Merge(ds []Descriptor) error {
	seen := make(map[string]bool, len(ds))
	for _, d := range ds {
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Name] {
			return errors.Errorf("target %s: defined twice", d.Name)
		}
		seen[d.Name] = true
		if i, ok := t.byName[d.Name]; ok {
			t.list[i] = d
			continue
		}
		t.add(d)
	}
	return nil
}

// Len returns the number of targets.
func (t *Table) Len() int { return len(t.list) }
