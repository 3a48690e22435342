package memory

import "testing"

func TestEmptyRangeInflate(t *testing.T) {
	r := EmptyRange()
	if r.Valid() {
		t.Fatal("Expected empty range to be invalid")
	}
	r.Inflate(5)
	if !r.Valid() || r.Start != 5 || r.End != 5 {
		t.Fatalf("Expected [5,5], got %v", r)
	}
	r.Inflate(2)
	if r.Start != 2 || r.End != 5 {
		t.Fatalf("Expected [2,5], got %v", r)
	}
	r.Inflate(3)
	if r.Start != 2 || r.End != 5 {
		t.Fatalf("Expected inflate inside range to be a no-op, got %v", r)
	}
}

func TestRangePages(t *testing.T) {
	r := NewRange(0xFFF0, 0x20010)
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"StartPage", r.StartPage(), 0},
		{"EndPage", r.EndPage(), 2},
		{"StartInPage", r.StartInPage(), 0xFFF0},
		{"EndInPage", r.EndInPage(), 0x10},
		{"PageCount", r.PageCount(), 3},
		{"Length", r.Length(), 0x20010 - 0xFFF0 + 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: expected 0x%X, got 0x%X", tt.name, tt.want, tt.got)
		}
	}
}

func TestRangeContainment(t *testing.T) {
	r := NewRange(0x100, 0x1FF)
	if !r.Contains(0x100) || !r.Contains(0x1FF) || r.Contains(0x200) {
		t.Error("Contains boundaries wrong")
	}
	if !r.ContainsRange(NewRange(0x180, 0x1FF)) {
		t.Error("Expected sub-range to be contained")
	}
	if r.ContainsRange(NewRange(0x180, 0x200)) {
		t.Error("Expected overlapping range not to be contained")
	}
	if r.ContainsRange(EmptyRange()) {
		t.Error("Expected empty range not to be contained")
	}
	if !r.Intersects(NewRange(0x1FF, 0x300)) {
		t.Error("Expected ranges sharing 0x1FF to intersect")
	}
	if r.Intersects(NewRange(0x200, 0x300)) {
		t.Error("Expected disjoint ranges not to intersect")
	}
	if got := r.Offset(0x10); got.Start != 0x110 || got.End != 0x20F {
		t.Errorf("Expected offset range [0x110,0x20F], got %v", got)
	}
}

func TestRangeAddresses(t *testing.T) {
	got := NewRange(0, 0x1FF).Addresses(0x80)
	want := []int{0, 0x80, 0x100, 0x180}
	if len(got) != len(want) {
		t.Fatalf("Expected %d addresses, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Address %d: expected 0x%X, got 0x%X", i, want[i], got[i])
		}
	}
	if EmptyRange().Addresses(1) != nil {
		t.Error("Expected no addresses for empty range")
	}
}

func TestRangeString(t *testing.T) {
	if s := NewRange(0x10, 0xFF).String(); s != "0x10 to 0xFF" {
		t.Errorf("Unexpected string %q", s)
	}
}
