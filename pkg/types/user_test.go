package types

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"1", []string{"1"}},
		{" 3, 14 ,,15 ", []string{"3", "14", "15"}},
		{",,", nil},
	}
	for _, tt := range tests {
		got := SplitList(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLayoutSlotOffset(t *testing.T) {
	l := DefaultLayout()
	dx, dy := l.SlotOffset(0)
	if dx != 0 || dy != -50 {
		t.Errorf("slot 0 offset = (%v, %v), want (0, -50)", dx, dy)
	}
	dx, dy = l.SlotOffset(1)
	if dx != 0 || dy != 10 {
		t.Errorf("slot 1 offset = (%v, %v), want (0, 10)", dx, dy)
	}
}
