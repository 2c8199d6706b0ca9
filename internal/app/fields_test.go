package app

import "testing"

func TestNumericFieldInsert(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		input     []string
		wantText  string
		wantValue int
	}{
		{"append digit", 1, []string{"2"}, "12", 12},
		{"replace zero", 0, []string{"7"}, "7", 7},
		{"letters dropped", 3, []string{"a4b"}, "34", 34},
		{"full-width digits", 0, []string{"１２"}, "12", 12},
		{"signs dropped", 5, []string{"-", "+", "."}, "5", 5},
		{"leading zeros trimmed", 0, []string{"0", "0", "9"}, "9", 9},
		{"too long ignored", 12345, []string{"6", "7"}, "123456", 123456},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewNumericField("x", tt.start)
			for _, s := range tt.input {
				f.Insert(s)
			}
			if f.Text() != tt.wantText || f.Value() != tt.wantValue {
				t.Errorf("got %q (%d), want %q (%d)", f.Text(), f.Value(), tt.wantText, tt.wantValue)
			}
		})
	}
}

func TestNumericFieldErase(t *testing.T) {
	f := NewNumericField("x", 42)
	if !f.Erase() || f.Value() != 4 {
		t.Fatalf("after one erase: %q", f.Text())
	}
	f.Erase()
	if f.Text() != "" || f.Value() != 0 {
		t.Errorf("empty field = %q (%d), want \"\" (0)", f.Text(), f.Value())
	}
	if f.Erase() {
		t.Error("erasing an empty field reported a change")
	}
}

func TestDisabledFieldIgnoresEdits(t *testing.T) {
	f := NewNumericField("x", 5)
	f.SetEnabled(false)
	if f.Insert("1") || f.Erase() {
		t.Error("disabled field accepted an edit")
	}
	if f.Value() != 5 {
		t.Errorf("value = %d, want 5", f.Value())
	}
}
