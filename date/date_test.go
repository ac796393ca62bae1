package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-03-15", New(2024, time.March, 15)},
		{"2024-3-5", New(2024, time.March, 5)},
		{"15/3/2024", New(2024, time.March, 15)},
		{"2-Jan-2020", New(2020, time.January, 2)},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "not a date", "2024/03/15"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should have failed", in)
		}
	}
}

func TestMin(t *testing.T) {
	a := New(2020, time.May, 1)
	b := New(2021, time.May, 1)
	var zero Date

	if got := Min(a, b); got != a {
		t.Errorf("Min(a,b) = %v, want %v", got, a)
	}
	if got := Min(b, a); got != a {
		t.Errorf("Min(b,a) = %v, want %v", got, a)
	}
	if got := Min(zero, b); got != b {
		t.Errorf("Min(zero,b) = %v, want %v", got, b)
	}
	if got := Min(a, zero); got != a {
		t.Errorf("Min(a,zero) = %v, want %v", got, a)
	}
	if got := Min(zero, zero); !got.IsZero() {
		t.Errorf("Min(zero,zero) = %v, want zero", got)
	}
}

func TestString(t *testing.T) {
	d := New(2024, time.March, 5)
	if d.String() != "2024-03-05" {
		t.Errorf("String() = %q, want %q", d.String(), "2024-03-05")
	}
}
