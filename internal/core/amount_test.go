package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1250.00", "1250", true},
		{"$1,250.00", "1250", true},
		{"1,234,567.89", "1234567.89", true},
		{" 998.50 ", "998.5", true},
		{"$ 12.00", "12", true},
		{"0", "0", true},
		{"", "0", true},
		{"   ", "0", true},
		{"$", "0", true},
		{"-5.00", "0", false},
		{"abc", "0", false},
		{"12..3", "0", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q unexpected error: %v", tc.in, err)
			}
			if got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s", tc.in, tc.out, got)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
			if !got.IsZero() {
				t.Fatalf("%q expected zero on error, got %s", tc.in, got)
			}
		}
	}
}
