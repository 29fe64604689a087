package core

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"1500", 150000, true},
		{"12.345", 1235, true}, // rounds half-up
		{"0.01", 1, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-5", 0, false},
		{"0", 0, false},
	}
	for _, tc := range cases {
		m, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParseMoney(%q) unexpected error: %v", tc.in, err)
			}
			if m.Cents != tc.cents {
				t.Fatalf("ParseMoney(%q) = %d, want %d", tc.in, m.Cents, tc.cents)
			}
			continue
		}
		if err == nil {
			t.Fatalf("ParseMoney(%q) expected error", tc.in)
		}
	}
}

func TestParseSignedMoney(t *testing.T) {
	m, err := ParseSignedMoney("-42.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Cents != -4250 {
		t.Fatalf("got %d, want -4250", m.Cents)
	}
	if _, err := ParseSignedMoney("0"); err == nil {
		t.Fatalf("zero amount should be rejected")
	}
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in    string
		units int64
		ok    bool
	}{
		{"10", 100000, true},
		{"2.5", 25000, true},
		{"0.0001", 1, true},
		{"0.00001", 0, false}, // rounds to zero
		{"0", 0, false},
		{"-1", 0, false},
		{"x", 0, false},
	}
	for _, tc := range cases {
		q, err := ParseQuantity(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParseQuantity(%q) unexpected error: %v", tc.in, err)
			}
			if q.Units != tc.units {
				t.Fatalf("ParseQuantity(%q) = %d, want %d", tc.in, q.Units, tc.units)
			}
			continue
		}
		if err == nil {
			t.Fatalf("ParseQuantity(%q) expected error", tc.in)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if s := (Money{Cents: 165000}).String(); s != "1650.00" {
		t.Fatalf("got %q", s)
	}
	if s := (Money{Cents: -50}).String(); s != "-0.50" {
		t.Fatalf("got %q", s)
	}
	if s := (Quantity{Units: 100000}).String(); s != "10" {
		t.Fatalf("got %q", s)
	}
}
