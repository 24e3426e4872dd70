package contract

import (
	"math/big"
	"testing"
)

func TestParseUnits(t *testing.T) {
	cases := map[string]string{
		"10":                   "10000000000000000000",
		"0.5":                  "500000000000000000",
		".25":                  "250000000000000000",
		"1.000000000000000001": "1000000000000000001",
		"0":                    "0",
	}
	for in, want := range cases {
		got, err := ParseUnits(in)
		if err != nil {
			t.Fatalf("ParseUnits(%q): %v", in, err)
		}
		if got.String() != want {
			t.Fatalf("ParseUnits(%q) = %s, want %s", in, got, want)
		}
	}

	for _, bad := range []string{"", "-1", "1.", "abc", "1.0000000000000000001", "1.2.3"} {
		if _, err := ParseUnits(bad); err == nil {
			t.Fatalf("ParseUnits(%q) expected error", bad)
		}
	}
}

func TestFormatUnits(t *testing.T) {
	ten, _ := new(big.Int).SetString("10000000000000000000", 10)
	if got := FormatUnits(ten); got != "10" {
		t.Fatalf("FormatUnits = %s, want 10", got)
	}
	half, _ := new(big.Int).SetString("500000000000000000", 10)
	if got := FormatUnits(half); got != "0.5" {
		t.Fatalf("FormatUnits = %s, want 0.5", got)
	}
	if got := FormatUnits(nil); got != "0" {
		t.Fatalf("FormatUnits(nil) = %s", got)
	}
	if got := FormatUnits(big.NewInt(1)); got != "0.000000000000000001" {
		t.Fatalf("FormatUnits(1) = %s", got)
	}
}
