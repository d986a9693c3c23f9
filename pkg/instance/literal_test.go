package instance

import (
	"math"
	"testing"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.5, "3.5"},
		{3, "3.0"},
		{0, "0.0"},
		{-2, "-2.0"},
		{0.1, "0.1"},
		{1234567.0, "1234567.0"},
		{1e16, "1e+16"},
		{1.5e-5, "1.5e-05"},
		{0.0001, "0.0001"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLiterals(t *testing.T) {
	if got := Int(3750).Literal(); got != `"3750"^^xsd:integer` {
		t.Errorf("Int.Literal() = %s", got)
	}
	if got := Float(2.5).Literal(); got != `"2.5"^^xsd:float` {
		t.Errorf("Float.Literal() = %s", got)
	}
}
