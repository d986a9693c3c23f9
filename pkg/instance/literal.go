package instance

import (
	"math"
	"strconv"
	"strings"
)

// Literal returns the xsd:integer literal form, e.g. "3750"^^xsd:integer.
func (i Int) Literal() string {
	return `"` + strconv.FormatInt(int64(i), 10) + `"^^xsd:integer`
}

// Literal returns the xsd:float literal form, e.g. "3.5"^^xsd:float.
func (f Float) Literal() string {
	return `"` + FormatFloat(float64(f)) + `"^^xsd:float`
}

// FormatFloat renders f with the shortest digits that round-trip, always
// marking it as a float: 3 becomes "3.0", 1e16 becomes "1e+16", 0.00001
// becomes "1e-05". Non-finite values render as "inf", "-inf" and "nan".
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
