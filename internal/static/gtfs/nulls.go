package gtfs

import (
	"math"
	"strconv"
	"strings"
)

// NullInt is an integer that may be missing. It marshals to an empty CSV
// cell when missing, and any cell that is not an integer reads back as missing.
type NullInt struct {
	Int   int
	Valid bool
}

// NewNullInt returns a valid NullInt holding v
func NewNullInt(v int) NullInt {
	return NullInt{Int: v, Valid: true}
}

// ParseNullInt coerces text to an integer. Integral floats such as "3.0"
// are accepted since that is how numeric columns round-trip through SQLite.
func ParseNullInt(s string) NullInt {
	s = strings.TrimSpace(s)
	if s == "" {
		return NullInt{}
	}
	if v, err := strconv.Atoi(s); err == nil {
		return NewNullInt(v)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return NullInt{}
	}
	return NewNullInt(int(f))
}

// MarshalCSV implements gocsv.TypeMarshaller
func (n NullInt) MarshalCSV() (string, error) {
	if !n.Valid {
		return "", nil
	}
	return strconv.Itoa(n.Int), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller
func (n *NullInt) UnmarshalCSV(s string) error {
	*n = ParseNullInt(s)
	return nil
}

// NullFloat is a real number that may be missing
type NullFloat struct {
	Float float64
	Valid bool
}

// NewNullFloat returns a valid NullFloat holding v. NaN is treated as missing.
func NewNullFloat(v float64) NullFloat {
	if math.IsNaN(v) {
		return NullFloat{}
	}
	return NullFloat{Float: v, Valid: true}
}

// ParseNullFloat coerces text to a real number; anything unparsable is missing
func ParseNullFloat(s string) NullFloat {
	s = strings.TrimSpace(s)
	if s == "" {
		return NullFloat{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NullFloat{}
	}
	return NewNullFloat(f)
}

// MarshalCSV implements gocsv.TypeMarshaller. Shortest round-trip formatting
// keeps output byte-identical across runs.
func (n NullFloat) MarshalCSV() (string, error) {
	if !n.Valid {
		return "", nil
	}
	return strconv.FormatFloat(n.Float, 'f', -1, 64), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller
func (n *NullFloat) UnmarshalCSV(s string) error {
	*n = ParseNullFloat(s)
	return nil
}

// String renders the value the way report tables show missing numbers
func (n NullFloat) String() string {
	if !n.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(n.Float, 'f', 2, 64)
}
