package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the two shapes a typed cell value can take.
type Kind int

const (
	KindText Kind = iota
	KindNumber
)

// Value is a typed CSV cell: either a float64 or the original text.
// The zero Value is Text("").
type Value struct {
	kind Kind
	num  float64
	str  string
}

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }
func Text(s string) Value    { return Value{kind: KindText, str: s} }

func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Num returns the numeric value and whether the value is a Number.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// String returns the textual representation used for lexical comparison
// and display. Numbers render in plain decimal form.
func (v Value) String() string {
	if v.kind == KindNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// MarshalJSON emits numbers as JSON numbers and text as JSON strings, so a
// serialized record looks exactly like the row a chart or prompt expects.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

// Coerce converts one raw field into a typed value. It never fails: anything
// that does not parse cleanly as a float64 stays text, unchanged.
//
// A whitespace-only field must stay text even though its trimmed form is
// empty, so the empty check runs on the trimmed value before parsing.
func Coerce(s string) Value {
	if s == "" {
		return Text(s)
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Text(s)
	}
	// ParseFloat accepts "NaN" and digit-separating underscores; neither
	// counts as numeric data in a CSV cell.
	if strings.ContainsRune(trimmed, '_') {
		return Text(s)
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) {
		return Text(s)
	}
	return Number(f)
}
