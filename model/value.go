package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind discriminates the two shapes a calculator input can take.
type ValueKind int

const (
	// KindNumber is a numeric input value.
	KindNumber ValueKind = iota
	// KindText is a free-text input value.
	KindText
)

// Value is a calculator input value: either a number or a piece of text.
// The zero Value is the number 0.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// Number returns a numeric Value.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// Text returns a textual Value.
func Text(s string) Value {
	return Value{Kind: KindText, Str: s}
}

// Float returns the numeric content of the value. Text values are parsed
// as decimal numbers; unparseable text yields 0.
func (v Value) Float() float64 {
	if v.Kind == KindNumber {
		return v.Num
	}
	f, err := strconv.ParseFloat(v.Str, 64)
	if err != nil {
		return 0
	}
	return f
}

// String returns the textual content of the value. Numbers render with the
// shortest decimal representation that round-trips.
func (v Value) String() string {
	if v.Kind == KindText {
		return v.Str
	}
	return strconv.FormatFloat(v.Num, 'f', -1, 64)
}

// MarshalJSON encodes numbers as JSON numbers and text as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindText {
		return json.Marshal(v.Str)
	}
	return json.Marshal(v.Num)
}

// UnmarshalJSON accepts a JSON number, string, or boolean. Booleans map to
// the numbers 1 and 0 so radio-style toggles survive the wire.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case float64:
		*v = Number(t)
	case string:
		*v = Text(t)
	case bool:
		if t {
			*v = Number(1)
		} else {
			*v = Number(0)
		}
	case nil:
		*v = Number(0)
	default:
		return fmt.Errorf("model: input value must be a number or string, got %T", raw)
	}
	return nil
}

// Inputs maps input identifiers to their current values.
type Inputs map[string]Value

// Num returns the numeric value of the named input, or 0 when absent.
func (in Inputs) Num(id string) float64 {
	return in[id].Float()
}

// Text returns the textual value of the named input, or "" when absent.
func (in Inputs) Text(id string) string {
	v, ok := in[id]
	if !ok {
		return ""
	}
	return v.String()
}

// Clone returns an independent copy of the input map.
func (in Inputs) Clone() Inputs {
	out := make(Inputs, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
