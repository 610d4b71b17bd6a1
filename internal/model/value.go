// Package model defines the core calculator data types.
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind distinguishes integer values from decimal ones.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
)

func (k Kind) String() string {
	if k == KindFloat {
		return "float"
	}
	return "int"
}

// Value is a number shown on the display or held in a memory slot.
// Integers stay integers and decimals stay decimals across save and load.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
}

// IntValue returns an integer value.
func IntValue(n int64) Value { return Value{Kind: KindInt, Int: n} }

// FloatValue returns a decimal value.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// ParseValue parses display text. Text containing "." is a decimal,
// anything else must be an integer literal.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("empty value")
	}
	if strings.Contains(s, ".") {
		if strings.ContainsAny(s, "xXpP_") {
			return Value{}, fmt.Errorf("invalid decimal %q", s)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid decimal %q", s)
		}
		return FloatValue(f), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid integer %q", s)
	}
	return IntValue(n), nil
}

// String returns the display form. Decimals always carry a "." so the
// text parses back to a decimal.
func (v Value) String() string {
	if v.Kind == KindInt {
		return strconv.FormatInt(v.Int, 10)
	}
	if math.IsInf(v.Float, 0) || math.IsNaN(v.Float) {
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v.Float, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Float64 returns the value as a float64.
func (v Value) Float64() float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Float
}

// Add returns v+n, keeping the kind of v. An integer sum that does not
// fit in int64 becomes a decimal.
func (v Value) Add(n int64) Value {
	if v.Kind == KindInt {
		sum := v.Int + n
		if (n > 0 && sum < v.Int) || (n < 0 && sum > v.Int) {
			return FloatValue(float64(v.Int) + float64(n))
		}
		return IntValue(sum)
	}
	return FloatValue(v.Float + float64(n))
}

func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Value) UnmarshalText(b []byte) error {
	parsed, err := ParseValue(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Slot is a saved value with its 1-based position.
type Slot struct {
	Index int   `json:"index"`
	Value Value `json:"value"`
}

// Tape outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// ValidOutcomes are the allowed tape outcomes.
var ValidOutcomes = map[string]bool{
	OutcomeOK:       true,
	OutcomeError:    true,
	OutcomeRejected: true,
}

// TapeEntry records one evaluation attempt.
type TapeEntry struct {
	ID        string    `json:"id"`
	Expr      string    `json:"expr"`
	Outcome   string    `json:"outcome"`
	Offset    int       `json:"offset,omitempty"`
	Result    string    `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
