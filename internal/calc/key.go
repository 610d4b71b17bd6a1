package calc

import (
	"fmt"
	"strings"
)

// Key is one button on the keypad.
type Key string

const (
	KeyDecimal   Key = "."
	KeyAdd       Key = "+"
	KeySub       Key = "-"
	KeyMul       Key = "*"
	KeyDiv       Key = "/"
	KeyEquals    Key = "="
	KeyClear     Key = "C"
	KeyBackspace Key = "⌫"
	KeyF         Key = "F"
	KeyFMinus    Key = "F-"
)

// Keypad is the button grid, row by row.
var Keypad = [][]Key{
	{"7", "8", "9", KeyDiv},
	{"4", "5", "6", KeyMul},
	{"1", "2", "3", KeySub},
	{"0", KeyDecimal, KeyEquals, KeyAdd},
	{KeyF, KeyFMinus, KeyBackspace, KeyClear},
}

var keyAliases = map[string]Key{
	"×":         KeyMul,
	"x":         KeyMul,
	"X":         KeyMul,
	"÷":         KeyDiv,
	"c":         KeyClear,
	"f":         KeyF,
	"f-":        KeyFMinus,
	"<":         KeyBackspace,
	"bs":        KeyBackspace,
	"backspace": KeyBackspace,
}

// IsDigit reports whether k is 0-9.
func (k Key) IsDigit() bool {
	return len(k) == 1 && k[0] >= '0' && k[0] <= '9'
}

// Digit returns the numeric value of a digit key.
func (k Key) Digit() int { return int(k[0] - '0') }

// IsOperator reports whether k is one of + - * /.
func (k Key) IsOperator() bool {
	switch k {
	case KeyAdd, KeySub, KeyMul, KeyDiv:
		return true
	}
	return false
}

// ParseKey maps a button label or alias to a Key.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if k, ok := keyAliases[strings.ToLower(s)]; ok {
		return k, nil
	}
	if k, ok := keyAliases[s]; ok {
		return k, nil
	}
	k := Key(s)
	switch {
	case k.IsDigit(), k.IsOperator():
		return k, nil
	}
	switch k {
	case KeyDecimal, KeyEquals, KeyClear, KeyBackspace, KeyF, KeyFMinus:
		return k, nil
	}
	return "", fmt.Errorf("unknown key %q", s)
}

// ParseKeys splits a line of presses such as "7+3=", "F- 2" or "12 bs"
// into keys. "F-" and multi-letter aliases are read as one key; any other
// run of letters is read letter by letter.
func ParseKeys(line string) ([]Key, error) {
	var keys []Key
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t' || r == ',':
			continue
		case (r == 'F' || r == 'f') && i+1 < len(runes) && runes[i+1] == '-':
			keys = append(keys, KeyFMinus)
			i++
			continue
		case isLetter(r):
			j := i
			for j < len(runes) && isLetter(runes[j]) {
				j++
			}
			if j-i > 1 {
				if k, ok := keyAliases[strings.ToLower(string(runes[i:j]))]; ok {
					keys = append(keys, k)
					i = j - 1
					continue
				}
			}
		}
		k, err := ParseKey(string(r))
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
