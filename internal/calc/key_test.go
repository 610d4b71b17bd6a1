package calc

import (
	"context"
	"testing"
)

func TestParseKeyAliases(t *testing.T) {
	cases := map[string]Key{
		"7":  "7",
		"×":  KeyMul,
		"x":  KeyMul,
		"/":  KeyDiv,
		"c":  KeyClear,
		"F":  KeyF,
		"f-": KeyFMinus,
		"bs": KeyBackspace,
		"⌫":  KeyBackspace,
		"=":  KeyEquals,
	}
	for in, want := range cases {
		got, err := ParseKey(in)
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}

	if _, err := ParseKey("%"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestParseKeysLine(t *testing.T) {
	keys, err := ParseKeys("12×3 F-2 F -")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Key{"1", "2", KeyMul, "3", KeyFMinus, "2", KeyF, KeySub}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d: expected %q, got %q", i, want[i], keys[i])
		}
	}

	if _, err := ParseKeys("1+a"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestParseKeysWordAliases(t *testing.T) {
	keys, err := ParseKeys("7 bs 8 Backspace 2x3 cf")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Key{"7", KeyBackspace, "8", KeyBackspace, "2", KeyMul, "3", KeyClear, KeyF}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d: expected %q, got %q", i, want[i], keys[i])
		}
	}
}

func TestKeypadKeysAreValid(t *testing.T) {
	for _, row := range Keypad {
		for _, k := range row {
			if _, err := ParseKey(string(k)); err != nil {
				t.Errorf("keypad key %q: %v", k, err)
			}
		}
	}
}

func TestLastOperand(t *testing.T) {
	cases := map[string]string{
		"":       "",
		"12":     "12",
		"1.5+2":  "2",
		"3*":     "",
		"7/0.25": "0.25",
	}
	for in, want := range cases {
		if got := lastOperand(in); got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestStarlarkEvaluator(t *testing.T) {
	ctx := context.Background()
	ev := StarlarkEvaluator{}

	v, err := ev.Eval(ctx, "7+3*2")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.String() != "13" {
		t.Errorf("expected 13, got %s", v)
	}

	v, err = ev.Eval(ctx, "7/2")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.String() != "3.5" {
		t.Errorf("expected 3.5, got %s", v)
	}

	v, err = ev.Eval(ctx, "2×0.5")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.String() != "1.0" {
		t.Errorf("expected 1.0, got %s", v)
	}

	for _, bad := range []string{"", "1+", "1/0", "len('x')", "1;2"} {
		if _, err := ev.Eval(ctx, bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
