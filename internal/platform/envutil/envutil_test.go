package envutil

import (
	"testing"
	"time"
)

func TestStr(t *testing.T) {
	t.Setenv("ENVUTIL_STR", "  value  ")
	if got := Str("ENVUTIL_STR", "def"); got != "value" {
		t.Fatalf("Str = %q", got)
	}
	if got := Str("ENVUTIL_STR_MISSING", "def"); got != "def" {
		t.Fatalf("Str default = %q", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("ENVUTIL_INT", "42")
	t.Setenv("ENVUTIL_INT_BAD", "nope")
	if got := Int("ENVUTIL_INT", 7); got != 42 {
		t.Fatalf("Int = %d", got)
	}
	if got := Int("ENVUTIL_INT_BAD", 7); got != 7 {
		t.Fatalf("Int bad value = %d", got)
	}
}

func TestBool(t *testing.T) {
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"0", true, false},
		{"false", true, false},
		{"no", true, false},
		{"OFF", true, false},
		{"maybe", true, true},
		{"", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.val, func(t *testing.T) {
			t.Setenv("ENVUTIL_BOOL", tc.val)
			if got := Bool("ENVUTIL_BOOL", tc.def); got != tc.want {
				t.Fatalf("Bool(%q, %v) = %v, want %v", tc.val, tc.def, got, tc.want)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("ENVUTIL_DUR", "90s")
	t.Setenv("ENVUTIL_DUR_BAD", "ninety")
	if got := Duration("ENVUTIL_DUR", time.Minute); got != 90*time.Second {
		t.Fatalf("Duration = %v", got)
	}
	if got := Duration("ENVUTIL_DUR_BAD", time.Minute); got != time.Minute {
		t.Fatalf("Duration bad value = %v", got)
	}
}
