package timeutil

import "testing"

func TestFormat(t *testing.T) {
	if got := FormatMs(90_250); got != "0:01:30.250" {
		t.Errorf("FormatMs = %q", got)
	}
	if got := FormatMs(-1); got != "0:00:00.000" {
		t.Errorf("FormatMs negative = %q", got)
	}
	if got := FormatShort(61_990); got != "1:01.9" {
		t.Errorf("FormatShort = %q", got)
	}
	if got := FormatSRT(3_723_004); got != "01:02:03,004" {
		t.Errorf("FormatSRT = %q", got)
	}
}

func TestParseMs(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1:02:03", 3_723_000},
		{"01:30.5", 90_500},
		{"12.345", 12_345},
		{" 7 ", 7_000},
	}
	for _, tt := range tests {
		got, err := ParseMs(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseMs(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "a:b", "1:2:3:4", "-3", "1:-2"} {
		if _, err := ParseMs(bad); err == nil {
			t.Errorf("ParseMs(%q) should fail", bad)
		}
	}
}
