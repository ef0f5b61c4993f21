package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMs formats milliseconds as H:MM:SS.mmm (e.g. 0:01:30.250).
func FormatMs(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / 3_600_000
	m := (ms % 3_600_000) / 60_000
	s := (ms % 60_000) / 1000
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms%1000)
}

// FormatShort formats milliseconds as M:SS.t for compact displays.
func FormatShort(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	m := ms / 60_000
	s := (ms % 60_000) / 1000
	return fmt.Sprintf("%d:%02d.%d", m, s, (ms%1000)/100)
}

// FormatSRT formats milliseconds as an SRT timestamp, HH:MM:SS,mmm.
func FormatSRT(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / 3_600_000
	m := (ms % 3_600_000) / 60_000
	s := (ms % 60_000) / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

// ParseMs parses H:MM:SS[.mmm], MM:SS[.mmm] or raw seconds into
// milliseconds. The colon count picks the format.
func ParseMs(str string) (int64, error) {
	str = strings.TrimSpace(str)
	parts := strings.Split(str, ":")
	if len(parts) > 3 || str == "" {
		return 0, fmt.Errorf("expected H:MM:SS, MM:SS, or seconds, got '%s'", str)
	}

	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("expected H:MM:SS, MM:SS, or seconds, got '%s'", str)
	}
	total := secs
	mult := 60.0
	for i := len(parts) - 2; i >= 0; i-- {
		v, err := strconv.Atoi(parts[i])
		if err != nil || v < 0 {
			return 0, fmt.Errorf("expected H:MM:SS, MM:SS, or seconds, got '%s'", str)
		}
		total += float64(v) * mult
		mult *= 60
	}
	return int64(math.Round(total * 1000)), nil
}
