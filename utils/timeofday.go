package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// --- Time-of-day Conversions ---
//
// The schedule and every reservation store wall-clock times as "HH:MM"
// strings; all interval arithmetic happens on minutes since midnight.

// TimeToMinutes converts "HH:MM" to minutes since midnight.
func TimeToMinutes(t string) (int, error) {
	h, m, ok := splitClock(t)
	if !ok {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	return h*60 + m, nil
}

// MinutesToTime converts minutes since midnight back to a zero-padded
// "HH:MM" string. Values of 1440 and up are not wrapped; callers keep
// minutes within a single day.
func MinutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func splitClock(t string) (h, m int, ok bool) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
