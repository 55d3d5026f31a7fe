package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeToMinutes converts "H:MM" or "HH:MM" to minutes since midnight.
// Returns -1 for invalid input.
func TimeToMinutes(t string) int {
	hh, mm, ok := strings.Cut(t, ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return -1
	}
	h, err1 := strconv.Atoi(hh)
	m, err2 := strconv.Atoi(mm)
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// MinutesToID converts minutes since midnight to the catalog id form ("8:20", "13:00").
func MinutesToID(m int) string {
	m = clampMinutes(m)
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

// MinutesToLabel converts minutes since midnight to a 12-hour label ("1:00 PM").
func MinutesToLabel(m int) string {
	m = clampMinutes(m)
	h := m / 60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m%60, suffix)
}

func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	if m >= 24*60 {
		return 24*60 - 1
	}
	return m
}
