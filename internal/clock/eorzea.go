package clock

import (
	"fmt"
	"math"
	"time"
)

// One Eorzean hour lasts 175 real seconds.
const (
	etSecondsPerHour   = 3600
	realSecondsPerHour = 175
)

const minutesPerDay = 24 * 60

// EorzeaMinutes returns the Eorzean minute of day [0, 1440) at t.
func EorzeaMinutes(t time.Time) int {
	et := t.UnixMilli() * etSecondsPerHour / realSecondsPerHour / 1000
	return int((et / 60) % minutesPerDay)
}

// PullMinutes returns the suggested Eorzean pull time: one ET hour (about
// three real minutes) from now, rounded to ten minutes and wrapped past
// midnight.
func PullMinutes(t time.Time) int {
	m := roundOff(EorzeaMinutes(t) + 60)
	if m > minutesPerDay {
		m -= minutesPerDay
	}
	return m
}

// FormatEorzea formats an Eorzean minute of day as HH:MM or hh:MM AM/PM.
func FormatEorzea(minutes int, twelveHour bool) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	h, m := minutes/60, minutes%60
	if !twelveHour {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, m, suffix)
}

// roundOff rounds to the nearest multiple of ten, ties to even.
func roundOff(i int) int {
	return int(math.RoundToEven(float64(i)/10)) * 10
}

// FormatRemaining renders a countdown as "N min" above 59 seconds and
// "N sec" otherwise.
func FormatRemaining(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs > 59 {
		return fmt.Sprintf("%d min", secs/60)
	}
	return fmt.Sprintf("%d sec", secs)
}
