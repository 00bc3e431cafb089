package logger

import (
	"time"
)

// Status maps an error to the canonical ok/fail status string.
func Status(err error) string {
	if err != nil {
		return "fail"
	}
	return "ok"
}

// Took returns the elapsed time since start.
func Took(start time.Time) time.Duration {
	return time.Since(start)
}

// RoundMS rounds a duration to whole milliseconds for stable log output.
func RoundMS(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}
